// Package remap recolors a texture by moving each texel from its position in
// the texture's own palette to the matching position in a reference palette.
package remap

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"palswap/gamma"
	"palswap/palette"
	"palswap/parallel"
)

var (
	ErrEmptyPalette = errors.New("palette has no visible colors")
	// ErrColorNotFound means a texel is missing from the palette extracted
	// from the same texture. Extract never produces such a palette.
	ErrColorNotFound = errors.New("texel color missing from texture palette")
)

type Options struct {
	// Interpolate blends the two reference entries around a fractional
	// target index instead of rounding to the nearest one.
	Interpolate bool
	// Workers bounds the number of rows processed at once. Values below 1
	// mean GOMAXPROCS.
	Workers int
}

// Target converts index i of a texture palette of textureLen entries into a
// position in a reference palette of referenceLen entries. The product is
// formed on integers before dividing so that whole positions come out exact.
// A single-entry texture palette sends every texel to the first reference
// entry.
func Target(i, textureLen, referenceLen int) float64 {
	if textureLen <= 1 {
		return 0
	}
	last := referenceLen - 1
	return min(float64(i*last)/float64(textureLen-1), float64(last))
}

// Apply returns a new grid with the bounds of tex. Transparent texels stay
// zero; every other texel takes its color from ref and keeps its own alpha.
func Apply(tex *image.NRGBA, texPal, ref palette.Palette, opts Options) (*image.NRGBA, error) {
	if len(texPal) == 0 {
		return nil, fmt.Errorf("texture: %w", ErrEmptyPalette)
	}
	if len(ref) == 0 {
		return nil, fmt.Errorf("reference: %w", ErrEmptyPalette)
	}

	index := texPal.Index()

	pick := nearest
	if opts.Interpolate {
		pick = interpolated
	}

	b := tex.Bounds()
	dest := image.NewNRGBA(b)

	pool := parallel.Start(opts.Workers)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		pool.Do(func() error {
			for x := b.Min.X; x < b.Max.X; x++ {
				src := tex.NRGBAAt(x, y)
				if src.A == 0 {
					continue
				}

				i := index.Of(src)
				if i == palette.NotFound {
					return fmt.Errorf("%w: %v at (%d, %d)", ErrColorNotFound, src, x, y)
				}

				c := pick(ref, Target(i, len(texPal), len(ref)))
				c.A = src.A
				dest.SetNRGBA(x, y, c)
			}
			return nil
		})
	}

	if err := pool.Wait(); err != nil {
		return nil, err
	}
	return dest, nil
}

func nearest(ref palette.Palette, target float64) color.NRGBA {
	return ref[int(math.Round(target))]
}

func interpolated(ref palette.Palette, target float64) color.NRGBA {
	lo := math.Floor(target)
	frac := target - lo
	if frac == 0 {
		return ref[int(lo)]
	}
	// target never exceeds the last index, so frac > 0 leaves room for lo+1
	return gamma.Blend(ref[int(lo)], ref[int(lo)+1], frac)
}
