// Package gamma implements the plain 2.2 power curve used to weigh and blend
// palette colors. Channel values are kept in their raw 0-255 range; they are
// not normalised before the curve is applied.
package gamma

import (
	"image/color"
	"math"
)

const Exponent = 2.2

// Rec. 709 luma weights.
const (
	WeightR = 0.2126
	WeightG = 0.7152
	WeightB = 0.0722
)

var expanded [256]float64

func init() {
	for i := range expanded {
		expanded[i] = math.Pow(float64(i), Exponent)
	}
}

// Linear is a color with its R, G and B channels raised to Exponent.
type Linear struct {
	R float64
	G float64
	B float64
	A uint8
}

func ToLinear(c color.NRGBA) Linear {
	return Linear{
		R: expanded[c.R],
		G: expanded[c.G],
		B: expanded[c.B],
		A: c.A,
	}
}

// NRGBA maps lc back onto 8-bit channels. Channels are truncated, not rounded.
func (lc Linear) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: compress(lc.R),
		G: compress(lc.G),
		B: compress(lc.B),
		A: lc.A,
	}
}

func (lc Linear) Luminance() float64 {
	return WeightR*lc.R + WeightG*lc.G + WeightB*lc.B
}

// Lerp interpolates the expanded channels of a and b. Alpha is left opaque.
func Lerp(a, b Linear, t float64) Linear {
	return Linear{
		R: a.R + t*(b.R-a.R),
		G: a.G + t*(b.G-a.G),
		B: a.B + t*(b.B-a.B),
		A: 0xff,
	}
}

func Luminance(c color.NRGBA) float64 {
	return ToLinear(c).Luminance()
}

// Blend mixes c1 and c2 by factor in expanded space. The alpha of the result
// is opaque and is expected to be replaced by the caller.
func Blend(c1, c2 color.NRGBA, factor float64) color.NRGBA {
	return Lerp(ToLinear(c1), ToLinear(c2), factor).NRGBA()
}

const inverse float64 = 1.0 / Exponent

func compress(x float64) uint8 {
	v := math.Pow(x, inverse)
	switch {
	case !(v > 0):
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}
