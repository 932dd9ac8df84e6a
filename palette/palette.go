// Package palette extracts luminance-ordered color palettes from pixel grids
// and resolves colors back to their position in a palette.
package palette

import (
	"image"
	"image/color"
	"slices"
	"sort"

	"palswap/gamma"
	"palswap/parallel"
)

// NotFound is returned by IndexOf for colors absent from the palette.
const NotFound = -1

// Palette is a sequence of distinct visible colors sorted by non-decreasing
// luminance. Colours of equal luminance keep the order in which they were
// first seen.
type Palette []color.NRGBA

// Extract builds the palette of grid, scanning rows on up to workers
// goroutines. The result does not depend on the number of workers.
func Extract(grid *image.NRGBA, workers int) Palette {
	b := grid.Bounds()
	rows := make([][]color.NRGBA, b.Dy())

	parallel.Each(workers, len(rows), func(i int) {
		rows[i] = rowColors(grid, b.Min.Y+i)
	})

	var pb builder
	for _, row := range rows {
		for _, c := range row {
			pb.add(c)
		}
	}
	return pb.colors
}

// rowColors lists the distinct visible colors of row y in the order they
// first appear.
func rowColors(grid *image.NRGBA, y int) []color.NRGBA {
	var res []color.NRGBA
	seen := make(map[color.NRGBA]struct{})
	for x := grid.Rect.Min.X; x < grid.Rect.Max.X; x++ {
		c := grid.NRGBAAt(x, y)
		if c.A == 0 {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		res = append(res, c)
	}
	return res
}

// builder keeps colors sorted by luminance as they are added.
type builder struct {
	lum    []float64
	colors Palette
}

func (pb *builder) add(c color.NRGBA) {
	l := gamma.Luminance(c)
	i := sort.Search(len(pb.lum), func(i int) bool { return pb.lum[i] >= l })

	// distinct colors can share a luminance (same RGB, different alpha), so
	// the whole run of equal values is checked before inserting after it
	j := i
	for ; j < len(pb.lum) && pb.lum[j] == l; j++ {
		if pb.colors[j] == c {
			return
		}
	}

	pb.lum = slices.Insert(pb.lum, j, l)
	pb.colors = slices.Insert(pb.colors, j, c)
}

// IndexOf returns the position of the first entry equal to c, or NotFound.
func (p Palette) IndexOf(c color.NRGBA) int {
	for i, v := range p {
		if v == c {
			return i
		}
	}
	return NotFound
}

// Index maps every color of a palette to its position.
type Index map[color.NRGBA]int

func (p Palette) Index() Index {
	idx := make(Index, len(p))
	for i := len(p) - 1; i >= 0; i-- {
		idx[p[i]] = i
	}
	return idx
}

// Of behaves like Palette.IndexOf on the palette the index was built from.
func (idx Index) Of(c color.NRGBA) int {
	if i, ok := idx[c]; ok {
		return i
	}
	return NotFound
}
