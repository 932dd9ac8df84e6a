package swap

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"log/slog"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/vp8l"
	_ "golang.org/x/image/webp"
)

func loadImage(name string) (*image.NRGBA, error) {
	imgFile, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("could not open image %q: %w", name, err)
	}
	defer func() {
		if closeErr := imgFile.Close(); closeErr != nil {
			slog.Error("could not close image", "file", name, "error", closeErr)
		}
	}()

	img, imgType, err := image.Decode(imgFile)
	if err != nil {
		return nil, fmt.Errorf("could not decode image %q: %w", name, err)
	}

	grid := toNRGBA(img)
	slog.Info("loaded image", "file", name, "format", imgType,
		"width", grid.Rect.Dx(), "height", grid.Rect.Dy())
	return grid, nil
}

// toNRGBA copies img into a non-premultiplied 8-bit grid anchored at (0, 0).
// Straight-alpha sources are copied without a round trip through
// premultiplied color so partially transparent pixels keep their values.
func toNRGBA(img image.Image) *image.NRGBA {
	sr := img.Bounds()
	dr := image.Rect(0, 0, sr.Dx(), sr.Dy())
	dest := image.NewNRGBA(dr)

	switch src := img.(type) {
	case *image.NRGBA:
		for y := 0; y < dr.Dy(); y++ {
			copy(dest.Pix[y*dest.Stride:y*dest.Stride+4*dr.Dx()], src.Pix[src.PixOffset(sr.Min.X, sr.Min.Y+y):])
		}
	case *image.NRGBA64:
		for y := 0; y < dr.Dy(); y++ {
			for x := 0; x < dr.Dx(); x++ {
				c := src.NRGBA64At(sr.Min.X+x, sr.Min.Y+y)
				dest.SetNRGBA(x, y, color.NRGBA{
					R: uint8(c.R >> 8),
					G: uint8(c.G >> 8),
					B: uint8(c.B >> 8),
					A: uint8(c.A >> 8),
				})
			}
		}
	case *image.Paletted:
		pal := make([]color.NRGBA, len(src.Palette))
		for i, c := range src.Palette {
			pal[i] = color.NRGBAModel.Convert(c).(color.NRGBA)
		}
		for y := 0; y < dr.Dy(); y++ {
			for x := 0; x < dr.Dx(); x++ {
				i := int(src.ColorIndexAt(sr.Min.X+x, sr.Min.Y+y))
				if i < len(pal) {
					dest.SetNRGBA(x, y, pal[i])
				}
			}
		}
	default:
		draw.Draw(dest, dr, img, sr.Min, draw.Src)
	}

	return dest
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{
		CompressionLevel: png.BestCompression,
	}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("could not encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}
