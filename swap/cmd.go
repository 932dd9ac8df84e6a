package swap

import (
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"palswap/palette"
	"palswap/remap"

	"github.com/alecthomas/kong"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type CLICmd struct {
	Texture     string `arg:"" help:"Texture image to recolor"`
	Palette     string `arg:"" help:"Image (or RIFF PAL file) providing the reference palette"`
	Interpolate string `arg:"" help:"Blend neighboring palette entries (true/false, anything else is false)"`
	Blend       bool   `kong:"-"`
	Workers     int    `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	var err error
	if c.Texture, err = filepath.Abs(c.Texture); err != nil {
		return fmt.Errorf("invalid texture path: %w", err)
	}
	if c.Palette, err = filepath.Abs(c.Palette); err != nil {
		return fmt.Errorf("invalid palette path: %w", err)
	}

	c.Blend = ParseFlag(c.Interpolate)
	return nil
}

// ParseFlag reports whether s spells "true" in any letter case.
func ParseFlag(s string) bool {
	return cases.Lower(language.Und).String(s) == "true"
}

// Run recolors the texture and writes it to out as a single line of base64
// encoded PNG.
func (c *CLICmd) Run(out io.Writer) error {
	logger := slog.Default().With("texture", c.Texture, "palette", c.Palette)

	texture, err := loadImage(c.Texture)
	if err != nil {
		return fmt.Errorf("texture: %w", err)
	}
	reference, err := loadImage(c.Palette)
	if err != nil {
		return fmt.Errorf("palette: %w", err)
	}

	refPal := palette.Extract(reference, c.Workers)
	texPal := palette.Extract(texture, c.Workers)
	logger.Info("extracted palettes", "texture_colors", len(texPal), "palette_colors", len(refPal))

	if len(refPal) == 0 {
		return fmt.Errorf("palette image %q: %w", c.Palette, remap.ErrEmptyPalette)
	}
	if len(texPal) == 0 {
		return fmt.Errorf("texture image %q: %w", c.Texture, remap.ErrEmptyPalette)
	}

	logger.Info("remapping", "width", texture.Rect.Dx(), "height", texture.Rect.Dy(), "interpolate", c.Blend)
	img, err := remap.Apply(texture, texPal, refPal, remap.Options{
		Interpolate: c.Blend,
		Workers:     c.Workers,
	})
	if err != nil {
		return fmt.Errorf("could not remap texture: %w", err)
	}

	data, err := encodePNG(img)
	if err != nil {
		return err
	}

	if _, err = fmt.Fprintln(out, base64.StdEncoding.EncodeToString(data)); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}
	return nil
}
