package printer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	_blankCompany = "—"

	// 58mm thermal paper at 203 dpi.
	_pngWidth   = 384
	_pngPadding = 16
	_lineHeight = 20
)

// Text renders the receipt body shared by every driver.
func Text(name, company string) string {
	company = strings.TrimSpace(company)
	if company == "" {
		company = _blankCompany
	}

	return fmt.Sprintf("---\nCheck-in Receipt\nName: %s\nCompany: %s\n---\n", strings.TrimSpace(name), company)
}

// PNG renders the receipt as a monochrome image sized for a receipt roll.
func PNG(name, company string) ([]byte, error) {
	lines := strings.Split(strings.TrimRight(Text(name, company), "\n"), "\n")

	img := imaging.New(_pngWidth, 2*_pngPadding+len(lines)*_lineHeight, color.White)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
	}

	for i, line := range lines {
		// basicfont has no glyph for the em dash
		line = strings.ReplaceAll(line, _blankCompany, "-")

		d.Dot = fixed.P(_pngPadding, _pngPadding+(i+1)*_lineHeight-6)
		d.DrawString(line)
	}

	var buf bytes.Buffer

	err := imaging.Encode(&buf, img, imaging.PNG)
	if err != nil {
		return nil, fmt.Errorf("printer - PNG - imaging.Encode: %w", err)
	}

	return buf.Bytes(), nil
}
