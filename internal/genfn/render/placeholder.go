package render

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"strings"

	"github.com/dmitrijs2005/thumbkeeper/internal/shared"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

type palette struct {
	from, to, text color.RGBA
}

var palettes = map[shared.Style]palette{
	shared.StyleVibrant:  {from: color.RGBA{0xff, 0x3d, 0x7f, 0xff}, to: color.RGBA{0xff, 0xb3, 0x00, 0xff}, text: color.RGBA{0xff, 0xff, 0xff, 0xff}},
	shared.StyleMinimal:  {from: color.RGBA{0xf5, 0xf5, 0xf0, 0xff}, to: color.RGBA{0xdc, 0xdc, 0xd5, 0xff}, text: color.RGBA{0x22, 0x22, 0x22, 0xff}},
	shared.StyleDramatic: {from: color.RGBA{0x0b, 0x0b, 0x1a, 0xff}, to: color.RGBA{0x5a, 0x10, 0x20, 0xff}, text: color.RGBA{0xf0, 0xe6, 0xd2, 0xff}},
	shared.StylePlayful:  {from: color.RGBA{0x4f, 0xc3, 0xf7, 0xff}, to: color.RGBA{0xa5, 0xd6, 0x4f, 0xff}, text: color.RGBA{0x1a, 0x23, 0x7e, 0xff}},
}

// Placeholder draws a text-only thumbnail locally: a style-colored
// gradient with the topic as headline. It needs no network access.
type Placeholder struct {
	bold    *truetype.Font
	regular *truetype.Font
}

func NewPlaceholder() (*Placeholder, error) {
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &Placeholder{bold: bold, regular: regular}, nil
}

func (p *Placeholder) face(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{Size: size, Hinting: font.HintingFull})
}

func (p *Placeholder) Render(ctx context.Context, pr Prompt) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pal, ok := palettes[pr.Style]
	if !ok {
		pal = palettes[shared.StyleVibrant]
	}

	dc := gg.NewContext(Width, Height)
	grad := gg.NewLinearGradient(0, 0, Width, Height)
	grad.AddColorStop(0, pal.from)
	grad.AddColorStop(1, pal.to)
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, Width, Height)
	dc.Fill()

	// darker band behind the context line
	dc.SetRGBA(0, 0, 0, 0.25)
	dc.DrawRectangle(0, Height*0.74, Width, Height*0.16)
	dc.Fill()

	dc.SetColor(pal.text)
	dc.SetFontFace(p.face(p.bold, 92))
	dc.DrawStringWrapped(strings.ToUpper(pr.Topic), Width/2, Height*0.4, 0.5, 0.5, Width*0.86, 1.15, gg.AlignCenter)

	if pr.Context != "" {
		dc.SetFontFace(p.face(p.regular, 38))
		dc.DrawStringAnchored(truncate(pr.Context, 60), Width/2, Height*0.82, 0.5, 0.5)
	}

	dc.SetFontFace(p.face(p.regular, 26))
	dc.DrawStringAnchored(string(pr.Style), Width-40, 48, 1, 0.5)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
