package render

import (
	"bytes"
	"context"
	"fmt"
	"image"

	"github.com/fogleman/gg"

	_ "image/jpeg"
	_ "image/png"
)

// Renderer produces PNG bytes for p.
type Renderer interface {
	Render(ctx context.Context, p Prompt) ([]byte, error)
}

// fitThumbnail decodes data and scales it to cover a Width x Height canvas,
// cropping the overflow evenly. The result is PNG encoded.
func fitThumbnail(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	srcW := float64(img.Bounds().Dx())
	srcH := float64(img.Bounds().Dy())
	if srcW == 0 || srcH == 0 {
		return nil, fmt.Errorf("decode image: empty bounds")
	}
	scale := max(float64(Width)/srcW, float64(Height)/srcH)

	dc := gg.NewContext(Width, Height)
	dc.Push()
	dc.Translate((float64(Width)-srcW*scale)/2, (float64(Height)-srcH*scale)/2)
	dc.Scale(scale, scale)
	dc.DrawImage(img, 0, 0)
	dc.Pop()

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
