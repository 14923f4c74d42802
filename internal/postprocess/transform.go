package postprocess

import (
	"image"

	"climbing-skybox/internal/layout"
)

// Mirror returns a horizontally mirrored copy of img.
func Mirror(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.SetNRGBA(x, y, img.NRGBAAt(b.Min.X+w-1-x, b.Min.Y+y))
		}
	}
	return out
}

// Rotate180 returns img turned half a revolution about its centre.
func Rotate180(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.SetNRGBA(x, y, img.NRGBAAt(b.Min.X+w-1-x, b.Min.Y+h-1-y))
		}
	}
	return out
}

// Orient applies a placement's transforms in pipeline order: mirror first,
// then the half turn.
func Orient(img *image.NRGBA, p layout.Placement) *image.NRGBA {
	if p.Mirror {
		img = Mirror(img)
	}
	if p.Rotate180 {
		img = Rotate180(img)
	}
	return img
}
