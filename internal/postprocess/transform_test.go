package postprocess

import (
	"image"
	"image/color"
	"testing"

	"climbing-skybox/internal/layout"

	"github.com/stretchr/testify/assert"
)

// asym is a 3x2 image with a distinct value per pixel:
//
//	1 2 3
//	4 5 6
func asym() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(1 + y*3 + x), A: 255})
		}
	}
	return img
}

func reds(img *image.NRGBA) [][]uint8 {
	b := img.Bounds()
	rows := make([][]uint8, b.Dy())
	for y := range rows {
		for x := 0; x < b.Dx(); x++ {
			rows[y] = append(rows[y], img.NRGBAAt(b.Min.X+x, b.Min.Y+y).R)
		}
	}
	return rows
}

func TestMirror(t *testing.T) {
	assert.Equal(t, [][]uint8{{3, 2, 1}, {6, 5, 4}}, reds(Mirror(asym())))
}

func TestRotate180(t *testing.T) {
	assert.Equal(t, [][]uint8{{6, 5, 4}, {3, 2, 1}}, reds(Rotate180(asym())))
}

func TestOrient(t *testing.T) {
	cases := []struct {
		name string
		p    layout.Placement
		want [][]uint8
	}{
		{"none", layout.Placement{}, [][]uint8{{1, 2, 3}, {4, 5, 6}}},
		{"mirror", layout.Placement{Mirror: true}, [][]uint8{{3, 2, 1}, {6, 5, 4}}},
		{"rotate", layout.Placement{Rotate180: true}, [][]uint8{{6, 5, 4}, {3, 2, 1}}},
		// Mirror then half turn is a vertical flip.
		{"mirror+rotate", layout.Placement{Mirror: true, Rotate180: true}, [][]uint8{{4, 5, 6}, {1, 2, 3}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, reds(Orient(asym(), tc.p)))
		})
	}
}

func TestMirror_OffsetBounds(t *testing.T) {
	src := asym().SubImage(image.Rect(1, 0, 3, 2)).(*image.NRGBA)
	out := Mirror(src)
	assert.Equal(t, image.Rect(0, 0, 2, 2), out.Bounds())
	assert.Equal(t, [][]uint8{{3, 2}, {6, 5}}, reds(out))
}
