package postprocess

import (
	"image"
)

// PasteMasked pastes src onto dst with src's top-left corner at pt, using the
// source alpha as the paste mask. Every channel, alpha included, is blended
// as dst*(255-m) + src*m with m the source alpha, so m=0 leaves dst untouched
// and m=255 copies src. Pixels falling outside dst are clipped.
func PasteMasked(dst, src *image.NRGBA, pt image.Point) {
	sb := src.Bounds()
	r := image.Rectangle{Min: pt, Max: pt.Add(sb.Size())}.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		si := src.PixOffset(sb.Min.X+r.Min.X-pt.X, sb.Min.Y+y-pt.Y)
		di := dst.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			m := uint32(src.Pix[si+3])
			switch m {
			case 0:
			case 255:
				copy(dst.Pix[di:di+4], src.Pix[si:si+4])
			default:
				for c := 0; c < 4; c++ {
					dst.Pix[di+c] = blend(dst.Pix[di+c], src.Pix[si+c], m)
				}
			}
			si += 4
			di += 4
		}
	}
}

// blend mixes two channel values by an 8-bit mask with exact /255 rounding.
func blend(d, s uint8, m uint32) uint8 {
	v := uint32(d)*(255-m) + uint32(s)*m + 128
	return uint8((v + (v >> 8)) >> 8)
}
