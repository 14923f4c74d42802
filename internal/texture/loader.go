package texture

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	_ "github.com/ftrvxmtrx/tga"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// LoadImage decodes a face render or an existing atlas and returns it as NRGBA.
// BMP, TGA, PNG, JPEG and WebP are recognised by content.
func LoadImage(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture: open %s: %w", path, err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	peek, _ := br.Peek(12)
	head := append([]byte(nil), peek...)
	img, _, err := image.Decode(br)
	if err != nil {
		return nil, decodeError(path, head, err)
	}

	return ToNRGBA(img), nil
}

// ToNRGBA converts any image to NRGBA with bounds starting at the origin.
// Sources without an alpha channel come out fully opaque.
func ToNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	if n, ok := src.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	switch src.(type) {
	case *image.YCbCr, *image.Gray, *image.CMYK:
		// No alpha
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	default:
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				i := dst.PixOffset(x, y)
				dst.Pix[i] = c.R
				dst.Pix[i+1] = c.G
				dst.Pix[i+2] = c.B
				dst.Pix[i+3] = c.A
			}
		}
	}
	return dst
}

// Format names an atlas output encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatWebP Format = "webp"
)

// FormatFromPath picks the encoder from the file extension. Unknown extensions
// fall back to PNG.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".webp") {
		return FormatWebP
	}
	return FormatPNG
}

// SaveImage writes img to path, replacing any existing file. The image is
// encoded to a temporary file in the same directory and renamed into place,
// so a failed save leaves the previous file (or no file) behind. The parent
// directory must already exist.
func SaveImage(path string, img image.Image) error {
	return saveWith(path, func(w io.Writer) error {
		return encode(w, path, img)
	})
}

// encode writes img in the format implied by path's extension.
func encode(w io.Writer, path string, img image.Image) error {
	switch FormatFromPath(path) {
	case FormatWebP:
		return nativewebp.Encode(w, img, nil)
	default:
		return png.Encode(w, img)
	}
}

func saveWith(path string, enc func(io.Writer) error) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("texture: create %s: %w", path, err)
	}
	tmp := f.Name()

	if err := enc(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("texture: encode %s: %w", path, err)
	}
	if err := f.Chmod(0644); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("texture: chmod %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("texture: close %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("texture: rename %s: %w", path, err)
	}
	return nil
}

// decodeError wraps a decode failure. The TGA decoder has no magic number and
// claims any input no other decoder recognised, so a file that is neither
// named .tga nor starts with a known signature is reported as an unknown
// format instead of with the TGA decoder's error.
func decodeError(path string, head []byte, err error) error {
	if !strings.EqualFold(filepath.Ext(path), ".tga") && !knownSignature(head) {
		return fmt.Errorf("texture: decode %s: unrecognised image format: %w", path, image.ErrFormat)
	}
	return fmt.Errorf("texture: decode %s: %w", path, err)
}

func knownSignature(head []byte) bool {
	switch {
	case bytes.HasPrefix(head, []byte("\x89PNG\r\n\x1a\n")):
	case bytes.HasPrefix(head, []byte("\xff\xd8")):
	case bytes.HasPrefix(head, []byte("BM")):
	case len(head) >= 12 && bytes.HasPrefix(head, []byte("RIFF")) && bytes.Equal(head[8:12], []byte("WEBP")):
	default:
		return false
	}
	return true
}
