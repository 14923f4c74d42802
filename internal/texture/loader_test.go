package texture

import (
	"errors"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func opaqueRGBA(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 10), G: uint8(y * 10), B: 7, A: 255})
		}
	}
	return img
}

func TestLoadImage_BMP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Sky_Back0001.bmp")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, bmp.Encode(f, opaqueRGBA(5, 3)))
	require.NoError(t, f.Close())

	img, err := LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 5, 3), img.Bounds())
	assert.Equal(t, color.NRGBA{R: 40, G: 20, B: 7, A: 255}, img.NRGBAAt(4, 2))
}

func TestLoadImage_Missing(t *testing.T) {
	_, err := LoadImage(filepath.Join(t.TempDir(), "nope.bmp"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadImage_Garbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.bmp")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0644))
	_, err := LoadImage(path)
	assert.ErrorContains(t, err, "unrecognised image format")
	assert.ErrorIs(t, err, image.ErrFormat)
	assert.NotContains(t, err.Error(), "tga:")
}

func TestLoadImage_TruncatedPNG(t *testing.T) {
	dir := t.TempDir()
	full := filepath.Join(dir, "full.png")
	require.NoError(t, SaveImage(full, ToNRGBA(opaqueRGBA(32, 32))))
	raw, err := os.ReadFile(full)
	require.NoError(t, err)

	cut := filepath.Join(dir, "cut.png")
	require.NoError(t, os.WriteFile(cut, raw[:len(raw)/2], 0644))
	_, err = LoadImage(cut)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "tga:")
	assert.NotContains(t, err.Error(), "unrecognised image format")
}

func TestToNRGBA(t *testing.T) {
	t.Run("gray becomes opaque", func(t *testing.T) {
		g := image.NewGray(image.Rect(0, 0, 2, 2))
		g.SetGray(1, 1, color.Gray{Y: 90})
		out := ToNRGBA(g)
		assert.Equal(t, color.NRGBA{R: 90, G: 90, B: 90, A: 255}, out.NRGBAAt(1, 1))
		assert.Equal(t, color.NRGBA{A: 255}, out.NRGBAAt(0, 0))
	})

	t.Run("nrgba at origin is shared", func(t *testing.T) {
		n := image.NewNRGBA(image.Rect(0, 0, 2, 2))
		assert.Same(t, n, ToNRGBA(n))
	})

	t.Run("offset bounds are rebased", func(t *testing.T) {
		n := image.NewNRGBA(image.Rect(0, 0, 4, 4))
		n.SetNRGBA(2, 3, color.NRGBA{R: 1, A: 9})
		out := ToNRGBA(n.SubImage(image.Rect(2, 2, 4, 4)))
		assert.Equal(t, image.Rect(0, 0, 2, 2), out.Bounds())
		assert.Equal(t, color.NRGBA{R: 1, A: 9}, out.NRGBAAt(0, 1))
	})
}

func TestSaveImage(t *testing.T) {
	dir := t.TempDir()
	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	src.SetNRGBA(3, 4, color.NRGBA{R: 200, G: 100, B: 50, A: 128})

	t.Run("png round trip", func(t *testing.T) {
		path := filepath.Join(dir, "atlas.png")
		require.NoError(t, SaveImage(path, src))
		got, err := LoadImage(path)
		require.NoError(t, err)
		assert.Equal(t, src.Pix, got.Pix)
	})

	t.Run("webp", func(t *testing.T) {
		path := filepath.Join(dir, "atlas.webp")
		opaque := ToNRGBA(opaqueRGBA(8, 8))
		require.NoError(t, SaveImage(path, opaque))
		got, err := LoadImage(path)
		require.NoError(t, err)
		assert.Equal(t, opaque.Bounds(), got.Bounds())
		assert.Equal(t, opaque.NRGBAAt(5, 6), got.NRGBAAt(5, 6))
	})

	t.Run("overwrites", func(t *testing.T) {
		path := filepath.Join(dir, "twice.png")
		require.NoError(t, os.WriteFile(path, []byte("stale"), 0644))
		require.NoError(t, SaveImage(path, src))
		_, err := LoadImage(path)
		assert.NoError(t, err)
	})

	t.Run("missing parent", func(t *testing.T) {
		err := SaveImage(filepath.Join(dir, "missing", "atlas.png"), src)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatWebP, FormatFromPath("a/b/Sky_0001.WEBP"))
	assert.Equal(t, FormatPNG, FormatFromPath("Sky_0001.png"))
	assert.Equal(t, FormatPNG, FormatFromPath("Sky_0001"))
}

// failingWriter accepts limit bytes and then fails.
type failingWriter struct {
	w     io.Writer
	limit int
}

func (fw *failingWriter) Write(p []byte) (int, error) {
	if len(p) > fw.limit {
		n, _ := fw.w.Write(p[:fw.limit])
		fw.limit = 0
		return n, errors.New("disk full")
	}
	fw.limit -= len(p)
	return fw.w.Write(p)
}

func TestSaveImage_FailedEncodeKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Sky_0001.png")
	prev := ToNRGBA(opaqueRGBA(16, 16))
	require.NoError(t, SaveImage(path, prev))

	next := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	err := saveWith(path, func(w io.Writer) error {
		return encode(&failingWriter{w: w, limit: 40}, path, next)
	})
	require.ErrorContains(t, err, "texture: encode")

	got, err := LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, prev.Pix, got.Pix)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary file left behind")
	assert.Equal(t, "Sky_0001.png", entries[0].Name())
}

func TestSaveImage_FailedFirstSaveLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "atlas.png")
	err := saveWith(path, func(w io.Writer) error {
		_, _ = w.Write([]byte("partial"))
		return errors.New("disk full")
	})
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSaveImage_FileMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atlas.png")
	require.NoError(t, SaveImage(path, image.NewNRGBA(image.Rect(0, 0, 2, 2))))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}
