package atlas

import (
	"errors"
	"fmt"
	"image"

	"climbing-skybox/internal/layout"
	"climbing-skybox/internal/postprocess"
	"climbing-skybox/internal/texture"
)

// Mode selects the starting raster of a compose run.
type Mode int

const (
	// Fresh starts from a blank transparent atlas and ignores any existing output.
	Fresh Mode = iota
	// Resume loads the existing output and pastes on top of it.
	Resume
)

func (m Mode) String() string {
	if m == Resume {
		return "resume"
	}
	return "fresh"
}

// ErrSizeMismatch is returned when a resumed atlas is not AtlasSize square.
var ErrSizeMismatch = errors.New("atlas: existing output has wrong dimensions")

// Placed is an individual face source with its placement.
type Placed struct {
	Path      string
	Placement layout.Placement
}

// Job describes one atlas to produce.
type Job struct {
	// Layer faces in strip order, left to right.
	Layer       []string
	LayerAnchor image.Point
	// LayerMirror mirrors every layer face before it enters the strip.
	LayerMirror bool
	Individual  []Placed
	Output      string
	Mode        Mode
}

// NewJob builds a Job from a layout, looking up face paths with pathOf.
// Faces for which pathOf reports false are skipped.
func NewJob(l layout.Layout, pathOf func(layout.Face) (string, bool), output string, mode Mode) Job {
	job := Job{
		LayerAnchor: l.LayerAnchor,
		LayerMirror: l.LayerMirror,
		Output:      output,
		Mode:        mode,
	}
	for _, f := range l.Layer {
		if p, ok := pathOf(f); ok {
			job.Layer = append(job.Layer, p)
		}
	}
	for _, pl := range l.Individual {
		if p, ok := pathOf(pl.Face); ok {
			job.Individual = append(job.Individual, Placed{Path: p, Placement: pl})
		}
	}
	return job
}

// Compose builds or updates the atlas described by job and writes it to
// job.Output.
func Compose(job Job) error {
	img, err := Build(job)
	if err != nil {
		return err
	}
	return texture.SaveImage(job.Output, img)
}

// Build returns the composed atlas for job without persisting it.
func Build(job Job) (*image.NRGBA, error) {
	dst, err := start(job)
	if err != nil {
		return nil, err
	}

	if len(job.Layer) > 0 {
		strip, err := buildStrip(job.Layer, job.LayerMirror)
		if err != nil {
			return nil, err
		}
		postprocess.PasteMasked(dst, strip, job.LayerAnchor)
	}

	for _, ind := range job.Individual {
		face, err := texture.LoadImage(ind.Path)
		if err != nil {
			return nil, fmt.Errorf("atlas: face %s: %w", ind.Placement.Face, err)
		}
		postprocess.PasteMasked(dst, postprocess.Orient(face, ind.Placement), ind.Placement.At)
	}

	return dst, nil
}

func start(job Job) (*image.NRGBA, error) {
	if job.Mode != Resume {
		return image.NewNRGBA(layout.AtlasBounds()), nil
	}

	img, err := texture.LoadImage(job.Output)
	if err != nil {
		return nil, fmt.Errorf("atlas: resume: %w", err)
	}
	if img.Bounds() != layout.AtlasBounds() {
		return nil, fmt.Errorf("%w: %s is %dx%d", ErrSizeMismatch, job.Output, img.Bounds().Dx(), img.Bounds().Dy())
	}
	return img, nil
}

// buildStrip lays faces side by side in a transient AtlasSize x CellSize strip.
func buildStrip(paths []string, mirror bool) (*image.NRGBA, error) {
	strip := image.NewNRGBA(layout.StripBounds())
	for i, path := range paths {
		face, err := texture.LoadImage(path)
		if err != nil {
			return nil, fmt.Errorf("atlas: layer face %d: %w", i, err)
		}
		if mirror {
			face = postprocess.Mirror(face)
		}
		postprocess.PasteMasked(strip, face, layout.StripOffset(i))
	}
	return strip, nil
}
