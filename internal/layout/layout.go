package layout

import (
	"encoding/json"
	"fmt"
	"image"
	"strings"
)

// Fixed pipeline geometry. Atlases are never resized.
const (
	AtlasSize = 2048
	CellSize  = 512
)

// Face identifies one cube face as named by the renderer output files.
type Face string

const (
	Back  Face = "Back"
	Left  Face = "Left"
	Front Face = "Front"
	Right Face = "Right"
	Up    Face = "Up"
	Down  Face = "Down"
)

// AllFaces lists faces in render order.
var AllFaces = []Face{Back, Left, Front, Right, Up, Down}

// ParseFace matches a face name case-insensitively.
func ParseFace(s string) (Face, error) {
	for _, f := range AllFaces {
		if strings.EqualFold(string(f), strings.TrimSpace(s)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("layout: unknown face %q", s)
}

// UnmarshalText accepts face names in any case, so config files may say "up".
func (f *Face) UnmarshalText(b []byte) error {
	v, err := ParseFace(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Placement puts one face at an absolute atlas coordinate.
type Placement struct {
	Face      Face        `json:"face"`
	At        image.Point `json:"at"`
	Mirror    bool        `json:"mirror"`
	Rotate180 bool        `json:"rotate_180"`
}

// Layout maps faces to atlas positions.
// Layer faces are laid left to right in a CellSize-high strip whose top-left
// corner lands on LayerAnchor; Individual faces are pasted directly.
type Layout struct {
	LayerAnchor image.Point `json:"layer_anchor"`
	Layer       []Face      `json:"layer"`
	LayerMirror bool        `json:"layer_mirror"`
	Individual  []Placement `json:"individual"`
}

// UnmarshalJSON decodes a layout on top of Default, so a config only needs
// the fields it changes. An explicit empty list clears the default one.
func (l *Layout) UnmarshalJSON(b []byte) error {
	var raw struct {
		LayerAnchor *image.Point `json:"layer_anchor"`
		Layer       []Face       `json:"layer"`
		LayerMirror *bool        `json:"layer_mirror"`
		Individual  []Placement  `json:"individual"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	*l = Default()
	if raw.LayerAnchor != nil {
		l.LayerAnchor = *raw.LayerAnchor
	}
	if raw.Layer != nil {
		l.Layer = raw.Layer
	}
	if raw.LayerMirror != nil {
		l.LayerMirror = *raw.LayerMirror
	}
	if raw.Individual != nil {
		l.Individual = raw.Individual
	}
	return nil
}

// UnmarshalJSON decodes a placement whose transforms default to mirror plus
// half turn, the orientation every individual face needs.
func (p *Placement) UnmarshalJSON(b []byte) error {
	var raw struct {
		Face      Face        `json:"face"`
		At        image.Point `json:"at"`
		Mirror    *bool       `json:"mirror"`
		Rotate180 *bool       `json:"rotate_180"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	*p = Placement{Face: raw.Face, At: raw.At, Mirror: true, Rotate180: true}
	if raw.Mirror != nil {
		p.Mirror = *raw.Mirror
	}
	if raw.Rotate180 != nil {
		p.Rotate180 = *raw.Rotate180
	}
	return nil
}

// Default returns the horizontal-cross layout used by the skybox material.
//
//	      [Up]
//	[Back][Left][Front][Right]
//	      [Down]
func Default() Layout {
	return Layout{
		LayerAnchor: image.Pt(0, 768),
		Layer:       []Face{Back, Left, Front, Right},
		LayerMirror: true,
		Individual: []Placement{
			{Face: Up, At: image.Pt(512, 256), Mirror: true, Rotate180: true},
			{Face: Down, At: image.Pt(512, 1280), Mirror: true, Rotate180: true},
		},
	}
}

// StripOffset returns the x offset of the i-th layer face inside the strip.
func StripOffset(i int) image.Point {
	return image.Pt(CellSize*i, 0)
}

// StripBounds is the bounds of the transient layer strip.
func StripBounds() image.Rectangle {
	return image.Rect(0, 0, AtlasSize, CellSize)
}

// AtlasBounds is the bounds of every atlas.
func AtlasBounds() image.Rectangle {
	return image.Rect(0, 0, AtlasSize, AtlasSize)
}
