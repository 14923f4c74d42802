package campath

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// TerragenUnitsPerMeter converts one real-world meter into Terragen's
// internal distance unit.
const TerragenUnitsPerMeter = 0.067

// FrameEnd terminates the directives of one frame.
const FrameEnd = "frend"

// DefaultStart is the camera position used when none is given.
const DefaultStart = "164, 223, 45.647"

// ErrMalformedPosition is returned when a position string is not "x, y, z".
var ErrMalformedPosition = errors.New("campath: malformed position")

// Position is a camera position. X and Y stay fixed for a dolly move.
type Position struct {
	X, Y int
	Z    float64
}

// ParsePosition parses "x, y, z" with integer x and y and a float z.
func ParsePosition(s string) (Position, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Position{}, fmt.Errorf("%w: %q: want 3 comma-separated values, got %d", ErrMalformedPosition, s, len(parts))
	}

	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Position{}, fmt.Errorf("%w: x: %w", ErrMalformedPosition, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Position{}, fmt.Errorf("%w: y: %w", ErrMalformedPosition, err)
	}
	z, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err != nil {
		return Position{}, fmt.Errorf("%w: z: %w", ErrMalformedPosition, err)
	}

	return Position{X: x, Y: y, Z: z}, nil
}

// Directive formats p as a CamPos line with z to three decimals.
func (p Position) Directive() string {
	return fmt.Sprintf("CamPos %d, %d, %.3f", p.X, p.Y, p.Z)
}

// Generate returns the CamPos/frend lines for frames frames, advancing z by
// metersPerFrame meters after each one. Non-positive frame counts yield no
// lines; a negative step dollies backwards.
func Generate(start Position, metersPerFrame float64, frames int) []string {
	if frames <= 0 {
		return nil
	}
	step := metersPerFrame * TerragenUnitsPerMeter
	lines := make([]string, 0, frames*2)
	p := start
	for i := 0; i < frames; i++ {
		lines = append(lines, p.Directive(), FrameEnd)
		// z is accumulated per frame rather than computed as i*step.
		p.Z += step
	}
	return lines
}

// Write emits one line per entry.
func Write(w io.Writer, lines []string) error {
	bw := bufio.NewWriter(w)
	for _, l := range lines {
		if _, err := bw.WriteString(l + "\n"); err != nil {
			return fmt.Errorf("campath: write: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("campath: write: %w", err)
	}
	return nil
}
