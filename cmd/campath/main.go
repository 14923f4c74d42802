package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"climbing-skybox/internal/campath"
)

const (
	defaultFrames = 100
	defaultMeters = 1.0
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Generate a sequence of Terragen CamPos lines with increasing z value.\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [initial_campos] [num_frames] [meters_per_frame]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  initial_campos    Initial CamPos value as \"x, y, z\" (default %q)\n", campath.DefaultStart)
		fmt.Fprintf(os.Stderr, "  num_frames        Number of frames to generate (default %d)\n", defaultFrames)
		fmt.Fprintf(os.Stderr, "  meters_per_frame  How many meters to render per frame (default %g)\n", defaultMeters)
	}
	flag.Parse()

	if err := run(flag.Args(), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run parses every argument before writing the first line to w.
func run(args []string, w io.Writer) error {
	start, frames, meters, err := parseArgs(args)
	if err != nil {
		return err
	}
	return campath.Write(w, campath.Generate(start, meters, frames))
}

// parseArgs reads the optional positional arguments
// [initial_campos] [num_frames] [meters_per_frame].
func parseArgs(args []string) (campath.Position, int, float64, error) {
	if len(args) > 3 {
		return campath.Position{}, 0, 0, fmt.Errorf("at most 3 arguments, got %d", len(args))
	}

	startArg := campath.DefaultStart
	frames := defaultFrames
	meters := defaultMeters

	if len(args) > 0 {
		startArg = args[0]
	}
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return campath.Position{}, 0, 0, fmt.Errorf("num_frames %q: %w", args[1], err)
		}
		frames = n
	}
	if len(args) > 2 {
		m, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return campath.Position{}, 0, 0, fmt.Errorf("meters_per_frame %q: %w", args[2], err)
		}
		meters = m
	}

	start, err := campath.ParsePosition(startArg)
	if err != nil {
		return campath.Position{}, 0, 0, err
	}
	return start, frames, meters, nil
}
