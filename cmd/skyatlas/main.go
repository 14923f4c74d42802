package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"climbing-skybox/internal/atlas"
	"climbing-skybox/internal/batch"
	"climbing-skybox/internal/config"
	"climbing-skybox/internal/layout"
	"climbing-skybox/internal/texture"
)

func main() {
	// Single-frame flags
	layer := flag.String("layer", "", "Comma-separated layer face paths, left to right (Back,Left,Front,Right)")
	up := flag.String("up", "", "Path to the Up face")
	down := flag.String("down", "", "Path to the Down face")
	out := flag.String("out", "", "Atlas output path (single-frame mode)")
	anchor := flag.String("anchor", "", "Layer strip anchor as x,y (default: 0,768)")

	// Batch flags
	configFile := flag.String("config", "", "Path to config.json file")
	baseDir := flag.String("base", "", "Base directory for relative paths")
	facesDir := flag.String("faces", "", "Directory with Sky_<Face><Frame> renders (default: Output)")
	texturesDir := flag.String("textures", "", "Atlas output directory (default: Textures)")
	name := flag.String("name", "", "Atlas file name prefix (default: Sky_MountainSide_Alt_)")
	frames := flag.String("frames", "", "Comma-separated frame numbers, e.g. 0001,0002")
	first := flag.Int("first", 0, "First frame number (default: 1)")
	last := flag.Int("last", 0, "Last frame number (default: 21)")
	pad := flag.Int("pad", 0, "Frame number digits for -first/-last (default: 4)")
	format := flag.String("format", "", "Atlas format: png or webp (default: png)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")

	resume := flag.Bool("resume", false, "Paste onto the existing output instead of a blank atlas")

	flag.Parse()

	mode := atlas.Fresh
	if *resume {
		mode = atlas.Resume
	}

	if *out != "" || *layer != "" || *up != "" || *down != "" {
		if err := runSingle(*layer, *up, *down, *anchor, *out, mode); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	var frameList []string
	if *frames != "" {
		frameList = splitList(*frames)
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		BaseDir:     *baseDir,
		FacesDir:    *facesDir,
		TexturesDir: *texturesDir,
		TextureName: *name,
		Format:      *format,
		Frames:      frameList,
		FirstFrame:  *first,
		LastFrame:   *last,
		FramePad:    *pad,
		Resume:      *resume,
		Workers:     *workers,
	})
	if cfg.Resume {
		mode = atlas.Resume
	}

	faceIndex := texture.BuildIndex(cfg.FacesDir)
	if faceIndex.Len() == 0 {
		fmt.Fprintf(os.Stderr, "Error: no face renders found in %s\n", cfg.FacesDir)
		os.Exit(1)
	}

	fmt.Printf("Skybox atlas compositor (%s)\n", mode)
	fmt.Printf("Frames: %d, Workers: %d, Renders: %d indexed\n", len(cfg.Frames), cfg.Workers, faceIndex.Len())
	fmt.Printf("Faces: %s\n", cfg.FacesDir)
	fmt.Printf("Output: %s\n", cfg.TexturesDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	results := batch.Run(batch.Config{
		FaceIndex:  faceIndex,
		Layout:     *cfg.Layout,
		OutputPath: cfg.OutputPath,
		Mode:       mode,
		Workers:    cfg.Workers,
		Progress:   2 * time.Second,
	}, cfg.Frames)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Composed: %d/%d\n", success, len(results))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(errors) < limit {
			limit = len(errors)
		}
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.Frame, e.Error)
		}
	}

	// Write manifest
	if success > 0 {
		manifestPath := filepath.Join(cfg.TexturesDir, "manifest.json")
		if err := batch.WriteManifest(manifestPath, results); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
		} else {
			fmt.Printf("Manifest: %s\n", manifestPath)
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func runSingle(layer, up, down, anchor, out string, mode atlas.Mode) error {
	if out == "" {
		return fmt.Errorf("-out is required")
	}

	l := layout.Default()
	if anchor != "" {
		pt, err := parsePoint(anchor)
		if err != nil {
			return err
		}
		l.LayerAnchor = pt
	}

	paths := map[layout.Face]string{
		layout.Up:   up,
		layout.Down: down,
	}
	for i, p := range splitList(layer) {
		if i >= len(l.Layer) {
			return fmt.Errorf("-layer: at most %d faces", len(l.Layer))
		}
		paths[l.Layer[i]] = p
	}

	job := atlas.NewJob(l, func(f layout.Face) (string, bool) {
		p := paths[f]
		return p, p != ""
	}, out, mode)

	if err := atlas.Compose(job); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%d layer, %d individual faces)\n", out, len(job.Layer), len(job.Individual))
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parsePoint(s string) (image.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return image.Point{}, fmt.Errorf("-anchor %q: want x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return image.Point{}, fmt.Errorf("-anchor %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return image.Point{}, fmt.Errorf("-anchor %q: %w", s, err)
	}
	return image.Pt(x, y), nil
}
