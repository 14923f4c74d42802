package batch

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"climbing-skybox/internal/atlas"
	"climbing-skybox/internal/layout"
	"climbing-skybox/internal/texture"
)

// Config holds all shared resources for a batch run.
type Config struct {
	FaceIndex  *texture.Index
	Layout     layout.Layout
	OutputPath func(frame string) string
	Mode       atlas.Mode
	Workers    int
	// Progress is the interval between progress lines; zero disables them.
	Progress time.Duration
}

// Result holds the outcome of composing one frame.
type Result struct {
	Frame   string
	Output  string
	Faces   int
	Success bool
	Error   string
}

// Run composes one atlas per frame using a worker pool. Every frame writes
// its own output file, so frames never share a destination.
func Run(cfg Config, frames []string) []Result {
	total := len(frames)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	if cfg.Progress > 0 {
		go func() {
			ticker := time.NewTicker(cfg.Progress)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					p := processed.Load()
					if p > 0 {
						elapsed := time.Since(start).Seconds()
						rate := float64(p) / elapsed
						fmt.Printf("  [%d/%d] %.1f frames/sec\n", p, total, rate)
					}
				}
			}
		}()
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	// Worker pool
	frameChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range frameChan {
				results[idx] = processFrame(cfg, frames[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range frames {
		frameChan <- i
	}
	close(frameChan)

	wg.Wait()
	close(done)

	return results
}

func processFrame(cfg Config, frame string) Result {
	out := cfg.OutputPath(frame)

	var missing []layout.Face
	pathOf := func(f layout.Face) (string, bool) {
		p, ok := cfg.FaceIndex.ResolvePath(texture.FaceStem(string(f), frame))
		if !ok {
			missing = append(missing, f)
		}
		return p, ok
	}
	job := atlas.NewJob(cfg.Layout, pathOf, out, cfg.Mode)

	if len(missing) > 0 {
		return Result{
			Frame:  frame,
			Output: out,
			Error:  fmt.Sprintf("missing faces %v", missing),
		}
	}

	if len(job.Layer)+len(job.Individual) == 0 {
		return Result{
			Frame:  frame,
			Output: out,
			Error:  "layout places no faces",
		}
	}

	if err := atlas.Compose(job); err != nil {
		return Result{
			Frame:  frame,
			Output: out,
			Error:  err.Error(),
		}
	}

	return Result{
		Frame:   frame,
		Output:  out,
		Faces:   len(job.Layer) + len(job.Individual),
		Success: true,
	}
}
