package renderer

import (
	"image"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/df07/go-scanline-raytracer/pkg/core"
)

// rowRange returns the half-open row range assigned to worker t of workers.
// The truncating integer division makes the union of all ranges exactly
// [0, height) with no overlap, for any height and worker count.
func rowRange(t, workers, height int) (start, end int) {
	return t * height / workers, (t + 1) * height / workers
}

// Render renders the full image, partitioning its rows across parallel
// workers. Each worker owns a disjoint row range and its own random
// stream, so pixel writes need no locking. Render returns once every
// worker has finished and the image is fully populated.
func (rt *Raytracer) Render(img *image.RGBA, logger core.Logger) RenderStats {
	workers := rt.config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	if logger != nil {
		logger.Printf("rendering %dx%d with strategy %s using %d workers",
			rt.width, rt.height, rt.strategy, workers)
	}

	start := time.Now()
	var wg sync.WaitGroup
	for t := 0; t < workers; t++ {
		y0, y1 := rowRange(t, workers, rt.height)

		wg.Add(1)
		go func(worker, y0, y1 int) {
			defer wg.Done()
			random := rand.New(rand.NewSource(rt.config.Seed + int64(worker)))
			rt.renderRows(img, y0, y1, random)
		}(t, y0, y1)
	}
	wg.Wait()

	stats := RenderStats{
		TotalPixels:  rt.width * rt.height,
		TotalSamples: rt.width * rt.height * rt.sampler.Count(),
		Workers:      workers,
		Elapsed:      time.Since(start),
	}

	if logger != nil {
		logger.Printf("render completed in %v (%d samples)", stats.Elapsed, stats.TotalSamples)
	}

	return stats
}

// renderRows renders rows [y0, y1) into the image
func (rt *Raytracer) renderRows(img *image.RGBA, y0, y1 int, random *rand.Rand) {
	offsets := make([]Offset, 0, rt.sampler.Count())
	for y := y0; y < y1; y++ {
		for x := 0; x < rt.width; x++ {
			pixelColor := rt.RenderPixel(x, y, random, offsets)
			img.SetRGBA(x, y, vec3ToColor(pixelColor))
		}
	}
}
