package renderer

import "time"

// RenderStats contains statistics about a completed render
type RenderStats struct {
	TotalPixels  int           // Number of pixels rendered
	TotalSamples int           // Number of camera rays traced
	Workers      int           // Worker goroutines used
	Elapsed      time.Duration // Wall-clock render time
}
