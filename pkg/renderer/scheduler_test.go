package renderer

import (
	"image"
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-scanline-raytracer/pkg/core"
	"github.com/df07/go-scanline-raytracer/pkg/geometry"
	"github.com/df07/go-scanline-raytracer/pkg/material"
)

func TestRowRange_PartitionIsExact(t *testing.T) {
	// The union of all worker ranges must be exactly [0, height) with no
	// gaps or overlaps, for any height/worker combination, including more
	// workers than rows
	for height := 0; height <= 40; height++ {
		for workers := 1; workers <= 12; workers++ {
			covered := 0
			prevEnd := 0
			for w := 0; w < workers; w++ {
				start, end := rowRange(w, workers, height)
				if start != prevEnd {
					t.Fatalf("H=%d T=%d worker %d: range starts at %d, previous ended at %d",
						height, workers, w, start, prevEnd)
				}
				if end < start {
					t.Fatalf("H=%d T=%d worker %d: inverted range [%d,%d)", height, workers, w, start, end)
				}
				covered += end - start
				prevEnd = end
			}
			if prevEnd != height || covered != height {
				t.Fatalf("H=%d T=%d: covered %d rows ending at %d", height, workers, covered, prevEnd)
			}
		}
	}
}

func TestRowRange_BalancedWithinOneRow(t *testing.T) {
	for _, tc := range [][2]int{{100, 7}, {1000, 16}, {33, 5}} {
		height, workers := tc[0], tc[1]
		minRows, maxRows := height, 0
		for w := 0; w < workers; w++ {
			start, end := rowRange(w, workers, height)
			minRows = min(minRows, end-start)
			maxRows = max(maxRows, end-start)
		}
		if maxRows-minRows > 1 {
			t.Errorf("H=%d T=%d: block sizes differ by %d rows", height, workers, maxRows-minRows)
		}
	}
}

func TestRender_WritesEveryPixel(t *testing.T) {
	scene := newMockScene(geometry.NewSphere(core.NewVec3(0, 0, 10), 3, &flatMaterial{color: core.NewVec3(1, 1, 1)}))

	config := DefaultConfig()
	config.Workers = 3
	rt, err := NewRaytracer(scene, 31, 23, StrategyShaded, config)
	if err != nil {
		t.Fatalf("NewRaytracer failed: %v", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, 31, 23))
	stats := rt.Render(img, nil)

	if stats.TotalPixels != 31*23 {
		t.Errorf("Expected %d pixels, got %d", 31*23, stats.TotalPixels)
	}
	if stats.TotalSamples != 31*23*config.SamplesPerPixel {
		t.Errorf("Expected %d samples, got %d", 31*23*config.SamplesPerPixel, stats.TotalSamples)
	}
	if stats.Workers != 3 {
		t.Errorf("Expected 3 workers, got %d", stats.Workers)
	}

	// Every pixel was written exactly once: alpha is always set
	for y := 0; y < 23; y++ {
		for x := 0; x < 31; x++ {
			if img.RGBAAt(x, y).A != 255 {
				t.Fatalf("Pixel (%d,%d) was never written", x, y)
			}
		}
	}
}

func TestRender_DeterministicForFixedSeed(t *testing.T) {
	render := func(workers int) *image.RGBA {
		scene := newMockScene(geometry.NewSphere(core.NewVec3(0, 0, 10), 3, material.NewPhong(core.NewVec3(0.8, 0.2, 0.2))))
		config := DefaultConfig()
		config.Workers = workers
		config.Seed = 99
		rt, err := NewRaytracer(scene, 40, 40, StrategyShaded, config)
		if err != nil {
			t.Fatalf("NewRaytracer failed: %v", err)
		}
		img := image.NewRGBA(image.Rect(0, 0, 40, 40))
		rt.Render(img, nil)
		return img
	}

	first := render(4)
	second := render(4)

	for i := range first.Pix {
		if first.Pix[i] != second.Pix[i] {
			t.Fatal("Expected identical images for identical seeds")
		}
	}
}

func TestRender_SphereSilhouetteRadius(t *testing.T) {
	// One sphere of radius 4 at (0,10,0) seen from the origin along +Y
	// through a 10x10 camera plane, rendered at 100x100. The silhouette
	// radius in pixels must match the analytic projection.
	red := material.NewPhong(core.NewColorRGB(191, 32, 32))
	scene := newMockScene(geometry.NewSphere(core.NewVec3(0, 10, 0), 4, red))
	scene.camera = core.NewCamera(core.CameraConfig{
		Center:     core.NewVec3(0, 0, 0),
		Forward:    core.NewVec3(0, 1, 0),
		Up:         core.NewVec3(0, 0, 1),
		Width:      10,
		Height:     10,
		FOVDegrees: 80,
	})

	config := DefaultConfig()
	config.MaxDepth = 1
	rt, err := NewRaytracer(scene, 100, 100, StrategyShaded, config)
	if err != nil {
		t.Fatalf("NewRaytracer failed: %v", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	rt.Render(img, nil)

	// Analytic silhouette: the cone tangent to the sphere has half-angle
	// asin(r/d); on the image plane at the focal distance that is a circle
	// of radius focal*tan(asin(r/d)), scaled into pixels by width
	focal := core.FocalDistanceFromFOV(10, 80)
	planeRadius := focal * math.Tan(math.Asin(4.0/10.0))
	expectedPixels := planeRadius / 10.0 * 100.0

	// Measure the lit half-width along the center row
	firstLit, lastLit := -1, -1
	for x := 0; x < 100; x++ {
		if img.RGBAAt(x, 50).R > 0 {
			if firstLit < 0 {
				firstLit = x
			}
			lastLit = x
		}
	}
	if firstLit < 0 {
		t.Fatal("Expected a silhouette in the center row")
	}

	measured := float64(lastLit-firstLit+1) / 2.0
	if math.Abs(measured-expectedPixels) > 1.5 {
		t.Errorf("Expected silhouette radius %.2f px, measured %.2f px (lit %d..%d)",
			expectedPixels, measured, firstLit, lastLit)
	}

	// The silhouette must be centered
	center := float64(firstLit+lastLit) / 2.0
	if math.Abs(center-49.5) > 1.5 {
		t.Errorf("Expected silhouette centered near 49.5, got %.2f", center)
	}

	// Corners see no geometry
	if img.RGBAAt(0, 0).R != 0 || img.RGBAAt(99, 99).R != 0 {
		t.Error("Expected black background at the corners")
	}
}

func TestRender_AntiAliasingBlendsBoundary(t *testing.T) {
	// A flat white sphere on a black background: interior pixels are pure
	// white, exterior pure black, and some boundary pixel is a blend of
	// the two
	scene := newMockScene(geometry.NewSphere(core.NewVec3(0, 0, 10), 4, &flatMaterial{color: core.NewVec3(1, 1, 1)}))

	rt, err := NewRaytracer(scene, 60, 60, StrategyShaded, DefaultConfig())
	if err != nil {
		t.Fatalf("NewRaytracer failed: %v", err)
	}
	img := image.NewRGBA(image.Rect(0, 0, 60, 60))
	rt.Render(img, nil)

	interior := img.RGBAAt(30, 30).R
	if interior != 255 {
		t.Errorf("Expected pure white interior, got %d", interior)
	}
	if img.RGBAAt(1, 1).R != 0 {
		t.Errorf("Expected pure black exterior, got %d", img.RGBAAt(1, 1).R)
	}

	blended := false
	for y := 0; y < 60 && !blended; y++ {
		for x := 0; x < 60; x++ {
			r := img.RGBAAt(x, y).R
			if r > 0 && r < 255 {
				blended = true
				break
			}
		}
	}
	if !blended {
		t.Error("Expected at least one blended boundary pixel")
	}
}

func TestRenderPixel_MoreSamplesReduceBoundaryVariance(t *testing.T) {
	// Repeatedly sample one boundary pixel with independent random streams:
	// the sample variance of the pixel value must drop as the per-pixel
	// sample count grows
	buildRT := func(samples int) *Raytracer {
		scene := newMockScene(geometry.NewSphere(core.NewVec3(0, 0, 10), 4, &flatMaterial{color: core.NewVec3(1, 1, 1)}))
		config := DefaultConfig()
		config.SamplesPerPixel = samples
		rt, err := NewRaytracer(scene, 60, 60, StrategyShaded, config)
		if err != nil {
			t.Fatalf("NewRaytracer failed: %v", err)
		}
		return rt
	}

	// Locate a boundary pixel: one whose value is a strict blend
	probe := buildRT(4)
	boundaryX, boundaryY := -1, -1
	random := rand.New(rand.NewSource(1))
	for y := 0; y < 60 && boundaryX < 0; y++ {
		for x := 0; x < 60; x++ {
			v := probe.RenderPixel(x, y, random, nil).X
			if v > 0.2 && v < 0.8 {
				boundaryX, boundaryY = x, y
				break
			}
		}
	}
	if boundaryX < 0 {
		t.Fatal("No boundary pixel found")
	}

	variance := func(rt *Raytracer, trials int) float64 {
		var sum, sumSq float64
		for i := 0; i < trials; i++ {
			random := rand.New(rand.NewSource(int64(1000 + i)))
			v := rt.RenderPixel(boundaryX, boundaryY, random, nil).X
			sum += v
			sumSq += v * v
		}
		mean := sum / float64(trials)
		return sumSq/float64(trials) - mean*mean
	}

	const trials = 200
	coarse := variance(buildRT(4), trials)
	fine := variance(buildRT(36), trials)

	if fine >= coarse {
		t.Errorf("Expected variance to drop with more samples: 4 samples %g, 36 samples %g", coarse, fine)
	}
}
