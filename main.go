package main

import (
	"flag"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/image/bmp"

	"github.com/df07/go-scanline-raytracer/pkg/core"
	"github.com/df07/go-scanline-raytracer/pkg/loaders"
	"github.com/df07/go-scanline-raytracer/pkg/material"
	"github.com/df07/go-scanline-raytracer/pkg/renderer"
	"github.com/df07/go-scanline-raytracer/pkg/scene"
)

// zerologPrinter adapts the global zerolog logger to core.Logger
type zerologPrinter struct{}

func (zerologPrinter) Printf(format string, args ...interface{}) {
	log.Info().Msgf(format, args...)
}

func main() {
	width := flag.Int("width", 1000, "Output image width in pixels")
	height := flag.Int("height", 1000, "Output image height in pixels")
	samples := flag.Int("samples", 4, "Anti-aliasing samples per pixel (perfect square)")
	depth := flag.Int("depth", 10, "Maximum reflection recursion depth")
	workers := flag.Int("workers", 0, "Worker goroutines (0 = CPU count)")
	seed := flag.Int64("seed", 1, "Base seed for the sampling random streams")
	useNormals := flag.Bool("normals", false, "Render surface normals instead of shading")
	useDistances := flag.Bool("distances", false, "Render hit distances instead of shading")
	useTestScene := flag.Bool("test-scene", false, "Render the built-in test scene, ignoring SCENE")
	flag.Usage = usage
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if flag.NArg() < 2 && !(*useTestScene && flag.NArg() == 1) {
		usage()
		os.Exit(1)
	}

	aspectRatio := float64(*width) / float64(*height)

	var sceneObj *scene.Scene
	var err error
	var output string
	if *useTestScene {
		sceneObj = scene.NewTestScene(aspectRatio)
		output = flag.Arg(0)
	} else {
		sceneObj, err = loadScene(flag.Arg(0), aspectRatio)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load scene")
		}
		output = flag.Arg(1)
	}

	strategy := renderer.StrategyShaded
	if *useNormals {
		strategy = renderer.StrategyNormals
	}
	if *useDistances {
		strategy = renderer.StrategyDistances
	}

	config := renderer.DefaultConfig()
	config.SamplesPerPixel = *samples
	config.MaxDepth = *depth
	config.Workers = *workers
	config.Seed = *seed

	raytracer, err := renderer.NewRaytracer(sceneObj, *width, *height, strategy, config)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	img := image.NewRGBA(image.Rect(0, 0, *width, *height))
	draw.Draw(img, img.Bounds(), image.Black, image.Point{}, draw.Src)

	stats := raytracer.Render(img, zerologPrinter{})
	log.Info().
		Int("pixels", stats.TotalPixels).
		Int("samples", stats.TotalSamples).
		Int("workers", stats.Workers).
		Dur("elapsed", stats.Elapsed).
		Msg("render done")

	if err := writeImage(output, img); err != nil {
		log.Fatal().Err(err).Msg("failed to write image")
	}
	log.Info().Str("file", output).Msg("image written")
}

// loadScene builds a scene from a YAML description or a bare OBJ mesh.
// A bare mesh gets the reference camera, light and material around it.
func loadScene(path string, aspectRatio float64) (*scene.Scene, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return loaders.LoadScene(path, aspectRatio)
	case ".obj":
		return loadOBJScene(path, aspectRatio)
	default:
		return nil, fmt.Errorf("unsupported scene format %q (want .yaml, .yml or .obj)", filepath.Ext(path))
	}
}

// loadOBJScene wraps a bare OBJ mesh in the reference viewing setup
func loadOBJScene(path string, aspectRatio float64) (*scene.Scene, error) {
	camWidth := 7.0
	s := &scene.Scene{
		Camera: core.NewCamera(core.CameraConfig{
			Center:     core.NewVec3(-0.5, 2, 2),
			Forward:    core.NewVec3(0.5, -1, -2),
			Up:         core.NewVec3(0, 1, 0),
			Width:      camWidth,
			Height:     camWidth / aspectRatio,
			FOVDegrees: 40,
		}),
		Light: core.NewLight(
			core.NewVec3(-1, -1, -1),
			core.NewColorRGB(255, 255, 255),
			5,
		),
	}

	grey := material.NewPhong(core.NewColorRGB(160, 160, 160))
	triangles, err := loaders.LoadOBJ(path, grey)
	if err != nil {
		return nil, err
	}
	s.Add(triangles...)

	return s, nil
}

// writeImage encodes the image as BMP or PNG based on the file extension
func writeImage(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp":
		err = bmp.Encode(file, img)
	case ".png":
		err = png.Encode(file, img)
	default:
		return fmt.Errorf("unsupported output format %q (want .bmp or .png)", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [options] SCENE.{yaml,obj} OUTPUT.{bmp,png}\n\nOptions:\n", filepath.Base(os.Args[0]))
	flag.PrintDefaults()
}
