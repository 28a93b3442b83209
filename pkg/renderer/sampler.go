package renderer

import (
	"fmt"
	"math"
	"math/rand"
)

// Offset is a sub-pixel sample position in [0,1)²
type Offset struct {
	U, V float64
}

// StratifiedSampler draws jittered sub-pixel offsets for anti-aliasing.
// The unit pixel square is divided into a rank×rank grid and one uniform
// random offset is drawn inside each cell, so samples are spread across
// the pixel without the aliasing patterns of a regular grid.
type StratifiedSampler struct {
	count int
	rank  int
}

// NewStratifiedSampler creates a sampler for count samples per pixel.
// count must be a perfect square, or the stratification grid is inexact.
func NewStratifiedSampler(count int) (*StratifiedSampler, error) {
	if count <= 0 {
		return nil, fmt.Errorf("sample count must be positive, got %d", count)
	}
	rank := int(math.Sqrt(float64(count)))
	if rank*rank != count {
		return nil, fmt.Errorf("sample count %d is not a perfect square", count)
	}
	return &StratifiedSampler{count: count, rank: rank}, nil
}

// Count returns the number of samples per pixel
func (s *StratifiedSampler) Count() int {
	return s.count
}

// Offsets appends count jittered offsets to dst, one per grid cell,
// and returns the extended slice.
func (s *StratifiedSampler) Offsets(dst []Offset, random *rand.Rand) []Offset {
	cellSize := 1.0 / float64(s.rank)
	for i := 0; i < s.count; i++ {
		cellU := float64(i % s.rank)
		cellV := float64(i / s.rank)
		dst = append(dst, Offset{
			U: (cellU + random.Float64()) * cellSize,
			V: (cellV + random.Float64()) * cellSize,
		})
	}
	return dst
}
