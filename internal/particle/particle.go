// Package particle animates the decorative background: a set of drifting
// points pushed away by the pointer and joined by faint lines when close.
package particle

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/iburimskiy/neuroforge/internal/config"
)

// Particle is a single animated point. Radius and Color never change after
// creation; velocity components only flip sign.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Radius float64
	Color  color.NRGBA
}

// Pointer is the last known cursor position and the distance within which
// particles are repelled.
type Pointer struct {
	X, Y   float64
	Radius float64
}

// Count returns how many particles a viewport of the given width gets.
func Count(width int) int {
	if width <= 0 {
		return 0
	}
	return min(config.MaxParticles, width/config.ParticleSpacing)
}

// LineAlpha is the opacity of a connection line between two particles d
// apart, or 0 when they are out of range.
func LineAlpha(d float64) float64 {
	if d >= config.ConnectionRange {
		return 0
	}
	return config.ConnectionOpacity * (1 - d/config.ConnectionRange)
}

func cyan(alpha float64) color.NRGBA {
	return color.NRGBA{R: 0, G: 255, B: 255, A: uint8(math.Round(alpha * 255))}
}

func newParticle(rng *rand.Rand, width, height float64) Particle {
	return Particle{
		X:      rng.Float64() * width,
		Y:      rng.Float64() * height,
		Radius: rng.Float64()*2 + 1,
		VX:     (rng.Float64() - 0.5) * 0.5,
		VY:     (rng.Float64() - 0.5) * 0.5,
		Color:  cyan(rng.Float64()*0.3 + 0.1),
	}
}
