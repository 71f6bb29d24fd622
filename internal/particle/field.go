package particle

import (
	"math"
	"math/rand"

	"github.com/iburimskiy/neuroforge/internal/config"
)

// Field owns the particles and the pointer state. It is driven from a
// single goroutine (the game loop) and does no locking.
type Field struct {
	width, height float64
	particles     []Particle
	pointer       Pointer
	rng           *rand.Rand
}

// NewField returns an empty field. Call Initialize before stepping.
func NewField(rng *rand.Rand) *Field {
	return &Field{
		rng:     rng,
		pointer: Pointer{Radius: config.PointerRadius},
	}
}

// Initialize sizes the surface and populates Count(width) particles at
// random positions inside it. Calling it again replaces the population.
func (f *Field) Initialize(width, height int) {
	f.OnResize(width, height)

	n := Count(width)
	f.particles = make([]Particle, 0, n)
	for i := 0; i < n; i++ {
		f.particles = append(f.particles, newParticle(f.rng, f.width, f.height))
	}
}

// OnResize changes the surface size only. Particles outside the new bounds
// turn around on their own during the next steps.
func (f *Field) OnResize(width, height int) {
	f.width = float64(width)
	f.height = float64(height)
}

// OnPointerMove records the cursor for the next Step.
func (f *Field) OnPointerMove(x, y float64) {
	f.pointer.X = x
	f.pointer.Y = y
}

func (f *Field) Size() (width, height float64) { return f.width, f.height }

func (f *Field) Pointer() Pointer { return f.pointer }

// Particles returns a copy of the current particles.
func (f *Field) Particles() []Particle {
	out := make([]Particle, len(f.particles))
	copy(out, f.particles)
	return out
}

// Step advances every particle by one tick and draws the result onto c.
//
// Each particle is moved and drawn before the next one is processed, and its
// connection lines use the positions of the others as they are at that
// moment (already moved for earlier particles, not yet for later ones).
func (f *Field) Step(c Canvas) {
	c.Clear()

	ptr := f.pointer
	for i := range f.particles {
		p := &f.particles[i]

		dx := p.X - ptr.X
		dy := p.Y - ptr.Y
		if d := math.Hypot(dx, dy); d < ptr.Radius {
			force := (ptr.Radius - d) / ptr.Radius
			angle := math.Atan2(dy, dx)
			p.X += math.Cos(angle) * force * config.RepelStrength
			p.Y += math.Sin(angle) * force * config.RepelStrength
		}

		// Bounce on the pre-move position, only while heading further out.
		// A particle left outside by a resize or a push keeps its inward
		// velocity and drifts back without clamping.
		if (p.X < 0 && p.VX < 0) || (p.X > f.width && p.VX > 0) {
			p.VX = -p.VX
		}
		if (p.Y < 0 && p.VY < 0) || (p.Y > f.height && p.VY > 0) {
			p.VY = -p.VY
		}

		p.X += p.VX
		p.Y += p.VY

		c.FillCircle(p.X, p.Y, p.Radius, p.Color)

		for j := range f.particles {
			o := &f.particles[j]
			d := math.Hypot(p.X-o.X, p.Y-o.Y)
			if d < config.ConnectionRange {
				c.StrokeLine(p.X, p.Y, o.X, o.Y, config.ConnectionWidth, cyan(LineAlpha(d)))
			}
		}
	}
}
