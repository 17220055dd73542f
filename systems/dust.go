package systems

import (
	"math"
	"math/rand"
)

// DustType identifies the type of dust particle.
type DustType uint8

const (
	DustRock DustType = iota // Grit knocked off a rock
	DustOre                  // Sparks from a hit that yielded ore
)

// DustParticle is a short-lived visual particle in world space.
type DustParticle struct {
	X, Y       float32
	VelX, VelY float32 // world units per second
	Life       float32 // seconds left
	MaxLife    float32
	Type       DustType
	Size       float32
}

// LifeRatio returns the fraction of life left, in (0, 1].
func (p *DustParticle) LifeRatio() float32 {
	if p.MaxLife <= 0 {
		return 0
	}
	return p.Life / p.MaxLife
}

// Dust physics, in world units and seconds.
const (
	dustGravity = 400 // Rock grit falls
	dustLift    = 60  // Ore sparks drift up
	dustDrag    = 3   // Velocity decay rate per second
)

// DustSystem manages click feedback particles.
type DustSystem struct {
	Particles    []DustParticle
	maxParticles int
	rng          *rand.Rand
}

// NewDustSystem creates a dust system holding at most maxParticles particles.
func NewDustSystem(maxParticles int, rng *rand.Rand) *DustSystem {
	return &DustSystem{
		Particles:    make([]DustParticle, 0, maxParticles),
		maxParticles: maxParticles,
		rng:          rng,
	}
}

// Update ages, moves and culls particles.
func (s *DustSystem) Update(dt float32) {
	drag := float32(math.Exp(-dustDrag * float64(dt)))

	alive := 0
	for i := range s.Particles {
		p := &s.Particles[i]

		p.Life -= dt
		if p.Life <= 0 {
			continue
		}

		switch p.Type {
		case DustRock:
			p.VelY -= dustGravity * dt
		case DustOre:
			p.VelY += dustLift * dt
		}

		p.VelX *= drag
		p.VelY *= drag

		p.X += p.VelX * dt
		p.Y += p.VelY * dt

		s.Particles[alive] = *p
		alive++
	}
	s.Particles = s.Particles[:alive]
}

// EmitHit emits a radial burst of rock grit at (x, y), plus ore sparks if ore > 0.
func (s *DustSystem) EmitHit(x, y, ore float32) {
	count := 8 + s.rng.Intn(7) // 8-14 particles
	for i := 0; i < count; i++ {
		s.emit(x, y, DustRock)
	}
	if ore <= 0 {
		return
	}
	sparks := 3 + s.rng.Intn(3)
	for i := 0; i < sparks; i++ {
		s.emit(x, y, DustOre)
	}
}

func (s *DustSystem) emit(x, y float32, t DustType) {
	if len(s.Particles) >= s.maxParticles {
		return
	}

	angle := s.rng.Float64() * 2 * math.Pi
	var speed, life, size float32
	switch t {
	case DustOre:
		speed = 40 + s.rng.Float32()*60
		life = 0.6 + s.rng.Float32()*0.4
		size = 2 + s.rng.Float32()
	default:
		speed = 120 + s.rng.Float32()*160
		life = 0.4 + s.rng.Float32()*0.4
		size = 2 + s.rng.Float32()*2
	}

	s.Particles = append(s.Particles, DustParticle{
		X:       x + (s.rng.Float32()-0.5)*6,
		Y:       y + (s.rng.Float32()-0.5)*6,
		VelX:    float32(math.Cos(angle)) * speed,
		VelY:    float32(math.Sin(angle)) * speed,
		Life:    life,
		MaxLife: life,
		Type:    t,
		Size:    size,
	})
}

// Count returns the current number of active particles.
func (s *DustSystem) Count() int {
	return len(s.Particles)
}

// Clear removes all particles.
func (s *DustSystem) Clear() {
	s.Particles = s.Particles[:0]
}
