package systems

import (
	"math/rand"
	"testing"
)

func TestDustEmitHit(t *testing.T) {
	tests := []struct {
		name     string
		ore      float32
		min, max int
	}{
		{"grit only", 0, 8, 14},
		{"grit and sparks", 1, 11, 19},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewDustSystem(500, rand.New(rand.NewSource(1)))
			s.EmitHit(10, 20, tt.ore)

			if n := s.Count(); n < tt.min || n > tt.max {
				t.Errorf("expected %d-%d particles, got %d", tt.min, tt.max, n)
			}

			sparks := 0
			for _, p := range s.Particles {
				if p.Type == DustOre {
					sparks++
				}
			}
			if tt.ore == 0 && sparks != 0 {
				t.Errorf("expected no sparks without ore, got %d", sparks)
			}
			if tt.ore > 0 && sparks == 0 {
				t.Error("expected sparks when ore was mined")
			}
		})
	}
}

func TestDustRespectsCapacity(t *testing.T) {
	s := NewDustSystem(10, rand.New(rand.NewSource(1)))
	for i := 0; i < 5; i++ {
		s.EmitHit(0, 0, 1)
	}
	if s.Count() != 10 {
		t.Errorf("expected count capped at 10, got %d", s.Count())
	}
}

func TestDustExpires(t *testing.T) {
	s := NewDustSystem(500, rand.New(rand.NewSource(1)))
	s.EmitHit(0, 0, 1)

	// Longest life is 1s
	for i := 0; i < 70; i++ {
		s.Update(1.0 / 60)
	}
	if s.Count() != 0 {
		t.Errorf("expected all particles to expire, got %d", s.Count())
	}
}

func TestDustMotion(t *testing.T) {
	s := NewDustSystem(500, rand.New(rand.NewSource(1)))
	s.Particles = append(s.Particles,
		DustParticle{Life: 1, MaxLife: 1, Type: DustRock},
		DustParticle{Life: 1, MaxLife: 1, Type: DustOre},
	)

	for i := 0; i < 10; i++ {
		s.Update(1.0 / 60)
	}

	if s.Particles[0].Y >= 0 {
		t.Errorf("expected rock grit to fall, got y=%v", s.Particles[0].Y)
	}
	if s.Particles[1].Y <= 0 {
		t.Errorf("expected ore sparks to rise, got y=%v", s.Particles[1].Y)
	}
	if r := s.Particles[0].LifeRatio(); r <= 0 || r >= 1 {
		t.Errorf("expected life ratio in (0, 1), got %v", r)
	}
}
