// Package components defines ECS components for the game.
package components

// Bouncer is a one-dimensional hop: a hit kicks it upward and gravity pulls it back to
// rest at zero. Renderers turn Offset into a scale pulse.
type Bouncer struct {
	Speed  float32
	Offset float32
}

// Bounce kicks the bouncer upward. The kick replaces any speed it had.
func (b *Bouncer) Bounce(kick float32) {
	b.Speed = kick
}

// Update advances the bouncer by dt seconds.
// Speed is capped at maxSpeed; landing at or below zero brings it to rest.
func (b *Bouncer) Update(dt, gravity, maxSpeed float32) {
	b.Speed -= gravity * dt
	if b.Speed > maxSpeed {
		b.Speed = maxSpeed
	}

	b.Offset += b.Speed * dt

	if b.Offset < 0 {
		b.Offset = 0
		b.Speed = 0
	}
}

// Resting reports whether the bouncer is on the ground and not moving.
func (b *Bouncer) Resting() bool {
	return b.Offset == 0 && b.Speed == 0
}

// Rock is a clickable rock layer with an ore reserve.
type Rock struct {
	Layer      int
	BaseScale  float32
	Reserve    float32 // Ore left to mine
	MaxReserve float32
	Hits       int // Successful clicks, including on a depleted rock
}

// Mine takes up to damage ore out of the reserve and returns the amount taken.
func (r *Rock) Mine(damage float32) float32 {
	r.Hits++
	if damage <= 0 || r.Reserve <= 0 {
		return 0
	}
	taken := damage
	if taken > r.Reserve {
		taken = r.Reserve
	}
	r.Reserve -= taken
	return taken
}

// Regen refills the reserve by rate*dt, up to MaxReserve.
func (r *Rock) Regen(rate, dt float32) {
	r.Reserve += rate * dt
	if r.Reserve > r.MaxReserve {
		r.Reserve = r.MaxReserve
	}
}

// Depleted reports whether the rock has no ore left.
func (r *Rock) Depleted() bool {
	return r.Reserve <= 0
}

// Coin tags the spinning 3D coin.
type Coin struct{}
