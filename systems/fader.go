package systems

import (
	"math"
	"time"

	"github.com/pthm-cable/mine/components"
)

// FadePhase is the state of a scene transition.
type FadePhase uint8

const (
	FadeIdle  FadePhase = iota // No transition; overlay is clear
	FadeOut                    // Overlay darkening toward the switch
	FadeBlack                  // Overlay fully dark, holding
	FadeIn                     // Overlay clearing after the switch
)

// String returns the phase name.
func (p FadePhase) String() string {
	switch p {
	case FadeIdle:
		return "idle"
	case FadeOut:
		return "fade_out"
	case FadeBlack:
		return "black"
	case FadeIn:
		return "fade_in"
	}
	return "unknown"
}

// Fader drives the black overlay used when switching scenes.
//
// A requested transition darkens the overlay with alpha sin(p·π/2), switches the scene
// once it is fully dark, optionally holds, then clears it with alpha cos(p·π/2). Requests
// made while a transition is running are dropped.
type Fader struct {
	fadeOut time.Duration
	hold    time.Duration
	fadeIn  time.Duration

	phase   FadePhase
	elapsed time.Duration
	target  components.Scene
	alpha   float32
}

// NewFader creates an idle fader with the given phase durations.
func NewFader(fadeOut, hold, fadeIn time.Duration) *Fader {
	return &Fader{fadeOut: fadeOut, hold: hold, fadeIn: fadeIn}
}

// Request starts a transition to scene to. Returns false if one is already running.
func (f *Fader) Request(to components.Scene) bool {
	if f.phase != FadeIdle {
		return false
	}
	f.target = to
	f.enter(FadeOut)
	return true
}

// Update advances the transition by dt. It returns the target scene and true exactly
// once per transition, on the update where the overlay becomes fully dark.
func (f *Fader) Update(dt time.Duration) (components.Scene, bool) {
	switch f.phase {
	case FadeOut:
		f.elapsed += dt
		if f.elapsed >= f.fadeOut {
			f.alpha = 1
			if f.hold > 0 {
				f.enter(FadeBlack)
			} else {
				f.enter(FadeIn)
			}
			return f.target, true
		}
		f.alpha = float32(math.Sin(progress(f.elapsed, f.fadeOut) * math.Pi / 2))

	case FadeBlack:
		f.elapsed += dt
		if f.elapsed >= f.hold {
			f.enter(FadeIn)
		}
		f.alpha = 1

	case FadeIn:
		f.elapsed += dt
		if f.elapsed >= f.fadeIn {
			f.alpha = 0
			f.enter(FadeIdle)
			return f.target, false
		}
		f.alpha = float32(math.Cos(progress(f.elapsed, f.fadeIn) * math.Pi / 2))
	}
	return f.target, false
}

// Alpha returns the overlay opacity in [0, 1].
func (f *Fader) Alpha() float32 {
	return f.alpha
}

// Phase returns the current phase.
func (f *Fader) Phase() FadePhase {
	return f.phase
}

// Busy reports whether a transition is running.
func (f *Fader) Busy() bool {
	return f.phase != FadeIdle
}

// Target returns the scene of the current or last transition.
func (f *Fader) Target() components.Scene {
	return f.target
}

func (f *Fader) enter(p FadePhase) {
	f.phase = p
	f.elapsed = 0
}

// progress returns elapsed/total clamped to [0, 1].
func progress(elapsed, total time.Duration) float64 {
	if total <= 0 {
		return 1
	}
	p := float64(elapsed) / float64(total)
	return math.Max(0, math.Min(1, p))
}
