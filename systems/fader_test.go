package systems

import (
	"math"
	"testing"
	"time"

	"github.com/pthm-cable/mine/components"
)

const tick = 50 * time.Millisecond

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestFaderIdle(t *testing.T) {
	f := NewFader(200*time.Millisecond, 0, 200*time.Millisecond)

	if _, switched := f.Update(tick); switched {
		t.Error("expected no switch while idle")
	}
	if f.Alpha() != 0 || f.Busy() {
		t.Errorf("expected clear idle fader, got alpha %v phase %v", f.Alpha(), f.Phase())
	}
}

func TestFaderFullTransition(t *testing.T) {
	f := NewFader(200*time.Millisecond, 0, 200*time.Millisecond)
	if !f.Request(components.SceneMap) {
		t.Fatal("expected request to start")
	}

	// Fade out: 50ms, 100ms, 150ms
	wantOut := []float32{
		float32(math.Sin(0.25 * math.Pi / 2)),
		float32(math.Sin(0.50 * math.Pi / 2)),
		float32(math.Sin(0.75 * math.Pi / 2)),
	}
	for i, want := range wantOut {
		if _, switched := f.Update(tick); switched {
			t.Fatalf("tick %d: switched too early", i)
		}
		if !near(f.Alpha(), want) {
			t.Errorf("tick %d: expected alpha %v, got %v", i, want, f.Alpha())
		}
		if f.Phase() != FadeOut {
			t.Errorf("tick %d: expected fade_out, got %v", i, f.Phase())
		}
	}

	scene, switched := f.Update(tick)
	if !switched || scene != components.SceneMap {
		t.Fatalf("expected switch to map at 200ms, got %v %v", scene, switched)
	}
	if f.Alpha() != 1 || f.Phase() != FadeIn {
		t.Errorf("expected dark overlay entering fade_in, got alpha %v phase %v", f.Alpha(), f.Phase())
	}

	// Fade in: 50ms, 100ms, 150ms
	wantIn := []float32{
		float32(math.Cos(0.25 * math.Pi / 2)),
		float32(math.Cos(0.50 * math.Pi / 2)),
		float32(math.Cos(0.75 * math.Pi / 2)),
	}
	for i, want := range wantIn {
		if _, switched := f.Update(tick); switched {
			t.Fatalf("fade in tick %d: unexpected second switch", i)
		}
		if !near(f.Alpha(), want) {
			t.Errorf("fade in tick %d: expected alpha %v, got %v", i, want, f.Alpha())
		}
	}

	f.Update(tick)
	if f.Busy() || f.Alpha() != 0 {
		t.Errorf("expected idle clear fader, got alpha %v phase %v", f.Alpha(), f.Phase())
	}
}

func TestFaderDropsRequestsWhileBusy(t *testing.T) {
	f := NewFader(200*time.Millisecond, 0, 200*time.Millisecond)
	f.Request(components.SceneMap)
	f.Update(tick)

	if f.Request(components.SceneTavern) {
		t.Error("expected second request to be dropped")
	}
	if f.Target() != components.SceneMap {
		t.Errorf("expected target to stay map, got %v", f.Target())
	}
}

func TestFaderHold(t *testing.T) {
	f := NewFader(0, 100*time.Millisecond, 0)
	f.Request(components.SceneTavern)

	if _, switched := f.Update(tick); !switched {
		t.Fatal("expected zero-length fade out to switch on first update")
	}
	if f.Phase() != FadeBlack {
		t.Fatalf("expected black hold, got %v", f.Phase())
	}

	f.Update(tick)
	if f.Phase() != FadeBlack || f.Alpha() != 1 {
		t.Errorf("expected still holding dark, got %v alpha %v", f.Phase(), f.Alpha())
	}

	f.Update(tick)
	if f.Phase() != FadeIn {
		t.Errorf("expected fade_in after hold, got %v", f.Phase())
	}

	f.Update(tick)
	if f.Busy() || f.Alpha() != 0 {
		t.Errorf("expected zero-length fade in to finish, got %v alpha %v", f.Phase(), f.Alpha())
	}
}

func TestFaderCanRestartAfterFinish(t *testing.T) {
	f := NewFader(0, 0, 0)
	f.Request(components.SceneMap)
	f.Update(tick)
	f.Update(tick)

	if !f.Request(components.SceneTavern) {
		t.Error("expected new request once idle")
	}
}
