package assets

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding png: %v", err)
	}
	return buf.Bytes()
}

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mask.png")
	if err := os.WriteFile(path, encodePNG(t, w, h), 0644); err != nil {
		t.Fatalf("writing png: %v", err)
	}
	return path
}

func TestLoaderReady(t *testing.T) {
	l := Load(writePNG(t, 40, 30))

	if state := l.Wait(); state != StateReady {
		t.Fatalf("expected ready, got %v (err %v)", state, l.Err())
	}
	if b := l.Image().Bounds(); b.Dx() != 40 || b.Dy() != 30 {
		t.Errorf("expected 40x30 image, got %v", b)
	}
	if l.Err() != nil {
		t.Errorf("expected no error, got %v", l.Err())
	}
	// The final state sticks
	if l.Poll() != StateReady {
		t.Error("expected poll to keep reporting ready")
	}
}

func TestLoaderMissingFile(t *testing.T) {
	l := Load(filepath.Join(t.TempDir(), "missing.png"))

	if state := l.Wait(); state != StateFailed {
		t.Fatalf("expected failed, got %v", state)
	}
	if !errors.Is(l.Err(), fs.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", l.Err())
	}
	if l.Image() != nil {
		t.Error("expected no image")
	}
}

func TestLoaderRejectsGarbage(t *testing.T) {
	fsys := fstest.MapFS{"mask.png": {Data: []byte("not a png")}}

	l := LoadFS(fsys, "mask.png")
	if state := l.Wait(); state != StateFailed {
		t.Fatalf("expected failed, got %v", state)
	}
}

func TestLoaderPollEventuallyReady(t *testing.T) {
	fsys := fstest.MapFS{"mask.png": {Data: encodePNG(t, 8, 8)}}

	l := LoadFS(fsys, "mask.png")
	state := l.Poll()
	if state != StateStarted && state != StateReady {
		t.Fatalf("unexpected first poll state %v", state)
	}
	if l.Wait() != StateReady {
		t.Fatalf("expected ready, got %v", l.Err())
	}
}

// Registers a "zero" format that decodes any input starting with "ZERO" into an empty image.
func init() {
	image.RegisterFormat("zero", "ZERO",
		func(io.Reader) (image.Image, error) { return image.NewNRGBA(image.Rect(0, 0, 0, 5)), nil },
		func(io.Reader) (image.Config, error) { return image.Config{}, nil },
	)
}

func TestDecodeRejectsZeroSize(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("ZERO")))
	if !errors.Is(err, ErrEmptyImage) {
		t.Errorf("expected ErrEmptyImage, got %v", err)
	}
}

func TestSize(t *testing.T) {
	w, h, err := Size(writePNG(t, 64, 48))
	if err != nil {
		t.Fatalf("reading size: %v", err)
	}
	if w != 64 || h != 48 {
		t.Errorf("expected 64x48, got %dx%d", w, h)
	}

	if _, _, err := Size(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateStarted, "started"},
		{StateReady, "ready"},
		{StateFailed, "failed"},
		{State(9), "state(9)"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}
