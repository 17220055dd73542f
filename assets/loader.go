// Package assets decodes raster assets off the main thread.
//
// A Loader starts decoding as soon as it is created and is polled once per frame. It moves
// from StateStarted to exactly one of StateReady or StateFailed and never changes again.
package assets

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"os"
)

// ErrEmptyImage is returned for images with zero width or height.
var ErrEmptyImage = errors.New("image has zero size")

// State is the loading state of an asset.
type State uint8

const (
	StateStarted State = iota
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateStarted:
		return "started"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", s)
}

type result struct {
	img image.Image
	err error
}

// Loader decodes one image in the background.
type Loader struct {
	path  string
	state State
	done  chan result
	img   image.Image
	err   error
}

// Load starts decoding the image at path from the local filesystem.
func Load(path string) *Loader {
	return start(path, func() (io.ReadCloser, error) { return os.Open(path) })
}

// LoadFS starts decoding the image at path from fsys.
func LoadFS(fsys fs.FS, path string) *Loader {
	return start(path, func() (io.ReadCloser, error) { return fsys.Open(path) })
}

func start(path string, open func() (io.ReadCloser, error)) *Loader {
	l := &Loader{
		path: path,
		done: make(chan result, 1),
	}
	go func() {
		img, err := decodeFile(open)
		l.done <- result{img: img, err: err}
	}()
	return l
}

func decodeFile(open func() (io.ReadCloser, error)) (image.Image, error) {
	f, err := open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads an image and rejects images with zero size.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, ErrEmptyImage
	}
	return img, nil
}

// DecodeFile opens and decodes the image at path synchronously.
func DecodeFile(path string) (image.Image, error) {
	img, err := decodeFile(func() (io.ReadCloser, error) { return os.Open(path) })
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return img, nil
}

// Size reads the pixel size of the image at path from its header.
func Size(path string) (w, h int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("reading image header of %s: %w", path, err)
	}
	return cfg.Width, cfg.Height, nil
}

// Poll returns the current state without blocking.
func (l *Loader) Poll() State {
	if l.state != StateStarted {
		return l.state
	}
	select {
	case r := <-l.done:
		l.finish(r)
	default:
	}
	return l.state
}

// Wait blocks until loading finishes and returns the final state.
func (l *Loader) Wait() State {
	if l.state == StateStarted {
		l.finish(<-l.done)
	}
	return l.state
}

func (l *Loader) finish(r result) {
	if r.err != nil {
		l.state = StateFailed
		l.err = fmt.Errorf("loading %s: %w", l.path, r.err)
		return
	}
	l.state = StateReady
	l.img = r.img
}

// Path returns the asset path.
func (l *Loader) Path() string {
	return l.path
}

// Image returns the decoded image once the loader is ready, nil otherwise.
func (l *Loader) Image() image.Image {
	return l.img
}

// Err returns the loading error once the loader has failed, nil otherwise.
func (l *Loader) Err() error {
	return l.err
}
