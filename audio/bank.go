// Package audio plays punch samples and the ambient track through a single beep mixer.
package audio

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"
)

// Bank holds decoded samples and the mixer they play through.
// Samples can be loaded and played before Init; they are only audible once the speaker runs.
type Bank struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	samples     []*beep.Buffer
	ambient     *beep.Buffer
	ambientCtrl *beep.Ctrl
	mixer       *beep.Mixer
	master      *effects.Volume

	sampleGain  float64
	ambientGain float64
	initialized bool
}

// NewBank creates an empty bank mixing at the given sample rate.
func NewBank(sampleRate int, sampleGain, ambientGain float64) *Bank {
	mixer := &beep.Mixer{}
	return &Bank{
		rate:        beep.SampleRate(sampleRate),
		mixer:       mixer,
		master:      &effects.Volume{Streamer: mixer, Base: 2},
		sampleGain:  sampleGain,
		ambientGain: ambientGain,
	}
}

// Init starts the speaker and attaches the mixer to it.
func (b *Bank) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}
	if err := speaker.Init(b.rate, b.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("initializing speaker: %w", err)
	}
	speaker.Play(b.master)
	b.initialized = true
	return nil
}

// Close stops every playing sound.
func (b *Bank) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}
	speaker.Clear()
	b.initialized = false
}

// LoadSamples decodes each file into memory. Files that cannot be read are skipped with a warning.
// Returns the number of samples loaded.
func (b *Bank) LoadSamples(paths []string) int {
	loaded := 0
	for _, path := range paths {
		buf, err := b.decode(path)
		if err != nil {
			slog.Warn("skipping sample", "path", path, "error", err)
			continue
		}
		b.AddSample(buf)
		loaded++
	}
	return loaded
}

// LoadAmbient decodes the ambient track. An unreadable file leaves the bank without ambience.
func (b *Bank) LoadAmbient(path string) error {
	buf, err := b.decode(path)
	if err != nil {
		return err
	}
	b.mu.Lock()
	b.ambient = buf
	b.mu.Unlock()
	return nil
}

// AddSample adds an already decoded sample.
func (b *Bank) AddSample(buf *beep.Buffer) {
	b.mu.Lock()
	b.samples = append(b.samples, buf)
	b.mu.Unlock()
}

// Len returns the number of loaded samples.
func (b *Bank) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.samples)
}

// PlayRandom plays one sample picked by rng and returns its index, or -1 if there are none.
func (b *Bank) PlayRandom(rng *rand.Rand) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.samples) == 0 {
		return -1
	}
	i := rng.Intn(len(b.samples))
	buf := b.samples[i]
	b.add(gain(buf.Streamer(0, buf.Len()), b.sampleGain))
	return i
}

// PlayAmbient starts looping the ambient track. Calling it while the track plays does nothing.
func (b *Bank) PlayAmbient() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ambient == nil {
		return false
	}
	if b.ambientCtrl != nil {
		b.lockSpeaker()
		b.ambientCtrl.Paused = false
		b.unlockSpeaker()
		return true
	}
	loop := beep.Loop(-1, b.ambient.Streamer(0, b.ambient.Len()))
	b.ambientCtrl = &beep.Ctrl{Streamer: gain(loop, b.ambientGain)}
	b.add(b.ambientCtrl)
	return true
}

// PauseAmbient pauses the ambient loop.
func (b *Bank) PauseAmbient() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ambientCtrl == nil {
		return
	}
	b.lockSpeaker()
	b.ambientCtrl.Paused = true
	b.unlockSpeaker()
}

// SetMasterVolume sets the linear output gain (0 mutes, 1 is unchanged).
func (b *Bank) SetMasterVolume(v float64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.lockSpeaker()
	applyGain(b.master, v)
	b.unlockSpeaker()
}

// Streamer returns the master output. The speaker pulls from it after Init.
func (b *Bank) Streamer() beep.Streamer {
	return b.master
}

func (b *Bank) add(s beep.Streamer) {
	b.lockSpeaker()
	b.mixer.Add(s)
	b.unlockSpeaker()
}

func (b *Bank) lockSpeaker() {
	if b.initialized {
		speaker.Lock()
	}
}

func (b *Bank) unlockSpeaker() {
	if b.initialized {
		speaker.Unlock()
	}
}

// decode reads an ogg or wav file, resampled to the bank's rate and buffered in memory.
func (b *Bank) decode(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ogg":
		stream, format, err = vorbis.Decode(f)
	case ".wav":
		stream, format, err = wav.Decode(f)
	default:
		f.Close()
		return nil, fmt.Errorf("unsupported audio format %q", filepath.Ext(path))
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	defer stream.Close()

	var src beep.Streamer = stream
	if format.SampleRate != b.rate {
		src = beep.Resample(4, format.SampleRate, b.rate, stream)
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: b.rate, NumChannels: 2, Precision: 2})
	buf.Append(src)
	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return buf, nil
}

func gain(s beep.Streamer, v float64) beep.Streamer {
	vol := &effects.Volume{Streamer: s, Base: 2}
	applyGain(vol, v)
	return vol
}

// applyGain converts a linear gain to the volume's log2 scale.
func applyGain(vol *effects.Volume, v float64) {
	if v <= 0 {
		vol.Silent = true
		vol.Volume = 0
		return
	}
	vol.Silent = false
	vol.Volume = math.Log2(v)
}
