package audio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/wav"

	"snakeify/media"
)

// Options configures an Engine
type Options struct {
	Volume float64       // Master volume, 0.0-1.0
	Fade   time.Duration // Fade-in/fade-out length of every voice
	Logger *slog.Logger
}

// Engine mixes track handles into a single stream. An output device pulls
// from it through Stream; without a device the engine stays usable but Play
// reports ErrNoDevice.
type Engine struct {
	ctx     context.Context
	cancel  context.CancelFunc
	fetcher media.Fetcher
	fade    int
	logger  *slog.Logger

	mu     sync.Mutex // Protects mixer, master and every voice
	mixer  *beep.Mixer
	master *effects.Volume

	live atomic.Bool
}

// NewEngine creates an engine whose handles fetch their sources through fetcher
func NewEngine(fetcher media.Fetcher, opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	mixer := &beep.Mixer{}
	// Keeps the mixer streaming between tracks so the device never drops it
	mixer.Add(beep.Silence(-1))

	e := &Engine{
		ctx:     ctx,
		cancel:  cancel,
		fetcher: fetcher,
		fade:    SampleRate.N(opts.Fade),
		logger:  opts.Logger,
		mixer:   mixer,
		master:  &effects.Volume{Streamer: mixer, Base: 2},
	}
	e.SetVolume(opts.Volume)
	return e
}

// Stream implements beep.Streamer for the output device
func (e *Engine) Stream(samples [][2]float64) (int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.master.Stream(samples)
}

// Err implements beep.Streamer
func (e *Engine) Err() error {
	return nil
}

// SetLive marks whether an output device is pulling from the engine
func (e *Engine) SetLive(live bool) {
	e.live.Store(live)
}

// Live reports whether an output device is attached
func (e *Engine) Live() bool {
	return e.live.Load()
}

// SetVolume updates master volume (0.0-1.0)
func (e *Engine) SetVolume(vol float64) {
	if vol < 0 {
		vol = 0
	} else if vol > 1 {
		vol = 1
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.master.Silent = vol == 0
	if vol > 0 {
		e.master.Volume = math.Log2(vol)
	}
}

// Load creates a handle for url and starts fetching it in the background
func (e *Engine) Load(url string) Handle {
	if url == "" {
		return Silent()
	}
	h := &trackHandle{engine: e, url: url}
	go h.load()
	return h
}

// Voices returns the number of voices currently in the mixer
func (e *Engine) Voices() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mixer.Len() - 1
}

// Close cancels pending loads and silences every voice
func (e *Engine) Close() {
	e.cancel()
	e.SetLive(false)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.mixer.Clear()
}

func (e *Engine) attach(v *voice) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mixer.Add(v)
}

func (e *Engine) locked(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn()
}

// decode sniffs the container and returns a seekable stream
func decode(data []byte) (beep.StreamSeekCloser, beep.Format, error) {
	if len(data) >= 12 && string(data[:4]) == "RIFF" && string(data[8:12]) == "WAVE" {
		return wav.Decode(bytes.NewReader(data))
	}
	if len(data) < 3 {
		return nil, beep.Format{}, ErrUnsupportedFormat
	}
	s, format, err := mp3.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	return s, format, nil
}
