package audio

import (
	"fmt"
	"sync"

	"github.com/gopxl/beep"
)

type handleState int

const (
	stateLoading handleState = iota
	stateReady
	stateFailed
	stateClosed
)

// trackHandle plays a fetched preview through the engine mixer
type trackHandle struct {
	engine *Engine
	url    string

	mu       sync.Mutex
	state    handleState
	err      error
	data     []byte
	loop     bool
	wantPlay bool
	voice    *voice
}

func (h *trackHandle) load() {
	data, err := h.engine.fetcher.Fetch(h.engine.ctx, h.url)
	if err == nil {
		var s beep.StreamSeekCloser
		if s, _, err = decode(data); err == nil {
			s.Close()
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.state == stateClosed {
		return
	}
	if err != nil {
		h.state = stateFailed
		h.err = fmt.Errorf("load %s: %w", h.url, err)
		h.engine.logger.Warn("Audio load failed", "url", h.url, "error", err)
		return
	}

	h.state = stateReady
	h.data = data
	if h.wantPlay {
		if err := h.startLocked(); err != nil {
			h.engine.logger.Warn("Deferred playback failed", "url", h.url, "error", err)
		}
	}
}

// Play starts or resumes playback. A handle that is still loading starts
// as soon as its data arrives.
func (h *trackHandle) Play() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch h.state {
	case stateClosed:
		return ErrClosed
	case stateFailed:
		return h.err
	}
	if !h.engine.Live() {
		return ErrNoDevice
	}

	h.wantPlay = true
	if h.state == stateLoading {
		return nil
	}
	return h.startLocked()
}

func (h *trackHandle) startLocked() error {
	if h.voice != nil {
		h.engine.locked(h.voice.resume)
		return nil
	}

	// Each start decodes afresh so a voice still fading out keeps its own stream
	s, format, err := decode(h.data)
	if err != nil {
		return err
	}

	var src beep.Streamer = s
	if h.loop {
		src = beep.Loop(-1, s)
	}
	if format.SampleRate != SampleRate {
		src = beep.Resample(4, format.SampleRate, SampleRate, src)
	}

	h.voice = newVoice(src, s, h.engine.fade)
	h.engine.attach(h.voice)
	return nil
}

// Pause keeps the position; a later Play resumes from it
func (h *trackHandle) Pause() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.wantPlay = false
	if h.voice != nil {
		h.engine.locked(h.voice.pause)
	}
}

// Stop fades the voice out; a later Play starts from the beginning
func (h *trackHandle) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopLocked()
}

func (h *trackHandle) stopLocked() {
	h.wantPlay = false
	if h.voice != nil {
		h.engine.locked(h.voice.fadeOut)
		h.voice = nil
	}
}

func (h *trackHandle) SetLoop(loop bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.loop = loop
}

// Close stops playback and drops the decoded source
func (h *trackHandle) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.stopLocked()
	h.state = stateClosed
	h.data = nil
}

func (h *trackHandle) Source() string {
	return h.url
}
