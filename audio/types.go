package audio

import (
	"errors"

	"github.com/gopxl/beep"
)

// SampleRate is the mixer rate; decoded streams are resampled to it
const SampleRate = beep.SampleRate(44100)

// Sentinel errors
var (
	ErrNoSource          = errors.New("no audio source")
	ErrNoDevice          = errors.New("no audio device")
	ErrClosed            = errors.New("audio handle closed")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
)

// Handle is a preloaded, independently controllable track. Play never
// blocks: while the source is still loading it records the intent and
// returns nil, starting playback once the data is ready.
type Handle interface {
	Play() error
	Pause()
	Stop()
	SetLoop(loop bool)
	Close()
	Source() string
}

// Loader creates handles; an empty url yields a silent handle
type Loader interface {
	Load(url string) Handle
}
