// Package device connects the audio engine to the system speaker.
package device

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"snakeify/audio"
)

// Device is an open speaker playing a single source stream
type Device struct{}

// Open initializes the speaker at the engine rate and starts pulling from src.
// Failure means the machine has no usable audio output; callers run silent.
func Open(src beep.Streamer, buffer time.Duration) (*Device, error) {
	if err := speaker.Init(audio.SampleRate, audio.SampleRate.N(buffer)); err != nil {
		return nil, fmt.Errorf("%w: %v", audio.ErrNoDevice, err)
	}
	speaker.Play(src)
	return &Device{}, nil
}

// Close stops the speaker
func (d *Device) Close() {
	speaker.Clear()
	speaker.Close()
}
