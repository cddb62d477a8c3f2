package audio

import (
	"io"

	"github.com/gopxl/beep"
)

// voice is one playing instance of a handle inside the mixer. Its gain ramps
// linearly toward target, which gives fade-in on start and fade-out on stop.
// All fields are guarded by the engine lock.
type voice struct {
	ctrl   *beep.Ctrl
	closer io.Closer

	gain     float64
	target   float64
	step     float64
	stopping bool
	done     bool
}

func newVoice(src beep.Streamer, closer io.Closer, fadeSamples int) *voice {
	v := &voice{
		ctrl:   &beep.Ctrl{Streamer: src},
		closer: closer,
		target: 1,
	}
	if fadeSamples > 0 {
		v.step = 1 / float64(fadeSamples)
	} else {
		v.gain = 1
		v.step = 1
	}
	return v
}

func (v *voice) Stream(samples [][2]float64) (int, bool) {
	if v.done {
		return 0, false
	}

	n, ok := v.ctrl.Stream(samples)
	for i := 0; i < n; i++ {
		v.advance()
		samples[i][0] *= v.gain
		samples[i][1] *= v.gain
	}

	if !ok || (v.stopping && v.gain <= 0) {
		v.finish()
		return n, n > 0
	}
	return n, ok
}

func (v *voice) Err() error {
	return v.ctrl.Err()
}

func (v *voice) advance() {
	switch {
	case v.gain < v.target:
		v.gain = min(v.target, v.gain+v.step)
	case v.gain > v.target:
		v.gain = max(v.target, v.gain-v.step)
	}
}

func (v *voice) pause() {
	v.ctrl.Paused = true
}

func (v *voice) resume() {
	v.ctrl.Paused = false
}

// fadeOut ramps the voice to silence; the mixer drops it afterwards
func (v *voice) fadeOut() {
	v.target = 0
	v.stopping = true
	v.ctrl.Paused = false
	if v.gain <= 0 {
		v.finish()
	}
}

func (v *voice) finish() {
	if v.done {
		return
	}
	v.done = true
	if v.closer != nil {
		v.closer.Close()
	}
}
