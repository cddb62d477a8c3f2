package audio

// silentHandle stands in for tracks without a preview
type silentHandle struct{}

// Silent returns a handle that never plays
func Silent() Handle {
	return silentHandle{}
}

func (silentHandle) Play() error    { return ErrNoSource }
func (silentHandle) Pause()         {}
func (silentHandle) Stop()          {}
func (silentHandle) SetLoop(bool)   {}
func (silentHandle) Close()         {}
func (silentHandle) Source() string { return "" }
