// Package anim defines the animation parameter sink the controller loop
// publishes to, and the animation-event dispatch that drives audio.
package anim

// Parameter names published by the controller loop.
const (
	ParamSpeed       = "Speed"       // normalized [0,1] locomotion blend
	ParamDirection   = "Direction"   // forward/back intent, ±1 or 0
	ParamMotionSpeed = "MotionSpeed" // input magnitude
	ParamGrounded    = "Grounded"
	ParamJump        = "Jump"
	ParamFreeFall    = "FreeFall"
)

// Sink receives named animation parameters. The loop tolerates a nil Sink;
// absence is a capability, not an error.
type Sink interface {
	SetFloat(name string, v float64)
	SetBool(name string, v bool)
}

// Recorder is a Sink that keeps the last value of every parameter. Used by
// tests and the debug overlays.
type Recorder struct {
	Floats map[string]float64
	Bools  map[string]bool
}

func NewRecorder() *Recorder {
	return &Recorder{
		Floats: make(map[string]float64),
		Bools:  make(map[string]bool),
	}
}

func (r *Recorder) SetFloat(name string, v float64) { r.Floats[name] = v }
func (r *Recorder) SetBool(name string, v bool)     { r.Bools[name] = v }
