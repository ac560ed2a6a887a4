package anim

import "github.com/go-gl/mathgl/mgl64"

// EventEmitter derives clip events from observed motion: a footstep every
// stride length of grounded horizontal travel, and a land on every
// airborne-to-grounded transition.
type EventEmitter struct {
	events *Events
	stride float64

	last        mgl64.Vec3
	hasLast     bool
	accum       float64
	wasGrounded bool
}

func NewEventEmitter(events *Events, stride float64) *EventEmitter {
	return &EventEmitter{events: events, stride: stride, wasGrounded: true}
}

// Observe advances the emitter by one frame. weight is the contribution of
// the motion to the final pose; events below the clip weight gate are
// dropped downstream.
func (e *EventEmitter) Observe(pos mgl64.Vec3, grounded bool, weight float64) {
	if !e.hasLast {
		e.last = pos
		e.hasLast = true
		e.wasGrounded = grounded
		return
	}

	if grounded && !e.wasGrounded {
		e.events.Publish(EventLand, Event{Position: pos, Weight: 1})
		e.accum = 0
	}

	if grounded && e.stride > 0 {
		delta := pos.Sub(e.last)
		e.accum += mgl64.Vec2{delta.X(), delta.Z()}.Len()
		for e.accum >= e.stride {
			e.accum -= e.stride
			e.events.Publish(EventFootstep, Event{Position: pos, Weight: weight})
		}
	} else if !grounded {
		e.accum = 0
	}

	e.last = pos
	e.wasGrounded = grounded
}
