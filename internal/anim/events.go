package anim

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// minEventWeight gates event delivery on the triggering clip's weight, so
// blended-out clips do not fire audio.
const minEventWeight = 0.5

// Event is an animation-clip callback payload: where the character is and
// how strongly the triggering clip contributes to the final pose.
type Event struct {
	Position mgl64.Vec3
	Weight   float64
}

const (
	EventFootstep = "footstep"
	EventLand     = "land"
)

type HandlerFunc func(Event)

// Events dispatches animation-clip events to subscribed handlers. Dispatch
// is synchronous: the simulation is single-writer and frame-stepped, so
// handlers run inline on the simulation goroutine.
type Events struct {
	mu       sync.RWMutex
	handlers map[string][]HandlerFunc
}

func NewEvents() *Events {
	return &Events{handlers: make(map[string][]HandlerFunc)}
}

func (e *Events) Subscribe(name string, handler HandlerFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers[name] = append(e.handlers[name], handler)
}

// Publish delivers evt to every handler of name. Events below the clip
// weight gate are dropped.
func (e *Events) Publish(name string, evt Event) {
	if evt.Weight <= minEventWeight {
		return
	}
	e.mu.RLock()
	handlers := e.handlers[name]
	e.mu.RUnlock()

	for _, handler := range handlers {
		handler(evt)
	}
}
