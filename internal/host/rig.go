package host

import "github.com/Versifine/stride/internal/controller"

// Rig is a minimal camera rig for the debug view. It records what the
// controller asks of it; the top-down renderer only needs to know which rig
// is live.
type Rig struct {
	Name   string
	Active bool
	Target controller.FollowTarget
}

func (r *Rig) SetActive(active bool) { r.Active = active }

func (r *Rig) SetFollowTarget(target controller.FollowTarget) { r.Target = target }
