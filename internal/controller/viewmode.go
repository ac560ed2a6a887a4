package controller

import "github.com/Versifine/stride/internal/anim"

// ViewMode is the discrete first-person/third-person configuration selecting
// the active camera rig and orientation policy.
type ViewMode int

const (
	FirstPerson ViewMode = iota
	ThirdPerson
)

func (m ViewMode) String() string {
	switch m {
	case FirstPerson:
		return "first-person"
	case ThirdPerson:
		return "third-person"
	default:
		return "unknown"
	}
}

// FollowTarget names the transform a rig should track.
type FollowTarget int

const (
	FollowHead FollowTarget = iota // first-person eye transform
	FollowRoot                     // third-person orbit pivot
)

// CameraRig is one of the two camera rigs. Exactly one rig is active at any
// time; the loop enforces that on every transition.
type CameraRig interface {
	SetActive(active bool)
	SetFollowTarget(target FollowTarget)
}

// switchMode applies the view-mode transition within a single frame:
// outgoing rig off, incoming rig on with the mode-appropriate target,
// stored yaw snapped when entering third person, animation parameters
// force-reset to the idle baseline.
func (l *Loop) switchMode() {
	next := ThirdPerson
	if l.mode == ThirdPerson {
		next = FirstPerson
	}

	outgoing, incoming := l.rig(l.mode), l.rig(next)
	if outgoing != nil {
		outgoing.SetActive(false)
	}
	if incoming != nil {
		incoming.SetActive(true)
		incoming.SetFollowTarget(followTargetFor(next))
	} else {
		l.warnOnce("rig-"+next.String(), "camera rig missing, view switched without rig swap", "mode", next.String())
	}

	if next == ThirdPerson {
		// Pick up the camera where the character faces; whatever yaw was
		// last held in first person would otherwise snap the view.
		l.orient.Yaw = l.pose.Yaw
	}

	l.mode = next
	l.resetAnimationBaseline()
}

func followTargetFor(mode ViewMode) FollowTarget {
	if mode == FirstPerson {
		return FollowHead
	}
	return FollowRoot
}

// resetAnimationBaseline publishes the idle/grounded parameter set so stale
// blend values never bleed across modes, and clears the blend scratch.
func (l *Loop) resetAnimationBaseline() {
	l.motion.AnimationBlend = 0
	l.motion.ResetBlend()
	if l.sink == nil {
		return
	}
	l.sink.SetFloat(anim.ParamSpeed, 0)
	l.sink.SetFloat(anim.ParamMotionSpeed, 0)
	l.sink.SetBool(anim.ParamJump, false)
	l.sink.SetBool(anim.ParamFreeFall, false)
	l.sink.SetBool(anim.ParamGrounded, true)
}
