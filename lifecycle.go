package interact3d

import "github.com/tanema/gween/ease"

// LifecycleState is one of the four states of §4.3's fade state machine.
type LifecycleState int

const (
	FadingIn LifecycleState = iota
	Visible
	FadingOut
	Deleted
)

// fadeState holds the raw timers behind Element.ElementFade/State. Fade
// ramps are driven by a 0..1 raw progress value eased linearly (gween's
// ease.Linear), the same "drive one field toward a target over a duration"
// shape as willow's animation.go TweenGroup, repurposed from node fields to
// this single fade scalar.
type fadeState struct {
	state LifecycleState
	value float32

	fadeInDelayElapsed float32
	fadeInRaw          float32 // 0..1 raw progress, independent of delay gating

	fadeOutDelayElapsed float32
	fadeOutRaw          float32

	absoluteFadeOutDelay float32 // own FadeOutDelay only (children's delays not added), latched at start_deletion
}

func newFadeState() *fadeState {
	return &fadeState{state: FadingIn}
}

// startDeletion transitions e (and, recursively, its children first) into
// FadingOut, per §4.3: "entered by start_deletion() — transitively recurses
// into children first." Each element's absoluteFadeOutDelay is self-based
// (its own FadeOutDelay only) — the §9 ambiguity between child-based and
// self-based formulas is resolved self-based here, matching spec.md S4
// where a child's own delay, not any parent/child aggregation, is what
// shifts its ramp start.
func (e *Element) startDeletion() {
	if e.fade.state == FadingOut || e.fade.state == Deleted {
		return
	}
	for _, c := range e.Children {
		c.startDeletion()
	}
	// Cancel any in-progress fade-in: the fade value reached so far becomes
	// the baseline the fade-out ramp multiplies down to 0, so a reversal
	// mid-fade-in continues smoothly from where it was (§4.3).
	e.fade.fadeInRaw = e.fade.value
	e.fade.fadeInDelayElapsed = 0

	e.fade.absoluteFadeOutDelay = e.FadeOutDelay
	e.fade.fadeOutDelayElapsed = 0
	e.fade.fadeOutRaw = 0
	e.fade.state = FadingOut
	e.fire(OnDeletionStarted, nil, nil)

	if e.FadeOutTime == 0 {
		e.deleteMe = true
		e.fade.state = Deleted
		e.fade.value = 0
		e.fire(OnDeleting, nil, nil)
	}
}

// reenterFadingIn implements §4.3's re-entry rule: an update_from arriving
// while FadingOut cancels the fade-out (resetting its raw progress to 0)
// and reverts to FadingIn from the current fade value upward.
func (e *Element) reenterFadingIn() {
	if e.fade.state != FadingOut {
		return
	}
	e.fade.state = FadingIn
	e.fade.fadeInDelayElapsed = e.FadeInDelay // delay already satisfied; resume ramp
	e.fade.fadeInRaw = e.fade.value
	e.fade.fadeOutRaw = 0
	e.fade.fadeOutDelayElapsed = 0
}

// advance steps the fade state machine by dt seconds; called once per
// element per frame from Context's element phase (§4.6 step 8e).
func (e *Element) advance(dt float32) {
	switch e.fade.state {
	case FadingIn:
		e.advanceFadingIn(dt)
	case Visible:
		e.fade.value = 1
	case FadingOut:
		e.advanceFadingOut(dt)
	case Deleted:
		e.fade.value = 0
	}
}

func (e *Element) advanceFadingIn(dt float32) {
	if e.fade.fadeInDelayElapsed < e.FadeInDelay {
		e.fade.fadeInDelayElapsed += dt
		e.fade.value = 0
		return
	}
	if e.FadeInTime <= 0 {
		e.fade.fadeInRaw = 1
	} else {
		e.fade.fadeInRaw += dt / e.FadeInTime
	}
	progress := clampf(e.fade.fadeInRaw, 0, 1)
	e.fade.value = ease.Linear(progress, 0, 1, 1)
	if progress >= 1 {
		e.fade.state = Visible
		e.fade.value = 1
		e.fire(OnFadedIn, nil, nil)
	}
}

func (e *Element) advanceFadingOut(dt float32) {
	if e.fade.fadeOutDelayElapsed < e.fade.absoluteFadeOutDelay {
		e.fade.fadeOutDelayElapsed += dt
		return
	}
	if e.FadeOutTime <= 0 {
		e.fade.fadeOutRaw = 1
	} else {
		e.fade.fadeOutRaw += dt / e.FadeOutTime
	}
	progress := clampf(e.fade.fadeOutRaw, 0, 1)
	base := e.fadeInBaseline()
	e.fade.value = base * (1 - progress)
	if progress >= 1 {
		e.deleteMe = true
		e.fade.state = Deleted
		e.fade.value = 0
		e.fire(OnDeleting, nil, nil)
	}
}

// fadeInBaseline is the fade value FadingOut multiplies down from — 1 in
// the common case, but preserves whatever value had been reached if
// deletion began before fade-in finished.
func (e *Element) fadeInBaseline() float32 {
	return clampf(e.fade.fadeInRaw, 0, 1)
}
