package interact3d

import "github.com/go-gl/mathgl/mgl32"

// AttachedMouse carries accumulated deltas for a touch that represents a
// real pointing device (mouse/pen) rather than a bare finger contact.
// The Context replaces a touch's Attached with the sample's value on every
// frame the touch's id appears in the batch; on frames where the id is
// absent, the previous value is kept, not cleared.
type AttachedMouse struct {
	ScrollVertical   float32
	ScrollHorizontal float32
	ButtonsPressed   []int
	ButtonsReleased  []int
}

// Touch is a single pointer's per-frame state. Identity is the pair
// (ID, context) per spec.md §9's mandated equality — in practice this
// means two *Touch values are never compared across Context instances;
// within one Context, ID alone is unique.
type Touch struct {
	ID int32

	Point    mgl32.Vec2 // normalized projective screen-space position
	Velocity mgl32.Vec2 // delta per frame in screen space

	Origin  mgl32.Vec3 // world-space ray origin, recomputed each frame
	ViewDir mgl32.Vec3 // world-space ray direction, recomputed each frame

	Force float32

	FramesSincePressed int
	ExpireFrames        int

	Pressed bool // latched once Force >= Context.MinimumForce

	Attached *AttachedMouse

	// AttachedObject is the set of elements this touch hit this frame,
	// recorded at the end of the hit-test phase (§4.6 step 7e). Distinct
	// from Attached (the attached pointing device) despite the similar name
	// the source material uses for both.
	AttachedObject []ElementID

	owner *Context
}

// SameIdentity implements the spec's (id, context) equality mandate.
func (t *Touch) SameIdentity(o *Touch) bool {
	if t == nil || o == nil {
		return t == o
	}
	return t.ID == o.ID && t.owner == o.owner
}

// updateFromSample applies one frame's (point, id, force) sample to an
// existing touch: recomputes velocity, refreshes force/pressed latch, and
// resets the expiry counter since it was just sighted again.
func (t *Touch) updateFromSample(point mgl32.Vec2, force float32, minimumForce float32) {
	t.Velocity = point.Sub(t.Point)
	t.Point = point
	t.Force = force
	if force >= minimumForce {
		t.Pressed = true
	}
	t.ExpireFrames = 0
	t.FramesSincePressed++
}

// newTouch constructs a touch on first sighting; FramesSincePressed samples
// at 0 per §4.6 step 5.
func newTouch(owner *Context, id int32, point mgl32.Vec2, force float32, minimumForce float32) *Touch {
	t := &Touch{
		ID:                  id,
		Point:               point,
		Force:               force,
		FramesSincePressed: 0,
		owner:               owner,
	}
	if force >= minimumForce {
		t.Pressed = true
	}
	return t
}
