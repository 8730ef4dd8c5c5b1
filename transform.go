package interact3d

import "github.com/go-gl/mathgl/mgl32"

// ApplyTransformMode is a bitmask selecting which Transform components a
// copy/follow operation touches. Values match §4.1: Translation=1,
// Rotation=2, Scale=4, All=7.
type ApplyTransformMode uint8

const (
	ApplyTranslation ApplyTransformMode = 1 << iota
	ApplyRotation
	ApplyScale
	ApplyAll = ApplyTranslation | ApplyRotation | ApplyScale
)

func (m ApplyTransformMode) has(bit ApplyTransformMode) bool { return m&bit != 0 }

// Transform is a position/rotation/scale triple with a cached world/local
// matrix and a synchronous subscriber-notification fanout, generalized
// from willow's 2D affine [6]float64 model (transform.go's
// computeLocalTransform/multiplyAffine) to a full mgl32.Mat4/Quat pipeline.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3

	cached   mgl32.Mat4
	dirty    bool
	subs     map[string]func()
}

// NewTransform returns an identity transform: zero position, identity
// rotation, unit scale.
func NewTransform() *Transform {
	return &Transform{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
		dirty:    true,
		subs:     make(map[string]func()),
	}
}

// Subscribe registers a callback fired synchronously on every mutation,
// keyed by subscriber id so a later Subscribe with the same id replaces
// the previous callback (mirrors willow's named ancestor-cache-invalidation
// subscriber map).
func (t *Transform) Subscribe(id string, fn func()) {
	if t.subs == nil {
		t.subs = make(map[string]func())
	}
	t.subs[id] = fn
}

// Unsubscribe removes a previously registered callback.
func (t *Transform) Unsubscribe(id string) {
	delete(t.subs, id)
}

func (t *Transform) notify() {
	t.dirty = true
	for _, fn := range t.subs {
		if fn != nil {
			fn()
		}
	}
}

// SetPosition invalidates the cache and fires subscribers synchronously.
func (t *Transform) SetPosition(p mgl32.Vec3) {
	t.Position = p
	t.notify()
}

// SetRotation invalidates the cache and fires subscribers synchronously.
func (t *Transform) SetRotation(r mgl32.Quat) {
	t.Rotation = r
	t.notify()
}

// SetScale invalidates the cache and fires subscribers synchronously.
func (t *Transform) SetScale(s mgl32.Vec3) {
	t.Scale = s
	t.notify()
}

// Cached reports whether Matrix() can return the cached value without
// recomputing.
func (t *Transform) Cached() bool { return !t.dirty }

// Matrix returns Translate * Rotate * Scale in mgl32's column-vector
// convention (scale applied first, then rotation, then translation: the
// S·R·T order in row-vector notation), cached until the next setter call,
// matching willow's dirty-flag discipline generalized from a 2D affine
// matrix to a 4x4 homogeneous one.
func (t *Transform) Matrix() mgl32.Mat4 {
	if !t.dirty {
		return t.cached
	}
	s := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	r := t.Rotation.Mat4()
	tr := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	t.cached = tr.Mul4(r).Mul4(s)
	t.dirty = false
	return t.cached
}

// UpdateFrom copies components selected by mask from other into t, then
// invalidates the cache and fires subscribers once (§4.1).
func (t *Transform) UpdateFrom(other *Transform, mask ApplyTransformMode) {
	if mask.has(ApplyTranslation) {
		t.Position = other.Position
	}
	if mask.has(ApplyRotation) {
		t.Rotation = other.Rotation
	}
	if mask.has(ApplyScale) {
		t.Scale = other.Scale
	}
	t.notify()
}

// FollowWithDamper applies a critically-damped filter per selected
// component of mask, moving t toward target over dt seconds with time
// constant timeConstant. This is the "damping filter" the spec treats as
// an out-of-scope external primitive (§9); implemented directly over
// math.Exp in damper.go since no example repo vendors a spring-damper
// library (see DESIGN.md).
func (t *Transform) FollowWithDamper(target *Transform, timeConstant, dt float32, mask ApplyTransformMode) {
	changed := false
	if mask.has(ApplyTranslation) {
		t.Position = mgl32.Vec3{
			damp(t.Position.X(), target.Position.X(), timeConstant, dt),
			damp(t.Position.Y(), target.Position.Y(), timeConstant, dt),
			damp(t.Position.Z(), target.Position.Z(), timeConstant, dt),
		}
		changed = true
	}
	if mask.has(ApplyRotation) {
		t.Rotation = mgl32.QuatSlerp(t.Rotation, target.Rotation, dampBlend(timeConstant, dt))
		changed = true
	}
	if mask.has(ApplyScale) {
		t.Scale = mgl32.Vec3{
			damp(t.Scale.X(), target.Scale.X(), timeConstant, dt),
			damp(t.Scale.Y(), target.Scale.Y(), timeConstant, dt),
			damp(t.Scale.Z(), target.Scale.Z(), timeConstant, dt),
		}
		changed = true
	}
	if changed {
		t.notify()
	}
}

// dampBlend converts a damper time constant into a slerp blend factor
// equivalent to the same exponential approach used for linear components.
func dampBlend(timeConstant, dt float32) float32 {
	if timeConstant <= 0 {
		return 1
	}
	if dt <= 0 {
		return 0
	}
	return damp(0, 1, timeConstant, dt)
}
