package interact3d

import "github.com/go-gl/mathgl/mgl32"

// PlaneSelector picks which plane SlidingBehavior projects touch motion
// onto (§4.7).
type PlaneSelector int

const (
	ViewAligned PlaneSelector = iota
	OwnPlane
	ParentPlane
)

// AxisCoefficients scales a delta per-axis before it's applied.
type AxisCoefficients struct {
	X, Y float32
}

// SlidingParams configures the canonical sliding behavior.
type SlidingParams struct {
	Draggable bool
	Scalable  bool
	Pivotable bool

	DragCoeff  AxisCoefficients
	ScaleCoeff AxisCoefficients

	MinimumTouches int

	HasTranslationLimit bool
	TranslationMin      mgl32.Vec2
	TranslationMax      mgl32.Vec2

	HasRotationLimit bool
	RotationMin      float32
	RotationMax      float32

	HasScaleMinMax bool
	ScaleMin       float32
	ScaleMax       float32

	FlickTime          float32
	FlickVelocityDelay float32

	Plane PlaneSelector

	IncludeChildren bool
}

// delayedDelta is one sample in the 1-second delayed-delta ring buffer
// SlidingBehavior uses to seed flick velocity (§4.7).
type delayedDelta struct {
	age   float32 // seconds since recorded, incremented each frame
	pos   mgl32.Vec2
	angle float32
	size  float32
}

// slidingState is SlidingBehavior's per-element working state, stored in
// element.Values.Objects under the behavior's reserved key.
type slidingState struct {
	deltaPos   mgl32.Vec2
	deltaAngle float32
	deltaSize  float32
	totalAngle float32
	flicking   bool

	ring []delayedDelta // newest appended at the end, capped at ~1s of frames

	wasAboveThreshold bool
}

func (s *slidingState) Copy() AuxiliaryObject {
	c := *s
	c.ring = append([]delayedDelta(nil), s.ring...)
	return &c
}

func (s *slidingState) UpdateFrom(other AuxiliaryObject) {
	if o, ok := other.(*slidingState); ok {
		*s = *o
		s.ring = append([]delayedDelta(nil), o.ring...)
	}
}

// SlidingBehavior is the canonical multi-touch drag/scale/rotate behavior
// (§4.7), grounded on willow's input.go drag/pinch math (detectPinch,
// processPointer's delta accumulation) generalized from willow's 2D
// screen-space dragging to the spec's plane-projected, multi-touch model.
type SlidingBehavior struct {
	id     BehaviorID
	Params SlidingParams
}

func NewSlidingBehavior(params SlidingParams) *SlidingBehavior {
	if params.MinimumTouches == 0 {
		params.MinimumTouches = 1
	}
	return &SlidingBehavior{id: NewBehaviorID(), Params: params}
}

func (b *SlidingBehavior) ID() BehaviorID { return b.id }

func (b *SlidingBehavior) state(e *Element) *slidingState {
	key := behaviorAuxKey(b.id)
	if existing, ok := e.Values.Object(key); ok {
		return existing.(*slidingState)
	}
	s := &slidingState{}
	e.Values.SetObject(key, s)
	return s
}

// planeMatrix picks the plane's local-to-world matrix per Params.Plane,
// falling back to ViewAligned when OwnPlane/ParentPlane has no parent to
// fall back to. ctx.invView is already the camera's own local-to-world
// transform (computed as frame.View.Inv() in MainLoop), so ViewAligned uses
// it directly rather than inverting it again.
func (b *SlidingBehavior) planeMatrix(e *Element, ctx *Context) mgl32.Mat4 {
	switch b.Params.Plane {
	case OwnPlane:
		return e.WorldMatrix()
	case ParentPlane:
		if e.Parent != nil {
			return e.Parent.WorldMatrix()
		}
		return ctx.invView
	default:
		return ctx.invView
	}
}

// toPlaneSpace re-expresses a raw screen-space 2D vector (a touch point or
// velocity) in the selected plane's local XY axes (§4.7: "pick plane
// matrix... translation delta = planar velocity of the single touch"). The
// vector is first lifted into world space along the camera's own axes (the
// ViewAligned default basis a raw screen vector is already expressed in),
// then re-projected into the plane's local frame. For the ViewAligned plane
// itself this round-trips to the input unchanged; for OwnPlane/ParentPlane
// it re-bases the vector onto that plane's axes.
func (b *SlidingBehavior) toPlaneSpace(planeMat mgl32.Mat4, ctx *Context, v mgl32.Vec2) mgl32.Vec2 {
	world := mulDirection(ctx.invView, mgl32.Vec3{v.X(), v.Y(), 0})
	local := mulDirection(planeMat.Inv(), world)
	return mgl32.Vec2{local.X(), local.Y()}
}

func (b *SlidingBehavior) touchingTouches(e *Element, ctx *Context) []*Touch {
	ids := e.Touching.Keys()
	if b.Params.IncludeChildren {
		ids = append(ids, collectChildTouching(e)...)
	}
	out := make([]*Touch, 0, len(ids))
	seen := make(map[int32]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if t, ok := ctx.touches.Get(id); ok {
			out = append(out, t)
		}
	}
	return out
}

func collectChildTouching(e *Element) []int32 {
	var out []int32
	for _, c := range e.Children {
		out = append(out, c.Touching.Keys()...)
		out = append(out, collectChildTouching(c)...)
	}
	return out
}

func (b *SlidingBehavior) Behave(e *Element, ctx *Context) {
	st := b.state(e)
	touches := b.touchingTouches(e, ctx)

	aboveThreshold := len(touches) >= b.Params.MinimumTouches && len(touches) > 0
	planeMat := b.planeMatrix(e, ctx)

	var deltaPos mgl32.Vec2
	var deltaAngle, deltaSize float32

	if aboveThreshold {
		switch {
		case len(touches) == 1 && b.Params.Draggable:
			deltaPos = b.toPlaneSpace(planeMat, ctx, touches[0].Velocity)
		case len(touches) == 1:
			// Single touch treated as a two-point gesture against its mirror
			// point through the element's own origin.
			v := b.toPlaneSpace(planeMat, ctx, touches[0].Velocity)
			deltaAngle = atan2f(v.Y(), v.X())
			deltaSize = v.Len()
		default:
			t0, t1 := twoFastest(touches)
			currA := b.toPlaneSpace(planeMat, ctx, t0.Point)
			prevA := currA.Sub(b.toPlaneSpace(planeMat, ctx, t0.Velocity))
			currB := b.toPlaneSpace(planeMat, ctx, t1.Point)
			prevB := currB.Sub(b.toPlaneSpace(planeMat, ctx, t1.Velocity))
			avgCurr := currA.Add(currB).Mul(0.5)
			avgPrev := prevA.Add(prevB).Mul(0.5)
			deltaPos = avgCurr.Sub(avgPrev)

			currAngle := atan2f(currB.Y()-currA.Y(), currB.X()-currA.X())
			prevAngle := atan2f(prevB.Y()-prevA.Y(), prevB.X()-prevA.X())
			deltaAngle = wrapAngle(currAngle - prevAngle)

			currDist := currA.Sub(currB).Len()
			prevDist := prevA.Sub(prevB).Len()
			deltaSize = currDist - prevDist
		}
		st.flicking = false
	} else if st.wasAboveThreshold {
		// Transition below threshold: seed flick velocity from the
		// time-delayed buffer at FlickVelocityDelay seconds ago.
		d := st.delayedAt(b.Params.FlickVelocityDelay)
		deltaPos = d.pos
		deltaAngle = d.angle
		deltaSize = d.size
		st.flicking = true
	} else if st.flicking {
		deltaPos = mgl32.Vec2{
			dampDelta(st.deltaPos.X(), b.Params.FlickTime, ctx.deltaTime),
			dampDelta(st.deltaPos.Y(), b.Params.FlickTime, ctx.deltaTime),
		}
		deltaAngle = dampDelta(st.deltaAngle, b.Params.FlickTime, ctx.deltaTime)
		deltaSize = dampDelta(st.deltaSize, b.Params.FlickTime, ctx.deltaTime)
	}

	st.wasAboveThreshold = aboveThreshold

	// Half-gain: the reference scenario (S6) expects a single-touch drag to
	// move the element by half the raw screen-space velocity. Only fresh
	// touch deltas are scaled; flick deltas were already scaled when they
	// were recorded, so they decay by the damper alone.
	if aboveThreshold {
		deltaPos = mgl32.Vec2{deltaPos.X() * b.Params.DragCoeff.gainX() * 0.5, deltaPos.Y() * b.Params.DragCoeff.gainY() * 0.5}
	}

	b.applyTranslation(e, deltaPos)
	if b.Params.Scalable {
		b.applyScale(e, deltaSize)
	}
	if b.Params.Pivotable {
		b.applyRotation(e, ctx, deltaAngle)
	}

	st.deltaPos = deltaPos
	st.deltaAngle = deltaAngle
	st.deltaSize = deltaSize
	st.totalAngle += deltaAngle
	st.record(deltaPos, deltaAngle, deltaSize, ctx.deltaTime)
}

func (c AxisCoefficients) gainX() float32 {
	if c.X == 0 {
		return 1
	}
	return c.X
}
func (c AxisCoefficients) gainY() float32 {
	if c.Y == 0 {
		return 1
	}
	return c.Y
}

func (b *SlidingBehavior) applyTranslation(e *Element, delta mgl32.Vec2) {
	pos := e.DisplayTransform.Position
	pos = mgl32.Vec3{pos.X() + delta.X(), pos.Y() + delta.Y(), pos.Z()}
	if b.Params.HasTranslationLimit {
		pos = mgl32.Vec3{
			clampf(pos.X(), b.Params.TranslationMin.X(), b.Params.TranslationMax.X()),
			clampf(pos.Y(), b.Params.TranslationMin.Y(), b.Params.TranslationMax.Y()),
			pos.Z(),
		}
	}
	e.DisplayTransform.SetPosition(pos)
}

func (b *SlidingBehavior) applyScale(e *Element, deltaSize float32) {
	if deltaSize == 0 {
		return
	}
	s := e.DisplayTransform.Scale
	factor := 1 + deltaSize*b.Params.ScaleCoeff.gainX()
	s = s.Mul(factor)
	if b.Params.HasScaleMinMax {
		s = mgl32.Vec3{
			clampf(s.X(), b.Params.ScaleMin, b.Params.ScaleMax),
			clampf(s.Y(), b.Params.ScaleMin, b.Params.ScaleMax),
			clampf(s.Z(), b.Params.ScaleMin, b.Params.ScaleMax),
		}
	}
	e.DisplayTransform.SetScale(s)
}

// applyRotation rotates about the plane's world-space Z axis, transformed
// into parent space when a parent exists (§4.7).
func (b *SlidingBehavior) applyRotation(e *Element, ctx *Context, deltaAngle float32) {
	if deltaAngle == 0 {
		return
	}
	planeMat := b.planeMatrix(e, ctx)
	axis := mulDirection(planeMat, mgl32.Vec3{0, 0, 1}).Normalize()
	if e.Parent != nil {
		axis = mulDirection(e.Parent.InverseWorldMatrix(), axis).Normalize()
	}
	delta := mgl32.QuatRotate(deltaAngle, axis)
	r := delta.Mul(e.DisplayTransform.Rotation)
	if b.Params.HasRotationLimit {
		angle := e.angleAroundAxis(r, axis)
		if angle < b.Params.RotationMin || angle > b.Params.RotationMax {
			return
		}
	}
	e.DisplayTransform.SetRotation(r)
}

func (e *Element) angleAroundAxis(q mgl32.Quat, axis mgl32.Vec3) float32 {
	return 2 * acosf(clampf(q.W, -1, 1))
}

func twoFastest(touches []*Touch) (*Touch, *Touch) {
	var first, second *Touch
	var firstSq, secondSq float32 = -1, -1
	for _, t := range touches {
		sq := t.Velocity.X()*t.Velocity.X() + t.Velocity.Y()*t.Velocity.Y()
		if sq > firstSq {
			second, secondSq = first, firstSq
			first, firstSq = t, sq
		} else if sq > secondSq {
			second, secondSq = t, sq
		}
	}
	if second == nil {
		second = first
	}
	return first, second
}

func (s *slidingState) record(pos mgl32.Vec2, angle, size, dt float32) {
	for i := range s.ring {
		s.ring[i].age += dt
	}
	s.ring = append(s.ring, delayedDelta{age: 0, pos: pos, angle: angle, size: size})
	// Drop samples older than 1 second, the ring's fixed horizon (§4.7).
	cut := 0
	for cut < len(s.ring) && s.ring[cut].age > 1 {
		cut++
	}
	s.ring = s.ring[cut:]
}

// delayedAt returns the ring sample closest to `seconds` ago.
func (s *slidingState) delayedAt(seconds float32) delayedDelta {
	if len(s.ring) == 0 {
		return delayedDelta{}
	}
	best := s.ring[0]
	bestDiff := absf(best.age - seconds)
	for _, d := range s.ring[1:] {
		diff := absf(d.age - seconds)
		if diff < bestDiff {
			best, bestDiff = d, diff
		}
	}
	return best
}
