package interact3d

import "github.com/go-gl/mathgl/mgl32"

// ShapeKind is the tagged-variant shape discriminant from §9 Design Notes
// ("Prototype polymorphism"): a ShapeKind enum plus a per-variant hit-test
// function replaces reflection-driven constructor lookup. No runtime type
// introspection is needed — every Element carries one Shape value.
type ShapeKind int

const (
	ShapeKindRectangle ShapeKind = iota
	ShapeKindCircle
	ShapeKindSegment
	ShapeKindPolygon
	ShapeKindBox
	ShapeKindSphere
	ShapeKindInfinitePlane
)

// Shape is the per-element shape descriptor. Only the fields relevant to
// Kind are meaningful; the rest are zero. Constructors below (ShapeRectangle
// etc.) set sane defaults.
type Shape struct {
	Kind ShapeKind

	// Segment
	HoleRadius float32
	Cycles     float32 // signed, magnitude <= 1
	Phase      float32

	// Polygon, in element-local XY, counter-clockwise or clockwise (even-odd
	// doesn't care about winding).
	Vertices []mgl32.Vec2

	// Box
	Size mgl32.Vec3
}

func ShapeRectangle() Shape      { return Shape{Kind: ShapeKindRectangle} }
func ShapeCircle() Shape         { return Shape{Kind: ShapeKindCircle} }
func ShapeInfinitePlane() Shape  { return Shape{Kind: ShapeKindInfinitePlane} }
func ShapeSphere() Shape         { return Shape{Kind: ShapeKindSphere} }
func ShapeBox(size mgl32.Vec3) Shape {
	return Shape{Kind: ShapeKindBox, Size: size}
}
func ShapeSegment(holeRadius, cycles, phase float32) Shape {
	return Shape{Kind: ShapeKindSegment, HoleRadius: holeRadius, Cycles: cycles, Phase: phase}
}
func ShapePolygon(vertices []mgl32.Vec2) Shape {
	return Shape{Kind: ShapeKindPolygon, Vertices: vertices}
}

// Validate reports ErrUnknownShapeKind when Kind doesn't match any
// registered variant. Checked once at construction time (instantiate and
// updateFrom in reconcile.go), rather than discovered lazily through
// pureHitTest's default case silently missing every ray.
func (s Shape) Validate() error {
	switch s.Kind {
	case ShapeKindRectangle, ShapeKindCircle, ShapeKindSegment, ShapeKindPolygon,
		ShapeKindBox, ShapeKindSphere, ShapeKindInfinitePlane:
		return nil
	default:
		return ErrUnknownShapeKind
	}
}

// shapeRay is a world-space ray already extracted from a Touch.
type shapeRay struct {
	TouchID int32
	Origin  mgl32.Vec3
	Dir     mgl32.Vec3
}

// pureHitTest implements §4.2's pure_hit_test: the per-variant geometric
// test with no gating from only_hit_if_parent_is_hit (that gate lives in
// Element.hitTest, see element.go). persistent is the current, unclipped
// plane projection, returned by the bounded planar shapes (rectangle,
// circle, segment, polygon) when the ray lies outside their bounds; the
// other shapes always return a nil persistent.
func (s Shape) pureHitTest(e *Element, ray shapeRay) (hit *IntersectionPoint, persistent *IntersectionPoint) {
	switch s.Kind {
	case ShapeKindInfinitePlane:
		return s.hitInfinitePlane(e, ray)
	case ShapeKindRectangle:
		return s.hitRectangle(e, ray)
	case ShapeKindCircle:
		return s.hitCircle(e, ray)
	case ShapeKindSegment:
		return s.hitSegment(e, ray)
	case ShapeKindPolygon:
		return s.hitPolygon(e, ray)
	case ShapeKindBox:
		return s.hitBox(e, ray)
	case ShapeKindSphere:
		return s.hitSphere(e, ray)
	default:
		return nil, nil
	}
}

// planeLocalHit transforms ray into element-local space and intersects the
// local z=0 plane. ok is false when the ray is parallel to the plane.
func planeLocalHit(e *Element, ray shapeRay) (local mgl32.Vec3, world mgl32.Vec3, ok bool) {
	inv := e.InverseWorldMatrix()
	localOrigin := mulPoint(inv, ray.Origin)
	localDir := mulDirection(inv, ray.Dir)
	if localDir.Z() == 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}, false
	}
	t := -localOrigin.Z() / localDir.Z()
	if t < 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}, false
	}
	local = localOrigin.Add(localDir.Mul(t))
	world = ray.Origin.Add(ray.Dir.Mul(t))
	return local, world, true
}

func mulPoint(m mgl32.Mat4, v mgl32.Vec3) mgl32.Vec3 {
	v4 := m.Mul4x1(mgl32.Vec4{v.X(), v.Y(), v.Z(), 1})
	return mgl32.Vec3{v4.X(), v4.Y(), v4.Z()}
}

func mulDirection(m mgl32.Mat4, v mgl32.Vec3) mgl32.Vec3 {
	v4 := m.Mul4x1(mgl32.Vec4{v.X(), v.Y(), v.Z(), 0})
	return mgl32.Vec3{v4.X(), v4.Y(), v4.Z()}
}

func newIntersection(e *Element, touchID int32, local, world mgl32.Vec3, surface mgl32.Vec2) *IntersectionPoint {
	return &IntersectionPoint{
		ElementID:           e.ID,
		TouchID:             touchID,
		World:               world,
		Element:             local,
		Surface:             surface,
		WorldTangentFrame:   e.WorldMatrix(),
		ElementTangentFrame: mgl32.Ident4(),
	}
}

func (s Shape) hitInfinitePlane(e *Element, ray shapeRay) (*IntersectionPoint, *IntersectionPoint) {
	local, world, ok := planeLocalHit(e, ray)
	if !ok {
		return nil, nil
	}
	surface := mgl32.Vec2{local.X() * 2, local.Y() * 2}
	ip := newIntersection(e, ray.TouchID, local, world, surface)
	return ip, nil
}

func (s Shape) hitRectangle(e *Element, ray shapeRay) (*IntersectionPoint, *IntersectionPoint) {
	local, world, ok := planeLocalHit(e, ray)
	if !ok {
		return nil, nil
	}
	surface := mgl32.Vec2{local.X() + 0.5, local.Y() + 0.5}
	if absf(local.X()) > 0.5 || absf(local.Y()) > 0.5 {
		return nil, newIntersection(e, ray.TouchID, local, world, surface)
	}
	return newIntersection(e, ray.TouchID, local, world, surface), nil
}

func (s Shape) hitCircle(e *Element, ray shapeRay) (*IntersectionPoint, *IntersectionPoint) {
	local, world, ok := planeLocalHit(e, ray)
	if !ok {
		return nil, nil
	}
	r := float32(mgl32.Vec2{local.X(), local.Y()}.Len())
	theta := atan2f(local.Y(), local.X())
	surface := mgl32.Vec2{r / 0.5, theta}
	if r >= 0.5 {
		return nil, newIntersection(e, ray.TouchID, local, world, surface)
	}
	return newIntersection(e, ray.TouchID, local, world, surface), nil
}

func (s Shape) hitSegment(e *Element, ray shapeRay) (*IntersectionPoint, *IntersectionPoint) {
	local, world, ok := planeLocalHit(e, ray)
	if !ok {
		return nil, nil
	}
	r := float32(mgl32.Vec2{local.X(), local.Y()}.Len())
	rawTheta := atan2f(local.Y(), local.X())
	persistent := func() *IntersectionPoint {
		return newIntersection(e, ray.TouchID, local, world, mgl32.Vec2{r, rawTheta})
	}
	if r >= 0.5 || r < s.HoleRadius {
		return nil, persistent()
	}
	theta := wrapAngle(rawTheta - s.Phase)
	cycles := s.Cycles
	if cycles == 0 {
		cycles = 1
	}
	span := absf(cycles) * 2 * piF
	if theta < 0 {
		theta += 2 * piF
	}
	if theta > span {
		return nil, persistent()
	}
	surface := mgl32.Vec2{(r - s.HoleRadius) / (0.5 - s.HoleRadius), theta / span}
	return newIntersection(e, ray.TouchID, local, world, surface), nil
}

// hitPolygon uses the even-odd rule over Vertices; short-circuits on < 3
// (too few vertices to form a region has no plane to project onto, so no
// persistent is possible either).
func (s Shape) hitPolygon(e *Element, ray shapeRay) (*IntersectionPoint, *IntersectionPoint) {
	if len(s.Vertices) < 3 {
		return nil, nil
	}
	local, world, ok := planeLocalHit(e, ray)
	if !ok {
		return nil, nil
	}
	surface := mgl32.Vec2{local.X(), local.Y()}
	if !pointInPolygonEvenOdd(s.Vertices, local.X(), local.Y()) {
		return nil, newIntersection(e, ray.TouchID, local, world, surface)
	}
	return newIntersection(e, ray.TouchID, local, world, surface), nil
}

func pointInPolygonEvenOdd(verts []mgl32.Vec2, x, y float32) bool {
	inside := false
	n := len(verts)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi, vj := verts[i], verts[j]
		if (vi.Y() > y) != (vj.Y() > y) {
			xIntersect := (vj.X()-vi.X())*(y-vi.Y())/(vj.Y()-vi.Y()) + vi.X()
			if x < xIntersect {
				inside = !inside
			}
		}
	}
	return inside
}

// hitBox iterates the six faces of a box of half-extents Size/2 in element
// space, keeping the nearest face the ray enters from outside (§4.2).
func (s Shape) hitBox(e *Element, ray shapeRay) (*IntersectionPoint, *IntersectionPoint) {
	inv := e.InverseWorldMatrix()
	localOrigin := mulPoint(inv, ray.Origin)
	localDir := mulDirection(inv, ray.Dir)

	half := mgl32.Vec3{s.Size.X() / 2, s.Size.Y() / 2, s.Size.Z() / 2}
	if half.X() == 0 && half.Y() == 0 && half.Z() == 0 {
		half = mgl32.Vec3{0.5, 0.5, 0.5}
	}

	type faceHit struct {
		t     float32
		point mgl32.Vec3
		uv    mgl32.Vec2
	}
	var best *faceHit

	axes := [3]func(mgl32.Vec3) float32{
		func(v mgl32.Vec3) float32 { return v.X() },
		func(v mgl32.Vec3) float32 { return v.Y() },
		func(v mgl32.Vec3) float32 { return v.Z() },
	}
	halves := [3]float32{half.X(), half.Y(), half.Z()}

	for axis := 0; axis < 3; axis++ {
		dirComp := axes[axis](localDir)
		if dirComp == 0 {
			continue
		}
		for _, sign := range [2]float32{1, -1} {
			plane := halves[axis] * sign
			originComp := axes[axis](localOrigin)
			t := (plane - originComp) / dirComp
			if t < 0 {
				continue
			}
			pt := localOrigin.Add(localDir.Mul(t))
			// ray must enter from outside: the outward normal at this face is
			// `sign` along `axis`; reject if the ray direction does not point
			// against that normal (i.e. it isn't entering).
			diff := mgl32.Vec3{sign, 0, 0}
			if axis == 1 {
				diff = mgl32.Vec3{0, sign, 0}
			} else if axis == 2 {
				diff = mgl32.Vec3{0, 0, sign}
			}
			if diff.Dot(localDir) >= 0 {
				continue
			}
			if !withinFaceBounds(pt, axis, halves) {
				continue
			}
			if best == nil || t < best.t {
				best = &faceHit{t: t, point: pt, uv: faceUV(pt, axis, halves)}
			}
		}
	}
	if best == nil {
		return nil, nil
	}
	world := ray.Origin.Add(ray.Dir.Mul(best.t))
	return newIntersection(e, ray.TouchID, best.point, world, best.uv), nil
}

func withinFaceBounds(pt mgl32.Vec3, axis int, halves [3]float32) bool {
	switch axis {
	case 0:
		return absf(pt.Y()) <= halves[1] && absf(pt.Z()) <= halves[2]
	case 1:
		return absf(pt.X()) <= halves[0] && absf(pt.Z()) <= halves[2]
	default:
		return absf(pt.X()) <= halves[0] && absf(pt.Y()) <= halves[1]
	}
}

func faceUV(pt mgl32.Vec3, axis int, halves [3]float32) mgl32.Vec2 {
	switch axis {
	case 0:
		return mgl32.Vec2{pt.Y() / halves[1], pt.Z() / halves[2]}
	case 1:
		return mgl32.Vec2{pt.X() / halves[0], pt.Z() / halves[2]}
	default:
		return mgl32.Vec2{pt.X() / halves[0], pt.Y() / halves[1]}
	}
}

// hitSphere solves the unit-sphere quadratic (at·at)t^2 + 2(at·ot)t +
// (ot·ot - 1) = 0 in element space, picking the nearest non-negative root.
func (s Shape) hitSphere(e *Element, ray shapeRay) (*IntersectionPoint, *IntersectionPoint) {
	inv := e.InverseWorldMatrix()
	o := mulPoint(inv, ray.Origin)
	d := mulDirection(inv, ray.Dir)

	a := d.Dot(d)
	b := 2 * d.Dot(o)
	c := o.Dot(o) - 1
	disc := b*b - 4*a*c
	if disc < 0 || a == 0 {
		return nil, nil
	}
	sq := sqrtf(disc)
	t0 := (-b - sq) / (2 * a)
	t1 := (-b + sq) / (2 * a)
	t := t0
	if t < 0 {
		t = t1
	}
	if t < 0 {
		return nil, nil
	}
	local := o.Add(d.Mul(t))
	world := ray.Origin.Add(ray.Dir.Mul(t))
	theta := atan2f(local.Z(), local.X())
	phi := acosf(clampf(local.Y(), -1, 1))
	surface := mgl32.Vec2{theta, phi}
	return newIntersection(e, ray.TouchID, local, world, surface), nil
}
