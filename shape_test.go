package interact3d

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func elementForShape(s Shape) *Element {
	ctx := NewContext(DefaultConfig())
	e := newElement(ctx, "shape-under-test")
	e.Shape = s
	ctx.roots[e.ID] = e
	e.WorldMatrix() // force the identity cache to populate
	return e
}

func straightRay(x, y float32) shapeRay {
	return shapeRay{TouchID: 1, Origin: mgl32.Vec3{x, y, -5}, Dir: mgl32.Vec3{0, 0, 1}}
}

func TestHitRectangleBoundsAndOutside(t *testing.T) {
	e := elementForShape(ShapeRectangle())

	hit, _ := e.Shape.pureHitTest(e, straightRay(0.4, 0.4))
	assert.NotNil(t, hit, "expected a ray inside the unit-square bounds to hit")

	miss, _ := e.Shape.pureHitTest(e, straightRay(0.6, 0))
	assert.Nil(t, miss, "expected a ray outside the rectangle's half-extent to miss")
}

func TestHitCircleRadiusBoundary(t *testing.T) {
	e := elementForShape(ShapeCircle())

	hit, _ := e.Shape.pureHitTest(e, straightRay(0.3, 0))
	assert.NotNil(t, hit)

	miss, _ := e.Shape.pureHitTest(e, straightRay(0.6, 0))
	assert.Nil(t, miss)
}

func TestHitSegmentRespectsHoleRadiusAndCycleSpan(t *testing.T) {
	e := elementForShape(ShapeSegment(0.2, 0.5, 0))

	insideHole, _ := e.Shape.pureHitTest(e, straightRay(0.05, 0))
	assert.Nil(t, insideHole, "expected the hole radius to exclude the center")

	onRing, _ := e.Shape.pureHitTest(e, straightRay(0.35, 0))
	assert.NotNil(t, onRing, "expected a point on the ring within the swept cycle to hit")

	behindSweep, _ := e.Shape.pureHitTest(e, straightRay(0, -0.35))
	assert.Nil(t, behindSweep, "expected a half-cycle segment to exclude the unswept half of the ring")
}

func TestHitPolygonEvenOddRule(t *testing.T) {
	verts := []mgl32.Vec2{{-0.5, -0.5}, {0.5, -0.5}, {0.5, 0.5}, {-0.5, 0.5}}
	e := elementForShape(ShapePolygon(verts))

	hit, _ := e.Shape.pureHitTest(e, straightRay(0, 0))
	assert.NotNil(t, hit)

	miss, _ := e.Shape.pureHitTest(e, straightRay(10, 10))
	assert.Nil(t, miss)
}

func TestHitPolygonTooFewVerticesNeverHits(t *testing.T) {
	e := elementForShape(ShapePolygon([]mgl32.Vec2{{0, 0}, {1, 0}}))
	hit, _ := e.Shape.pureHitTest(e, straightRay(0, 0))
	assert.Nil(t, hit)
}

func TestHitBoxNearestFace(t *testing.T) {
	e := elementForShape(ShapeBox(mgl32.Vec3{2, 2, 2}))
	ray := shapeRay{TouchID: 1, Origin: mgl32.Vec3{0, 0, -5}, Dir: mgl32.Vec3{0, 0, 1}}
	hit, _ := e.Shape.pureHitTest(e, ray)
	if hit == nil {
		t.Fatal("expected a straight-on ray to hit the box's near face")
	}
	assert.InDelta(t, -1, hit.Element.Z(), 1e-4, "expected the near face at -half-extent in Z")
}

func TestHitSphereGrazingMiss(t *testing.T) {
	e := elementForShape(ShapeSphere())

	center, _ := e.Shape.pureHitTest(e, shapeRay{TouchID: 1, Origin: mgl32.Vec3{0, 0, -5}, Dir: mgl32.Vec3{0, 0, 1}})
	assert.NotNil(t, center)

	wide, _ := e.Shape.pureHitTest(e, shapeRay{TouchID: 1, Origin: mgl32.Vec3{2, 0, -5}, Dir: mgl32.Vec3{0, 0, 1}})
	assert.Nil(t, wide, "expected a ray entirely outside the unit sphere's radius to miss")
}

func TestHitInfinitePlaneAlwaysHitsNonParallelRay(t *testing.T) {
	e := elementForShape(ShapeInfinitePlane())
	hit, _ := e.Shape.pureHitTest(e, straightRay(100, 100))
	assert.NotNil(t, hit, "an infinite plane has no bounds to clip against")
}

func TestHitInfinitePlaneParallelRayMisses(t *testing.T) {
	e := elementForShape(ShapeInfinitePlane())
	ray := shapeRay{TouchID: 1, Origin: mgl32.Vec3{0, 0, 1}, Dir: mgl32.Vec3{1, 0, 0}}
	hit, _ := e.Shape.pureHitTest(e, ray)
	assert.Nil(t, hit)
}

func TestHitRectangleRayPointingAwayMisses(t *testing.T) {
	e := elementForShape(ShapeRectangle())
	ray := shapeRay{TouchID: 1, Origin: mgl32.Vec3{0, 0, -5}, Dir: mgl32.Vec3{0, 0, -1}}
	hit, _ := e.Shape.pureHitTest(e, ray)
	assert.Nil(t, hit, "a ray pointing away from the plane must not hit behind its origin")
}

func TestWrapAngleStaysWithinPi(t *testing.T) {
	got := wrapAngle(3 * piF)
	assert.LessOrEqual(t, float64(got), math.Pi+1e-4)
	assert.GreaterOrEqual(t, float64(got), -math.Pi-1e-4)
}
