package interact3d

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rectAt(id ElementID, z float32) *Prototype {
	p := NewPrototype(id)
	p.Shape = ShapeRectangle()
	p.DisplayTransform = NewTransform()
	p.DisplayTransform.SetPosition(mgl32.Vec3{0, 0, z})
	return p
}

// Scenario S1: a pressed touch landing inside an element's bounds produces
// hit_begin, interaction_begin, and touch_begin on the first frame it is
// sighted, with both Hit and Touched observable immediately after.
func TestScenarioS1HitBegin(t *testing.T) {
	ctx := NewContext(DefaultConfig())
	ctx.AddOrUpdateElements(true, []*Prototype{rectAt("panel", 5)})

	var gotHitBegin, gotInteractionBegin, gotTouchBegin bool
	e := ctx.Roots()["panel"]
	e.On(OnHitBegin, func(ev InteractionEvent) { gotHitBegin = true })
	e.On(OnInteractionBegin, func(ev InteractionEvent) { gotInteractionBegin = true })
	e.On(OnTouchBegin, func(ev InteractionEvent) { gotTouchBegin = true })

	fb := NewFrameBuilder()
	require.NoError(t, ctx.MainLoop(fb.Frame(Touch1(1, 0, 0, 1))))

	assert.True(t, gotHitBegin)
	assert.True(t, gotInteractionBegin)
	assert.True(t, gotTouchBegin)
	assert.True(t, e.Hit)
	assert.True(t, e.Touched)
}

// Scenario S2: a transparent element in front of an opaque one both receive
// the hit; an element behind the opaque one is occluded and does not.
func TestScenarioS2Transparency(t *testing.T) {
	ctx := NewContext(DefaultConfig())

	front := rectAt("front", 2) // nearer the viewer
	front.Transparent = true
	mid := rectAt("mid", 5)
	back := rectAt("back", 8)

	ctx.AddOrUpdateElements(true, []*Prototype{front, mid, back})

	fb := NewFrameBuilder()
	require.NoError(t, ctx.MainLoop(fb.Frame(Touch1(1, 0, 0, 1))))

	assert.True(t, ctx.Roots()["front"].Hit, "transparent front element should register a hit")
	assert.True(t, ctx.Roots()["mid"].Hit, "first opaque element in the ray should register a hit")
	assert.False(t, ctx.Roots()["back"].Hit, "element behind the first opaque occluder should not register a hit")
}

// Scenario S3: once a touch is inside an element's touching set, sliding the
// ray off the element's finite bounds (but staying on its infinite plane)
// keeps the touching membership and replaces the intersection with the
// persistent, unbounded plane-projected point rather than ending the touch
// outright (§4.2).
func TestScenarioS3SlideOff(t *testing.T) {
	ctx := NewContext(DefaultConfig())
	ctx.AddOrUpdateElements(true, []*Prototype{rectAt("panel", 5)})
	e := ctx.Roots()["panel"]

	fb := NewFrameBuilder()
	require.NoError(t, ctx.MainLoop(fb.Frame(Touch1(1, 0, 0, 1))))
	require.True(t, e.Touched, "expected the touch to land inside bounds on the first frame")

	// Slide the same touch id far outside the rectangle's local bounds
	// (local x = 5*point.x here, so 0.5 lands well past the 0.5 half-extent)
	// while staying on the rectangle's plane.
	require.NoError(t, ctx.MainLoop(fb.Frame(Touch1(1, 0.5, 0, 1))))

	ip, stillMember := e.Touching.Get(1)
	assert.True(t, stillMember, "slide-off must keep touching membership")
	if assert.NotNil(t, ip, "slide-off on the same plane keeps the persistent intersection") {
		assert.InDelta(t, 2.5, ip.Element.X(), 1e-4, "persistent point reflects the unbounded plane projection")
	}
	assert.True(t, e.Touched, "touched flag remains true while the touch is still live")
}

// Releasing a touch (dropping it from the next frame's sample batch) expires
// it after ConsiderReleasedAfter frames and ends the touch/interaction.
func TestTouchReleaseEndsInteractionAfterGrace(t *testing.T) {
	ctx := NewContext(DefaultConfig())
	ctx.AddOrUpdateElements(true, []*Prototype{rectAt("panel", 5)})
	e := ctx.Roots()["panel"]

	var endedTouch, endedInteraction bool
	e.On(OnTouchEnd, func(ev InteractionEvent) { endedTouch = true })
	e.On(OnInteractionEnd, func(ev InteractionEvent) { endedInteraction = true })

	fb := NewFrameBuilder()
	require.NoError(t, ctx.MainLoop(fb.Frame(Touch1(1, 0, 0, 1))))
	require.True(t, e.Touched)

	// Drop the touch from the batch; ConsiderReleasedAfter=1 means it survives
	// one empty frame before expiring on the next.
	require.NoError(t, ctx.MainLoop(fb.Frame()))
	require.NoError(t, ctx.MainLoop(fb.Frame()))

	assert.True(t, endedTouch)
	assert.True(t, endedInteraction)
	assert.False(t, e.Touched)
}

// MainLoop is not reentrant (§5): a concurrent call while one is already in
// flight must report ErrConcurrencyViolation rather than block or corrupt
// the flat list.
func TestMainLoopReentrantCallReturnsConcurrencyViolation(t *testing.T) {
	ctx := NewContext(DefaultConfig())
	ctx.mu.Lock()
	defer ctx.mu.Unlock()

	err := ctx.MainLoop(NewFrameBuilder().Frame())
	assert.ErrorIs(t, err, ErrConcurrencyViolation)
}

func TestWorldMatrixRecomputesAfterParentMutation(t *testing.T) {
	ctx := NewContext(DefaultConfig())
	parent := rectAt("parent", 0)
	child := NewPrototype("child")
	child.Shape = ShapeRectangle()
	parent.Children = map[ElementID]*Prototype{"child": child}

	ctx.AddOrUpdateElements(true, []*Prototype{parent})
	p := ctx.Roots()["parent"]
	c := p.Children["child"]

	m1 := c.WorldMatrix()
	p.DisplayTransform.SetPosition(mgl32.Vec3{1, 2, 3})
	m2 := c.WorldMatrix()
	if m1 == m2 {
		t.Fatal("expected child world matrix to change after parent's transform mutated")
	}
}
