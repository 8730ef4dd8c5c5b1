package interact3d

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubContextStepFeedsInnerContextFromHostHitting(t *testing.T) {
	ctx := NewContext(DefaultConfig())
	host := newElement(ctx, "host")
	ctx.roots["host"] = host

	opts := SubContextOptions{Config: DefaultConfig()}
	host.Sub = newSubContext(host, opts)
	innerPanel := rectAt("innerPanel", 5)
	host.Sub.Inner.AddOrUpdateElements(true, []*Prototype{innerPanel})

	touch := &Touch{ID: 1, Force: 1, Attached: nil}
	ctx.touches.Set(1, touch)
	host.Hitting.Set(1, &IntersectionPoint{TouchID: 1, Surface: mgl32.Vec2{0, 0}})

	require.NoError(t, host.Sub.Step(1.0/60))

	inner := host.Sub.Inner.Roots()["innerPanel"]
	assert.True(t, inner.Touched, "the inner context should have registered the mapped surface point as a touch")
}

func TestSubContextStepUsesTouchingWhenConfigured(t *testing.T) {
	ctx := NewContext(DefaultConfig())
	host := newElement(ctx, "host")
	ctx.roots["host"] = host

	opts := SubContextOptions{UseTouching: true, Config: DefaultConfig()}
	host.Sub = newSubContext(host, opts)
	innerPanel := rectAt("innerPanel", 5)
	host.Sub.Inner.AddOrUpdateElements(true, []*Prototype{innerPanel})

	touch := &Touch{ID: 1, Force: 1}
	ctx.touches.Set(1, touch)
	host.Touching.Set(1, &IntersectionPoint{TouchID: 1, Surface: mgl32.Vec2{0, 0}})
	// Hitting intentionally left empty to confirm the Touching source is used.

	require.NoError(t, host.Sub.Step(1.0/60))
	inner := host.Sub.Inner.Roots()["innerPanel"]
	assert.True(t, inner.Touched, "the inner context should be fed from host.Touching when UseTouching is set")
}
