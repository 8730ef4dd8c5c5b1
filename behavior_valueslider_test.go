package interact3d

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestValueSlider2DBehaviorWritesFastestTouchVelocity(t *testing.T) {
	ctx := NewContext(DefaultConfig())
	e := newElement(ctx, "slider")

	slow := &Touch{ID: 1, Velocity: mgl32.Vec2{0.01, 0}}
	fast := &Touch{ID: 2, Velocity: mgl32.Vec2{0.5, 0.5}}
	ctx.touches.Set(1, slow)
	ctx.touches.Set(2, fast)
	e.Touching.Set(1, nil)
	e.Touching.Set(2, nil)

	b := NewValueSlider2DBehavior(ValueSliderParams{IndexX: 0, IndexY: 1})
	b.Behave(e, ctx)

	assert.Equal(t, float32(0.5), e.Values.Values[0])
	assert.Equal(t, float32(0.5), e.Values.Values[1])
}

func TestValueSlider2DBehaviorClampsWhenConfigured(t *testing.T) {
	ctx := NewContext(DefaultConfig())
	e := newElement(ctx, "slider")
	fast := &Touch{ID: 1, Velocity: mgl32.Vec2{10, -10}}
	ctx.touches.Set(1, fast)
	e.Touching.Set(1, nil)

	b := NewValueSlider2DBehavior(ValueSliderParams{
		IndexX: 0, IndexY: 1, Clamp: true,
		ClampMin: mgl32.Vec2{-1, -1}, ClampMax: mgl32.Vec2{1, 1},
	})
	b.Behave(e, ctx)

	assert.Equal(t, float32(1), e.Values.Values[0])
	assert.Equal(t, float32(-1), e.Values.Values[1])
}

func TestValueSlider2DBehaviorNoTouchingIsNoop(t *testing.T) {
	ctx := NewContext(DefaultConfig())
	e := newElement(ctx, "slider")
	b := NewValueSlider2DBehavior(ValueSliderParams{IndexX: 0, IndexY: 1})
	b.Behave(e, ctx)
	assert.Nil(t, e.Values.Values)
}
