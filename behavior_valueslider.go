package interact3d

import "github.com/go-gl/mathgl/mgl32"

// ValueSliderParams configures ValueSlider2DBehavior.
type ValueSliderParams struct {
	IndexX, IndexY int
	ClampMin       mgl32.Vec2
	ClampMax       mgl32.Vec2
	Clamp          bool
}

// ValueSlider2DBehavior writes element.Values.Values at two indices from
// the fastest touching touch's screen-space velocity, optionally clamped
// (§4.7). The velocity is used as is; it is not projected onto any plane.
type ValueSlider2DBehavior struct {
	id     BehaviorID
	Params ValueSliderParams
}

func NewValueSlider2DBehavior(params ValueSliderParams) *ValueSlider2DBehavior {
	return &ValueSlider2DBehavior{id: NewBehaviorID(), Params: params}
}

func (b *ValueSlider2DBehavior) ID() BehaviorID { return b.id }

func (b *ValueSlider2DBehavior) Behave(e *Element, ctx *Context) {
	fastest := fastestTouch(e, ctx)
	if fastest == nil {
		return
	}
	needed := b.Params.IndexX
	if b.Params.IndexY > needed {
		needed = b.Params.IndexY
	}
	e.Values.Fill(needed + 1)

	x := fastest.Velocity.X()
	y := fastest.Velocity.Y()
	if b.Params.Clamp {
		x = clampf(x, b.Params.ClampMin.X(), b.Params.ClampMax.X())
		y = clampf(y, b.Params.ClampMin.Y(), b.Params.ClampMax.Y())
	}
	e.Values.Values[b.Params.IndexX] = x
	e.Values.Values[b.Params.IndexY] = y
}

// fastestTouch returns the touching touch with the largest squared screen
// velocity, or nil if none are touching.
func fastestTouch(e *Element, ctx *Context) *Touch {
	var best *Touch
	var bestSq float32 = -1
	for _, id := range e.Touching.Keys() {
		t, ok := ctx.touches.Get(id)
		if !ok {
			continue
		}
		sq := t.Velocity.X()*t.Velocity.X() + t.Velocity.Y()*t.Velocity.Y()
		if sq > bestSq {
			bestSq = sq
			best = t
		}
	}
	return best
}
