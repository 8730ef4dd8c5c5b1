package interact3d

// mouseWheelScrollState holds the per-element decaying scroll velocity
// MouseWheelScrollBehavior drives, keyed under the reserved aux prefix.
type mouseWheelScrollState struct {
	Vertical   float32
	Horizontal float32
}

func (s *mouseWheelScrollState) Copy() AuxiliaryObject {
	c := *s
	return &c
}

func (s *mouseWheelScrollState) UpdateFrom(other AuxiliaryObject) {
	if o, ok := other.(*mouseWheelScrollState); ok {
		*s = *o
	}
}

// MouseWheelScrollParams configures MouseWheelScrollBehavior's flick decay.
type MouseWheelScrollParams struct {
	FlickTime float32
}

// MouseWheelScrollBehavior scrolls element.Values.Values[0:2] using
// attached-mouse wheel accumulators, decaying via a damper toward zero
// with time constant FlickTime once the wheel stops moving (§4.7), the
// same accumulator-reset-on-threshold pattern as willow's detectPinch.
type MouseWheelScrollBehavior struct {
	id     BehaviorID
	Params MouseWheelScrollParams
}

func NewMouseWheelScrollBehavior(params MouseWheelScrollParams) *MouseWheelScrollBehavior {
	return &MouseWheelScrollBehavior{id: NewBehaviorID(), Params: params}
}

func (b *MouseWheelScrollBehavior) ID() BehaviorID { return b.id }

func (b *MouseWheelScrollBehavior) Behave(e *Element, ctx *Context) {
	key := behaviorAuxKey(b.id)
	var state *mouseWheelScrollState
	if existing, ok := e.Values.Object(key); ok {
		state = existing.(*mouseWheelScrollState)
	} else {
		state = &mouseWheelScrollState{}
		e.Values.SetObject(key, state)
	}

	moved := false
	for _, id := range e.Hitting.Keys() {
		t, ok := ctx.touches.Get(id)
		if !ok || t.Attached == nil {
			continue
		}
		if t.Attached.ScrollVertical != 0 || t.Attached.ScrollHorizontal != 0 {
			state.Vertical = t.Attached.ScrollVertical
			state.Horizontal = t.Attached.ScrollHorizontal
			moved = true
		}
	}
	if !moved {
		state.Vertical = dampDelta(state.Vertical, b.Params.FlickTime, ctx.deltaTime)
		state.Horizontal = dampDelta(state.Horizontal, b.Params.FlickTime, ctx.deltaTime)
	}

	e.Values.Fill(2)
	e.Values.Values[0] += state.Horizontal
	e.Values.Values[1] += state.Vertical
}
