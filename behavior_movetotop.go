package interact3d

// moveToTopState is the per-element marker MoveToTopBehavior reads back;
// no fields are needed beyond its existence, so it doubles as a sentinel.
type moveToTopState struct{}

func (moveToTopState) Copy() AuxiliaryObject              { return moveToTopState{} }
func (moveToTopState) UpdateFrom(other AuxiliaryObject) {}

// MoveToTopParams configures the z-depth spacing MoveToTopBehavior assigns
// to siblings once one of them is touched.
type MoveToTopParams struct {
	Top      float32
	Distance float32
}

// MoveToTopBehavior reassigns z-depth among siblings when self or a
// descendant goes from untouched to touched, so the touched element renders
// frontmost (§4.7). Further touches that begin while one is already held do
// not trigger it again.
// Behave itself never writes sibling state directly — it only enqueues a
// request — because move-to-top is the one behavior the spec calls out as
// needing to run outside the parallel element phase (§5): the actual
// sibling rewrite happens in the serialized post-pass in hittest.go.
type MoveToTopBehavior struct {
	id     BehaviorID
	Params MoveToTopParams
}

func NewMoveToTopBehavior(params MoveToTopParams) *MoveToTopBehavior {
	return &MoveToTopBehavior{id: NewBehaviorID(), Params: params}
}

func (b *MoveToTopBehavior) ID() BehaviorID { return b.id }

func (b *MoveToTopBehavior) Behave(e *Element, ctx *Context) {
	key := behaviorAuxKey(b.id)
	if e.Touching.Len() == 0 && !anyChildTouching(e) {
		delete(e.Values.Objects, key)
		return
	}
	if _, wasTouched := e.Values.Object(key); wasTouched {
		return
	}
	e.Values.SetObject(key, moveToTopState{})
	ctx.enqueueMoveToTop(e)
}

func anyChildTouching(e *Element) bool {
	for _, c := range e.Children {
		if c.Touching.Len() > 0 || anyChildTouching(c) {
			return true
		}
	}
	return false
}

// runMoveToTopPostPass applies every queued move-to-top request serially:
// the touched element's z is set to Top, and each other sibling's z to
// Top + k*Distance, with k counting 1, 2, ... in the unspecified iteration
// order of the sibling map.
func (ctx *Context) runMoveToTopPostPass() {
	for _, e := range ctx.moveToTopRequests {
		e.moveToTopAmongSiblings()
	}
	ctx.moveToTopRequests = nil
}

func (e *Element) moveToTopAmongSiblings() {
	siblings := e.siblingSet()
	if len(siblings) == 0 {
		return
	}
	var params MoveToTopParams
	for _, b := range e.Behaviors {
		if mtt, ok := b.(*MoveToTopBehavior); ok {
			params = mtt.Params
			break
		}
	}
	pos := e.DisplayTransform.Position
	pos[2] = params.Top
	e.DisplayTransform.SetPosition(pos)

	k := float32(1)
	for _, sib := range siblings {
		if sib == e {
			continue
		}
		sp := sib.DisplayTransform.Position
		sp[2] = params.Top + k*params.Distance
		sib.DisplayTransform.SetPosition(sp)
		k++
	}
}

// siblingSet returns e's parent's children (or the Context's roots if e is
// a root), including e itself.
func (e *Element) siblingSet() []*Element {
	if e.Parent != nil {
		out := make([]*Element, 0, len(e.Parent.Children))
		for _, c := range e.Parent.Children {
			out = append(out, c)
		}
		return out
	}
	if e.ctx == nil {
		return nil
	}
	out := make([]*Element, 0, len(e.ctx.roots))
	for _, r := range e.ctx.roots {
		out = append(out, r)
	}
	return out
}
