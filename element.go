package interact3d

import "github.com/go-gl/mathgl/mgl32"

// Element is the stateful per-context realization of a Prototype (§3).
// Invariant maintained by reconcile.go: element.ID == prototype.ID, and
// element.Parent != nil => element.Parent.Children[element.ID] == element.
type Element struct {
	ID   ElementID
	Name string

	Active      bool
	Transparent bool

	Shape                Shape
	OnlyHitIfParentIsHit bool

	FadeInTime   float32
	FadeInDelay  float32
	FadeOutTime  float32
	FadeOutDelay float32

	DisplayTransform *Transform // authoritative
	TargetTransform  *Transform // interpolation target

	TransformationFollowTime float32
	TransformApply           ApplyTransformMode

	worldMatrix    mgl32.Mat4
	inverseMatrix  mgl32.Mat4
	worldDirty     bool

	fade *fadeState

	Hovering *concurrentTouchMap
	Hitting  *concurrentTouchMap
	Touching *concurrentTouchMap

	Children map[ElementID]*Element
	Parent   *Element

	Age float32

	Values      *AttachedValues
	Environment interface{}

	Behaviors []Behavior

	Sub *SubContext

	Hit     bool
	Touched bool

	deleteMe bool

	ctx       *Context
	callbacks *elementCallbacks
}

// newElement constructs an Element in the FadingIn state (§4.3), wiring
// Transform subscription so any mutation invalidates the cached world
// matrix of this element and, recursively, every descendant — the same
// "mark subtree dirty" behavior willow's node.go implements for its 2D
// affine cache, generalized to the spec's explicit synchronous fanout.
func newElement(ctx *Context, id ElementID) *Element {
	e := &Element{
		ID:               id,
		Active:           true,
		DisplayTransform: NewTransform(),
		TargetTransform:  NewTransform(),
		TransformApply:   ApplyAll,
		worldDirty:       true,
		fade:             newFadeState(),
		Hovering:         newConcurrentTouchMap(),
		Hitting:          newConcurrentTouchMap(),
		Touching:         newConcurrentTouchMap(),
		Children:         make(map[ElementID]*Element),
		Values:           NewAttachedValues(),
		ctx:              ctx,
		callbacks:        newElementCallbacks(),
	}
	e.DisplayTransform.Subscribe("element-world-cache", e.markSubtreeDirty)
	return e
}

// markSubtreeDirty invalidates this element's cached world matrix and
// recurses into every child, matching willow's invalidateAncestorCache /
// markSubtreeDirty discipline (node.go), but propagating downward since the
// spec's matrices compose parent-to-child rather than child-to-ancestor.
func (e *Element) markSubtreeDirty() {
	e.worldDirty = true
	for _, c := range e.Children {
		c.markSubtreeDirty()
	}
}

// WorldMatrix returns the cached world matrix, recomputing it (and nothing
// else) when dirty. This satisfies invariant 6/7 of §8: a fresh read after
// any mutation on self or an ancestor returns the recomputed matrix.
func (e *Element) WorldMatrix() mgl32.Mat4 {
	if !e.worldDirty {
		return e.worldMatrix
	}
	local := e.DisplayTransform.Matrix()
	if e.Parent != nil {
		e.worldMatrix = e.Parent.WorldMatrix().Mul4(local)
	} else {
		e.worldMatrix = local
	}
	e.inverseMatrix = e.worldMatrix.Inv()
	e.worldDirty = false
	return e.worldMatrix
}

// InverseWorldMatrix returns the inverse of WorldMatrix(), recomputed
// together with it.
func (e *Element) InverseWorldMatrix() mgl32.Mat4 {
	e.WorldMatrix()
	return e.inverseMatrix
}

// ElementFade returns the current lifecycle fade scalar in [0, 1].
func (e *Element) ElementFade() float32 { return e.fade.value }

// State returns the current lifecycle state.
func (e *Element) State() LifecycleState { return e.fade.state }

// DeleteMe reports whether the Context should detach this element on the
// next rebuild.
func (e *Element) DeleteMe() bool { return e.deleteMe }

// addChild wires child under e, rejecting an id collision with e itself.
func (e *Element) addChild(child *Element) error {
	if child.ID == e.ID {
		logDroppedPrototype(e.ID, child.ID, ErrSelfParentID)
		return ErrSelfParentID
	}
	if _, exists := e.Children[child.ID]; exists {
		logDroppedPrototype(e.ID, child.ID, ErrDuplicateChildID)
		return ErrDuplicateChildID
	}
	child.Parent = e
	e.Children[child.ID] = child
	child.markSubtreeDirty()
	return nil
}

// detachFromParent removes e from its parent's children map, or from the
// Context's roots if e has no parent. It does not recurse into e's own
// children (deletion clears touches at removal, per §4.3, not earlier).
func (e *Element) detachFromParent() {
	if e.Parent != nil {
		delete(e.Parent.Children, e.ID)
		e.Parent = nil
		return
	}
	if e.ctx != nil {
		delete(e.ctx.roots, e.ID)
	}
}

// clearTouches empties all three touch maps; called when an element is
// finally removed (§4.3: "Deletion does not emit touch-end events; touches
// are cleared at removal").
func (e *Element) clearTouches() {
	e.Hovering.Clear()
	e.Hitting.Clear()
	e.Touching.Clear()
}

// hitTest applies the only_hit_if_parent_is_hit gate around the shape's
// pureHitTest (§4.2's public hit_test). The gate is evaluated against the
// *current* frame's parent Hit flag, lazily per touch, per spec.md §9's
// recommended resolution of that ambiguity.
func (e *Element) hitTest(ray shapeRay) (hit *IntersectionPoint, persistent *IntersectionPoint) {
	if e.OnlyHitIfParentIsHit && e.Parent != nil && !e.Parent.Hit {
		return nil, nil
	}
	defer func() {
		if r := recover(); r != nil {
			logHitTestPanic(e.ID, r)
			hit, persistent = nil, nil
		}
	}()
	return e.Shape.pureHitTest(e, ray)
}

// flattenDepthFirst appends e and every descendant, depth-first, to out.
func (e *Element) flattenDepthFirst(out []*Element) []*Element {
	out = append(out, e)
	for _, c := range e.Children {
		out = c.flattenDepthFirst(out)
	}
	return out
}
