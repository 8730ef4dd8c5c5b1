package interact3d

// instantiate recursively builds a brand new Element tree from a Prototype,
// wiring child back-references to the new parent (§4.5: "Instantiation is
// recursive over the prototype's children; child back-references to the
// new parent are wired").
func instantiate(ctx *Context, proto *Prototype, parent *Element) *Element {
	e := newElement(ctx, proto.ID)
	e.applyPrototypeFields(proto)
	e.Parent = parent
	for _, childProto := range proto.Children {
		if childProto.ID == proto.ID {
			logDroppedPrototype(proto.ID, childProto.ID, ErrSelfParentID)
			continue
		}
		child := instantiate(ctx, childProto, e)
		e.Children[child.ID] = child
	}
	return e
}

// applyPrototypeFields copies every Prototype field onto e. It does not
// touch fade/lifecycle state: instantiate calls it on a fresh element that
// starts FadingIn per newElement, and updateFrom calls it after handling
// the lifecycle re-entry rule itself.
func (e *Element) applyPrototypeFields(p *Prototype) {
	e.Name = p.Name
	e.Active = p.Active
	e.Transparent = p.Transparent
	if err := p.Shape.Validate(); err != nil {
		logInvalidShapeKind(e.ID, p.Shape.Kind, err)
	} else {
		e.Shape = p.Shape
	}
	e.OnlyHitIfParentIsHit = p.OnlyHitIfParentIsHit
	e.FadeInTime = p.FadeInTime
	e.FadeInDelay = p.FadeInDelay
	e.FadeOutTime = p.FadeOutTime
	e.FadeOutDelay = p.FadeOutDelay
	e.TransformationFollowTime = p.TransformationFollowTime
	e.TransformApply = p.TransformApply
	e.Behaviors = p.Behaviors
	e.Environment = p.Environment
	if p.AttachedValues != nil {
		if e.Values == nil {
			e.Values = NewAttachedValues()
		}
		e.Values.UpdateFrom(p.AttachedValues)
	}
	if p.DisplayTransform != nil {
		if e.TransformationFollowTime > 0 {
			e.TargetTransform.UpdateFrom(p.DisplayTransform, ApplyAll)
		} else {
			e.DisplayTransform.UpdateFrom(p.DisplayTransform, ApplyAll)
			e.TargetTransform.UpdateFrom(p.DisplayTransform, ApplyAll)
		}
	}
	if p.SubContext != nil && e.Sub == nil {
		e.Sub = newSubContext(e, *p.SubContext)
	}
}

// updateFrom applies §4.4's transformation-follow rule (write to
// TargetTransform when TransformationFollowTime > 0, else directly) and
// triggers the §4.3 re-entry rule when the element is currently FadingOut.
func (e *Element) updateFrom(p *Prototype) {
	if e.fade.state == FadingOut {
		e.reenterFadingIn()
	}
	e.applyPrototypeFields(p)
}

// updateChildren implements Element.update_children (§4.5): diff p's
// Children against e's live Children map at one level of the tree.
func (e *Element) updateChildren(removeMissing bool, prototypes map[ElementID]*Prototype) {
	seen := make(map[ElementID]bool, len(prototypes))
	for id, proto := range prototypes {
		if id == e.ID {
			logDroppedPrototype(e.ID, id, ErrSelfParentID)
			continue
		}
		seen[id] = true
		if existing, ok := e.Children[id]; ok {
			existing.updateFrom(proto)
			continue
		}
		child := instantiate(e.ctx, proto, e)
		e.Children[id] = child
	}
	if removeMissing {
		for id, child := range e.Children {
			if !seen[id] {
				child.startDeletion()
			}
		}
	}
	e.fire(OnChildrenUpdated, nil, nil)
}

// addOrUpdateElements implements Context.add_or_update_elements (§4.5) at
// the root level.
func (ctx *Context) addOrUpdateElements(removeMissing bool, prototypes []*Prototype) {
	seen := make(map[ElementID]bool, len(prototypes))
	for _, proto := range prototypes {
		seen[proto.ID] = true
		if existing, ok := ctx.roots[proto.ID]; ok {
			existing.updateFrom(proto)
			continue
		}
		e := instantiate(ctx, proto, nil)
		ctx.roots[proto.ID] = e
	}
	if removeMissing {
		for id, e := range ctx.roots {
			if !seen[id] {
				e.startDeletion()
			}
		}
	}
	ctx.elementsUpdated = true
}
