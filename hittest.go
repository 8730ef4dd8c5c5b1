package interact3d

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/sync/errgroup"
)

// hitTestPhase implements §4.6 step 7: for each touch, build a world ray,
// test every active element in the flat list, depth-sort the results, and
// keep a transparency-aware prefix. One goroutine per touch when
// Config.UseParallel — safe because each touch only ever writes into the
// Hovering map of the elements it actually hits, and different touches
// never write the same map entry (§5 ii).
func (ctx *Context) hitTestPhase() {
	touches := ctx.touches.Snapshot()
	if ctx.Config.UseParallel {
		var g errgroup.Group
		for _, t := range touches {
			t := t
			g.Go(func() error {
				ctx.hitTestOneTouch(t)
				return nil
			})
		}
		_ = g.Wait()
		return
	}
	for _, t := range touches {
		ctx.hitTestOneTouch(t)
	}
}

type rankedIntersection struct {
	element *Element
	ip      *IntersectionPoint
}

func (ctx *Context) hitTestOneTouch(t *Touch) {
	origin, dir := ctx.computeRay(t.Point)
	t.Origin = origin
	t.ViewDir = dir
	ray := shapeRay{TouchID: t.ID, Origin: origin, Dir: dir}

	var hits []rankedIntersection
	for _, e := range ctx.flat {
		if !e.Active {
			continue
		}
		ip, _ := e.hitTest(ray)
		if ip == nil {
			continue
		}
		ip.Depth = ctx.screenDepth(ip.World)
		hits = append(hits, rankedIntersection{element: e, ip: ip})
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].ip.Depth < hits[j].ip.Depth })

	var attached []ElementID
	for _, h := range hits {
		h.element.Hovering.Set(t.ID, h.ip)
		attached = append(attached, h.element.ID)
		if !h.element.Transparent {
			break // first opaque element terminates the occlusion chain
		}
	}
	t.AttachedObject = attached
}

// computeRay unprojects a normalized screen-space point into a world-space
// ray using the inverse combined projection-aspect and inverse view
// matrices computed in MainLoop step 1 (§6).
func (ctx *Context) computeRay(point mgl32.Vec2) (origin, dir mgl32.Vec3) {
	clip := mgl32.Vec4{point.X(), point.Y(), 1, 1}
	localPoint4 := ctx.invProjAspect.Mul4x1(clip)
	local := mgl32.Vec3{localPoint4.X(), localPoint4.Y(), localPoint4.Z()}
	world := mulPoint(ctx.invView, local)
	origin = ctx.viewPosition
	dir = world.Sub(origin)
	if dir.Len() > 0 {
		dir = dir.Normalize()
	} else {
		dir = ctx.viewDirection
	}
	return origin, dir
}

// screenDepth transforms a world-space point through view·projection-with-
// aspect and returns the z/w depth key used by the §4.6 step 7c sort.
func (ctx *Context) screenDepth(world mgl32.Vec3) float32 {
	clip := ctx.projAspect.Mul4(ctx.view).Mul4x1(mgl32.Vec4{world.X(), world.Y(), world.Z(), 1})
	if clip.W() == 0 {
		return clip.Z()
	}
	return clip.Z() / clip.W()
}

// elementPhase implements §4.6 step 8: per-element reconciliation of
// hovering/hitting/touching, fade advance, transform follow, and behavior
// execution. Parallel across elements when Config.UseParallel, except
// sibling-rewriting behaviors (move-to-top) which always run serially in a
// post-pass per §5's "Transform-cache discipline" note.
func (ctx *Context) elementPhase() {
	ctx.moveToTopRequests = nil
	if ctx.Config.UseParallel {
		var g errgroup.Group
		for _, e := range ctx.flat {
			e := e
			g.Go(func() error {
				ctx.elementStep(e)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for _, e := range ctx.flat {
			ctx.elementStep(e)
		}
	}
	ctx.runMoveToTopPostPass()
}

func (ctx *Context) elementStep(e *Element) {
	e.expireTouching(ctx.Config.ConsiderReleasedAfter)
	e.expireHitting(ctx.Config.ConsiderReleasedAfter)
	e.refreshFlags()
	e.refreshIntersections(ctx)
	e.advance(ctx.deltaTime)
	if e.TransformationFollowTime > 0 {
		e.DisplayTransform.FollowWithDamper(e.TargetTransform, e.TransformationFollowTime, ctx.deltaTime, e.TransformApply)
	}
	if e.Touched {
		e.fire(OnInteracting, nil, nil)
	}
	e.dispatchMouseEvents()
	e.runBehaviors(ctx)
	e.processHoveringTransitions(ctx.Config)
	// Refresh again so Hit/Touched reflect this frame's hover transitions
	// when MainLoop returns.
	e.refreshFlags()
	if e.Sub != nil {
		if err := e.Sub.Step(ctx.deltaTime); err != nil {
			Log.WithField("element", e.ID).WithError(err).Error("interact3d: sub-context step failed")
		}
	}
}

// expireTouching implements §4.6 step 8a.
func (e *Element) expireTouching(considerReleasedAfter int) {
	for _, id := range e.Touching.Keys() {
		t, ok := e.ctx.touches.Get(id)
		if !ok || t.ExpireFrames > considerReleasedAfter || !t.Pressed {
			ip, _ := e.Touching.Get(id)
			e.Touching.Delete(id)
			e.fire(OnTouchEnd, t, ip)
			if e.Touching.Len() == 0 {
				e.fire(OnInteractionEnd, t, ip)
			}
		}
	}
}

// expireHitting implements §4.6 step 8b.
func (e *Element) expireHitting(considerReleasedAfter int) {
	for _, id := range e.Hitting.Keys() {
		t, ok := e.ctx.touches.Get(id)
		if !ok || t.ExpireFrames > considerReleasedAfter {
			ip, _ := e.Hitting.Get(id)
			e.Hitting.Delete(id)
			e.fire(OnHitEnd, t, ip)
		}
	}
}

// refreshFlags implements §4.6 step 8c.
func (e *Element) refreshFlags() {
	e.Hit = e.Hitting.Len() > 0
	e.Touched = e.Touching.Len() > 0
}

// refreshIntersections implements §4.6 step 8d: recompute hit_test for
// every touch currently in Hitting/Touching from the current frame's ray.
func (e *Element) refreshIntersections(ctx *Context) {
	for _, id := range unionKeys(e.Hitting.Keys(), e.Touching.Keys()) {
		t, ok := ctx.touches.Get(id)
		if !ok {
			continue
		}
		ray := shapeRay{TouchID: t.ID, Origin: t.Origin, Dir: t.ViewDir}
		hit, persistent := e.hitTest(ray)
		if hit != nil {
			hit.Depth = ctx.screenDepth(hit.World)
			if _, inHitting := e.Hitting.Get(id); inHitting {
				e.Hitting.Set(id, hit)
			}
			if _, inTouching := e.Touching.Get(id); inTouching {
				e.Touching.Set(id, hit)
			}
		} else if persistent != nil {
			if _, inTouching := e.Touching.Get(id); inTouching {
				e.Touching.Set(id, persistent)
			}
		} else {
			// Slide-off: keep the touching entry but clear its intersection
			// slot, per invariant 1 of §8.
			if _, inTouching := e.Touching.Get(id); inTouching {
				e.Touching.Set(id, nil)
			}
		}
	}
}

func unionKeys(a, b []int32) []int32 {
	seen := make(map[int32]bool, len(a)+len(b))
	out := make([]int32, 0, len(a)+len(b))
	for _, k := range a {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	for _, k := range b {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}

func (e *Element) dispatchMouseEvents() {
	for _, id := range e.Hitting.Keys() {
		t, ok := e.ctx.touches.Get(id)
		if !ok || t.Attached == nil {
			continue
		}
		ip, _ := e.Hitting.Get(id)
		if t.Attached.ScrollVertical != 0 {
			e.fireEvent(InteractionEvent{Type: OnVerticalMouseWheelChange, Element: e, Touch: t, Intersection: ip, WheelDelta: t.Attached.ScrollVertical})
		}
		if t.Attached.ScrollHorizontal != 0 {
			e.fireEvent(InteractionEvent{Type: OnHorizontalMouseWheelChange, Element: e, Touch: t, Intersection: ip, WheelDelta: t.Attached.ScrollHorizontal})
		}
		for _, b := range t.Attached.ButtonsPressed {
			e.fireEvent(InteractionEvent{Type: OnMouseButtonPressed, Element: e, Touch: t, Intersection: ip, Button: b})
		}
		for _, b := range t.Attached.ButtonsReleased {
			e.fireEvent(InteractionEvent{Type: OnMouseButtonReleased, Element: e, Touch: t, Intersection: ip, Button: b})
		}
	}
}

// processHoveringTransitions implements §4.6 step 8j.
func (e *Element) processHoveringTransitions(cfg Config) {
	for _, id := range e.Hovering.Keys() {
		ip, _ := e.Hovering.Get(id)
		t, ok := e.ctx.touches.Get(id)
		// A touch past ConsiderReleasedAfter was just ended by steps 8a/8b;
		// it must not begin a new hit or touch in the same frame.
		if !ok || t.ExpireFrames > cfg.ConsiderReleasedAfter {
			continue
		}
		if _, wasHitting := e.Hitting.Get(id); !wasHitting {
			e.Hitting.Set(id, ip)
			e.fire(OnHitBegin, t, ip)
		} else {
			e.Hitting.Set(id, ip)
		}
		e.fireInteractionTouchBegin(t, ip, cfg)
	}
}

// fireInteractionTouchBegin implements the gated transition described at
// the end of §4.6 step 8j.
func (e *Element) fireInteractionTouchBegin(t *Touch, ip *IntersectionPoint, cfg Config) {
	if t.FramesSincePressed >= cfg.ConsiderNewBefore {
		return
	}
	if _, already := e.Touching.Get(t.ID); already {
		return
	}
	if !t.Pressed {
		return
	}
	wasEmpty := e.Touching.Len() == 0
	e.Touching.Set(t.ID, ip)
	if wasEmpty {
		e.fire(OnInteractionBegin, t, ip)
	}
	e.fire(OnTouchBegin, t, ip)
}
