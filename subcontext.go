package interact3d

import "github.com/go-gl/mathgl/mgl32"

// SubContext is a nested Context fed from a host Element's own hit
// intersections (§4.8), adapted from willow's Camera — the one place in
// the teacher where a coordinate frame nested inside a parent's already
// exists (camera.go's Camera.Viewport / screenToWorld).
type SubContext struct {
	Host    *Element
	Inner   *Context
	Options SubContextOptions
}

func newSubContext(host *Element, opts SubContextOptions) *SubContext {
	return &SubContext{
		Host:    host,
		Inner:   NewContext(opts.Config),
		Options: opts,
	}
}

// Step drives the inner Context with touches derived from the host
// element's Hitting (or Touching, per Options.UseTouching) set, mapped
// into the element's surface space and tagged with the original touch ids
// and forces, then steps it with the parent's delta-time (§4.8). It is not
// traversed by the outer context's hit-testing or path queries.
func (sc *SubContext) Step(parentDeltaTime float32) error {
	source := sc.Host.Hitting
	if sc.Options.UseTouching {
		source = sc.Host.Touching
	}
	snapshot := source.Snapshot()
	samples := make([]TouchSample, 0, len(snapshot))
	for id, ip := range snapshot {
		if ip == nil {
			continue
		}
		outerTouch, ok := sc.Host.ctx.touches.Get(id)
		force := float32(1)
		var attached *AttachedMouse
		if ok {
			force = outerTouch.Force
			attached = outerTouch.Attached
		}
		samples = append(samples, TouchSample{
			ID:       id,
			Point:    ip.Surface,
			Force:    force,
			Attached: attached,
		})
	}
	return sc.Inner.MainLoop(FrameInput{
		Touches:    samples,
		View:       mgl32.Ident4(),
		Projection: mgl32.Ident4(),
		Aspect:     1,
		DeltaTime:  parentDeltaTime,
	})
}
