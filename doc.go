// Package interact3d is a renderless 3D interaction framework.
//
// Given a dynamic hierarchy of spatial elements and a per-frame batch of
// pointer samples (touch, pen, or mouse, already resolved into normalized
// projective coordinates by the host), a [Context] computes which element
// each pointer is hovering, hitting, and interacting with; dispatches
// lifecycle events; runs per-frame behaviors that transform elements; and
// manages fade-in/fade-out element lifecycles including transitive deletion.
// It draws nothing — consumers read transforms, fade values, and event
// callbacks to drive their own renderer.
//
// # Quick start
//
//	ctx := interact3d.NewContext(interact3d.Config{})
//	root := interact3d.NewPrototype("panel")
//	root.Shape = interact3d.ShapeRectangle()
//	ctx.AddOrUpdateElements(true, []*interact3d.Prototype{root})
//
//	err := ctx.MainLoop(interact3d.FrameInput{
//		Touches:    []interact3d.TouchSample{{ID: 7, Point: mgl32.Vec2{0, 0}, Force: 1}},
//		View:       mgl32.Ident4(),
//		Projection: mgl32.Ident4(),
//		Aspect:     1,
//		DeltaTime:  1.0 / 60,
//	})
//
// # Scene graph
//
// Every spatial node is an [Element], instantiated from a user-owned,
// stateless [Prototype] tree via [Context.AddOrUpdateElements]. Elements
// form a tree; each owns its children, its touch maps ([Element.Hovering],
// [Element.Hitting], [Element.Touching]), and a fade state advanced by the
// lifecycle state machine in lifecycle.go.
//
// # Key features
//
// interact3d includes cached/invalidated world transforms with
// critically-damped target-following, trait-level shape adapters (rectangle,
// circle, segment, polygon, box, sphere, infinite plane), transparency-aware
// depth-sorted hit testing, a stateless behavior substrate (sliding,
// move-to-top, value-slider, mouse-wheel-scroll), nested [SubContext]
// viewports, and glob-style hierarchical path queries ([Context.Query]).
package interact3d
