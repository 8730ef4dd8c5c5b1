package interact3d

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// Config mirrors willow's RunConfig in spirit: a plain struct of tunables
// passed once to NewContext (§6 "Configuration").
type Config struct {
	UseParallel             bool
	ConsiderNewBefore       int
	ConsiderReleasedAfter   int
	MinimumForce            float32
	UpdateOnlyChangeFlagged bool
}

// DefaultConfig returns the §6 defaults: ConsiderNewBefore=1,
// ConsiderReleasedAfter=1, MinimumForce=-1.
func DefaultConfig() Config {
	return Config{
		ConsiderNewBefore:     1,
		ConsiderReleasedAfter: 1,
		MinimumForce:          -1,
	}
}

// TouchSample is one frame's raw pointer input, (point, id, force) per §6.
type TouchSample struct {
	ID    int32
	Point mgl32.Vec2
	Force float32

	// Attached, if non-nil, marks this sample as coming from a real pointing
	// device and carries its accumulated scroll/button deltas for this frame.
	Attached *AttachedMouse
}

// FrameInput is everything the host supplies to one MainLoop call (§6).
type FrameInput struct {
	Touches    []TouchSample
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Aspect     float32
	DeltaTime  float32
}

// Context is the per-frame pipeline: owner of the touch table, the root
// elements, the flattened element list, and the current frame's view
// matrices (§2/§4.6). One Context belongs to one viewport; it is not
// reentrant (§5).
type Context struct {
	Config Config

	roots map[ElementID]*Element
	flat  []*Element

	touches *concurrentTouchTable

	elementsUpdated bool
	elementsDeleted bool

	deltaTime float32

	viewPosition    mgl32.Vec3
	viewOrientation mgl32.Quat
	viewDirection   mgl32.Vec3

	invView       mgl32.Mat4
	invProjAspect mgl32.Mat4
	projAspect    mgl32.Mat4
	view          mgl32.Mat4

	mu sync.Mutex // guards roots/flat rebuild against reentrant MainLoop calls

	moveToTopMu       sync.Mutex
	moveToTopRequests []*Element
}

// enqueueMoveToTop records e as touched-this-frame by a move-to-top
// behavior; the actual sibling z-rewrite runs serially after the parallel
// element phase (§5's "Transform-cache discipline" exception).
func (ctx *Context) enqueueMoveToTop(e *Element) {
	ctx.moveToTopMu.Lock()
	ctx.moveToTopRequests = append(ctx.moveToTopRequests, e)
	ctx.moveToTopMu.Unlock()
}

// NewContext constructs an empty Context ready to receive elements via
// AddOrUpdateElements.
func NewContext(cfg Config) *Context {
	return &Context{
		Config:  cfg,
		roots:   make(map[ElementID]*Element),
		touches: newConcurrentTouchTable(),
	}
}

// AddOrUpdateElements is the host-facing entry point for §4.5 reconciliation.
func (ctx *Context) AddOrUpdateElements(removeMissing bool, prototypes []*Prototype) {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	ctx.addOrUpdateElements(removeMissing, prototypes)
}

// Roots returns the current root elements, keyed by id. Callers must not
// mutate the returned map.
func (ctx *Context) Roots() map[ElementID]*Element { return ctx.roots }

// Flat returns the current depth-first flattened element list used by the
// hit-test phase. Valid until the next MainLoop call.
func (ctx *Context) Flat() []*Element { return ctx.flat }

// MainLoop executes one frame of §4.6's canonical pipeline and returns a
// fatal error only for conditions §7 calls non-recoverable; per-element
// hit-test/behavior failures are logged and do not abort the frame.
func (ctx *Context) MainLoop(frame FrameInput) error {
	if !ctx.mu.TryLock() {
		return ErrConcurrencyViolation
	}
	defer ctx.mu.Unlock()

	ctx.fireMainLoopBegin()

	// Step 1: view/projection math, persist delta time.
	ctx.deltaTime = frame.DeltaTime
	ctx.view = frame.View
	ctx.invView = frame.View.Inv()
	aspect := frame.Aspect
	if aspect == 0 {
		aspect = 1
	}
	aspectMat := mgl32.Scale3D(1/aspect, 1, 1)
	ctx.projAspect = frame.Projection.Mul4(aspectMat)
	ctx.invProjAspect = ctx.projAspect.Inv()
	ctx.viewPosition = mulPoint(ctx.invView, mgl32.Vec3{0, 0, 0})
	ctx.viewDirection = mulDirection(ctx.invView, mgl32.Vec3{0, 0, -1}).Normalize()
	ctx.viewOrientation = mgl32.Mat4ToQuat(ctx.invView)

	// Step 2 & 3: expire and age touches.
	for _, t := range ctx.touches.Snapshot() {
		if t.ExpireFrames > ctx.Config.ConsiderReleasedAfter {
			ctx.touches.Delete(t.ID)
			continue
		}
		t.ExpireFrames++
		t.AttachedObject = nil
	}

	// Step 4: detach deleted elements, rebuild the flat list if needed.
	ctx.collectAndDetachDeleted()
	if ctx.elementsDeleted || ctx.elementsUpdated {
		ctx.rebuildFlat()
		ctx.elementsDeleted = false
		ctx.elementsUpdated = false
	}

	// Step 5: ingest the new touch batch.
	ctx.ingestTouches(frame.Touches)

	// Step 6: clear hovering.
	for _, e := range ctx.flat {
		e.Hovering.Clear()
	}

	// Step 7: hit-test phase.
	ctx.hitTestPhase()

	// Step 8: element phase.
	ctx.elementPhase()

	ctx.fireMainLoopEnd()
	return nil
}

func (ctx *Context) fireMainLoopBegin() {
	for _, e := range ctx.flat {
		e.fire(OnMainLoopBegin, nil, nil)
	}
}

func (ctx *Context) fireMainLoopEnd() {
	for _, e := range ctx.flat {
		e.fire(OnMainLoopEnd, nil, nil)
	}
}

// collectAndDetachDeleted walks flat and detaches every deleteMe element
// from its parent or from roots (§4.6 step 4).
func (ctx *Context) collectAndDetachDeleted() {
	for _, e := range ctx.flat {
		if e.deleteMe {
			e.detachFromParent()
			e.clearTouches()
			ctx.elementsDeleted = true
		}
	}
}

// rebuildFlat recomputes the depth-first flattened list from roots.
func (ctx *Context) rebuildFlat() {
	out := make([]*Element, 0, len(ctx.flat))
	for _, root := range ctx.roots {
		out = root.flattenDepthFirst(out)
	}
	ctx.flat = out
}

// ingestTouches implements §4.6 step 5.
func (ctx *Context) ingestTouches(samples []TouchSample) {
	for _, s := range samples {
		if existing, ok := ctx.touches.Get(s.ID); ok {
			existing.updateFromSample(s.Point, s.Force, ctx.Config.MinimumForce)
			existing.Attached = s.Attached
			continue
		}
		t := newTouch(ctx, s.ID, s.Point, s.Force, ctx.Config.MinimumForce)
		t.Attached = s.Attached
		ctx.touches.Set(s.ID, t)
	}
}
