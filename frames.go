package interact3d

import "github.com/go-gl/mathgl/mgl32"

// FrameBuilder adapts willow's inject.go/testrunner.go synthetic-input
// idiom (InjectPress/InjectDrag multi-frame interpolation, deterministic
// step sequencing) into a literal per-frame TouchSample batch builder for
// the scenario tests in spec.md §8. It is test-support only: it never
// reaches into Context internals beyond MainLoop's public signature.
type FrameBuilder struct {
	view       mgl32.Mat4
	projection mgl32.Mat4
	aspect     float32
	deltaTime  float32
}

// NewFrameBuilder returns a builder seeded with identity view/projection,
// aspect 1, and a 60fps delta-time — the literal values the end-to-end
// scenarios in §8 specify.
func NewFrameBuilder() *FrameBuilder {
	return &FrameBuilder{
		view:       mgl32.Ident4(),
		projection: mgl32.Ident4(),
		aspect:     1,
		deltaTime:  1.0 / 60,
	}
}

func (fb *FrameBuilder) WithDeltaTime(dt float32) *FrameBuilder {
	fb.deltaTime = dt
	return fb
}

func (fb *FrameBuilder) WithView(v mgl32.Mat4) *FrameBuilder {
	fb.view = v
	return fb
}

func (fb *FrameBuilder) WithProjection(p mgl32.Mat4) *FrameBuilder {
	fb.projection = p
	return fb
}

// Frame builds one FrameInput from a set of (point, id, force) samples.
func (fb *FrameBuilder) Frame(samples ...TouchSample) FrameInput {
	return FrameInput{
		Touches:    samples,
		View:       fb.view,
		Projection: fb.projection,
		Aspect:     fb.aspect,
		DeltaTime:  fb.deltaTime,
	}
}

// Touch1 is a convenience constructor for one TouchSample.
func Touch1(id int32, x, y, force float32) TouchSample {
	return TouchSample{ID: id, Point: mgl32.Vec2{x, y}, Force: force}
}

// RunFrames steps ctx through each built frame in order, returning the
// first error encountered (if any) along with its index.
func RunFrames(ctx *Context, frames ...FrameInput) (int, error) {
	for i, f := range frames {
		if err := ctx.MainLoop(f); err != nil {
			return i, err
		}
	}
	return len(frames), nil
}

// RunFramesFor steps ctx n times using the same builder and sample
// function, useful for driving flick-decay / fade-timer scenarios over a
// fixed cadence without repeating the per-frame boilerplate.
func RunFramesFor(ctx *Context, fb *FrameBuilder, n int, sampleAt func(frame int) []TouchSample) error {
	for i := 0; i < n; i++ {
		samples := sampleAt(i)
		if _, err := RunFrames(ctx, fb.Frame(samples...)); err != nil {
			return err
		}
	}
	return nil
}
