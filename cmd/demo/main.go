// Command demo wires a Context to one literal prototype and prints each
// element's fade value, position, and hit/touched flags to stdout each
// frame; it registers no event listeners. It draws nothing —
// the direct analogue of willow's examples/interaction/main.go with
// drawing stripped out, since interact3d never opens a window.
package main

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/phanxgames/interact3d"
)

func main() {
	ctx := interact3d.NewContext(interact3d.DefaultConfig())

	panel := interact3d.NewPrototype("panel")
	panel.Shape = interact3d.ShapeRectangle()
	panel.FadeInTime = 0.5
	panel.Behaviors = []interact3d.Behavior{
		interact3d.NewSlidingBehavior(interact3d.SlidingParams{
			Draggable: true,
			DragCoeff: interact3d.AxisCoefficients{X: 1, Y: 1},
		}),
	}

	ctx.AddOrUpdateElements(true, []*interact3d.Prototype{panel})

	fb := interact3d.NewFrameBuilder()
	points := []mgl32.Vec2{{0, 0}, {0.1, 0}, {0.2, 0}}
	for i, p := range points {
		err := ctx.MainLoop(fb.Frame(interact3d.Touch1(7, p.X(), p.Y(), 1)))
		if err != nil {
			fmt.Println("mainloop error:", err)
			return
		}
		for _, e := range ctx.Flat() {
			fmt.Printf("frame %d: element=%s fade=%.2f pos=%v hit=%v touched=%v\n",
				i, e.ID, e.ElementFade(), e.DisplayTransform.Position, e.Hit, e.Touched)
		}
	}
}
