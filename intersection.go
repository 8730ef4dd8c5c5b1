package interact3d

import "github.com/go-gl/mathgl/mgl32"

// IntersectionPoint records one touch's contact with one element: the
// point in three coordinate spaces plus both tangent frames. Equality and
// hashing are defined solely by the (element id, touch id) pair (§3),
// never by the point values themselves.
type IntersectionPoint struct {
	ElementID ElementID
	TouchID   int32

	World   mgl32.Vec3
	Element mgl32.Vec3
	Surface mgl32.Vec2 // UV-like, see shape.go for per-shape remapping

	WorldTangentFrame   mgl32.Mat4
	ElementTangentFrame mgl32.Mat4

	// Depth is the screen-space z/w used for the depth-sort in §4.6 step 7c.
	Depth float32
}

// SameIdentity implements the (element_id, touch_id) equality mandated by §3.
func (ip *IntersectionPoint) SameIdentity(o *IntersectionPoint) bool {
	if ip == nil || o == nil {
		return ip == o
	}
	return ip.ElementID == o.ElementID && ip.TouchID == o.TouchID
}
