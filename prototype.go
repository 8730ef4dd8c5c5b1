package interact3d

import "github.com/go-gl/mathgl/mgl32"

// SubContextOptions configures an optional nested Context fed from an
// element's own hit intersections (§4.8).
type SubContextOptions struct {
	UseTouching bool // drive the sub-context from Touching rather than Hitting
	Config      Config
}

// Prototype is the stateless, user-owned description of one tree node
// (§3). It is the source of truth a host mutates; Context.AddOrUpdateElements
// reconciles live Elements toward it every time the host calls it.
type Prototype struct {
	ID   ElementID
	Name string

	Active      bool
	Transparent bool

	FadeInTime    float32
	FadeInDelay   float32
	FadeOutTime   float32
	FadeOutDelay  float32

	TransformationFollowTime float32

	DisplayTransform *Transform
	TransformApply   ApplyTransformMode // default ApplyAll

	Shape Shape

	Behaviors []Behavior

	AttachedValues *AttachedValues
	Environment    interface{}

	OnlyHitIfParentIsHit bool

	SubContext *SubContextOptions

	Children map[ElementID]*Prototype
	Parent   *Prototype
}

// NewPrototype returns a prototype with an identity transform, ApplyAll
// mask, active=true, and an empty children map — the same defaults willow's
// typed constructors (NewContainer/NewSprite) apply before caller overrides.
func NewPrototype(id ElementID) *Prototype {
	return &Prototype{
		ID:               id,
		Active:           true,
		DisplayTransform: NewTransform(),
		TransformApply:   ApplyAll,
		Children:         make(map[ElementID]*Prototype),
	}
}

// AddChild wires child under parent, rejecting an id collision with the
// parent itself (§4.5's "a child whose id equals the parent's id is
// rejected"); on success it sets the child's Parent back-reference.
func (parent *Prototype) AddChild(child *Prototype) error {
	if child.ID == parent.ID {
		logDroppedPrototype(parent.ID, child.ID, ErrSelfParentID)
		return ErrSelfParentID
	}
	if parent.Children == nil {
		parent.Children = make(map[ElementID]*Prototype)
	}
	if _, exists := parent.Children[child.ID]; exists {
		logDroppedPrototype(parent.ID, child.ID, ErrDuplicateChildID)
		return ErrDuplicateChildID
	}
	child.Parent = parent
	parent.Children[child.ID] = child
	return nil
}

// Clone deep-copies the prototype, including recursive child clones whose
// Parent back-reference is rewired to the clone (§3 "child clones propagate").
func (p *Prototype) Clone() *Prototype {
	clone := &Prototype{
		ID:                       p.ID,
		Name:                     p.Name,
		Active:                   p.Active,
		Transparent:              p.Transparent,
		FadeInTime:               p.FadeInTime,
		FadeInDelay:              p.FadeInDelay,
		FadeOutTime:              p.FadeOutTime,
		FadeOutDelay:             p.FadeOutDelay,
		TransformationFollowTime: p.TransformationFollowTime,
		TransformApply:           p.TransformApply,
		Shape:                    p.Shape,
		OnlyHitIfParentIsHit:     p.OnlyHitIfParentIsHit,
		Children:                make(map[ElementID]*Prototype, len(p.Children)),
	}
	if p.DisplayTransform != nil {
		clone.DisplayTransform = &Transform{
			Position: p.DisplayTransform.Position,
			Rotation: p.DisplayTransform.Rotation,
			Scale:    p.DisplayTransform.Scale,
			dirty:    true,
			subs:     make(map[string]func()),
		}
	}
	if p.Behaviors != nil {
		clone.Behaviors = append([]Behavior(nil), p.Behaviors...)
	}
	if p.AttachedValues != nil {
		clone.AttachedValues = p.AttachedValues.Copy()
	}
	clone.Environment = p.Environment
	if p.SubContext != nil {
		opts := *p.SubContext
		clone.SubContext = &opts
	}
	for id, child := range p.Children {
		childClone := child.Clone()
		childClone.Parent = clone
		clone.Children[id] = childClone
	}
	return clone
}

// boxSize is a convenience for constructing a Box shape prototype field.
func boxSize(x, y, z float32) mgl32.Vec3 { return mgl32.Vec3{x, y, z} }
