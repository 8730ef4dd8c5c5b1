package interact3d

import "github.com/google/uuid"

// ElementID identifies a Prototype/Element pair across the tree. Hosts
// normally supply their own stable id; NewElementID is provided for
// ad hoc prototypes (tests, examples) that don't have one of their own.
type ElementID = string

// NewElementID returns a fresh random identifier suitable for a Prototype
// that the host does not otherwise track.
func NewElementID() ElementID {
	return uuid.NewString()
}

// BehaviorID is the stable identity a Behavior reports through ID(); it
// keys the behavior's auxiliary state on every Element it runs against.
type BehaviorID = uuid.UUID

// NewBehaviorID returns a fresh random BehaviorID; each behavior constructor
// calls it once, so every behavior instance has its own id.
func NewBehaviorID() BehaviorID {
	return uuid.New()
}
