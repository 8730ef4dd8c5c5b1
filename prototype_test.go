package interact3d

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrototypeAddChildRejectsSelfID(t *testing.T) {
	p := NewPrototype("same")
	err := p.AddChild(NewPrototype("same"))
	assert.ErrorIs(t, err, ErrSelfParentID)
	assert.Empty(t, p.Children)
}

func TestPrototypeAddChildRejectsDuplicateID(t *testing.T) {
	p := NewPrototype("parent")
	require.NoError(t, p.AddChild(NewPrototype("child")))
	err := p.AddChild(NewPrototype("child"))
	assert.ErrorIs(t, err, ErrDuplicateChildID)
	assert.Len(t, p.Children, 1)
}

func TestShapeValidateRejectsUnknownKind(t *testing.T) {
	bad := Shape{Kind: ShapeKind(99)}
	assert.ErrorIs(t, bad.Validate(), ErrUnknownShapeKind)
	assert.NoError(t, ShapeRectangle().Validate())
}

func TestInstantiateDropsInvalidShapeKindKeepingZeroValue(t *testing.T) {
	ctx := NewContext(DefaultConfig())
	proto := NewPrototype("bad-shape")
	proto.Shape = Shape{Kind: ShapeKind(99)}

	e := instantiate(ctx, proto, nil)

	assert.NoError(t, e.Shape.Validate(), "an invalid shape kind must be dropped rather than applied")
}

func TestPrototypeCloneDeepCopiesChildrenAndTransform(t *testing.T) {
	p := NewPrototype("parent")
	p.DisplayTransform.SetPosition(mgl32.Vec3{1, 2, 3})
	child := NewPrototype("child")
	require.NoError(t, p.AddChild(child))

	clone := p.Clone()

	clone.DisplayTransform.SetPosition(mgl32.Vec3{9, 9, 9})
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, p.DisplayTransform.Position)

	clone.Children["child"].Name = "renamed"
	assert.Empty(t, p.Children["child"].Name)

	assert.Same(t, clone, clone.Children["child"].Parent)
}
