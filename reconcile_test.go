package interact3d

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstantiateBuildsRecursiveTree(t *testing.T) {
	ctx := NewContext(DefaultConfig())
	root := NewPrototype("root")
	child := NewPrototype("child")
	require.NoError(t, root.AddChild(child))

	e := instantiate(ctx, root, nil)
	require.Contains(t, e.Children, ElementID("child"))
	assert.Same(t, e, e.Children["child"].Parent)
}

func TestInstantiateSkipsSelfReferencingChild(t *testing.T) {
	ctx := NewContext(DefaultConfig())
	root := NewPrototype("root")
	root.Children["root"] = NewPrototype("root")

	e := instantiate(ctx, root, nil)
	assert.Empty(t, e.Children)
}

func TestUpdateChildrenAddsUpdatesAndRemoves(t *testing.T) {
	ctx := NewContext(DefaultConfig())
	root := NewPrototype("root")
	keep := NewPrototype("keep")
	gone := NewPrototype("gone")
	gone.FadeOutTime = 1 // nonzero so removal lands in FadingOut instead of deleting synchronously
	require.NoError(t, root.AddChild(keep))
	require.NoError(t, root.AddChild(gone))

	ctx.AddOrUpdateElements(true, []*Prototype{root})
	e := ctx.Roots()["root"]
	require.Len(t, e.Children, 2)

	updated := map[ElementID]*Prototype{
		"keep": func() *Prototype { p := NewPrototype("keep"); p.Name = "kept"; return p }(),
		"new":  NewPrototype("new"),
	}
	e.updateChildren(true, updated)

	assert.Equal(t, "kept", e.Children["keep"].Name)
	assert.Contains(t, e.Children, ElementID("new"))
	assert.Equal(t, FadingOut, e.Children["gone"].State(), "removed child should start fading out, not vanish immediately")
}

func TestAddOrUpdateElementsStartsDeletionForMissingRoots(t *testing.T) {
	ctx := NewContext(DefaultConfig())
	b := NewPrototype("b")
	b.FadeOutTime = 1
	ctx.AddOrUpdateElements(true, []*Prototype{NewPrototype("a"), b})

	ctx.AddOrUpdateElements(true, []*Prototype{NewPrototype("a")})

	assert.Equal(t, FadingOut, ctx.Roots()["b"].State())
}

func TestUpdateFromWritesTargetWhenFollowing(t *testing.T) {
	ctx := NewContext(DefaultConfig())
	proto := NewPrototype("panel")
	proto.TransformationFollowTime = 0.5
	ctx.AddOrUpdateElements(true, []*Prototype{proto})
	e := ctx.Roots()["panel"]

	moved := proto.Clone()
	moved.DisplayTransform.SetPosition(e.TargetTransform.Position.Add(mgl32.Vec3{1, 0, 0}))
	e.updateFrom(moved)

	assert.NotEqual(t, e.DisplayTransform.Position, e.TargetTransform.Position, "directly-applied display transform should stay put until follow catches up")
}
