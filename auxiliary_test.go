package interact3d

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAux struct{ n int }

func (f *fakeAux) Copy() AuxiliaryObject { c := *f; return &c }
func (f *fakeAux) UpdateFrom(other AuxiliaryObject) {
	if o, ok := other.(*fakeAux); ok {
		f.n = o.n
	}
}

func TestAttachedValuesFillGrowsAndZeroFills(t *testing.T) {
	av := NewAttachedValues()
	av.Values = []float32{1, 2}
	av.Fill(4)
	require.Len(t, av.Values, 4)
	assert.Equal(t, []float32{1, 2, 0, 0}, av.Values)
}

func TestAttachedValuesFillShrinksKeepingPrefix(t *testing.T) {
	av := NewAttachedValues()
	av.Values = []float32{1, 2, 3, 4}
	av.Fill(2)
	assert.Equal(t, []float32{1, 2}, av.Values)
}

func TestAttachedValuesFillOnNilAllocates(t *testing.T) {
	av := &AttachedValues{}
	av.Fill(3)
	assert.Equal(t, []float32{0, 0, 0}, av.Values)
}

func TestAttachedValuesCopyIsIndependent(t *testing.T) {
	av := NewAttachedValues()
	av.Values = []float32{1}
	av.SetObject("x", &fakeAux{n: 1})

	clone := av.Copy()
	clone.Values[0] = 99
	clone.Object("x")
	obj, _ := clone.Object("x")
	obj.(*fakeAux).n = 42

	assert.Equal(t, float32(1), av.Values[0])
	orig, _ := av.Object("x")
	assert.Equal(t, 1, orig.(*fakeAux).n)
}

func TestAttachedValuesUpdateFromMergesObjectsByKey(t *testing.T) {
	av := NewAttachedValues()
	av.SetObject("x", &fakeAux{n: 1})

	other := NewAttachedValues()
	other.SetObject("x", &fakeAux{n: 7})
	other.SetObject("y", &fakeAux{n: 3})

	av.UpdateFrom(other)

	x, _ := av.Object("x")
	y, _ := av.Object("y")
	assert.Equal(t, 7, x.(*fakeAux).n)
	assert.Equal(t, 3, y.(*fakeAux).n)
}
