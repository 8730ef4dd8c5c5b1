package interact3d

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConcurrentTouchMapSetGetDelete(t *testing.T) {
	m := newConcurrentTouchMap()
	ip := &IntersectionPoint{TouchID: 1}
	m.Set(1, ip)

	got, ok := m.Get(1)
	assert.True(t, ok)
	assert.Same(t, ip, got)

	m.Delete(1)
	_, ok = m.Get(1)
	assert.False(t, ok)
}

func TestConcurrentTouchMapClearAndLen(t *testing.T) {
	m := newConcurrentTouchMap()
	m.Set(1, &IntersectionPoint{})
	m.Set(2, &IntersectionPoint{})
	assert.Equal(t, 2, m.Len())

	m.Clear()
	assert.Equal(t, 0, m.Len())
}

func TestConcurrentTouchMapSnapshotIsIndependentOfLiveMap(t *testing.T) {
	m := newConcurrentTouchMap()
	m.Set(1, &IntersectionPoint{})

	snap := m.Snapshot()
	m.Set(2, &IntersectionPoint{})

	assert.Len(t, snap, 1)
	assert.Equal(t, 2, m.Len())
}

func TestConcurrentTouchMapParallelWritesDoNotRace(t *testing.T) {
	m := newConcurrentTouchMap()
	var wg sync.WaitGroup
	for i := int32(0); i < 64; i++ {
		wg.Add(1)
		go func(id int32) {
			defer wg.Done()
			m.Set(id, &IntersectionPoint{TouchID: id})
			m.Get(id)
			m.Keys()
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 64, m.Len())
}

func TestConcurrentTouchTableSetGetDelete(t *testing.T) {
	tbl := newConcurrentTouchTable()
	tbl.Set(1, &Touch{ID: 1})
	got, ok := tbl.Get(1)
	assert.True(t, ok)
	assert.Equal(t, int32(1), got.ID)

	tbl.Delete(1)
	_, ok = tbl.Get(1)
	assert.False(t, ok)
}

func TestConcurrentTouchTableSnapshot(t *testing.T) {
	tbl := newConcurrentTouchTable()
	tbl.Set(1, &Touch{ID: 1})
	tbl.Set(2, &Touch{ID: 2})
	assert.Len(t, tbl.Snapshot(), 2)
}
