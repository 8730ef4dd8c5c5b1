package interact3d

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOnFiresRegisteredListener(t *testing.T) {
	ctx := NewContext(DefaultConfig())
	e := newElement(ctx, "e")

	var got InteractionEvent
	fired := false
	e.On(OnHitBegin, func(ev InteractionEvent) {
		fired = true
		got = ev
	})

	e.fire(OnHitBegin, nil, nil)
	assert.True(t, fired)
	assert.Equal(t, OnHitBegin, got.Type)
	assert.Equal(t, e, got.Element)
}

func TestOffRemovesListener(t *testing.T) {
	ctx := NewContext(DefaultConfig())
	e := newElement(ctx, "e")

	fired := false
	handle := e.On(OnHitBegin, func(ev InteractionEvent) { fired = true })
	e.Off(handle)

	e.fire(OnHitBegin, nil, nil)
	assert.False(t, fired)
}

func TestMultipleListenersAllFire(t *testing.T) {
	ctx := NewContext(DefaultConfig())
	e := newElement(ctx, "e")

	count := 0
	e.On(OnHitBegin, func(ev InteractionEvent) { count++ })
	e.On(OnHitBegin, func(ev InteractionEvent) { count++ })

	e.fire(OnHitBegin, nil, nil)
	assert.Equal(t, 2, count)
}

func TestListenersAreScopedPerEventType(t *testing.T) {
	ctx := NewContext(DefaultConfig())
	e := newElement(ctx, "e")

	hitFired, touchFired := false, false
	e.On(OnHitBegin, func(ev InteractionEvent) { hitFired = true })
	e.On(OnTouchBegin, func(ev InteractionEvent) { touchFired = true })

	e.fire(OnHitBegin, nil, nil)
	assert.True(t, hitFired)
	assert.False(t, touchFired)
}
