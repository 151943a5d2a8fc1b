package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBroadcaster_NotifiesEveryListener(t *testing.T) {
	var b Broadcaster[int]
	var got1, got2 []int

	b.Subscribe(func(v int) { got1 = append(got1, v) })
	b.Subscribe(func(v int) { got2 = append(got2, v) })

	b.Notify(1)
	b.Notify(2)

	assert.Equal(t, []int{1, 2}, got1)
	assert.Equal(t, []int{1, 2}, got2)
}

func TestBroadcaster_Unsubscribe(t *testing.T) {
	var b Broadcaster[string]
	calls := 0
	token := b.Subscribe(func(string) { calls++ })

	b.Notify("a")
	assert.True(t, b.Unsubscribe(token))
	assert.False(t, b.Unsubscribe(token), "second removal is a no-op")
	b.Notify("b")

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, b.Len())
}

func TestBroadcaster_TokensAreUnique(t *testing.T) {
	var b Broadcaster[int]
	seen := map[Token]bool{}
	for i := 0; i < 100; i++ {
		tok := b.Subscribe(func(int) {})
		assert.False(t, seen[tok])
		seen[tok] = true
	}
}

func TestBroadcaster_ReentrantDispatch(t *testing.T) {
	var b Broadcaster[int]
	var order []string

	var second Token
	b.Subscribe(func(v int) {
		order = append(order, "first")
		// changes made during dispatch apply from the next Notify
		b.Unsubscribe(second)
		b.Subscribe(func(int) { order = append(order, "late") })
	})
	second = b.Subscribe(func(int) { order = append(order, "second") })

	b.Notify(1)
	assert.Equal(t, []string{"first", "second"}, order)

	order = nil
	b.Notify(2)
	assert.Equal(t, []string{"first", "late"}, order)
}
