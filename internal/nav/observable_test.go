package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValue_NotifiesOnChangeOnly(t *testing.T) {
	v := NewValue(1)
	var got []int
	v.Subscribe(func(n int) { got = append(got, n) })

	v.Set(1)
	v.Set(2)
	v.Set(2)
	v.Set(3)

	assert.Equal(t, 3, v.Get())
	assert.Equal(t, []int{2, 3}, got)
}

func TestValue_SubscribersInOrder(t *testing.T) {
	v := NewValue("")
	var order []string
	v.Subscribe(func(string) { order = append(order, "a") })
	cancel := v.Subscribe(func(string) { order = append(order, "b") })
	v.Subscribe(func(string) { order = append(order, "c") })

	v.Set("x")
	cancel()
	v.Set("y")

	assert.Equal(t, []string{"a", "b", "c", "a", "c"}, order)
}

func TestValue_SetFromSubscriber(t *testing.T) {
	v := NewValue(0)
	v.Subscribe(func(n int) {
		if n < 3 {
			v.Set(n + 1)
		}
	})

	v.Set(1)
	assert.Equal(t, 3, v.Get())
}
