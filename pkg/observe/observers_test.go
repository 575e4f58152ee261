package observe_test

import (
	"testing"

	"github.com/illmade-knight/hot-prospects/pkg/observe"
	"github.com/stretchr/testify/assert"
)

func TestRegistry(t *testing.T) {
	t.Run("Notify reaches subscribers in order", func(t *testing.T) {
		// Arrange
		var r observe.Registry[int]
		var got []string
		r.Subscribe(func(v int) { got = append(got, "a") })
		r.Subscribe(func(v int) { got = append(got, "b") })

		// Act
		r.Notify(1)

		// Assert
		assert.Equal(t, []string{"a", "b"}, got)
	})

	t.Run("Cancel removes only that subscriber", func(t *testing.T) {
		// Arrange
		var r observe.Registry[string]
		calls := map[string]int{}
		cancelA := r.Subscribe(func(v string) { calls["a"]++ })
		r.Subscribe(func(v string) { calls["b"]++ })

		// Act
		cancelA()
		cancelA()
		r.Notify("x")

		// Assert
		assert.Equal(t, 0, calls["a"])
		assert.Equal(t, 1, calls["b"])
		assert.Equal(t, 1, r.Len())
	})

	t.Run("Subscriber may unsubscribe during Notify", func(t *testing.T) {
		// Arrange
		var r observe.Registry[int]
		count := 0
		var cancel func()
		cancel = r.Subscribe(func(int) {
			count++
			cancel()
		})

		// Act
		r.Notify(1)
		r.Notify(2)

		// Assert
		assert.Equal(t, 1, count)
	})
}
