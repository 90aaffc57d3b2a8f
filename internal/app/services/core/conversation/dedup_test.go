package conversation

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDuplicateGuard(t *testing.T) {
	t.Run("Suppresses identical message within the window", func(t *testing.T) {
		guard := NewDuplicateGuard()
		now := time.Now()
		guard.now = func() time.Time { return now }

		assert.False(t, guard.IsDuplicate("573001112233", "hola"))
		assert.True(t, guard.IsDuplicate("573001112233", "hola"))

		now = now.Add(3 * time.Second)
		assert.True(t, guard.IsDuplicate("573001112233", "hola"))
	})

	t.Run("Allows identical message after the window", func(t *testing.T) {
		guard := NewDuplicateGuard()
		now := time.Now()
		guard.now = func() time.Time { return now }

		assert.False(t, guard.IsDuplicate("573001112233", "hola"))

		now = now.Add(6 * time.Second)
		assert.False(t, guard.IsDuplicate("573001112233", "hola"))
	})

	t.Run("Treats trimmed bodies as equal", func(t *testing.T) {
		guard := NewDuplicateGuard()
		now := time.Now()
		guard.now = func() time.Time { return now }

		assert.False(t, guard.IsDuplicate("573001112233", "hola"))
		assert.True(t, guard.IsDuplicate("573001112233", "  hola  "))
	})

	t.Run("Keys by contact", func(t *testing.T) {
		guard := NewDuplicateGuard()
		now := time.Now()
		guard.now = func() time.Time { return now }

		assert.False(t, guard.IsDuplicate("573001112233", "1"))
		assert.False(t, guard.IsDuplicate("573009998877", "1"))
	})

	t.Run("Evicts stale entries once over the threshold", func(t *testing.T) {
		guard := NewDuplicateGuard()
		now := time.Now()
		guard.now = func() time.Time { return now }

		for i := 0; i < 100; i++ {
			guard.IsDuplicate("573001112233", fmt.Sprintf("mensaje %d", i))
		}
		assert.Len(t, guard.lastSeen, 100)

		// One more entry after the stale ones aged out triggers the sweep.
		now = now.Add(61 * time.Second)
		guard.IsDuplicate("573001112233", "mensaje nuevo")
		guard.IsDuplicate("573001112233", "otro mensaje")
		assert.Len(t, guard.lastSeen, 2)
	})

	t.Run("Keeps fresh entries during eviction", func(t *testing.T) {
		guard := NewDuplicateGuard()
		now := time.Now()
		guard.now = func() time.Time { return now }

		for i := 0; i < 60; i++ {
			guard.IsDuplicate("573001112233", fmt.Sprintf("viejo %d", i))
		}
		now = now.Add(61 * time.Second)
		for i := 0; i < 41; i++ {
			guard.IsDuplicate("573001112233", fmt.Sprintf("fresco %d", i))
		}

		// 60 old + 41 fresh crosses the threshold; only the old ones go.
		guard.IsDuplicate("573001112233", "gatillo")
		assert.Len(t, guard.lastSeen, 42)
	})
}
