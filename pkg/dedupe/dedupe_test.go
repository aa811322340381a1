// Test Type: Unit Test
// Description: Tests for the run-scoped deduplication registry

package dedupe_test

import (
	"testing"

	"github.com/MaxGeldner/gulp-include-source/pkg/dedupe"
	"github.com/stretchr/testify/assert"
)

func TestRegistry_FilterNew(t *testing.T) {
	t.Run("empty_registry_keeps_everything", func(t *testing.T) {
		reg := dedupe.New()
		assert.Equal(t, []string{"a.js", "b.js"}, reg.FilterNew([]string{"a.js", "b.js"}))
	})

	t.Run("does_not_mutate", func(t *testing.T) {
		reg := dedupe.New()
		reg.FilterNew([]string{"a.js"})
		assert.False(t, reg.Has("a.js"))
		assert.Equal(t, 0, reg.Len())
	})

	t.Run("keeps_relative_order_and_in_set_duplicates", func(t *testing.T) {
		reg := dedupe.New()
		reg.Record("b.js")

		got := reg.FilterNew([]string{"c.js", "b.js", "a.js", "c.js"})
		assert.Equal(t, []string{"c.js", "a.js", "c.js"}, got)
	})

	t.Run("empty_input_returns_empty_slice", func(t *testing.T) {
		reg := dedupe.New()
		assert.Empty(t, reg.FilterNew(nil))
	})
}

func TestRegistry_SecondResolutionIsEmpty(t *testing.T) {
	reg := dedupe.New()
	resolved := []string{"a.js", "b.js"}

	first := reg.FilterNew(resolved)
	reg.Record(first...)
	second := reg.FilterNew(resolved)

	assert.Equal(t, resolved, first)
	assert.Empty(t, second)
}

func TestRegistry_RecordExcluded(t *testing.T) {
	reg := dedupe.New()
	reg.RecordExcluded("a.js")

	assert.True(t, reg.Has("a.js"))
	assert.Equal(t, []string{"b.js"}, reg.FilterNew([]string{"a.js", "b.js"}))
}

func TestRegistry_Paths(t *testing.T) {
	reg := dedupe.New()
	reg.Record("b.js", "a.js", "b.js")
	reg.RecordExcluded("c.js")

	paths := reg.Paths()
	assert.Equal(t, []string{"b.js", "a.js", "c.js"}, paths)
	assert.Equal(t, 3, reg.Len())

	paths[0] = "mutated"
	assert.Equal(t, "b.js", reg.Paths()[0])
}
