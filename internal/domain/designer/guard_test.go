package designer

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssertNotLayout(t *testing.T) {
	registry := NewRegistry()

	t.Run("accepts canonical definitions", func(t *testing.T) {
		def := paymentDefinition()
		assert.NoError(t, AssertNotLayout(def, "unit-test"))
		assert.NoError(t, AssertNotLayout(*def, "unit-test"))
	})

	t.Run("rejects a layout by type", func(t *testing.T) {
		layout, err := CanonicalToLayout(paymentDefinition(), DisplayModeClassic, registry)
		require.NoError(t, err)

		err = AssertNotLayout(layout, "pre-save")
		require.Error(t, err)

		var violation *PersistenceViolationError
		require.True(t, errors.As(err, &violation))
		assert.Equal(t, "pre-save", violation.Context)
		assert.NotEmpty(t, violation.Reasons)
	})

	t.Run("rejects a layout that crossed a serialization boundary", func(t *testing.T) {
		layout, err := CanonicalToLayout(paymentDefinition(), DisplayModeClassic, registry)
		require.NoError(t, err)

		raw, err := json.Marshal(layout)
		require.NoError(t, err)
		var decoded map[string]any
		require.NoError(t, json.Unmarshal(raw, &decoded))

		err = AssertNotLayout(decoded, "pre-save")
		require.Error(t, err)

		var violation *PersistenceViolationError
		require.True(t, errors.As(err, &violation))
		assert.Contains(t, violation.Reasons, "object carries the layout marker")
	})

	t.Run("accepts a canonical definition as a map", func(t *testing.T) {
		raw, err := json.Marshal(paymentDefinition())
		require.NoError(t, err)
		var decoded map[string]any
		require.NoError(t, json.Unmarshal(raw, &decoded))

		assert.NoError(t, AssertNotLayout(decoded, "pre-save"))
	})

	t.Run("rejects nil", func(t *testing.T) {
		assert.Error(t, AssertNotLayout(nil, "pre-save"))
		var def *VoucherTypeDefinition
		assert.Error(t, AssertNotLayout(def, "pre-save"))
	})

	t.Run("rejects layout-shaped foreign structs", func(t *testing.T) {
		type viewModel struct {
			Marker  string
			Header  HeaderArea
			Body    BodyArea
			Lines   LinesArea
			Actions []ActionDescriptor
		}
		vm := viewModel{Marker: "designer/layout-v2"}

		err := AssertNotLayout(vm, "repository-update")
		require.Error(t, err)

		var violation *PersistenceViolationError
		require.True(t, errors.As(err, &violation))
		assert.GreaterOrEqual(t, len(violation.Reasons), 4)
	})

	t.Run("rejects non-struct values", func(t *testing.T) {
		assert.Error(t, AssertNotLayout("a string", "pre-save"))
		assert.Error(t, AssertNotLayout(42, "pre-save"))
	})
}
