package kernel_test

import (
	"testing"

	"tracker/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	t.Run("should create a valid UUID", func(t *testing.T) {
		id := kernel.NewUUID()

		require.NoError(t, id.Validate())
		assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", id.String())
	})

	t.Run("should create unique UUIDs", func(t *testing.T) {
		id1 := kernel.NewUUID()
		id2 := kernel.NewUUID()

		assert.False(t, id1.IsEqual(id2))
		assert.True(t, id1.IsEqual(id1))
	})

	t.Run("should be usable as a map key", func(t *testing.T) {
		id := kernel.NewUUID()
		set := map[kernel.UUID]struct{}{id: {}}

		_, ok := set[id]
		assert.True(t, ok)
	})
}

func TestUUID_Validate(t *testing.T) {
	var zero kernel.UUID

	err := zero.Validate()

	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestUUID_Bytes(t *testing.T) {
	id := kernel.NewUUID()

	assert.Equal(t, id.String(), id.Bytes().String())
}
