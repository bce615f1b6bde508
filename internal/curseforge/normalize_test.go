package curseforge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantShape  Shape
		wantEntity string
	}{
		{
			name:       "entity with id and data member stays as is",
			raw:        `{"id":5,"data":{"x":1}}`,
			wantShape:  Unwrapped,
			wantEntity: `{"id":5,"data":{"x":1}}`,
		},
		{
			name:       "envelope is unwrapped",
			raw:        `{"data":{"id":5}}`,
			wantShape:  Wrapped,
			wantEntity: `{"id":5}`,
		},
		{
			name:       "bare entity",
			raw:        `{"id":432,"name":"Minecraft"}`,
			wantShape:  Unwrapped,
			wantEntity: `{"id":432,"name":"Minecraft"}`,
		},
		{
			name:       "object without data or id",
			raw:        `{"name":"nameless"}`,
			wantShape:  Unwrapped,
			wantEntity: `{"name":"nameless"}`,
		},
		{
			name:       "not an object",
			raw:        `[1,2,3]`,
			wantShape:  Unwrapped,
			wantEntity: `[1,2,3]`,
		},
		{
			name:       "null payload",
			raw:        `null`,
			wantShape:  Unwrapped,
			wantEntity: `null`,
		},
		{
			name:       "envelope with null entity",
			raw:        `{"data":null}`,
			wantShape:  Wrapped,
			wantEntity: `null`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize([]byte(tt.raw))
			assert.Equal(t, tt.wantShape, got.Shape)
			assert.JSONEq(t, tt.wantEntity, string(got.Entity))
		})
	}
}

func TestDecodeEntity(t *testing.T) {
	t.Run("wrapped game", func(t *testing.T) {
		game, shape, err := DecodeEntity[Game]([]byte(`{"data":{"id":432,"name":"Minecraft","slug":"minecraft"}}`))
		require.NoError(t, err)
		require.NotNil(t, game)
		assert.Equal(t, Wrapped, shape)
		assert.Equal(t, 432, game.ID)
		assert.Equal(t, "Minecraft", game.Name)
	})

	t.Run("unwrapped game", func(t *testing.T) {
		game, shape, err := DecodeEntity[Game]([]byte(`{"id":1,"name":"WoW"}`))
		require.NoError(t, err)
		require.NotNil(t, game)
		assert.Equal(t, Unwrapped, shape)
		assert.Equal(t, "WoW", game.Name)
		assert.Nil(t, game.Assets)
	})

	t.Run("absent entity", func(t *testing.T) {
		game, _, err := DecodeEntity[Game]([]byte(`{"data":null}`))
		require.NoError(t, err)
		assert.Nil(t, game)
	})

	t.Run("mistyped field is tolerated", func(t *testing.T) {
		game, _, err := DecodeEntity[Game]([]byte(`{"id":7,"name":42,"slug":"seven"}`))
		require.NoError(t, err)
		require.NotNil(t, game)
		assert.Equal(t, 7, game.ID)
		assert.Equal(t, "", game.Name)
	})

	t.Run("garbage body", func(t *testing.T) {
		_, _, err := DecodeEntity[Game]([]byte(`<html>`))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})
}

func TestShape_String(t *testing.T) {
	assert.Equal(t, "wrapped", Wrapped.String())
	assert.Equal(t, "unwrapped", Unwrapped.String())
}
