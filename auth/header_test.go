package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/memberchat/apperror"
)

func TestParseAuthorization(t *testing.T) {
	t.Parallel()

	t.Run("well formed", func(t *testing.T) {
		key, attempted, err := ParseAuthorization("Token abc123")
		require.NoError(t, err)
		assert.True(t, attempted)
		assert.Equal(t, "abc123", key)
	})

	t.Run("scheme is case insensitive", func(t *testing.T) {
		key, attempted, err := ParseAuthorization("token abc123")
		require.NoError(t, err)
		assert.True(t, attempted)
		assert.Equal(t, "abc123", key)
	})

	t.Run("extra whitespace between words is tolerated", func(t *testing.T) {
		key, attempted, err := ParseAuthorization("Token    abc123")
		require.NoError(t, err)
		assert.True(t, attempted)
		assert.Equal(t, "abc123", key)
	})

	t.Run("absent header means anonymous", func(t *testing.T) {
		key, attempted, err := ParseAuthorization("")
		require.NoError(t, err)
		assert.False(t, attempted)
		assert.Empty(t, key)
	})

	t.Run("other scheme means anonymous", func(t *testing.T) {
		key, attempted, err := ParseAuthorization("Bearer abc123")
		require.NoError(t, err)
		assert.False(t, attempted)
		assert.Empty(t, key)
	})

	t.Run("keyword alone is malformed", func(t *testing.T) {
		_, attempted, err := ParseAuthorization("Token")
		require.Error(t, err)
		assert.False(t, attempted)
		assert.True(t, apperror.IsAuthentication(err))
	})

	t.Run("too many words is malformed", func(t *testing.T) {
		_, _, err := ParseAuthorization("Token abc def")
		require.Error(t, err)
		assert.True(t, apperror.IsAuthentication(err))
	})
}
