package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingRepository(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		v, err := repos.Setting.GetSetting(ctx, "nope")
		require.NoError(t, err)
		assert.Empty(t, v)

		_, err = repos.Setting.Get(ctx, "nope")
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("set and update", func(t *testing.T) {
		before := time.Now().Add(-time.Second)
		require.NoError(t, repos.Setting.SetSetting(ctx, "last_batch_at", "2025-01-01T00:00:00Z"))
		v, err := repos.Setting.GetSetting(ctx, "last_batch_at")
		require.NoError(t, err)
		assert.Equal(t, "2025-01-01T00:00:00Z", v)

		require.NoError(t, repos.Setting.SetSetting(ctx, "last_batch_at", "2025-01-02T00:00:00Z"))
		s, err := repos.Setting.Get(ctx, "last_batch_at")
		require.NoError(t, err)
		assert.Equal(t, "2025-01-02T00:00:00Z", s.Value)
		assert.True(t, s.UpdatedAt.After(before))
	})
}
