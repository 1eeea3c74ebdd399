package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/rsa-auditor-api/internal/config"
)

func TestNewCooldownStore(t *testing.T) {
	t.Run("Sem backend", func(t *testing.T) {
		store, closeFn, err := NewCooldownStore(context.Background(), &config.Config{
			Cooldown: config.Cooldown{Backend: config.CooldownBackendNone},
		})

		require.NoError(t, err)
		assert.Nil(t, store)
		assert.NoError(t, closeFn())
	})

	t.Run("Redis", func(t *testing.T) {
		mr := miniredis.RunT(t)

		store, closeFn, err := NewCooldownStore(context.Background(), &config.Config{
			Cooldown: config.Cooldown{Backend: config.CooldownBackendRedis},
			Redis:    config.Redis{Addr: mr.Addr()},
		})

		require.NoError(t, err)
		assert.IsType(t, &RedisCooldownStore{}, store)
		assert.NoError(t, closeFn())
	})

	t.Run("Redis indisponível", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		store, _, err := NewCooldownStore(context.Background(), &config.Config{
			Cooldown: config.Cooldown{Backend: config.CooldownBackendRedis},
			Redis:    config.Redis{Addr: addr},
		})

		assert.Error(t, err)
		assert.Nil(t, store)
	})
}
