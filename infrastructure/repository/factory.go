package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/rsa-auditor-api/infrastructure/database/postgres"
	"github.com/vfg2006/rsa-auditor-api/internal/config"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/optimizing"
)

// NewCooldownStore abre o backend configurado. Com backend "none" devolve store nil
// e o serviço de otimização roda sem cooldown.
func NewCooldownStore(ctx context.Context, cfg *config.Config) (optimizing.CooldownStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Cooldown.Backend {
	case config.CooldownBackendPostgres:
		conn, err := postgres.NewConnection(ctx, cfg.Database)
		if err != nil {
			return nil, noop, fmt.Errorf("erro ao conectar no postgres: %w", err)
		}
		logrus.Info("Cooldown usando ledger em postgres")
		return NewCooldownRepository(conn.DB), conn.Close, nil

	case config.CooldownBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, noop, fmt.Errorf("erro ao conectar no redis: %w", err)
		}
		logrus.WithField("addr", cfg.Redis.Addr).Info("Cooldown usando redis")
		return NewRedisCooldownStore(client), client.Close, nil

	default:
		logrus.Warn("Cooldown desabilitado, execuções repetidas não serão bloqueadas")
		return nil, noop, nil
	}
}
