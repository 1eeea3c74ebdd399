package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vfg2006/rsa-auditor-api/internal/domain"
)

const (
	cooldownKeyPrefix   = "rsa:cooldown:entry:"
	cooldownIndexPrefix = "rsa:cooldown:index:"
)

// RedisCooldownStore guarda cada chave com TTL e mantém um set por anúncio para listagem.
// O valor é o expires_at em unix nano, comparado contra o relógio recebido.
// Os sets não expiram; DeleteExpired remove os membros vencidos.
type RedisCooldownStore struct {
	client *redis.Client
}

func NewRedisCooldownStore(client *redis.Client) *RedisCooldownStore {
	return &RedisCooldownStore{client: client}
}

func entryKey(key domain.CooldownKey) string {
	return cooldownKeyPrefix + key.AdID + ":" + key.RuleCode + ":" + key.AssetID
}

func indexKey(adID string) string {
	return cooldownIndexPrefix + adID
}

func indexMember(key domain.CooldownKey) string {
	return key.RuleCode + "|" + key.AssetID
}

func parseMember(adID, member string) domain.CooldownKey {
	rule, asset, _ := strings.Cut(member, "|")
	return domain.CooldownKey{AdID: adID, RuleCode: rule, AssetID: asset}
}

func (s *RedisCooldownStore) Record(ctx context.Context, entry domain.CooldownEntry) error {
	ttl := entry.ExpiresAt.Sub(entry.ExecutedAt)
	if ttl <= 0 {
		return fmt.Errorf("janela de cooldown inválida para %s: %s", entry.Key.AdID, ttl)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, entryKey(entry.Key), strconv.FormatInt(entry.ExpiresAt.UnixNano(), 10), ttl)
	pipe.SAdd(ctx, indexKey(entry.Key.AdID), indexMember(entry.Key))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("erro ao gravar cooldown no redis: %w", err)
	}
	return nil
}

func (s *RedisCooldownStore) Active(ctx context.Context, key domain.CooldownKey, now time.Time) (bool, error) {
	raw, err := s.client.Get(ctx, entryKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("erro ao consultar cooldown no redis: %w", err)
	}
	return notExpired(raw, now), nil
}

func notExpired(raw string, now time.Time) bool {
	expiresAt, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return false
	}
	return time.Unix(0, expiresAt).After(now)
}

func (s *RedisCooldownStore) ListActive(ctx context.Context, adIDs []string, now time.Time) ([]domain.CooldownKey, error) {
	keys := make([]domain.CooldownKey, 0)
	for _, adID := range adIDs {
		members, err := s.client.SMembers(ctx, indexKey(adID)).Result()
		if err != nil {
			return nil, fmt.Errorf("erro ao listar cooldowns do anúncio %s: %w", adID, err)
		}
		if len(members) == 0 {
			continue
		}

		candidates := make([]domain.CooldownKey, 0, len(members))
		pipe := s.client.Pipeline()
		gets := make([]*redis.StringCmd, 0, len(members))
		for _, member := range members {
			key := parseMember(adID, member)
			candidates = append(candidates, key)
			gets = append(gets, pipe.Get(ctx, entryKey(key)))
		}
		if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("erro ao consultar cooldowns do anúncio %s: %w", adID, err)
		}

		for i, cmd := range gets {
			raw, err := cmd.Result()
			if err != nil || !notExpired(raw, now) {
				continue
			}
			keys = append(keys, candidates[i])
		}
	}

	sortKeys(keys)
	return keys, nil
}

// DeleteExpired limpa dos índices as chaves vencidas; as entradas expiram sozinhas pelo TTL
func (s *RedisCooldownStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	var removed int64
	iter := s.client.Scan(ctx, 0, cooldownIndexPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		index := iter.Val()
		adID := strings.TrimPrefix(index, cooldownIndexPrefix)

		members, err := s.client.SMembers(ctx, index).Result()
		if err != nil {
			return removed, fmt.Errorf("erro ao listar índice %s: %w", index, err)
		}
		for _, member := range members {
			key := parseMember(adID, member)
			raw, err := s.client.Get(ctx, entryKey(key)).Result()
			if err != nil && !errors.Is(err, redis.Nil) {
				return removed, fmt.Errorf("erro ao consultar cooldown: %w", err)
			}
			if err == nil && notExpired(raw, now) {
				continue
			}

			pipe := s.client.TxPipeline()
			pipe.Del(ctx, entryKey(key))
			pipe.SRem(ctx, index, member)
			if _, err := pipe.Exec(ctx); err != nil {
				return removed, fmt.Errorf("erro ao remover cooldown expirado: %w", err)
			}
			removed++
		}
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("erro ao varrer índices de cooldown: %w", err)
	}
	return removed, nil
}
