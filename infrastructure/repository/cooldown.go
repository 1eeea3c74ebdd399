// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/vfg2006/rsa-auditor-api/infrastructure/database/postgres"
	"github.com/vfg2006/rsa-auditor-api/internal/domain"
)

const cooldownTable = "cooldown_ledger"

// CooldownSchema cria a tabela do ledger; asset_id vazio representa o anúncio inteiro
const CooldownSchema = `
CREATE TABLE IF NOT EXISTS cooldown_ledger (
	ad_id       TEXT        NOT NULL,
	rule_code   TEXT        NOT NULL,
	asset_id    TEXT        NOT NULL DEFAULT '',
	change_id   TEXT        NOT NULL,
	executed_at TIMESTAMPTZ NOT NULL,
	expires_at  TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (ad_id, rule_code, asset_id)
);
CREATE INDEX IF NOT EXISTS cooldown_ledger_expires_at_idx ON cooldown_ledger (expires_at);
`

type CooldownRepository struct {
	db postgres.Queryer
}

func NewCooldownRepository(db postgres.Queryer) *CooldownRepository {
	return &CooldownRepository{db: db}
}

// Record grava ou renova a janela de cooldown da chave
func (r *CooldownRepository) Record(ctx context.Context, entry domain.CooldownEntry) error {
	query, args, err := squirrel.
		Insert(cooldownTable).
		Columns("ad_id", "rule_code", "asset_id", "change_id", "executed_at", "expires_at").
		Values(entry.Key.AdID, entry.Key.RuleCode, entry.Key.AssetID, entry.ChangeID, entry.ExecutedAt, entry.ExpiresAt).
		Suffix("ON CONFLICT (ad_id, rule_code, asset_id) DO UPDATE SET " +
			"change_id = EXCLUDED.change_id, executed_at = EXCLUDED.executed_at, expires_at = EXCLUDED.expires_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao gravar cooldown: %w", err)
	}
	return nil
}

func (r *CooldownRepository) Active(ctx context.Context, key domain.CooldownKey, now time.Time) (bool, error) {
	query, args, err := squirrel.
		Select("1").
		From(cooldownTable).
		Where(squirrel.Eq{"ad_id": key.AdID, "rule_code": key.RuleCode, "asset_id": key.AssetID}).
		Where(squirrel.Gt{"expires_at": now}).
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var found int
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("erro ao consultar cooldown: %w", err)
	}
	return true, nil
}

// ListActive devolve as chaves ainda em cooldown para os anúncios informados
func (r *CooldownRepository) ListActive(ctx context.Context, adIDs []string, now time.Time) ([]domain.CooldownKey, error) {
	keys := make([]domain.CooldownKey, 0)
	if len(adIDs) == 0 {
		return keys, nil
	}

	query, args, err := squirrel.
		Select("ad_id", "rule_code", "asset_id").
		From(cooldownTable).
		Where(squirrel.Eq{"ad_id": adIDs}).
		Where(squirrel.Gt{"expires_at": now}).
		OrderBy("ad_id", "rule_code", "asset_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key domain.CooldownKey
		if err := rows.Scan(&key.AdID, &key.RuleCode, &key.AssetID); err != nil {
			return nil, fmt.Errorf("erro ao escanear cooldown: %w", err)
		}
		keys = append(keys, key)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}
	return keys, nil
}

func (r *CooldownRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query, args, err := squirrel.
		Delete(cooldownTable).
		Where(squirrel.LtOrEq{"expires_at": now}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao remover cooldowns expirados: %w", err)
	}
	return result.RowsAffected()
}
