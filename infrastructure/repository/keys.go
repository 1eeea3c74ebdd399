package repository

import (
	"sort"

	"github.com/vfg2006/rsa-auditor-api/internal/domain"
)

// sortKeys ordena como o ORDER BY do ledger em Postgres
func sortKeys(keys []domain.CooldownKey) {
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].AdID != keys[j].AdID {
			return keys[i].AdID < keys[j].AdID
		}
		if keys[i].RuleCode != keys[j].RuleCode {
			return keys[i].RuleCode < keys[j].RuleCode
		}
		return keys[i].AssetID < keys[j].AssetID
	})
}
