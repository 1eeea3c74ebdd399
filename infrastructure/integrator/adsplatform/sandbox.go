package adsplatform

import (
	"context"
	"sync"

	"github.com/vfg2006/rsa-auditor-api/internal/domain"
	"github.com/vfg2006/rsa-auditor-api/pkg/utils"
)

const idLength = 10

// Sandbox registra as mudanças em memória e simula os IDs criados
type Sandbox struct {
	mu      sync.Mutex
	applied []domain.Change
}

func NewSandbox() *Sandbox {
	return &Sandbox{}
}

func (s *Sandbox) Apply(ctx context.Context, change domain.Change) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	createdID := ""
	if change.Op == domain.OpAddAsset {
		id, err := utils.GenerateID("sbx_", idLength)
		if err != nil {
			return "", err
		}
		createdID = id
	}

	s.mu.Lock()
	s.applied = append(s.applied, change)
	s.mu.Unlock()

	return createdID, nil
}

// Applied devolve uma cópia das mudanças recebidas, na ordem de chegada
func (s *Sandbox) Applied() []domain.Change {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Change, len(s.applied))
	copy(out, s.applied)
	return out
}
