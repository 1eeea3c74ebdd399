package optimizing

import (
	"context"
	"time"

	"github.com/vfg2006/rsa-auditor-api/internal/domain"
)

// Executor aplica uma mudança na plataforma de anúncios e devolve o ID criado, quando houver
//
//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks
type Executor interface {
	Apply(ctx context.Context, change domain.Change) (string, error)
}

// CooldownStore guarda as remediações executadas recentemente
type CooldownStore interface {
	// Record registra a execução; uma chave repetida substitui a anterior
	Record(ctx context.Context, entry domain.CooldownEntry) error
	Active(ctx context.Context, key domain.CooldownKey, now time.Time) (bool, error)
	// ListActive devolve as chaves ainda em cooldown para os anúncios informados
	ListActive(ctx context.Context, adIDs []string, now time.Time) ([]domain.CooldownKey, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type Optimizer interface {
	AuditBatch(ctx context.Context, req domain.BatchRequest) (*domain.BatchResult, error)
	Remediate(ctx context.Context, req domain.RemediationRequest) (*domain.RemediationResponse, error)
}
