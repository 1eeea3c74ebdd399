package optimizing

import (
	"errors"
	"fmt"

	"github.com/vfg2006/rsa-auditor-api/pkg/apiErrors"
)

// Erros de entrada; rejeitam o lote inteiro
var (
	ErrEmptyBatch       = errors.New("batch has no ads")
	ErrMissingAdID      = errors.New("ad id is required")
	ErrDuplicateAdID    = errors.New("duplicate ad id in batch")
	ErrInvalidAssetType = errors.New("invalid asset type")
	ErrInvalidMode      = errors.New("invalid remediation mode")
	ErrMissingFinding   = errors.New("finding code is required")
)

// Erros de colaboradores externos
var (
	ErrCooldownStore       = errors.New("cooldown store operation error")
	ErrExecutorUnavailable = errors.New("no executor configured")
)

// InputError é um erro de validação de entrada com o código da API
type InputError struct {
	Err     error
	Code    string
	AdID    string
	Details string
}

func (e *InputError) Error() string {
	msg := e.Err.Error()
	if e.AdID != "" {
		msg = fmt.Sprintf("%s (ad %s)", msg, e.AdID)
	}
	if e.Details != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Details)
	}
	return msg
}

func (e *InputError) Unwrap() error {
	return e.Err
}

func NewInputError(err error, adID string, details string) *InputError {
	return &InputError{
		Err:     err,
		Code:    apiErrors.ErrInvalidAuditInput,
		AdID:    adID,
		Details: details,
	}
}
