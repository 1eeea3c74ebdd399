package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/vfg2006/rsa-auditor-api/internal/usecases/optimizing"
	"github.com/vfg2006/rsa-auditor-api/pkg/apiErrors"
	"github.com/vfg2006/rsa-auditor-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxBodyBytes limita o tamanho de lotes enviados pela API
const maxBodyBytes = 8 << 20

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar resposta")
	}
}

// writeUsecaseError traduz os erros de optimizing para o código da API
func writeUsecaseError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	logger := log.ForContext(r.Context())

	var inputErr *optimizing.InputError
	switch {
	case errors.As(err, &inputErr):
		logger.WithError(err).Warn("Entrada rejeitada")
		details := map[string]string{}
		if inputErr.AdID != "" {
			details["ad_id"] = inputErr.AdID
		}
		if inputErr.Details != "" {
			details["details"] = inputErr.Details
		}
		if len(details) == 0 {
			apiErrors.WriteError(w, inputErr.Code, inputErr.Err.Error(), nil)
			return
		}
		apiErrors.WriteError(w, inputErr.Code, inputErr.Err.Error(), details)
	case errors.Is(err, optimizing.ErrExecutorUnavailable):
		logger.Warn("Execução solicitada sem executor configurado")
		apiErrors.WriteError(w, apiErrors.ErrExecutorDisabled, "Change execution is disabled on this server", nil)
	case errors.Is(err, optimizing.ErrCooldownStore):
		logger.WithError(err).Error("Erro no ledger de cooldown")
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Cooldown ledger unavailable", nil)
	default:
		logger.WithError(errors.Wrap(err, operation)).Error("Erro inesperado")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Internal server error", nil)
	}
}
