package handler

import (
	"net/http"

	"github.com/vfg2006/rsa-auditor-api/internal/domain"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/optimizing"
	"github.com/vfg2006/rsa-auditor-api/pkg/apiErrors"
	"github.com/vfg2006/rsa-auditor-api/pkg/log"
)

// AuditBatch audita um lote de anúncios e devolve achados, notas e mudanças propostas
func AuditBatch(service optimizing.Optimizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var req domain.BatchRequest
		if err := decodeBody(w, r, &req); err != nil {
			logger.WithError(err).Warn("Corpo da auditoria inválido")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Request body must be a valid batch JSON", nil)
			return
		}

		result, err := service.AuditBatch(r.Context(), req)
		if err != nil {
			writeUsecaseError(w, r, err, "audit batch")
			return
		}

		logger.WithFields(log.Fields{
			"run_id": result.RunID,
			"ads":    result.Summary.AdCount,
		}).Info("Lote auditado")

		writeJSON(w, r, http.StatusOK, result)
	}
}
