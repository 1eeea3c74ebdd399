package handler

import (
	"net/http"

	"github.com/vfg2006/rsa-auditor-api/internal/domain"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/optimizing"
	"github.com/vfg2006/rsa-auditor-api/pkg/apiErrors"
	"github.com/vfg2006/rsa-auditor-api/pkg/log"
)

// Remediate simula ou executa as mudanças de um achado
func Remediate(service optimizing.Optimizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var req domain.RemediationRequest
		if err := decodeBody(w, r, &req); err != nil {
			logger.WithError(err).Warn("Corpo da remediação inválido")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Request body must be a valid remediation JSON", nil)
			return
		}

		logger = logger.WithFields(log.Fields{
			"ad_id": req.Ad.ID,
			"mode":  req.Mode,
		})

		resp, err := service.Remediate(r.Context(), req)
		if err != nil {
			writeUsecaseError(w, r, err, "remediate")
			return
		}

		logger.WithFields(log.Fields{
			"changes":  len(resp.Changes),
			"blocking": len(resp.Blocking),
		}).Info("Remediação processada")

		writeJSON(w, r, http.StatusOK, resp)
	}
}
