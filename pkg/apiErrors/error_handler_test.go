package apiErrors

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected int
	}{
		{name: "Entrada de auditoria inválida", code: ErrInvalidAuditInput, expected: http.StatusBadRequest},
		{name: "Executor desabilitado", code: ErrExecutorDisabled, expected: http.StatusServiceUnavailable},
		{name: "Job inexistente", code: ErrUnknownCronJob, expected: http.StatusNotFound},
		{name: "Código desconhecido vira 500", code: "XYZ_999", expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			WriteError(rec, tt.code, "mensagem", map[string]string{"ad_id": "ad-1"})

			assert.Equal(t, tt.expected, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body APIError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, "mensagem", body.Message)
		})
	}
}

func TestFromError(t *testing.T) {
	assert.Equal(t, ErrInternalServer, FromError(nil, ErrInvalidRequest).Code)

	apiErr := FromError(errors.New("boom"), ErrExternalService)
	assert.Equal(t, ErrExternalService, apiErr.Code)
	assert.Equal(t, "SRV_003: boom", apiErr.Error())
}
