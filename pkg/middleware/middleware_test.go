package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vfg2006/rsa-auditor-api/pkg/log"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		method   string
		path     string
		header   string
		expected int
	}{
		{name: "Token correto", token: "secret", method: http.MethodPost, path: "/v1/audits", header: "Bearer secret", expected: http.StatusNoContent},
		{name: "Sem header", token: "secret", method: http.MethodPost, path: "/v1/audits", expected: http.StatusUnauthorized},
		{name: "Sem prefixo Bearer", token: "secret", method: http.MethodPost, path: "/v1/audits", header: "secret", expected: http.StatusUnauthorized},
		{name: "Token errado", token: "secret", method: http.MethodPost, path: "/v1/remediations", header: "Bearer other", expected: http.StatusUnauthorized},
		{name: "Rota pública", token: "secret", method: http.MethodGet, path: "/healthcheck", expected: http.StatusNoContent},
		{name: "Detalhe de vertical é público", token: "secret", method: http.MethodGet, path: "/v1/verticals/legal", expected: http.StatusNoContent},
		{name: "Status das crons exige token", token: "secret", method: http.MethodGet, path: "/v1/cron/status", expected: http.StatusUnauthorized},
		{name: "Preflight", token: "secret", method: http.MethodOptions, path: "/v1/audits", expected: http.StatusNoContent},
		{name: "Sem token configurado", method: http.MethodPost, path: "/v1/audits", expected: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(tt.token)(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}

func TestCors(t *testing.T) {
	handler := Cors([]string{"http://localhost:3000"})(okHandler())

	t.Run("Origem permitida", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/verticals", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("Origem desconhecida", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/verticals", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Preflight responde direto", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/v1/audits", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestLogPanicMiddleware(t *testing.T) {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { panic("boom") })
	rec := httptest.NewRecorder()

	LogPanicMiddleware()(LoggingMiddleware()(panicking)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/audits", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestLoggingMiddleware_CorrelationID(t *testing.T) {
	var seen string
	handler := LoggingMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = log.GetCorrelationID(r.Context())
	}))

	t.Run("Reaproveita o ID recebido", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/verticals", nil)
		req.Header.Set(CorrelationHeader, "req-123")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, "req-123", seen)
		assert.Equal(t, "req-123", rec.Header().Get(CorrelationHeader))
	})

	t.Run("Gera um novo ID", func(t *testing.T) {
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/verticals", nil))

		assert.Len(t, seen, 36)
		assert.Equal(t, seen, rec.Header().Get(CorrelationHeader))
	})
}
