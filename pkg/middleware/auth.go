package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/rsa-auditor-api/pkg/apiErrors"
)

// publicPaths não exigem token
var publicPaths = map[string]bool{
	"/healthcheck":  true,
	"/v1/verticals": true,
}

func isPublic(path string) bool {
	return publicPaths[path] || strings.HasPrefix(path, "/v1/verticals/")
}

// AuthMiddleware exige o token de API em todas as rotas não públicas.
// Token vazio desabilita a checagem.
func AuthMiddleware(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if token == "" {
			logrus.Warn("API_TOKEN não configurado, rotas sem autenticação")
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublic(r.URL.Path) || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Authorization header is required", nil)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Bearer token is required", nil)
				return
			}

			if subtle.ConstantTimeCompare([]byte(tokenString), []byte(token)) != 1 {
				logrus.WithField("path", r.URL.Path).Warning("Tentativa de acesso com token inválido")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Invalid token", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
