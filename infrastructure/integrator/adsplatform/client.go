// Package adsplatform aplica mudanças aprovadas na plataforma de anúncios
package adsplatform

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/rsa-auditor-api/internal/config"
	"github.com/vfg2006/rsa-auditor-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type applyResponse struct {
	CreatedID string `json:"created_id"`
}

type errorResponse struct {
	Message string `json:"message"`
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

func NewClient(cfg config.AdsPlatform) *Client {
	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.URL,
		token:      cfg.Token,
	}
}

// Apply envia uma mudança e devolve o ID do asset criado, quando houver
func (c *Client) Apply(ctx context.Context, change domain.Change) (string, error) {
	// Construir a URL da requisição.
	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("erro ao analisar a URL base: %w", err)
	}
	endpoint.Path = path.Join(endpoint.Path, "/v1/ads", change.AdID, "changes")

	body, err := json.Marshal(change)
	if err != nil {
		return "", fmt.Errorf("erro ao serializar a mudança: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("erro ao criar a requisição: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Idempotency-Key", change.ID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("erro ao ler a resposta: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr errorResponse
		if json.Unmarshal(payload, &apiErr) == nil && apiErr.Message != "" {
			return "", fmt.Errorf("requisição falhou com status %s: %s", resp.Status, apiErr.Message)
		}
		return "", fmt.Errorf("requisição falhou com status: %s", resp.Status)
	}

	var out applyResponse
	if len(bytes.TrimSpace(payload)) > 0 {
		if err := json.Unmarshal(payload, &out); err != nil {
			return "", fmt.Errorf("erro ao decodificar a resposta: %w", err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"ad_id":      change.AdID,
		"change_id":  change.ID,
		"op":         change.Op,
		"created_id": out.CreatedID,
	}).Debug("Mudança aplicada na plataforma")

	return out.CreatedID, nil
}
