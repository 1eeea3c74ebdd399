package adsplatform

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/rsa-auditor-api/internal/config"
	"github.com/vfg2006/rsa-auditor-api/internal/domain"
)

func addChange() domain.Change {
	return domain.Change{
		ID:        "chg_1",
		Op:        domain.OpAddAsset,
		AdID:      "ad-1",
		AssetType: domain.AssetTypeHeadline,
		Text:      "Shop Trail Runners",
		RuleCode:  domain.RuleLowCTR,
	}
}

func TestClient_Apply(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		expectedID  string
		expectedErr string
	}{
		{name: "Asset criado", status: http.StatusCreated, body: `{"created_id":"asset-123"}`, expectedID: "asset-123"},
		{name: "Mudança sem ID criado", status: http.StatusNoContent},
		{name: "Erro com mensagem", status: http.StatusUnprocessableEntity, body: `{"message":"text disapproved"}`, expectedErr: "text disapproved"},
		{name: "Erro sem corpo", status: http.StatusBadGateway, expectedErr: "502"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/api/v1/ads/ad-1/changes", r.URL.Path)
				assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
				assert.Equal(t, "chg_1", r.Header.Get("Idempotency-Key"))

				payload, err := io.ReadAll(r.Body)
				assert.NoError(t, err)
				assert.True(t, strings.Contains(string(payload), `"text":"Shop Trail Runners"`))

				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(config.AdsPlatform{URL: server.URL + "/api", Token: "secret"})

			createdID, err := client.Apply(context.Background(), addChange())

			if tt.expectedErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedID, createdID)
		})
	}
}

func TestSandbox_Apply(t *testing.T) {
	sandbox := NewSandbox()

	createdID, err := sandbox.Apply(context.Background(), addChange())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(createdID, "sbx_"))
	assert.Len(t, createdID, len("sbx_")+idLength)

	pause := domain.Change{ID: "chg_2", Op: domain.OpPauseAsset, AdID: "ad-1", AssetID: "h2"}
	createdID, err = sandbox.Apply(context.Background(), pause)
	require.NoError(t, err)
	assert.Empty(t, createdID)

	applied := sandbox.Applied()
	require.Len(t, applied, 2)
	assert.Equal(t, "chg_1", applied[0].ID)
	assert.Equal(t, "chg_2", applied[1].ID)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = sandbox.Apply(ctx, addChange())
	assert.ErrorIs(t, err, context.Canceled)
}
