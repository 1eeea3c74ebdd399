package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/rsa-auditor-api/internal/api/handler/router"
	"github.com/vfg2006/rsa-auditor-api/internal/domain"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/extracting"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/optimizing"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/optimizing/mocks"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/verticals"
	"github.com/vfg2006/rsa-auditor-api/pkg/apiErrors"
	"github.com/vfg2006/rsa-auditor-api/pkg/log"
)

func TestMain(m *testing.M) {
	log.SetupTestLogger()
	os.Exit(m.Run())
}

func serve(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeAPIError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()
	var apiErr apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	return apiErr
}

func TestAuditBatch(t *testing.T) {
	batch := `{"vertical":"ecommerce","ads":[{"id":"ad-1","assets":[{"id":"h1","type":"HEADLINE","text":"Shop Shoes"}]}]}`

	tests := []struct {
		name         string
		body         string
		setupMock    func(m *mocks.MockOptimizer)
		expectedCode int
		expectedErr  string
	}{
		{
			name: "Lote auditado com sucesso",
			body: batch,
			setupMock: func(m *mocks.MockOptimizer) {
				m.EXPECT().AuditBatch(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ any, req domain.BatchRequest) (*domain.BatchResult, error) {
						assert.Equal(t, "ecommerce", req.Vertical)
						require.Len(t, req.Ads, 1)
						assert.Equal(t, "ad-1", req.Ads[0].ID)
						return &domain.BatchResult{
							RunID:    "run_abc",
							Vertical: "ecommerce",
							Summary:  domain.BatchSummary{AdCount: 1, AverageScore: 92},
						}, nil
					})
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "JSON inválido",
			body:         `{"ads": [`,
			setupMock:    func(m *mocks.MockOptimizer) {},
			expectedCode: http.StatusBadRequest,
			expectedErr:  apiErrors.ErrInvalidFormat,
		},
		{
			name: "Anúncio duplicado rejeita o lote",
			body: batch,
			setupMock: func(m *mocks.MockOptimizer) {
				m.EXPECT().AuditBatch(gomock.Any(), gomock.Any()).
					Return(nil, optimizing.NewInputError(optimizing.ErrDuplicateAdID, "ad-1", "position 2"))
			},
			expectedCode: http.StatusBadRequest,
			expectedErr:  apiErrors.ErrInvalidAuditInput,
		},
		{
			name: "Vertical desconhecida",
			body: batch,
			setupMock: func(m *mocks.MockOptimizer) {
				m.EXPECT().AuditBatch(gomock.Any(), gomock.Any()).
					Return(nil, optimizing.NewInputError(fmt.Errorf("%w: %q", verticals.ErrUnknownVertical, "crypto"), "", ""))
			},
			expectedCode: http.StatusBadRequest,
			expectedErr:  apiErrors.ErrInvalidAuditInput,
		},
		{
			name: "Erro inesperado",
			body: batch,
			setupMock: func(m *mocks.MockOptimizer) {
				m.EXPECT().AuditBatch(gomock.Any(), gomock.Any()).Return(nil, errors.New("context canceled"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedErr:  apiErrors.ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			optimizer := mocks.NewMockOptimizer(ctrl)
			tt.setupMock(optimizer)

			rec := serve(t, AuditBatch(optimizer), http.MethodPost, "/v1/audits", tt.body)

			assert.Equal(t, tt.expectedCode, rec.Code)
			if tt.expectedErr != "" {
				assert.Equal(t, tt.expectedErr, decodeAPIError(t, rec).Code)
				return
			}

			var result domain.BatchResult
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
			assert.Equal(t, "run_abc", result.RunID)
			assert.Equal(t, 92.0, result.Summary.AverageScore)
		})
	}
}

func TestAuditBatch_InputErrorDetails(t *testing.T) {
	ctrl := gomock.NewController(t)
	optimizer := mocks.NewMockOptimizer(ctrl)
	optimizer.EXPECT().AuditBatch(gomock.Any(), gomock.Any()).
		Return(nil, optimizing.NewInputError(optimizing.ErrInvalidAssetType, "ad-7", "SITELINK"))

	rec := serve(t, AuditBatch(optimizer), http.MethodPost, "/v1/audits", `{"ads":[]}`)

	var body struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, apiErrors.ErrInvalidAuditInput, body.Code)
	assert.Equal(t, optimizing.ErrInvalidAssetType.Error(), body.Message)
	assert.Equal(t, map[string]string{"ad_id": "ad-7", "details": "SITELINK"}, body.Details)
}

func TestRemediate(t *testing.T) {
	body := `{"mode":"execute","ad":{"id":"ad-1"},"finding":{"code":"LOW_CTR"}}`

	tests := []struct {
		name         string
		setupMock    func(m *mocks.MockOptimizer)
		expectedCode int
		expectedErr  string
	}{
		{
			name: "Execução com resultado por mudança",
			setupMock: func(m *mocks.MockOptimizer) {
				m.EXPECT().Remediate(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ any, req domain.RemediationRequest) (*domain.RemediationResponse, error) {
						assert.Equal(t, domain.ModeExecute, req.Mode)
						assert.Equal(t, "LOW_CTR", req.Finding.Code)
						return &domain.RemediationResponse{
							Mode:       domain.ModeExecute,
							Outcomes:   []domain.ChangeOutcome{{ChangeID: "c1", Status: domain.OutcomeApplied, CreatedID: "asset-1"}},
							CreatedIDs: []string{"asset-1"},
						}, nil
					})
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Modo inválido",
			setupMock: func(m *mocks.MockOptimizer) {
				m.EXPECT().Remediate(gomock.Any(), gomock.Any()).
					Return(nil, optimizing.NewInputError(optimizing.ErrInvalidMode, "ad-1", "publish"))
			},
			expectedCode: http.StatusBadRequest,
			expectedErr:  apiErrors.ErrInvalidAuditInput,
		},
		{
			name: "Executor não configurado",
			setupMock: func(m *mocks.MockOptimizer) {
				m.EXPECT().Remediate(gomock.Any(), gomock.Any()).Return(nil, optimizing.ErrExecutorUnavailable)
			},
			expectedCode: http.StatusServiceUnavailable,
			expectedErr:  apiErrors.ErrExecutorDisabled,
		},
		{
			name: "Falha no ledger de cooldown",
			setupMock: func(m *mocks.MockOptimizer) {
				m.EXPECT().Remediate(gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("%w: connection refused", optimizing.ErrCooldownStore))
			},
			expectedCode: http.StatusInternalServerError,
			expectedErr:  apiErrors.ErrDatabaseOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			optimizer := mocks.NewMockOptimizer(ctrl)
			tt.setupMock(optimizer)

			rec := serve(t, Remediate(optimizer), http.MethodPost, "/v1/remediations", body)

			assert.Equal(t, tt.expectedCode, rec.Code)
			if tt.expectedErr != "" {
				assert.Equal(t, tt.expectedErr, decodeAPIError(t, rec).Code)
				return
			}

			var resp domain.RemediationResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, []string{"asset-1"}, resp.CreatedIDs)
			require.Len(t, resp.Outcomes, 1)
			assert.Equal(t, domain.OutcomeApplied, resp.Outcomes[0].Status)
		})
	}
}

func TestVerticals(t *testing.T) {
	rt := router.New(router.WithRoutes(Verticals(verticals.NewRegistry(), extracting.MustLoadCatalog())...))

	t.Run("Lista todas as verticais", func(t *testing.T) {
		rec := serve(t, rt, http.MethodGet, "/v1/verticals", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Verticals []verticalSummary `json:"verticals"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Verticals, 5)
		assert.Equal(t, "healthcare", body.Verticals[0].Name)
		for _, v := range body.Verticals {
			assert.Positive(t, v.CTRBenchmark, v.Name)
		}
	})

	t.Run("Detalha uma vertical pelo apelido", func(t *testing.T) {
		rec := serve(t, rt, http.MethodGet, "/v1/verticals/medical", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var body verticalDetail
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "healthcare", body.Name)
		assert.NotEmpty(t, body.CTAs)
	})

	t.Run("Vertical desconhecida", func(t *testing.T) {
		rec := serve(t, rt, http.MethodGet, "/v1/verticals/crypto", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrUnknownVertical, decodeAPIError(t, rec).Code)
	})
}

type fakeCronJob struct {
	triggered int
}

func (f *fakeCronJob) TriggerManualSync() { f.triggered++ }

func (f *fakeCronJob) GetStatus() map[string]any {
	return map[string]any{"enabled": true, "triggered": f.triggered}
}

func TestCronJobs(t *testing.T) {
	t.Run("Dispara a limpeza de cooldowns", func(t *testing.T) {
		job := &fakeCronJob{}
		rt := router.New(router.WithRoutes(CronJobs(CronJobServices{CooldownPurge: job})...))

		rec := serve(t, rt, http.MethodPost, "/v1/cron/cooldown-purge/run", "")
		assert.Equal(t, http.StatusAccepted, rec.Code)

		rec = serve(t, rt, http.MethodPost, "/v1/cron/all/run", "")
		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Equal(t, 2, job.triggered)

		rec = serve(t, rt, http.MethodGet, "/v1/cron/status", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var status map[string]map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
		assert.Equal(t, true, status[CronJobTypeCooldownPurge]["enabled"])
	})

	t.Run("Job inexistente", func(t *testing.T) {
		rt := router.New(router.WithRoutes(CronJobs(CronJobServices{CooldownPurge: &fakeCronJob{}})...))

		rec := serve(t, rt, http.MethodPost, "/v1/cron/meta/run", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, apiErrors.ErrUnknownCronJob, decodeAPIError(t, rec).Code)
	})

	t.Run("Job não configurado", func(t *testing.T) {
		rt := router.New(router.WithRoutes(CronJobs(CronJobServices{})...))

		rec := serve(t, rt, http.MethodPost, "/v1/cron/cooldown-purge/run", "")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, apiErrors.ErrCronJobUnavailable, decodeAPIError(t, rec).Code)
	})
}

func TestHealthcheck(t *testing.T) {
	rec := serve(t, HealthcheckHandler(), http.MethodGet, "/healthcheck", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}
