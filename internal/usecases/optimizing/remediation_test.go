package optimizing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/rsa-auditor-api/internal/domain"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/optimizing"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/optimizing/mocks"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/proposing"
)

func remediation(mode domain.RemediationMode, ad domain.Ad, finding domain.Finding, changes ...domain.Change) domain.RemediationRequest {
	at := asOf
	return domain.RemediationRequest{
		Mode:     mode,
		Vertical: "ecommerce",
		Ad:       ad,
		Finding:  finding,
		Changes:  changes,
		AsOf:     &at,
	}
}

var lowCTR = domain.Finding{Code: domain.RuleLowCTR, Severity: domain.SeverityWarn}

func approvedChanges() []domain.Change {
	return []domain.Change{
		{ID: "c1", Op: domain.OpAddAsset, AssetType: domain.AssetTypeHeadline, Text: "Shop Trail Runners"},
		{ID: "c2", Op: domain.OpAddAsset, AssetType: domain.AssetTypeHeadline, Text: "Lightweight Trail Running Shoes For Everyone"},
	}
}

func TestRemediate_InputErrors(t *testing.T) {
	service := newService(nil, nil)

	tests := []struct {
		name     string
		request  domain.RemediationRequest
		expected error
	}{
		{name: "Modo inválido", request: remediation("apply_now", testAd("ad-1"), lowCTR), expected: optimizing.ErrInvalidMode},
		{name: "Sem finding", request: remediation(domain.ModeDryRun, testAd("ad-1"), domain.Finding{}), expected: optimizing.ErrMissingFinding},
		{name: "Anúncio sem ID", request: remediation(domain.ModeDryRun, testAd(""), lowCTR), expected: optimizing.ErrMissingAdID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response, err := service.Remediate(context.Background(), tt.request)

			assert.Nil(t, response)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestRemediate_DryRun(t *testing.T) {
	t.Run("Gera a correção de formatação sem executar", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		executor := mocks.NewMockExecutor(ctrl)

		finding := domain.Finding{Code: domain.RuleFormatting, Severity: domain.SeverityWarn, AssetID: "h1"}
		response, err := newService(nil, executor).Remediate(context.Background(), remediation("", shoutingAd("ad-1"), finding))
		require.NoError(t, err)

		assert.Equal(t, domain.ModeDryRun, response.Mode)
		update, ok := findChange(response.Changes, "ad-1", domain.OpUpdateAsset)
		require.True(t, ok)
		assert.Equal(t, "h1", update.AssetID)
		assert.Equal(t, "Free Shoes Now", update.Text)
		assert.Empty(t, response.Blocking)
		assert.Nil(t, response.Outcomes)
	})

	t.Run("Mudanças do chamador recebem referências e problemas", func(t *testing.T) {
		response, err := newService(nil, nil).Remediate(context.Background(), remediation(domain.ModeDryRun, testAd("ad-1"), lowCTR, approvedChanges()...))
		require.NoError(t, err)

		require.Len(t, response.Changes, 2)
		assert.Equal(t, "ad-1", response.Changes[0].AdID)
		assert.Equal(t, "ag-1", response.Changes[0].AdGroupID)
		assert.Equal(t, domain.RuleLowCTR, response.Changes[0].RuleCode)
		assert.Equal(t, 18, response.Changes[0].CharCount)

		require.Len(t, response.Blocking, 1)
		assert.Equal(t, "c2", response.Blocking[0].ChangeID)
		assert.Equal(t, proposing.ProblemTextTooLong, response.Blocking[0].Code)
	})

	t.Run("Prévia avisa sobre cooldown ativo", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockCooldownStore(ctrl)
		store.EXPECT().Active(gomock.Any(), domain.CooldownKey{AdID: "ad-1", RuleCode: domain.RuleLowCTR}, asOf).Return(true, nil)

		response, err := newService(store, nil).Remediate(context.Background(), remediation(domain.ModeDryRun, testAd("ad-1"), lowCTR, approvedChanges()[0]))
		require.NoError(t, err)

		assert.Empty(t, response.Changes)
		require.Len(t, response.Advisory, 1)
		assert.Equal(t, optimizing.ProblemCooldownActive, response.Advisory[0].Code)
	})

	t.Run("Exclusão enviada pelo chamador não gera mudanças", func(t *testing.T) {
		finding := domain.Finding{Code: domain.RuleFormatting, Severity: domain.SeverityWarn, AssetID: "h1"}
		request := remediation(domain.ModeDryRun, shoutingAd("ad-1"), finding)
		request.Exclusions = []domain.CooldownKey{{AdID: "ad-1", RuleCode: domain.RuleFormatting, AssetID: "h1"}}

		response, err := newService(nil, nil).Remediate(context.Background(), request)
		require.NoError(t, err)

		assert.NotNil(t, response.Changes)
		assert.Empty(t, response.Changes)
		require.Len(t, response.Advisory, 1)
		assert.Equal(t, optimizing.ProblemCooldownActive, response.Advisory[0].Code)
	})

	t.Run("Exclusão de outro asset não afeta o finding", func(t *testing.T) {
		finding := domain.Finding{Code: domain.RuleFormatting, Severity: domain.SeverityWarn, AssetID: "h1"}
		request := remediation(domain.ModeDryRun, shoutingAd("ad-1"), finding)
		request.Exclusions = []domain.CooldownKey{{AdID: "ad-1", RuleCode: domain.RuleFormatting, AssetID: "h2"}}

		response, err := newService(nil, nil).Remediate(context.Background(), request)
		require.NoError(t, err)

		_, ok := findChange(response.Changes, "ad-1", domain.OpUpdateAsset)
		assert.True(t, ok)
		for _, p := range response.Advisory {
			assert.NotEqual(t, optimizing.ProblemCooldownActive, p.Code)
		}
	})
}

func TestRemediate_Execute(t *testing.T) {
	key := domain.CooldownKey{AdID: "ad-1", RuleCode: domain.RuleLowCTR}

	t.Run("Aplica só as mudanças não bloqueadas e registra cooldown", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		executor := mocks.NewMockExecutor(ctrl)
		store := mocks.NewMockCooldownStore(ctrl)

		store.EXPECT().Active(gomock.Any(), key, asOf).Return(false, nil)
		executor.EXPECT().Apply(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c domain.Change) (string, error) {
			assert.Equal(t, "c1", c.ID)
			return "asset-123", nil
		})
		store.EXPECT().Record(gomock.Any(), domain.CooldownEntry{
			Key:        key,
			ChangeID:   "c1",
			ExecutedAt: asOf,
			ExpiresAt:  asOf.Add(optimizing.DefaultCooldownTTL),
		}).Return(nil)

		response, err := newService(store, executor).Remediate(context.Background(), remediation(domain.ModeExecute, testAd("ad-1"), lowCTR, approvedChanges()...))
		require.NoError(t, err)
		require.Len(t, response.Outcomes, 2)

		assert.Equal(t, []domain.ChangeOutcome{
			{ChangeID: "c1", Op: domain.OpAddAsset, Status: domain.OutcomeApplied, CreatedID: "asset-123"},
			{ChangeID: "c2", Op: domain.OpAddAsset, Status: domain.OutcomeBlocked, Error: response.Outcomes[1].Error},
		}, response.Outcomes)
		assert.Contains(t, response.Outcomes[1].Error, proposing.ProblemTextTooLong)
		assert.Equal(t, []string{"asset-123"}, response.CreatedIDs)
	})

	t.Run("Cooldown ativo não é erro", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		executor := mocks.NewMockExecutor(ctrl)
		store := mocks.NewMockCooldownStore(ctrl)
		store.EXPECT().Active(gomock.Any(), key, asOf).Return(true, nil)

		response, err := newService(store, executor).Remediate(context.Background(), remediation(domain.ModeExecute, testAd("ad-1"), lowCTR, approvedChanges()[0]))
		require.NoError(t, err)

		assert.Empty(t, response.Changes)
		require.Len(t, response.Outcomes, 1)
		assert.Equal(t, domain.OutcomeCooldownActive, response.Outcomes[0].Status)
		assert.Empty(t, response.CreatedIDs)
	})

	t.Run("Exclusão do chamador bloqueia execuções repetidas sem store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		executor := mocks.NewMockExecutor(ctrl)
		executor.EXPECT().Apply(gomock.Any(), gomock.Any()).Times(0)

		request := remediation(domain.ModeExecute, testAd("ad-1"), lowCTR, approvedChanges()[0])
		request.Exclusions = []domain.CooldownKey{key}

		response, err := newService(nil, executor).Remediate(context.Background(), request)
		require.NoError(t, err)

		assert.Empty(t, response.Changes)
		require.Len(t, response.Outcomes, 1)
		assert.Equal(t, domain.OutcomeCooldownActive, response.Outcomes[0].Status)
		assert.Empty(t, response.Outcomes[0].ChangeID)
		assert.Contains(t, response.Outcomes[0].Error, "cooldown")
		assert.Empty(t, response.CreatedIDs)
	})

	t.Run("Exclusão do chamador dispensa consulta ao store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		executor := mocks.NewMockExecutor(ctrl)
		store := mocks.NewMockCooldownStore(ctrl)

		request := remediation(domain.ModeExecute, testAd("ad-1"), lowCTR, approvedChanges()[0])
		request.Exclusions = []domain.CooldownKey{key}

		response, err := newService(store, executor).Remediate(context.Background(), request)
		require.NoError(t, err)

		require.Len(t, response.Outcomes, 1)
		assert.Equal(t, domain.OutcomeCooldownActive, response.Outcomes[0].Status)
	})

	t.Run("Falha do executor vira outcome failed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		executor := mocks.NewMockExecutor(ctrl)
		executor.EXPECT().Apply(gomock.Any(), gomock.Any()).Return("", errors.New("quota exceeded"))

		response, err := newService(nil, executor).Remediate(context.Background(), remediation(domain.ModeExecute, testAd("ad-1"), lowCTR, approvedChanges()[0]))
		require.NoError(t, err)

		require.Len(t, response.Outcomes, 1)
		assert.Equal(t, domain.OutcomeFailed, response.Outcomes[0].Status)
		assert.Equal(t, "quota exceeded", response.Outcomes[0].Error)
	})

	t.Run("Sem executor configurado", func(t *testing.T) {
		_, err := newService(nil, nil).Remediate(context.Background(), remediation(domain.ModeExecute, testAd("ad-1"), lowCTR, approvedChanges()[0]))

		assert.ErrorIs(t, err, optimizing.ErrExecutorUnavailable)
	})

	t.Run("Erro no store de cooldown", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockCooldownStore(ctrl)
		store.EXPECT().Active(gomock.Any(), key, asOf).Return(false, errors.New("timeout"))

		_, err := newService(store, nil).Remediate(context.Background(), remediation(domain.ModeExecute, testAd("ad-1"), lowCTR, approvedChanges()[0]))

		assert.ErrorIs(t, err, optimizing.ErrCooldownStore)
	})
}
