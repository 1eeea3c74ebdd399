package classifying

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/rsa-auditor-api/internal/domain"
	"github.com/vfg2006/rsa-auditor-api/pkg/templating"
)

func allRuleCodes() []string {
	return []string{
		domain.RuleHeadlineTooLong, domain.RuleDescriptionTooLong, domain.RulePathTooLong,
		domain.RuleDuplicateAsset, domain.RuleNearDuplicateAsset, domain.RulePinStrategy,
		domain.RuleFormatting, domain.RuleMissingPaths, domain.RulePolicyClaimError,
		domain.RulePolicyClaimWarn, domain.RuleForbiddenVerbObject, domain.RulePolicyDisapproved,
		domain.RuleInsufficientHeadlines, domain.RuleInsufficientDescriptions, domain.RuleQueryEchoMissing,
		domain.RuleUnderperformingNgram, domain.RuleLowCTR, domain.RuleLowConversionRate,
		domain.RuleWastedSpend, domain.RuleSustainedWastedSpend, domain.RuleAssetNeverServed,
		domain.RuleStaleAd, domain.RuleCTRDecline, domain.RuleMissingVariant,
		domain.RuleLowServeShare, domain.RuleDeadAsset, domain.RuleExpiredDateReference,
		domain.RuleMissingLocation,
	}
}

func TestClassify(t *testing.T) {
	classifier := NewService(templating.NewRenderer())

	tests := []struct {
		name     string
		finding  domain.Finding
		expected domain.ClassifiedIssue
	}{
		{
			name: "Formatação vira issue de relevância",
			finding: domain.Finding{
				Code: domain.RuleFormatting, Severity: domain.SeverityWarn, AssetID: "h1",
				Observed: "excessive capitalization, repeated punctuation",
				Expected: "sentence or title case without gimmicky punctuation",
			},
			expected: domain.ClassifiedIssue{
				Category:   domain.CategoryRelevance,
				Type:       "Formatting issue",
				Metric:     "excessive capitalization, repeated punctuation",
				Benchmark:  "sentence or title case without gimmicky punctuation",
				Fix:        "Rewrite in title case without repeated punctuation",
				SourceRule: domain.RuleFormatting,
				Severity:   domain.SeverityWarn,
				AssetID:    "h1",
			},
		},
		{
			name: "CTR baixo",
			finding: domain.Finding{
				Code: domain.RuleLowCTR, Severity: domain.SeverityWarn, Observed: "0.50%", Expected: "3.50%",
			},
			expected: domain.ClassifiedIssue{
				Category:   domain.CategoryCTR,
				Type:       "Low CTR",
				Metric:     "CTR 0.50%",
				Benchmark:  "CTR 3.50%",
				Fix:        "Lead with the keyword and a clear benefit",
				SourceRule: domain.RuleLowCTR,
				Severity:   domain.SeverityWarn,
			},
		},
		{
			name: "Alegação proibida sugere substituto",
			finding: domain.Finding{
				Code: domain.RulePolicyClaimError, Severity: domain.SeverityError, AssetID: "h2",
				Observed: "Miracle", Expected: "Licensed Care",
			},
			expected: domain.ClassifiedIssue{
				Category:   domain.CategoryProof,
				Type:       "Prohibited claim",
				Metric:     `"Miracle"`,
				Benchmark:  "Licensed Care",
				Fix:        `Replace "Miracle" with "Licensed Care"`,
				SourceRule: domain.RulePolicyClaimError,
				Severity:   domain.SeverityError,
				AssetID:    "h2",
			},
		},
		{
			name: "Sem localização",
			finding: domain.Finding{
				Code: domain.RuleMissingLocation, Severity: domain.SeverityWarn,
				Observed: "no location in assets", Expected: "mention Austin",
			},
			expected: domain.ClassifiedIssue{
				Category:   domain.CategoryLocal,
				Type:       "Missing location",
				Metric:     "no location in assets",
				Benchmark:  "mention Austin",
				Fix:        "Add a headline that names the city or service area",
				SourceRule: domain.RuleMissingLocation,
				Severity:   domain.SeverityWarn,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := classifier.Classify([]domain.Finding{tt.finding})
			require.Len(t, issues, 1)
			assert.Equal(t, tt.expected, issues[0])
		})
	}
}

func TestClassify_DropsCodesWithoutEntry(t *testing.T) {
	classifier := NewService(templating.NewRenderer())

	issues := classifier.Classify([]domain.Finding{
		{Code: domain.RulePolicyDisapproved, Severity: domain.SeverityError},
		{Code: "UNKNOWN_RULE", Severity: domain.SeverityWarn},
		{Code: domain.RuleStaleAd, Severity: domain.SeverityWarn, Observed: "45 days"},
	})

	require.Len(t, issues, 1)
	assert.Equal(t, domain.RuleStaleAd, issues[0].SourceRule)
	assert.Equal(t, "45 days since last edit", issues[0].Metric)
}

func TestClassify_OnlyTableCodes(t *testing.T) {
	classifier := NewService(templating.NewRenderer())

	var findings []domain.Finding
	for _, code := range allRuleCodes() {
		findings = append(findings, domain.Finding{Code: code, Severity: domain.SeverityWarn, Observed: "x", Expected: "y"})
	}

	issues := classifier.Classify(findings)
	assert.Len(t, issues, len(allRuleCodes())-1)
	for _, issue := range issues {
		assert.True(t, classifier.Covers(issue.SourceRule), issue.SourceRule)
		assert.NotEmpty(t, issue.Type)
		assert.NotEmpty(t, issue.Fix)
	}
	assert.False(t, classifier.Covers(domain.RulePolicyDisapproved))
}

func TestClassify_EmptyInput(t *testing.T) {
	issues := NewService(templating.NewRenderer()).Classify(nil)
	assert.NotNil(t, issues)
	assert.Empty(t, issues)
}
