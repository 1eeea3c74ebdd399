package auditing

import (
	"fmt"
	"strings"

	"github.com/vfg2006/rsa-auditor-api/internal/domain"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/verticals"
)

func policyClaimRule(in Input, _ Thresholds) []domain.Finding {
	var findings []domain.Finding

	for _, asset := range enabledAssets(in.Ad) {
		for _, v := range in.RuleSet.MatchErrorClaims(asset.Text) {
			findings = append(findings, claimFinding(asset, v, domain.RulePolicyClaimError, domain.SeverityError))
		}
		for _, v := range in.RuleSet.MatchWarnClaims(asset.Text) {
			findings = append(findings, claimFinding(asset, v, domain.RulePolicyClaimWarn, domain.SeverityWarn))
		}
	}

	return findings
}

func claimFinding(asset domain.Asset, v verticals.Violation, code string, severity domain.Severity) domain.Finding {
	expected := "compliant wording"
	if v.Suggestion != "" {
		expected = v.Suggestion
	}
	return domain.Finding{
		Code:     code,
		Severity: severity,
		Message:  fmt.Sprintf("%q contains %q: %s", asset.Text, v.Match, v.Reason),
		AssetID:  asset.ID,
		Observed: v.Match,
		Expected: expected,
	}
}

// forbiddenPairRule detecta verbo imperativo próximo de objeto restrito pela vertical
func forbiddenPairRule(in Input, _ Thresholds) []domain.Finding {
	var findings []domain.Finding

	for _, asset := range enabledAssets(in.Ad) {
		seen := make(map[string]bool)
		for _, v := range in.RuleSet.FindForbiddenPairs(asset.Text) {
			if seen[v.Match] {
				continue
			}
			seen[v.Match] = true
			findings = append(findings, domain.Finding{
				Code:     domain.RuleForbiddenVerbObject,
				Severity: domain.SeverityError,
				Message:  fmt.Sprintf("%q pairs %q with a restricted object: %s", asset.Text, v.Verb, v.Reason),
				AssetID:  asset.ID,
				Observed: v.Match,
				Expected: "no imperative verb next to a restricted object",
			})
		}
	}

	return findings
}

func disapprovedRule(in Input, _ Thresholds) []domain.Finding {
	if len(in.Ad.PolicyIssues) == 0 {
		return nil
	}
	return []domain.Finding{{
		Code:     domain.RulePolicyDisapproved,
		Severity: domain.SeverityError,
		Message:  fmt.Sprintf("Ad has platform policy issues: %s", strings.Join(in.Ad.PolicyIssues, ", ")),
		Observed: strings.Join(in.Ad.PolicyIssues, ", "),
		Expected: "no policy issues",
	}}
}
