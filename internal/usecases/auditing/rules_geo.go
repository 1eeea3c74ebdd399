package auditing

import (
	"fmt"

	"github.com/vfg2006/rsa-auditor-api/internal/domain"
	"github.com/vfg2006/rsa-auditor-api/pkg/utils"
)

func localPhrases() []string {
	return []string{"local", "locally", "near you", "nearby", "near me", "in town", "your area", "neighborhood"}
}

// missingLocationRule só se aplica quando o corpus mostra intenção local
func missingLocationRule(in Input, _ Thresholds) []domain.Finding {
	geo := in.Context.Geo
	if !geo.HasLocalIntent {
		return nil
	}

	for _, asset := range enabledAssets(in.Ad) {
		if geo.City != "" && utils.ContainsPhrase(asset.Text, geo.City) {
			return nil
		}
		if geo.Region != "" && utils.ContainsToken(asset.Text, geo.Region) {
			return nil
		}
		for _, phrase := range localPhrases() {
			if utils.ContainsPhrase(asset.Text, phrase) {
				return nil
			}
		}
	}

	expected := "a city, region or local reference"
	if geo.City != "" {
		expected = fmt.Sprintf("mention %s", geo.City)
	}
	return []domain.Finding{{
		Code:     domain.RuleMissingLocation,
		Severity: domain.SeverityWarn,
		Message:  "Searches show local intent but no asset mentions a location",
		Observed: "no location in assets",
		Expected: expected,
	}}
}
