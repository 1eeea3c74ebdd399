package auditing

import (
	"fmt"

	"github.com/vfg2006/rsa-auditor-api/internal/domain"
	"github.com/vfg2006/rsa-auditor-api/pkg/utils"
)

// AdCTR usa o CTR informado e, na ausência dele, calcula a partir de cliques e impressões
func AdCTR(m domain.AdMetrics) float64 {
	if m.CTR > 0 || m.Impressions == 0 {
		return m.CTR
	}
	return utils.Ratio(float64(m.Clicks), float64(m.Impressions))
}

func AdConversionRate(m domain.AdMetrics) float64 {
	if m.ConversionRate > 0 || m.Clicks == 0 {
		return m.ConversionRate
	}
	return utils.Ratio(m.Conversions, float64(m.Clicks))
}

// lowCTRRule e lowConversionRule só avaliam com volume mínimo de impressões e de cliques
func lowCTRRule(in Input, t Thresholds) []domain.Finding {
	m := in.Ad.Metrics
	if m.Impressions < t.LowCTRMinImpressions || m.Clicks < t.LowCTRMinClicks {
		return nil
	}
	ctr := AdCTR(m)
	if ctr >= in.RuleSet.CTRBenchmark {
		return nil
	}
	return []domain.Finding{{
		Code:     domain.RuleLowCTR,
		Severity: domain.SeverityWarn,
		Message:  fmt.Sprintf("CTR %s is below the %s benchmark of %s over %d impressions", pct(ctr), in.RuleSet.Vertical, pct(in.RuleSet.CTRBenchmark), m.Impressions),
		Observed: pct(ctr),
		Expected: pct(in.RuleSet.CTRBenchmark),
	}}
}

func lowConversionRule(in Input, t Thresholds) []domain.Finding {
	m := in.Ad.Metrics
	if m.Impressions < t.LowCVRMinImpressions || m.Clicks < t.LowCVRMinClicks {
		return nil
	}
	cvr := AdConversionRate(m)
	if cvr >= in.RuleSet.CVRBenchmark {
		return nil
	}
	return []domain.Finding{{
		Code:     domain.RuleLowConversionRate,
		Severity: domain.SeverityWarn,
		Message:  fmt.Sprintf("Conversion rate %s is below the %s benchmark of %s over %d clicks", pct(cvr), in.RuleSet.Vertical, pct(in.RuleSet.CVRBenchmark), m.Clicks),
		Observed: pct(cvr),
		Expected: pct(in.RuleSet.CVRBenchmark),
	}}
}

// wastedSpendRule escala para SUSTAINED_WASTED_SPEND quando volume e custo passam dos limites
func wastedSpendRule(in Input, t Thresholds) []domain.Finding {
	m := in.Ad.Metrics
	if m.Conversions > 0 || m.Clicks < t.WastedSpendClicks {
		return nil
	}

	if m.Clicks >= t.SustainedWastedClicks && m.Cost >= t.SustainedWastedCost {
		return []domain.Finding{{
			Code:     domain.RuleSustainedWastedSpend,
			Severity: domain.SeverityError,
			Message:  fmt.Sprintf("%d clicks and %.2f spent without a single conversion", m.Clicks, m.Cost),
			Observed: fmt.Sprintf("%d clicks, %.2f cost, 0 conversions", m.Clicks, m.Cost),
			Expected: "conversions > 0",
		}}
	}

	return []domain.Finding{{
		Code:     domain.RuleWastedSpend,
		Severity: domain.SeverityWarn,
		Message:  fmt.Sprintf("%d clicks without a conversion", m.Clicks),
		Observed: fmt.Sprintf("%d clicks, 0 conversions", m.Clicks),
		Expected: "conversions > 0",
	}}
}

// neverServedRule só vale para anúncios editados recentemente; os antigos caem em DEAD_ASSET
func neverServedRule(in Input, t Thresholds) []domain.Finding {
	if in.Ad.Metrics.Impressions < t.NeverServedAdImpressions {
		return nil
	}
	if in.Ad.DaysSinceEdit(in.Now) >= t.DeadAssetDays {
		return nil
	}

	var findings []domain.Finding
	for _, asset := range enabledAssets(in.Ad) {
		if asset.Metrics.Impressions > 0 {
			continue
		}
		findings = append(findings, domain.Finding{
			Code:     domain.RuleAssetNeverServed,
			Severity: domain.SeveritySuggest,
			Message:  fmt.Sprintf("%q has not served while the ad has %d impressions", asset.Text, in.Ad.Metrics.Impressions),
			AssetID:  asset.ID,
			Observed: "0 impressions",
			Expected: "> 0 impressions",
		})
	}
	return findings
}
