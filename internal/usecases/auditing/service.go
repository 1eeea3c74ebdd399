// Package auditing avalia um anúncio contra regras estruturais, de compliance, cobertura,
// performance, frescor e geo, emitindo Findings
package auditing

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/rsa-auditor-api/internal/domain"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/verticals"
)

type Auditor interface {
	Audit(in Input) Report
	Thresholds() Thresholds
}

// Input é tudo o que uma auditoria precisa; o relógio vem de Now
type Input struct {
	Ad          domain.Ad
	Keywords    []string
	SearchTerms []string
	RuleSet     verticals.RuleSet
	Context     domain.RewriteContext
	Now         time.Time
}

type Report struct {
	Findings   []domain.Finding
	RuleErrors []*RuleEvaluationError
}

type ruleFunc func(in Input, t Thresholds) []domain.Finding

type rule struct {
	name string
	eval ruleFunc
}

type Service struct {
	thresholds Thresholds
	rules      []rule
}

func NewService(thresholds Thresholds) Auditor {
	return &Service{
		thresholds: thresholds,
		rules:      defaultRules(),
	}
}

// defaultRules define a ordem de registro, que é a ordem dos Findings no relatório
func defaultRules() []rule {
	return []rule{
		{name: "length", eval: lengthRule},
		{name: "duplicates", eval: duplicateRule},
		{name: "near_duplicates", eval: nearDuplicateRule},
		{name: "pins", eval: pinStrategyRule},
		{name: "formatting", eval: formattingRule},
		{name: "paths", eval: missingPathsRule},
		{name: "claims", eval: policyClaimRule},
		{name: "forbidden_pairs", eval: forbiddenPairRule},
		{name: "disapproval", eval: disapprovedRule},
		{name: "asset_counts", eval: assetCountRule},
		{name: "query_echo", eval: queryEchoRule},
		{name: "ngrams", eval: underperformingNgramRule},
		{name: "ctr", eval: lowCTRRule},
		{name: "conversion", eval: lowConversionRule},
		{name: "spend", eval: wastedSpendRule},
		{name: "never_served", eval: neverServedRule},
		{name: "staleness", eval: staleAdRule},
		{name: "ctr_decline", eval: ctrDeclineRule},
		{name: "variants", eval: missingVariantRule},
		{name: "serve_share", eval: lowServeShareRule},
		{name: "dead_assets", eval: deadAssetRule},
		{name: "expired_dates", eval: expiredDateRule},
		{name: "location", eval: missingLocationRule},
	}
}

func (s *Service) Thresholds() Thresholds {
	return s.thresholds
}

// Audit executa todas as regras de forma independente; uma regra com falha não interrompe as outras
func (s *Service) Audit(in Input) Report {
	report := Report{Findings: make([]domain.Finding, 0)}

	for _, r := range s.rules {
		findings, err := s.evaluate(r, in)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"rule":  r.name,
				"ad_id": in.Ad.ID,
			}).WithError(err).Error("Erro ao avaliar regra de auditoria")
			report.RuleErrors = append(report.RuleErrors, err)
			continue
		}
		report.Findings = append(report.Findings, findings...)
	}

	return report
}

func (s *Service) evaluate(r rule, in Input) (findings []domain.Finding, ruleErr *RuleEvaluationError) {
	defer func() {
		if rec := recover(); rec != nil {
			findings = nil
			ruleErr = NewRuleEvaluationError(r.name, in.Ad.ID, fmt.Errorf("panic: %v", rec))
		}
	}()

	return r.eval(in, s.thresholds), nil
}

func enabledAssets(ad domain.Ad) []domain.Asset {
	out := make([]domain.Asset, 0, len(ad.Assets))
	for _, a := range ad.Assets {
		if a.IsEnabled() {
			out = append(out, a)
		}
	}
	return out
}

func pct(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}
