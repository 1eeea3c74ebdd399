package prioritizing

import (
	"fmt"
	"time"

	"github.com/vfg2006/rsa-auditor-api/internal/domain"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/auditing"
)

// Weights são os pesos aditivos da urgência de remediação
type Weights struct {
	GlobalCTRBenchmark float64
	CTRMinImpressions  int
	LowCTR             int
	StaleDays          int
	Stale              int
	StrengthPoor       int
	StrengthAverage    int
	CriticalCode       int
	ErrorsAllowed      int
	ExtraErrorsCap     int
	HighTier           int
	MediumTier         int
}

func DefaultWeights() Weights {
	return Weights{
		GlobalCTRBenchmark: 0.035,
		CTRMinImpressions:  1000,
		LowCTR:             2,
		StaleDays:          30,
		Stale:              1,
		StrengthPoor:       2,
		StrengthAverage:    1,
		CriticalCode:       2,
		ErrorsAllowed:      2,
		ExtraErrorsCap:     3,
		HighTier:           6,
		MediumTier:         3,
	}
}

// criticalCodes em ordem fixa para que os motivos saiam sempre na mesma sequência
func criticalCodes() []string {
	return []string{
		domain.RuleForbiddenVerbObject,
		domain.RulePolicyClaimError,
		domain.RulePolicyDisapproved,
		domain.RuleSustainedWastedSpend,
	}
}

type Prioritizer interface {
	Prioritize(ad domain.Ad, findings []domain.Finding, now time.Time) domain.PriorityScore
}

type Service struct {
	weights Weights
}

func NewService(weights Weights) Prioritizer {
	return &Service{weights: weights}
}

func (s *Service) Prioritize(ad domain.Ad, findings []domain.Finding, now time.Time) domain.PriorityScore {
	w := s.weights
	priority := domain.PriorityScore{Reasons: make([]string, 0)}
	add := func(points int, reason string) {
		priority.Score += points
		priority.Reasons = append(priority.Reasons, fmt.Sprintf("+%d %s", points, reason))
	}

	if ad.Metrics.Impressions >= w.CTRMinImpressions {
		if ctr := auditing.AdCTR(ad.Metrics); ctr < w.GlobalCTRBenchmark {
			add(w.LowCTR, fmt.Sprintf("CTR %.2f%% below the %.2f%% benchmark", ctr*100, w.GlobalCTRBenchmark*100))
		}
	}

	if !now.IsZero() {
		if days := ad.DaysSinceEdit(now); days > w.StaleDays {
			add(w.Stale, fmt.Sprintf("stale: last edited %d days ago", days))
		}
	}

	switch ad.AdStrength {
	case domain.AdStrengthPoor:
		add(w.StrengthPoor, "ad strength is POOR")
	case domain.AdStrengthAverage:
		add(w.StrengthAverage, "ad strength is AVERAGE")
	}

	present := make(map[string]bool, len(findings))
	for _, f := range findings {
		present[f.Code] = true
	}
	for _, code := range criticalCodes() {
		if present[code] {
			add(w.CriticalCode, "critical finding "+code)
		}
	}

	errorCount := domain.CountBySeverity(findings, domain.SeverityError)
	if extra := errorCount - w.ErrorsAllowed; extra > 0 {
		if extra > w.ExtraErrorsCap {
			extra = w.ExtraErrorsCap
		}
		add(extra, fmt.Sprintf("%d error findings", errorCount))
	}

	priority.Tier = s.tier(priority.Score)
	return priority
}

func (s *Service) tier(score int) domain.PriorityTier {
	switch {
	case score >= s.weights.HighTier:
		return domain.PriorityHigh
	case score >= s.weights.MediumTier:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}
