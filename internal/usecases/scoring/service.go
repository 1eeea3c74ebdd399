package scoring

import (
	"github.com/vfg2006/rsa-auditor-api/internal/domain"
)

type Dimension string

const (
	DimensionCoverage    Dimension = "coverage"
	DimensionDiversity   Dimension = "diversity"
	DimensionCompliance  Dimension = "compliance"
	DimensionPerformance Dimension = "performance"
)

// Penalties define quanto cada severidade desconta da sub-nota
type Penalties struct {
	Error   int
	Warn    int
	Suggest int
}

func DefaultPenalties() Penalties {
	return Penalties{Error: 8, Warn: 4, Suggest: 2}
}

type Scorer interface {
	Score(findings []domain.Finding) domain.Score
}

type Service struct {
	penalties  Penalties
	dimensions map[string]Dimension
}

func NewService(penalties Penalties) Scorer {
	return &Service{
		penalties:  penalties,
		dimensions: dimensionTable(),
	}
}

func dimensionTable() map[string]Dimension {
	return map[string]Dimension{
		domain.RuleInsufficientHeadlines:    DimensionCoverage,
		domain.RuleInsufficientDescriptions: DimensionCoverage,
		domain.RuleQueryEchoMissing:         DimensionCoverage,
		domain.RuleMissingPaths:             DimensionCoverage,
		domain.RuleMissingVariant:           DimensionCoverage,
		domain.RuleMissingLocation:          DimensionCoverage,

		domain.RuleDuplicateAsset:       DimensionDiversity,
		domain.RuleNearDuplicateAsset:   DimensionDiversity,
		domain.RulePinStrategy:          DimensionDiversity,
		domain.RuleUnderperformingNgram: DimensionDiversity,
		domain.RuleLowServeShare:        DimensionDiversity,

		domain.RuleHeadlineTooLong:      DimensionCompliance,
		domain.RuleDescriptionTooLong:   DimensionCompliance,
		domain.RulePathTooLong:          DimensionCompliance,
		domain.RuleFormatting:           DimensionCompliance,
		domain.RulePolicyClaimError:     DimensionCompliance,
		domain.RulePolicyClaimWarn:      DimensionCompliance,
		domain.RulePolicyDisapproved:    DimensionCompliance,
		domain.RuleForbiddenVerbObject:  DimensionCompliance,
		domain.RuleExpiredDateReference: DimensionCompliance,

		domain.RuleLowCTR:               DimensionPerformance,
		domain.RuleLowConversionRate:    DimensionPerformance,
		domain.RuleWastedSpend:          DimensionPerformance,
		domain.RuleSustainedWastedSpend: DimensionPerformance,
		domain.RuleAssetNeverServed:     DimensionPerformance,
		domain.RuleDeadAsset:            DimensionPerformance,
		domain.RuleStaleAd:              DimensionPerformance,
		domain.RuleCTRDecline:           DimensionPerformance,
	}
}

// DimensionOf retorna a dimensão de um código; códigos desconhecidos contam como compliance
func (s *Service) DimensionOf(code string) Dimension {
	if d, ok := s.dimensions[code]; ok {
		return d
	}
	return DimensionCompliance
}

func (s *Service) penalty(severity domain.Severity) int {
	switch severity {
	case domain.SeverityError:
		return s.penalties.Error
	case domain.SeverityWarn:
		return s.penalties.Warn
	case domain.SeveritySuggest:
		return s.penalties.Suggest
	}
	return 0
}

func (s *Service) Score(findings []domain.Finding) domain.Score {
	deductions := make(map[Dimension]int, 4)
	for _, f := range findings {
		deductions[s.DimensionOf(f.Code)] += s.penalty(f.Severity)
	}

	score := domain.Score{
		Coverage:    clamp(domain.SubScoreMax - deductions[DimensionCoverage]),
		Diversity:   clamp(domain.SubScoreMax - deductions[DimensionDiversity]),
		Compliance:  clamp(domain.SubScoreMax - deductions[DimensionCompliance]),
		Performance: clamp(domain.SubScoreMax - deductions[DimensionPerformance]),
	}
	score.Total = score.Coverage + score.Diversity + score.Compliance + score.Performance
	score.Grade = domain.GradeFor(score.Total)

	return score
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > domain.SubScoreMax {
		return domain.SubScoreMax
	}
	return v
}
