// Package classifying transforma Findings em issues categorizados para exibição
package classifying

import (
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/rsa-auditor-api/internal/domain"
	"github.com/vfg2006/rsa-auditor-api/pkg/templating"
)

type Classifier interface {
	Classify(findings []domain.Finding) []domain.ClassifiedIssue
	Covers(code string) bool
}

type Service struct {
	table    map[string]entry
	renderer *templating.Renderer
}

func NewService(renderer *templating.Renderer) Classifier {
	table := classificationTable()
	for _, e := range table {
		renderer.MustCompile(e.metric, e.benchmark, e.fix)
	}

	return &Service{
		table:    table,
		renderer: renderer,
	}
}

// Covers informa se o código tem entrada na tabela de classificação
func (s *Service) Covers(code string) bool {
	_, ok := s.table[code]
	return ok
}

// Classify mantém a ordem dos findings e descarta códigos sem entrada
func (s *Service) Classify(findings []domain.Finding) []domain.ClassifiedIssue {
	issues := make([]domain.ClassifiedIssue, 0, len(findings))

	for _, f := range findings {
		e, ok := s.table[f.Code]
		if !ok {
			continue
		}

		vars := map[string]any{
			"observed": f.Observed,
			"expected": f.Expected,
			"message":  f.Message,
		}
		issues = append(issues, domain.ClassifiedIssue{
			Category:   e.category,
			Type:       e.issueType,
			Metric:     s.render(f, e.metric, vars),
			Benchmark:  s.render(f, e.benchmark, vars),
			Fix:        s.render(f, e.fix, vars),
			SourceRule: f.Code,
			Severity:   f.Severity,
			AssetID:    f.AssetID,
		})
	}

	return issues
}

func (s *Service) render(f domain.Finding, source string, vars map[string]any) string {
	out, err := s.renderer.Render(source, vars)
	if err != nil {
		logrus.WithField("rule", f.Code).WithError(err).Warn("Erro ao renderizar template de classificação")
		return f.Message
	}
	return out
}
