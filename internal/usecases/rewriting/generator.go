// Package rewriting sintetiza headlines e descrições que seguem a fórmula e respeitam a política da vertical
package rewriting

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/rsa-auditor-api/internal/domain"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/verticals"
	"github.com/vfg2006/rsa-auditor-api/pkg/templating"
	"github.com/vfg2006/rsa-auditor-api/pkg/utils"
)

const DefaultPhraseTimeout = 3 * time.Second

type PhraseRequest struct {
	Context              domain.RewriteContext
	Vertical             string
	Issue                domain.ClassifiedIssue
	MaxHeadlineLength    int
	MaxDescriptionLength int
}

type PhraseResult struct {
	Headlines    []string
	Descriptions []string
}

// Phraser é o gerador externo opcional de textos
//
//go:generate mockgen -source=generator.go -destination=mocks/mock_generator.go -package=mocks
type Phraser interface {
	Phrase(ctx context.Context, req PhraseRequest) (PhraseResult, error)
}

type Input struct {
	Context    domain.RewriteContext
	RuleSet    verticals.RuleSet
	Issues     []domain.ClassifiedIssue
	LiveAssets []domain.Asset
}

type Candidates struct {
	Headlines    []string
	Descriptions []string
	Degraded     bool
	Fallbacks    []*GenerationFallbackError
}

type Generator interface {
	Generate(ctx context.Context, in Input) Candidates
}

type Service struct {
	renderer  *templating.Renderer
	phraser   Phraser
	timeout   time.Duration
	sanitizer sanitizer
}

// NewService aceita phraser nil; nesse caso só os templates são usados
func NewService(renderer *templating.Renderer, phraser Phraser, timeout time.Duration) Generator {
	if timeout <= 0 {
		timeout = DefaultPhraseTimeout
	}
	renderer.MustCompile(descriptionTemplate, solutionTemplate)

	return &Service{
		renderer:  renderer,
		phraser:   phraser,
		timeout:   timeout,
		sanitizer: newSanitizer(),
	}
}

type issueCandidates struct {
	headlines    []string
	descriptions []string
	fallback     *GenerationFallbackError
}

// Generate processa cada issue em paralelo e junta os resultados na ordem dos issues
func (s *Service) Generate(ctx context.Context, in Input) Candidates {
	results := make([]issueCandidates, len(in.Issues))

	var wg sync.WaitGroup
	for i, issue := range in.Issues {
		wg.Add(1)
		go func(i int, issue domain.ClassifiedIssue) {
			defer wg.Done()
			results[i] = s.forIssue(ctx, in, issue)
		}(i, issue)
	}
	wg.Wait()

	headlines := newPool(limit(in.Context.Constraints.HeadlineCount, domain.DefaultHeadlineCount), in.LiveAssets)
	descriptions := newPool(limit(in.Context.Constraints.DescriptionCount, domain.DefaultDescriptionCount), in.LiveAssets)

	candidates := Candidates{}
	for _, r := range results {
		for _, h := range r.headlines {
			headlines.add(h)
		}
		for _, d := range r.descriptions {
			descriptions.add(d)
		}
		if r.fallback != nil {
			candidates.Degraded = true
			candidates.Fallbacks = append(candidates.Fallbacks, r.fallback)
		}
	}
	candidates.Headlines = headlines.items
	candidates.Descriptions = descriptions.items

	return candidates
}

func limit(requested, max int) int {
	if requested <= 0 || requested > max {
		return max
	}
	return requested
}

func (s *Service) forIssue(ctx context.Context, in Input, issue domain.ClassifiedIssue) issueCandidates {
	var out issueCandidates

	if s.phraser != nil {
		phrased, err := s.phrase(ctx, in, issue)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"rule":     issue.SourceRule,
				"vertical": in.RuleSet.Vertical,
			}).WithError(err).Warn("Gerador externo indisponível, usando templates")
			out.fallback = err
		} else {
			out.headlines = append(out.headlines, phrased.Headlines...)
			out.descriptions = append(out.descriptions, phrased.Descriptions...)
		}
	}

	for _, sl := range slotsFor(issue.Category) {
		for _, text := range s.slotTexts(in, issue, sl) {
			if admitted, ok := s.sanitizer.admit(in.RuleSet, text, domain.AssetTypeHeadline); ok {
				out.headlines = append(out.headlines, admitted)
			}
		}
	}
	if repaired := s.repairedAsset(in, issue, domain.AssetTypeDescription); repaired != "" {
		out.descriptions = append(out.descriptions, repaired)
	}
	out.descriptions = append(out.descriptions, s.descriptions(in, issue)...)

	return out
}

func (s *Service) slotTexts(in Input, issue domain.ClassifiedIssue, sl slot) []string {
	switch sl {
	case slotRepair:
		if text := s.repairedAsset(in, issue, domain.AssetTypeHeadline); text != "" {
			return []string{text}
		}
		return nil
	case slotOffer:
		return offerHeadlines(in.Context)
	case slotTrust:
		return trustHeadlines(in.Context)
	case slotLocation:
		return locationHeadlines(in.Context)
	default:
		return intentHeadlines(in.Context, in.RuleSet)
	}
}

// repairedAsset reescreve o asset que originou o issue quando ele fere a política
func (s *Service) repairedAsset(in Input, issue domain.ClassifiedIssue, assetType domain.AssetType) string {
	if issue.AssetID == "" {
		return ""
	}
	for _, a := range in.LiveAssets {
		if a.ID != issue.AssetID || a.Type != assetType || !in.RuleSet.Rejects(a.Text) {
			continue
		}
		if admitted, ok := s.sanitizer.admit(in.RuleSet, a.Text, assetType); ok {
			return admitted
		}
	}
	return ""
}

// descriptions monta duas variações por issue, descartando peças até caber no limite
func (s *Service) descriptions(in Input, issue domain.ClassifiedIssue) []string {
	rc := in.Context
	location := rc.Constraints.RequireLocation || issue.Category == domain.CategoryLocal
	offers := descriptionOffers(rc)
	if issue.Category == domain.CategoryProof {
		offers = append(trustHeadlines(rc), offers...)
	}

	solution := ""
	if subj := subject(rc); subj != "" {
		vars := map[string]any{"subject": subj}
		if brand := realBrand(rc); brand != "" && brand != subj {
			vars["brand"] = brand
		}
		solution, _ = s.renderer.Render(solutionTemplate, vars)
	}

	var out []string
	for i := 0; i < domain.DefaultDescriptionCount; i++ {
		pieces := map[string]string{
			"pain":     pick(painPoints(in.RuleSet.Vertical), i),
			"solution": solution,
			"offer":    pick(offers, i),
			"cta":      pick(in.RuleSet.CTAs, i),
		}
		if location {
			pieces["city"] = rc.Geo.City
		}

		text, err := s.fitDescription(pieces)
		if err != nil {
			logrus.WithField("rule", issue.SourceRule).WithError(err).Warn("Erro ao renderizar descrição")
			continue
		}
		if admitted, ok := s.sanitizer.admit(in.RuleSet, text, domain.AssetTypeDescription); ok {
			out = append(out, admitted)
		}
	}
	return out
}

// fitDescription remove peças na ordem dor, oferta, CTA até o texto caber em 90 caracteres
func (s *Service) fitDescription(pieces map[string]string) (string, error) {
	dropOrder := []string{"pain", "offer", "cta"}

	for step := 0; ; step++ {
		vars := make(map[string]any, len(pieces))
		for k, v := range pieces {
			if v != "" {
				vars[k] = v
			}
		}
		text, err := s.renderer.Render(descriptionTemplate, vars)
		if err != nil {
			return "", err
		}
		if utils.RuneLen(text) <= domain.DescriptionMaxLength || step >= len(dropOrder) {
			return utils.TruncateWords(text, domain.DescriptionMaxLength), nil
		}
		delete(pieces, dropOrder[step])
	}
}

// phrase chama o gerador externo com timeout; a chamada nunca segura o lote além do limite
func (s *Service) phrase(ctx context.Context, in Input, issue domain.ClassifiedIssue) (PhraseResult, *GenerationFallbackError) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	type reply struct {
		result PhraseResult
		err    error
	}
	done := make(chan reply, 1)
	go func() {
		result, err := s.phraser.Phrase(callCtx, PhraseRequest{
			Context:              in.Context,
			Vertical:             string(in.RuleSet.Vertical),
			Issue:                issue,
			MaxHeadlineLength:    domain.HeadlineMaxLength,
			MaxDescriptionLength: domain.DescriptionMaxLength,
		})
		done <- reply{result: result, err: err}
	}()

	var r reply
	select {
	case r = <-done:
	case <-callCtx.Done():
		return PhraseResult{}, NewGenerationFallbackError(ErrPhraserTimeout, issue.SourceRule, s.timeout.String())
	}

	if r.err != nil {
		if errors.Is(r.err, context.DeadlineExceeded) {
			return PhraseResult{}, NewGenerationFallbackError(ErrPhraserTimeout, issue.SourceRule, s.timeout.String())
		}
		return PhraseResult{}, NewGenerationFallbackError(ErrPhraserFailed, issue.SourceRule, r.err.Error())
	}

	var out PhraseResult
	for _, h := range r.result.Headlines {
		if admitted, ok := s.sanitizer.admit(in.RuleSet, h, domain.AssetTypeHeadline); ok {
			out.Headlines = append(out.Headlines, admitted)
		}
	}
	for _, d := range r.result.Descriptions {
		if admitted, ok := s.sanitizer.admit(in.RuleSet, d, domain.AssetTypeDescription); ok {
			out.Descriptions = append(out.Descriptions, admitted)
		}
	}
	if len(out.Headlines) == 0 && len(out.Descriptions) == 0 {
		return PhraseResult{}, NewGenerationFallbackError(ErrUnusableOutput, issue.SourceRule, "")
	}
	return out, nil
}
