// Package optimizing orquestra a auditoria em lote e a remediação de um anúncio
// sobre os componentes puros de auditoria, score, classificação, prioridade,
// reescrita e montagem de mudanças
package optimizing

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vfg2006/rsa-auditor-api/internal/domain"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/auditing"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/classifying"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/extracting"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/prioritizing"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/proposing"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/rewriting"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/scoring"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/verticals"
	"github.com/vfg2006/rsa-auditor-api/pkg/templating"
	"github.com/vfg2006/rsa-auditor-api/pkg/utils"
)

const (
	DefaultWorkers     = 4
	DefaultCooldownTTL = 72 * time.Hour
	runIDLength        = 12
)

// Pipeline agrupa os componentes usados para avaliar cada anúncio
type Pipeline struct {
	Registry    *verticals.Registry
	Extractor   *extracting.Extractor
	Auditor     auditing.Auditor
	Scorer      scoring.Scorer
	Classifier  classifying.Classifier
	Prioritizer prioritizing.Prioritizer
	Generator   rewriting.Generator
	Builder     proposing.Builder
}

// NewPipeline monta o pipeline com os valores padrão de cada componente
func NewPipeline(catalog *extracting.Catalog, renderer *templating.Renderer, phraser rewriting.Phraser, phraseTimeout time.Duration) Pipeline {
	return Pipeline{
		Registry:    verticals.NewRegistry(),
		Extractor:   extracting.NewExtractor(catalog),
		Auditor:     auditing.NewService(auditing.DefaultThresholds()),
		Scorer:      scoring.NewService(scoring.DefaultPenalties()),
		Classifier:  classifying.NewService(renderer),
		Prioritizer: prioritizing.NewService(prioritizing.DefaultWeights()),
		Generator:   rewriting.NewService(renderer, phraser, phraseTimeout),
		Builder:     proposing.NewService(),
	}
}

type Options struct {
	Workers     int
	CooldownTTL time.Duration
	Clock       func() time.Time
}

type Service struct {
	pipeline    Pipeline
	cooldowns   CooldownStore
	executor    Executor
	workers     int
	cooldownTTL time.Duration
	clock       func() time.Time
}

// NewService aceita cooldowns e executor nil; sem executor o modo execute fica indisponível
func NewService(pipeline Pipeline, cooldowns CooldownStore, executor Executor, opts Options) Optimizer {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.CooldownTTL <= 0 {
		opts.CooldownTTL = DefaultCooldownTTL
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	return &Service{
		pipeline:    pipeline,
		cooldowns:   cooldowns,
		executor:    executor,
		workers:     opts.Workers,
		cooldownTTL: opts.CooldownTTL,
		clock:       opts.Clock,
	}
}

// adOutcome é o resultado de um anúncio antes da agregação do lote
type adOutcome struct {
	result   domain.AdResult
	changes  []domain.Change
	problems []domain.ValidationProblem
}

// AuditBatch avalia todos os anúncios em paralelo e agrega na ordem de entrada
func (s *Service) AuditBatch(ctx context.Context, req domain.BatchRequest) (*domain.BatchResult, error) {
	if err := validateBatch(req.Ads); err != nil {
		return nil, err
	}

	rs, err := s.pipeline.Registry.Resolve(req.Vertical, batchCorpus(req))
	if err != nil {
		return nil, NewInputError(err, "", "")
	}

	now := s.now(req.AsOf)
	exclusions := s.exclusions(ctx, req, now)

	logrus.WithFields(logrus.Fields{
		"ads":        len(req.Ads),
		"vertical":   rs.Vertical,
		"workers":    s.workers,
		"exclusions": len(exclusions),
	}).Info("Iniciando auditoria do lote")

	outcomes := make([]adOutcome, len(req.Ads))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range req.Ads {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = s.analyzeAd(gctx, req.Ads[i], rs, req, exclusions, now)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := aggregate(outcomes, rs)
	result.RunID = newRunID()

	logrus.WithFields(logrus.Fields{
		"run_id":        result.RunID,
		"ads":           result.Summary.AdCount,
		"findings":      result.Summary.TotalFindings,
		"changes":       result.Summary.TotalChanges,
		"average_score": result.Summary.AverageScore,
	}).Info("Auditoria do lote concluída")

	return result, nil
}

// analyzeAd roda o pipeline completo de um anúncio; nunca compartilha estado com outro
func (s *Service) analyzeAd(ctx context.Context, ad domain.Ad, rs verticals.RuleSet, req domain.BatchRequest, exclusions domain.ExclusionSet, now time.Time) adOutcome {
	p := s.pipeline
	rc := p.Extractor.Extract(ad, req.Keywords, req.SearchTerms, rs, req.AccountName)

	report := p.Auditor.Audit(auditing.Input{
		Ad:          ad,
		Keywords:    req.Keywords,
		SearchTerms: req.SearchTerms,
		RuleSet:     rs,
		Context:     rc,
		Now:         now,
	})

	result := domain.AdResult{
		AdID:     ad.ID,
		Vertical: string(rs.Vertical),
		Findings: report.Findings,
		Score:    p.Scorer.Score(report.Findings),
	}
	if result.Findings == nil {
		result.Findings = make([]domain.Finding, 0)
	}
	for _, ruleErr := range report.RuleErrors {
		result.RuleErrors = append(result.RuleErrors, ruleErr.Error())
	}

	issues := p.Classifier.Classify(report.Findings)
	candidates := rewriting.Candidates{}
	if len(issues) > 0 {
		candidates = p.Generator.Generate(ctx, rewriting.Input{
			Context:    rc,
			RuleSet:    rs,
			Issues:     issues,
			LiveAssets: ad.Assets,
		})
		result.Optimization = &domain.Optimization{
			Issues:       issues,
			Headlines:    nonNil(candidates.Headlines),
			Descriptions: nonNil(candidates.Descriptions),
			Priority:     p.Prioritizer.Prioritize(ad, report.Findings, now),
			Degraded:     candidates.Degraded,
		}
		for _, fb := range candidates.Fallbacks {
			logrus.WithFields(logrus.Fields{
				"ad_id":       ad.ID,
				"source_rule": fb.SourceRule,
			}).WithError(fb).Warn("Geração em modo degradado")
		}
	}

	proposal := p.Builder.Build(proposing.BuildInput{
		Ad:           ad,
		RuleSet:      rs,
		Findings:     report.Findings,
		Headlines:    candidates.Headlines,
		Descriptions: candidates.Descriptions,
		Exclusions:   exclusions,
	})

	return adOutcome{result: result, changes: proposal.Changes, problems: proposal.Problems}
}

func aggregate(outcomes []adOutcome, rs verticals.RuleSet) *domain.BatchResult {
	result := &domain.BatchResult{
		Vertical: string(rs.Vertical),
		Ads:      make([]domain.AdResult, 0, len(outcomes)),
		Changes:  make([]domain.Change, 0),
		Problems: make([]domain.ValidationProblem, 0),
	}

	totalScore := 0
	for _, o := range outcomes {
		result.Ads = append(result.Ads, o.result)
		result.Changes = append(result.Changes, o.changes...)
		result.Problems = append(result.Problems, o.problems...)

		totalScore += o.result.Score.Total
		result.Summary.TotalFindings += len(o.result.Findings)
		if o.result.Optimization != nil {
			result.Summary.TotalOptimizations++
		}
	}

	result.Summary.AdCount = len(outcomes)
	result.Summary.TotalChanges = len(result.Changes)
	if len(outcomes) > 0 {
		result.Summary.AverageScore = utils.RoundWithTwoDecimalPlace(float64(totalScore) / float64(len(outcomes)))
	}
	return result
}

// exclusions junta as chaves enviadas pelo chamador com as ativas no store
func (s *Service) exclusions(ctx context.Context, req domain.BatchRequest, now time.Time) domain.ExclusionSet {
	set := domain.NewExclusionSet(req.Exclusions...)
	if s.cooldowns == nil {
		return set
	}

	adIDs := make([]string, 0, len(req.Ads))
	for _, ad := range req.Ads {
		adIDs = append(adIDs, ad.ID)
	}

	keys, err := s.cooldowns.ListActive(ctx, adIDs, now)
	if err != nil {
		// segue só com as exclusões da requisição
		logrus.WithError(err).Warn("Erro ao listar cooldowns ativos")
		return set
	}
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

func (s *Service) now(asOf *time.Time) time.Time {
	if asOf != nil && !asOf.IsZero() {
		return *asOf
	}
	return s.clock()
}

func validateBatch(ads []domain.Ad) error {
	if len(ads) == 0 {
		return NewInputError(ErrEmptyBatch, "", "")
	}

	seen := make(map[string]bool, len(ads))
	for i, ad := range ads {
		if err := validateAd(ad, i); err != nil {
			return err
		}
		if seen[ad.ID] {
			return NewInputError(ErrDuplicateAdID, ad.ID, "")
		}
		seen[ad.ID] = true
	}
	return nil
}

func validateAd(ad domain.Ad, position int) error {
	if ad.ID == "" {
		return NewInputError(ErrMissingAdID, "", fmt.Sprintf("position %d", position))
	}
	for _, asset := range ad.Assets {
		if !domain.ValidAssetType(asset.Type) {
			return NewInputError(ErrInvalidAssetType, ad.ID, string(asset.Type))
		}
	}
	return nil
}

func batchCorpus(req domain.BatchRequest) []string {
	corpus := make([]string, 0, len(req.Keywords)+len(req.SearchTerms)+2*len(req.Ads))
	for _, ad := range req.Ads {
		corpus = append(corpus, ad.CampaignName, ad.AdGroupName)
	}
	corpus = append(corpus, req.Keywords...)
	return append(corpus, req.SearchTerms...)
}

func newRunID() string {
	id, err := utils.GenerateID("run_", runIDLength)
	if err != nil {
		logrus.WithError(err).Warn("Erro ao gerar run id")
		return ""
	}
	return id
}

func nonNil(items []string) []string {
	if items == nil {
		return make([]string, 0)
	}
	return items
}
