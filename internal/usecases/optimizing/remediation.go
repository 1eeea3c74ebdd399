package optimizing

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/rsa-auditor-api/internal/domain"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/proposing"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/rewriting"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/verticals"
)

// ProblemCooldownActive avisa na prévia que a execução seria recusada pelo cooldown
const ProblemCooldownActive = "COOLDOWN_ACTIVE"

// Remediate gera ou recebe as mudanças de um único finding e, no modo execute,
// aplica as que não estão bloqueadas
func (s *Service) Remediate(ctx context.Context, req domain.RemediationRequest) (*domain.RemediationResponse, error) {
	mode := req.Mode
	if mode == "" {
		mode = domain.ModeDryRun
	}
	if mode != domain.ModeDryRun && mode != domain.ModeExecute {
		return nil, NewInputError(ErrInvalidMode, req.Ad.ID, string(mode))
	}
	if err := validateAd(req.Ad, 0); err != nil {
		return nil, err
	}
	if req.Finding.Code == "" {
		return nil, NewInputError(ErrMissingFinding, req.Ad.ID, "")
	}

	corpus := append([]string{req.Ad.CampaignName, req.Ad.AdGroupName}, req.Keywords...)
	rs, err := s.pipeline.Registry.Resolve(req.Vertical, append(corpus, req.SearchTerms...))
	if err != nil {
		return nil, NewInputError(err, req.Ad.ID, "")
	}

	now := s.now(req.AsOf)
	key := domain.CooldownKey{AdID: req.Ad.ID, RuleCode: req.Finding.Code, AssetID: req.Finding.AssetID}

	exclusions := domain.NewExclusionSet(req.Exclusions...)
	if !exclusions.Contains(key) {
		active, err := s.cooldownActive(ctx, key, now)
		if err != nil {
			return nil, err
		}
		if active {
			exclusions[key] = struct{}{}
		}
	}
	excluded := exclusions.Contains(key)
	cooldownMessage := fmt.Sprintf("%s on ad %s is in cooldown; no changes were generated", key.RuleCode, key.AdID)

	changes := make([]domain.Change, 0)
	if !excluded {
		changes = s.remediationChanges(ctx, req, rs, exclusions)
	}
	problems := s.pipeline.Builder.Validate(req.Ad, rs, changes)
	if excluded {
		problems = append(problems, domain.ValidationProblem{Code: ProblemCooldownActive, Message: cooldownMessage})
	}
	blocking, advisory := domain.SplitProblems(problems)

	response := &domain.RemediationResponse{
		Mode:     mode,
		Changes:  changes,
		Blocking: blocking,
		Advisory: advisory,
	}
	if mode == domain.ModeDryRun {
		return response, nil
	}

	if s.executor == nil {
		return nil, ErrExecutorUnavailable
	}
	if excluded {
		response.Outcomes = []domain.ChangeOutcome{{Status: domain.OutcomeCooldownActive, Error: cooldownMessage}}
		return response, nil
	}
	response.Outcomes, response.CreatedIDs = s.execute(ctx, key, changes, blocking, now)
	return response, nil
}

// remediationChanges usa as mudanças aprovadas pelo chamador ou gera as do finding,
// descartando as que caem em chaves excluídas
func (s *Service) remediationChanges(ctx context.Context, req domain.RemediationRequest, rs verticals.RuleSet, exclusions domain.ExclusionSet) []domain.Change {
	if len(req.Changes) > 0 {
		changes := make([]domain.Change, 0, len(req.Changes))
		for _, c := range req.Changes {
			c = completeChange(c, req.Ad, req.Finding)
			if exclusions.Contains(domain.CooldownKey{AdID: c.AdID, RuleCode: c.RuleCode, AssetID: c.AssetID}) {
				continue
			}
			changes = append(changes, c)
		}
		return changes
	}

	p := s.pipeline
	findings := []domain.Finding{req.Finding}
	candidates := rewriting.Candidates{}
	if issues := p.Classifier.Classify(findings); len(issues) > 0 {
		rc := p.Extractor.Extract(req.Ad, req.Keywords, req.SearchTerms, rs, req.AccountName)
		candidates = p.Generator.Generate(ctx, rewriting.Input{
			Context:    rc,
			RuleSet:    rs,
			Issues:     issues,
			LiveAssets: req.Ad.Assets,
		})
	}

	proposal := p.Builder.Build(proposing.BuildInput{
		Ad:           req.Ad,
		RuleSet:      rs,
		Findings:     findings,
		Headlines:    candidates.Headlines,
		Descriptions: candidates.Descriptions,
		Exclusions:   exclusions,
	})
	return proposal.Changes
}

// completeChange preenche referências e ID de uma mudança enviada pelo chamador
func completeChange(c domain.Change, ad domain.Ad, finding domain.Finding) domain.Change {
	if c.AdID == "" {
		c.AdID = ad.ID
	}
	if c.AdGroupID == "" {
		c.AdGroupID = ad.AdGroupID
	}
	if c.CampaignID == "" {
		c.CampaignID = ad.CampaignID
	}
	if c.RuleCode == "" {
		c.RuleCode = finding.Code
	}
	if c.Text != "" {
		c.CharCount = len([]rune(c.Text))
	}
	if c.ID == "" {
		c.ID = proposing.ChangeID(c)
	}
	return c
}

func (s *Service) execute(
	ctx context.Context,
	key domain.CooldownKey,
	changes []domain.Change,
	blocking []domain.ValidationProblem,
	now time.Time,
) ([]domain.ChangeOutcome, []string) {
	blockedBy := make(map[string]string)
	for _, p := range blocking {
		if _, ok := blockedBy[p.ChangeID]; !ok {
			blockedBy[p.ChangeID] = fmt.Sprintf("%s: %s", p.Code, p.Message)
		}
	}

	outcomes := make([]domain.ChangeOutcome, 0, len(changes))
	createdIDs := make([]string, 0)
	firstApplied := ""

	for _, c := range changes {
		outcome := domain.ChangeOutcome{ChangeID: c.ID, Op: c.Op}

		if reason, blocked := blockedBy[c.ID]; blocked {
			outcome.Status = domain.OutcomeBlocked
			outcome.Error = reason
			outcomes = append(outcomes, outcome)
			continue
		}

		createdID, err := s.executor.Apply(ctx, c)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"ad_id":     c.AdID,
				"change_id": c.ID,
				"op":        c.Op,
			}).WithError(err).Error("Erro ao aplicar mudança")
			outcome.Status = domain.OutcomeFailed
			outcome.Error = err.Error()
			outcomes = append(outcomes, outcome)
			continue
		}

		outcome.Status = domain.OutcomeApplied
		outcome.CreatedID = createdID
		if createdID != "" {
			createdIDs = append(createdIDs, createdID)
		}
		if firstApplied == "" {
			firstApplied = c.ID
		}
		outcomes = append(outcomes, outcome)
	}

	if firstApplied != "" {
		s.recordCooldown(ctx, key, firstApplied, now)
	}

	return outcomes, createdIDs
}

func (s *Service) cooldownActive(ctx context.Context, key domain.CooldownKey, now time.Time) (bool, error) {
	if s.cooldowns == nil {
		return false, nil
	}
	active, err := s.cooldowns.Active(ctx, key, now)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrCooldownStore, err)
	}
	return active, nil
}

// recordCooldown só loga falhas: as mudanças já foram aplicadas
func (s *Service) recordCooldown(ctx context.Context, key domain.CooldownKey, changeID string, now time.Time) {
	if s.cooldowns == nil {
		return
	}
	entry := domain.CooldownEntry{
		Key:        key,
		ChangeID:   changeID,
		ExecutedAt: now,
		ExpiresAt:  now.Add(s.cooldownTTL),
	}
	if err := s.cooldowns.Record(ctx, entry); err != nil {
		logrus.WithFields(logrus.Fields{
			"ad_id":     key.AdID,
			"rule_code": key.RuleCode,
			"asset_id":  key.AssetID,
		}).WithError(err).Error("Erro ao registrar cooldown")
	}
}
