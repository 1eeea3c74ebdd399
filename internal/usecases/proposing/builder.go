// Package proposing transforma findings e candidatos em mudanças atômicas e validáveis,
// sem nunca aplicá-las
package proposing

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/vfg2006/rsa-auditor-api/internal/domain"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/verticals"
	"github.com/vfg2006/rsa-auditor-api/pkg/utils"
)

type BuildInput struct {
	Ad           domain.Ad
	RuleSet      verticals.RuleSet
	Findings     []domain.Finding
	Headlines    []string
	Descriptions []string
	Exclusions   domain.ExclusionSet
}

type Proposal struct {
	Changes  []domain.Change
	Problems []domain.ValidationProblem
}

type Builder interface {
	Build(in BuildInput) Proposal
	Validate(ad domain.Ad, rs verticals.RuleSet, changes []domain.Change) []domain.ValidationProblem
}

type Service struct{}

func NewService() Builder {
	return &Service{}
}

// IsHighRisk informa se o finding justifica pausar o anúncio inteiro
func IsHighRisk(f domain.Finding) bool {
	switch f.Code {
	case domain.RulePolicyDisapproved, domain.RuleSustainedWastedSpend:
		return true
	case domain.RuleForbiddenVerbObject, domain.RulePolicyClaimError:
		return f.AssetID == ""
	}
	return false
}

func isAssetLevelComplianceError(f domain.Finding) bool {
	if f.AssetID == "" || f.Severity != domain.SeverityError {
		return false
	}
	return f.Code == domain.RuleForbiddenVerbObject || f.Code == domain.RulePolicyClaimError
}

// candidateQueue entrega cada candidato uma única vez
type candidateQueue struct {
	headlines    []string
	descriptions []string
}

func (q *candidateQueue) next(t domain.AssetType) (string, bool) {
	list := &q.headlines
	if t == domain.AssetTypeDescription {
		list = &q.descriptions
	}
	if len(*list) == 0 {
		return "", false
	}
	text := (*list)[0]
	*list = (*list)[1:]
	return text, true
}

// buildState acompanha o que já foi proposto para o anúncio
type buildState struct {
	ad           domain.Ad
	changes      []domain.Change
	pausedAd     bool
	pathsSet     bool
	touched      map[string]bool
	headlines    int
	descriptions int
}

func (st *buildState) add(c domain.Change) {
	c.AdID = st.ad.ID
	c.AdGroupID = st.ad.AdGroupID
	c.CampaignID = st.ad.CampaignID
	if c.Text != "" {
		c.CharCount = utils.RuneLen(c.Text)
	}
	c.ID = ChangeID(c)
	st.changes = append(st.changes, c)
}

// Build mapeia cada finding para no máximo algumas mudanças, na ordem dos findings
func (s *Service) Build(in BuildInput) Proposal {
	st := &buildState{
		ad:           in.Ad,
		touched:      make(map[string]bool),
		headlines:    len(in.Ad.AssetsOfType(domain.AssetTypeHeadline)),
		descriptions: len(in.Ad.AssetsOfType(domain.AssetTypeDescription)),
	}
	queue := &candidateQueue{
		headlines:    append([]string{}, in.Headlines...),
		descriptions: append([]string{}, in.Descriptions...),
	}

	for _, f := range in.Findings {
		key := domain.CooldownKey{AdID: in.Ad.ID, RuleCode: f.Code, AssetID: f.AssetID}
		if in.Exclusions.Contains(key) {
			continue
		}
		s.mapFinding(st, queue, f)
	}

	changes := st.changes
	if changes == nil {
		changes = make([]domain.Change, 0)
	}
	return Proposal{
		Changes:  changes,
		Problems: s.Validate(in.Ad, in.RuleSet, changes),
	}
}

func (s *Service) mapFinding(st *buildState, queue *candidateQueue, f domain.Finding) {
	switch {
	case IsHighRisk(f):
		if st.pausedAd {
			return
		}
		st.pausedAd = true
		st.add(domain.Change{
			Op:          domain.OpPauseAd,
			RuleCode:    f.Code,
			Explanation: fmt.Sprintf("Pause the ad: %s", f.Message),
		})

	case f.Code == domain.RuleFormatting:
		s.updateFormatting(st, f)

	case f.Code == domain.RuleDuplicateAsset || f.Code == domain.RuleExpiredDateReference:
		s.pauseAsset(st, f)

	case isAssetLevelComplianceError(f):
		asset, ok := st.ad.FindAsset(f.AssetID)
		if !ok {
			return
		}
		s.pauseAsset(st, f)
		s.addAsset(st, queue, f, asset.Type, 1)

	case f.Code == domain.RuleMissingPaths || f.Code == domain.RulePathTooLong:
		s.setPaths(st, f)

	case f.Code == domain.RulePinStrategy:
		s.unpin(st, f)

	case f.Code == domain.RuleInsufficientHeadlines:
		s.addAsset(st, queue, f, domain.AssetTypeHeadline, RecommendedHeadlines-st.headlines)

	case f.Code == domain.RuleInsufficientDescriptions:
		s.addAsset(st, queue, f, domain.AssetTypeDescription, RecommendedDescriptions-st.descriptions)

	case f.Code == domain.RuleMissingVariant:
		// exige um anúncio novo no grupo, fora do vocabulário de mudanças de asset

	default:
		assetType := domain.AssetTypeHeadline
		if asset, ok := st.ad.FindAsset(f.AssetID); ok {
			assetType = asset.Type
		}
		if f.Code == domain.RuleDescriptionTooLong {
			assetType = domain.AssetTypeDescription
		}
		s.addAsset(st, queue, f, assetType, 1)
	}
}

func (s *Service) updateFormatting(st *buildState, f domain.Finding) {
	asset, ok := st.ad.FindAsset(f.AssetID)
	if !ok || st.touched[asset.ID] {
		return
	}
	fixed := normalizeFormatting(asset.Text, asset.Type)
	if fixed == "" || fixed == asset.Text {
		return
	}
	st.touched[asset.ID] = true
	st.add(domain.Change{
		Op:          domain.OpUpdateAsset,
		AssetID:     asset.ID,
		AssetType:   asset.Type,
		Text:        fixed,
		RuleCode:    f.Code,
		Explanation: fmt.Sprintf("Fix formatting of %q: %s", asset.Text, f.Observed),
	})
}

func (s *Service) pauseAsset(st *buildState, f domain.Finding) {
	asset, ok := st.ad.FindAsset(f.AssetID)
	if !ok || !asset.IsEnabled() || st.touched[asset.ID] {
		return
	}
	st.touched[asset.ID] = true
	if asset.Type == domain.AssetTypeHeadline {
		st.headlines--
	} else {
		st.descriptions--
	}
	st.add(domain.Change{
		Op:          domain.OpPauseAsset,
		AssetID:     asset.ID,
		AssetType:   asset.Type,
		RuleCode:    f.Code,
		Explanation: fmt.Sprintf("Pause %q: %s", asset.Text, f.Message),
	})
}

// addAsset consome até count candidatos do tipo pedido sem passar do limite do pool
func (s *Service) addAsset(st *buildState, queue *candidateQueue, f domain.Finding, assetType domain.AssetType, count int) {
	current, capacity := &st.headlines, domain.MaxHeadlines
	if assetType == domain.AssetTypeDescription {
		current, capacity = &st.descriptions, domain.MaxDescriptions
	}

	for i := 0; i < count && *current < capacity; i++ {
		text, ok := queue.next(assetType)
		if !ok {
			return
		}
		*current++
		st.add(domain.Change{
			Op:          domain.OpAddAsset,
			AssetID:     f.AssetID,
			AssetType:   assetType,
			Text:        text,
			RuleCode:    f.Code,
			Explanation: fmt.Sprintf("Add %s %q to address %s", strings.ToLower(string(assetType)), text, f.Code),
		})
	}
}

func (s *Service) setPaths(st *buildState, f domain.Finding) {
	if st.pathsSet {
		return
	}
	paths := shortenPaths(st.ad.Paths)
	if f.Code == domain.RuleMissingPaths || len(paths) == 0 {
		paths = suggestPaths(st.ad)
	}
	if len(paths) == 0 {
		return
	}
	st.pathsSet = true
	st.add(domain.Change{
		Op:          domain.OpSetPaths,
		Paths:       paths,
		RuleCode:    f.Code,
		Explanation: fmt.Sprintf("Set display paths to /%s", strings.Join(paths, "/")),
	})
}

// unpin solta o asset excedente do slot; no caso de excesso geral mantém só o primeiro fixado
func (s *Service) unpin(st *buildState, f domain.Finding) {
	var targets []domain.Asset
	if f.AssetID != "" {
		if asset, ok := st.ad.FindAsset(f.AssetID); ok && asset.IsPinned() {
			targets = append(targets, asset)
		}
	} else {
		pinned := 0
		for _, h := range st.ad.AssetsOfType(domain.AssetTypeHeadline) {
			if !h.IsPinned() {
				continue
			}
			pinned++
			if pinned > 1 {
				targets = append(targets, h)
			}
		}
	}

	for _, asset := range targets {
		if st.touched[asset.ID] {
			continue
		}
		st.touched[asset.ID] = true
		st.add(domain.Change{
			Op:          domain.OpUnpin,
			AssetID:     asset.ID,
			AssetType:   asset.Type,
			PinnedField: asset.PinnedField,
			RuleCode:    f.Code,
			Explanation: fmt.Sprintf("Unpin %q from %s", asset.Text, asset.PinnedField),
		})
	}
}

// ChangeID é um hash estável do conteúdo da mudança
func ChangeID(c domain.Change) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s|%s|%s|%s|%s|%s|%s",
		c.Op, c.AdID, c.AssetID, c.AssetType, c.RuleCode, c.Text, strings.Join(c.Paths, "/"), c.PinnedField)
	return fmt.Sprintf("chg_%016x", h.Sum64())
}
