package proposing

import (
	"fmt"
	"strings"

	"github.com/vfg2006/rsa-auditor-api/internal/domain"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/verticals"
	"github.com/vfg2006/rsa-auditor-api/pkg/utils"
)

// Tamanho de pool recomendado; abaixo disso a validação só alerta
const (
	RecommendedHeadlines    = 8
	RecommendedDescriptions = 3
)

// Códigos de problema de validação
const (
	ProblemInvalidOp           = "INVALID_OP"
	ProblemAdMismatch          = "AD_MISMATCH"
	ProblemInvalidAssetType    = "INVALID_ASSET_TYPE"
	ProblemEmptyText           = "EMPTY_TEXT"
	ProblemTextTooLong         = "TEXT_TOO_LONG"
	ProblemInsertionToken      = "INSERTION_TOKEN"
	ProblemPolicyRejected      = "POLICY_REJECTED"
	ProblemDuplicateLiveAsset  = "DUPLICATE_LIVE_ASSET"
	ProblemPoolFull            = "POOL_FULL"
	ProblemUnknownAsset        = "UNKNOWN_ASSET"
	ProblemNonFormattingUpdate = "NON_FORMATTING_UPDATE"
	ProblemBelowMinimumAssets  = "BELOW_MINIMUM_ASSETS"
	ProblemInvalidPinSlot      = "INVALID_PIN_SLOT"
	ProblemInvalidPaths        = "INVALID_PATHS"
	ProblemNotPinned           = "NOT_PINNED"
	ProblemAdStopsServing      = "AD_STOPS_SERVING"
	ProblemPoolBelowTarget     = "POOL_BELOW_RECOMMENDED"
)

// poolState simula o pool do anúncio conforme as mudanças são aplicadas em ordem
type poolState struct {
	headlines    int
	descriptions int
	paused       map[string]bool
	texts        map[string]string
}

func newPoolState(ad domain.Ad) *poolState {
	st := &poolState{
		headlines:    len(ad.AssetsOfType(domain.AssetTypeHeadline)),
		descriptions: len(ad.AssetsOfType(domain.AssetTypeDescription)),
		paused:       make(map[string]bool),
		texts:        make(map[string]string),
	}
	for _, a := range ad.Assets {
		if a.IsEnabled() {
			st.texts[utils.NormalizeText(a.Text)] = a.ID
		}
	}
	return st
}

func (p *poolState) count(t domain.AssetType) *int {
	if t == domain.AssetTypeDescription {
		return &p.descriptions
	}
	return &p.headlines
}

// Validate classifica os problemas de cada mudança em bloqueantes e consultivos
func (s *Service) Validate(ad domain.Ad, rs verticals.RuleSet, changes []domain.Change) []domain.ValidationProblem {
	problems := make([]domain.ValidationProblem, 0)
	pool := newPoolState(ad)

	for _, c := range changes {
		blocking := func(code, format string, args ...any) {
			problems = append(problems, domain.ValidationProblem{ChangeID: c.ID, Code: code, Message: fmt.Sprintf(format, args...), Blocking: true})
		}
		advisory := func(code, format string, args ...any) {
			problems = append(problems, domain.ValidationProblem{ChangeID: c.ID, Code: code, Message: fmt.Sprintf(format, args...)})
		}

		if c.AdID != "" && c.AdID != ad.ID {
			blocking(ProblemAdMismatch, "change targets ad %s, not %s", c.AdID, ad.ID)
			continue
		}

		switch c.Op {
		case domain.OpAddAsset:
			if !validateText(rs, pool, c, "", blocking) {
				continue
			}
			count := pool.count(c.AssetType)
			if *count >= maxPool(c.AssetType) {
				blocking(ProblemPoolFull, "ad already has %d %ss", *count, strings.ToLower(string(c.AssetType)))
				continue
			}
			*count++
			pool.texts[utils.NormalizeText(c.Text)] = c.ID

		case domain.OpUpdateAsset:
			asset, ok := ad.FindAsset(c.AssetID)
			if !ok {
				blocking(ProblemUnknownAsset, "asset %q not found in ad", c.AssetID)
				continue
			}
			if c.RuleCode != domain.RuleFormatting || !isFormattingOnly(asset.Text, c.Text) {
				blocking(ProblemNonFormattingUpdate, "updates may only fix formatting; add a new asset instead")
				continue
			}
			if c.AssetType == "" {
				c.AssetType = asset.Type
			}
			validateText(rs, pool, c, asset.ID, blocking)

		case domain.OpPauseAsset:
			asset, ok := ad.FindAsset(c.AssetID)
			if !ok {
				blocking(ProblemUnknownAsset, "asset %q not found in ad", c.AssetID)
				continue
			}
			if !asset.IsEnabled() || pool.paused[asset.ID] {
				continue
			}
			count := pool.count(asset.Type)
			if *count-1 < minPool(asset.Type) {
				blocking(ProblemBelowMinimumAssets, "pausing %s leaves %d %ss, below the minimum of %d",
					asset.ID, *count-1, strings.ToLower(string(asset.Type)), minPool(asset.Type))
				continue
			}
			*count--
			pool.paused[asset.ID] = true

		case domain.OpPauseAd:
			advisory(ProblemAdStopsServing, "ad %s stops serving until a replacement is approved", ad.ID)

		case domain.OpSetPaths:
			if len(c.Paths) == 0 || len(c.Paths) > domain.MaxPaths {
				blocking(ProblemInvalidPaths, "expected 1 to %d paths, got %d", domain.MaxPaths, len(c.Paths))
				continue
			}
			for _, p := range c.Paths {
				if strings.TrimSpace(p) == "" || utils.RuneLen(p) > domain.PathMaxLength || strings.ContainsAny(p, " /") {
					blocking(ProblemInvalidPaths, "path %q must be 1 to %d characters without spaces", p, domain.PathMaxLength)
					break
				}
			}

		case domain.OpPin:
			asset, ok := ad.FindAsset(c.AssetID)
			if !ok {
				blocking(ProblemUnknownAsset, "asset %q not found in ad", c.AssetID)
				continue
			}
			if !validPinSlot(asset.Type, c.PinnedField) {
				blocking(ProblemInvalidPinSlot, "%q is not a valid slot for a %s", c.PinnedField, strings.ToLower(string(asset.Type)))
			}

		case domain.OpUnpin:
			asset, ok := ad.FindAsset(c.AssetID)
			if !ok {
				blocking(ProblemUnknownAsset, "asset %q not found in ad", c.AssetID)
				continue
			}
			if !asset.IsPinned() {
				advisory(ProblemNotPinned, "asset %s is not pinned", asset.ID)
			}

		default:
			blocking(ProblemInvalidOp, "unsupported operation %q", c.Op)
		}
	}

	if len(changes) > 0 && (pool.headlines < RecommendedHeadlines || pool.descriptions < RecommendedDescriptions) {
		problems = append(problems, domain.ValidationProblem{
			Code:    ProblemPoolBelowTarget,
			Message: fmt.Sprintf("after these changes the ad has %d headlines and %d descriptions; %d and %d are recommended", pool.headlines, pool.descriptions, RecommendedHeadlines, RecommendedDescriptions),
		})
	}

	return problems
}

// validateText reúne as checagens de texto comuns a ADD e UPDATE
func validateText(rs verticals.RuleSet, pool *poolState, c domain.Change, selfID string, blocking func(code, format string, args ...any)) bool {
	if !domain.ValidAssetType(c.AssetType) {
		blocking(ProblemInvalidAssetType, "invalid asset type %q", c.AssetType)
		return false
	}
	if strings.TrimSpace(c.Text) == "" {
		blocking(ProblemEmptyText, "text is empty")
		return false
	}

	ok := true
	if limit := domain.MaxLength(c.AssetType); utils.RuneLen(c.Text) > limit {
		blocking(ProblemTextTooLong, "%d characters, limit is %d", utils.RuneLen(c.Text), limit)
		ok = false
	}
	if strings.ContainsAny(c.Text, "{}") || strings.Contains(strings.ToLower(c.Text), "keyword:") {
		blocking(ProblemInsertionToken, "dynamic insertion tokens are not allowed")
		ok = false
	}
	if rs.Rejects(c.Text) {
		blocking(ProblemPolicyRejected, "text violates %s policy", rs.Vertical)
		ok = false
	}
	if id, exists := pool.texts[utils.NormalizeText(c.Text)]; exists && id != selfID {
		blocking(ProblemDuplicateLiveAsset, "text duplicates %s", id)
		ok = false
	}
	return ok
}

func maxPool(t domain.AssetType) int {
	if t == domain.AssetTypeDescription {
		return domain.MaxDescriptions
	}
	return domain.MaxHeadlines
}

func minPool(t domain.AssetType) int {
	if t == domain.AssetTypeDescription {
		return domain.MinDescriptions
	}
	return domain.MinHeadlines
}

func validPinSlot(t domain.AssetType, slot string) bool {
	switch t {
	case domain.AssetTypeHeadline:
		return slot == domain.PinHeadline1 || slot == domain.PinHeadline2 || slot == domain.PinHeadline3
	case domain.AssetTypeDescription:
		return slot == domain.PinDescription1 || slot == domain.PinDescription2
	}
	return false
}
