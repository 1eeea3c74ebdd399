package auditing

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/vfg2006/rsa-auditor-api/internal/domain"
	"github.com/vfg2006/rsa-auditor-api/pkg/utils"
)

func lengthRule(in Input, _ Thresholds) []domain.Finding {
	var findings []domain.Finding

	for _, asset := range enabledAssets(in.Ad) {
		limit := domain.MaxLength(asset.Type)
		if asset.CharCount() <= limit {
			continue
		}

		code, label := domain.RuleHeadlineTooLong, "Headline"
		if asset.Type == domain.AssetTypeDescription {
			code, label = domain.RuleDescriptionTooLong, "Description"
		}
		findings = append(findings, domain.Finding{
			Code:     code,
			Severity: domain.SeverityError,
			Message:  fmt.Sprintf("%s has %d characters; the limit is %d", label, asset.CharCount(), limit),
			AssetID:  asset.ID,
			Observed: fmt.Sprintf("%d chars", asset.CharCount()),
			Expected: fmt.Sprintf("<= %d chars", limit),
		})
	}

	for i, path := range in.Ad.Paths {
		if utils.RuneLen(path) <= domain.PathMaxLength {
			continue
		}
		findings = append(findings, domain.Finding{
			Code:     domain.RulePathTooLong,
			Severity: domain.SeverityError,
			Message:  fmt.Sprintf("Display path %d %q has %d characters; the limit is %d", i+1, path, utils.RuneLen(path), domain.PathMaxLength),
			Observed: fmt.Sprintf("%d chars", utils.RuneLen(path)),
			Expected: fmt.Sprintf("<= %d chars", domain.PathMaxLength),
		})
	}

	return findings
}

// duplicateRule compara textos normalizados dentro do mesmo tipo de asset
func duplicateRule(in Input, _ Thresholds) []domain.Finding {
	var findings []domain.Finding
	firstByKey := make(map[string]string)

	for _, asset := range enabledAssets(in.Ad) {
		key := string(asset.Type) + "|" + utils.NormalizeText(asset.Text)
		if utils.NormalizeText(asset.Text) == "" {
			continue
		}
		firstID, seen := firstByKey[key]
		if !seen {
			firstByKey[key] = asset.ID
			continue
		}
		findings = append(findings, domain.Finding{
			Code:     domain.RuleDuplicateAsset,
			Severity: domain.SeverityWarn,
			Message:  fmt.Sprintf("%q duplicates asset %s", asset.Text, firstID),
			AssetID:  asset.ID,
			Observed: asset.Text,
			Expected: "unique asset text",
		})
	}

	return findings
}

func nearDuplicateRule(in Input, t Thresholds) []domain.Finding {
	var findings []domain.Finding
	assets := enabledAssets(in.Ad)

	// cada asset é comparado com todos os anteriores e reporta o par mais próximo
	for j := 1; j < len(assets); j++ {
		b := assets[j]
		var closest domain.Asset
		best := -1.0
		for i := 0; i < j; i++ {
			a := assets[i]
			if a.Type != b.Type {
				continue
			}
			if utils.NormalizeText(a.Text) == utils.NormalizeText(b.Text) {
				continue
			}
			similarity := utils.Jaccard(utils.Tokens(a.Text), utils.Tokens(b.Text))
			if similarity >= t.NearDuplicateJaccard && similarity > best {
				best, closest = similarity, a
			}
		}
		if best < 0 {
			continue
		}
		findings = append(findings, domain.Finding{
			Code:     domain.RuleNearDuplicateAsset,
			Severity: domain.SeveritySuggest,
			Message:  fmt.Sprintf("%q is nearly identical to asset %s", b.Text, closest.ID),
			AssetID:  b.ID,
			Observed: fmt.Sprintf("%.2f similarity", best),
			Expected: fmt.Sprintf("< %.2f similarity", t.NearDuplicateJaccard),
		})
	}

	return findings
}

func pinStrategyRule(in Input, t Thresholds) []domain.Finding {
	var findings []domain.Finding

	bySlot := make(map[string][]domain.Asset)
	var slots []string
	for _, asset := range enabledAssets(in.Ad) {
		if !asset.IsPinned() {
			continue
		}
		if _, ok := bySlot[asset.PinnedField]; !ok {
			slots = append(slots, asset.PinnedField)
		}
		bySlot[asset.PinnedField] = append(bySlot[asset.PinnedField], asset)
	}
	sort.Strings(slots)

	for _, slot := range slots {
		pinned := bySlot[slot]
		for _, extra := range pinned[1:] {
			findings = append(findings, domain.Finding{
				Code:     domain.RulePinStrategy,
				Severity: domain.SeverityWarn,
				Message:  fmt.Sprintf("%d assets are pinned to %s; asset %s competes with %s", len(pinned), slot, extra.ID, pinned[0].ID),
				AssetID:  extra.ID,
				Observed: fmt.Sprintf("%d assets pinned to %s", len(pinned), slot),
				Expected: "1 asset per pinned slot",
			})
		}
	}

	headlines := in.Ad.AssetsOfType(domain.AssetTypeHeadline)
	pinnedHeadlines := 0
	for _, h := range headlines {
		if h.IsPinned() {
			pinnedHeadlines++
		}
	}
	if len(headlines) > 0 && float64(pinnedHeadlines)/float64(len(headlines)) > t.MaxPinnedShare {
		findings = append(findings, domain.Finding{
			Code:     domain.RulePinStrategy,
			Severity: domain.SeverityWarn,
			Message:  fmt.Sprintf("%d of %d headlines are pinned, which limits combinations", pinnedHeadlines, len(headlines)),
			Observed: fmt.Sprintf("%d/%d headlines pinned", pinnedHeadlines, len(headlines)),
			Expected: fmt.Sprintf("<= %.0f%% pinned", t.MaxPinnedShare*100),
		})
	}

	return findings
}

// formattingProblems lista os problemas de caixa e pontuação de um texto
func formattingProblems(asset domain.Asset) []string {
	var problems []string

	run, longest := 0, 0
	for _, word := range strings.Fields(asset.Text) {
		if utils.IsUpperWord(word) && !utils.IsAcronym(word) {
			run++
			if run > longest {
				longest = run
			}
			continue
		}
		run = 0
	}
	if longest >= 2 {
		problems = append(problems, "excessive capitalization")
	}

	if regexp.MustCompile(`[!?]{2,}`).MatchString(asset.Text) {
		problems = append(problems, "repeated punctuation")
	}
	if asset.Type == domain.AssetTypeHeadline && strings.Contains(asset.Text, "!") {
		problems = append(problems, "exclamation mark in headline")
	}
	if strings.Contains(asset.Text, "  ") {
		problems = append(problems, "double spaces")
	}

	return problems
}

func formattingRule(in Input, _ Thresholds) []domain.Finding {
	var findings []domain.Finding

	for _, asset := range enabledAssets(in.Ad) {
		problems := formattingProblems(asset)
		if len(problems) == 0 {
			continue
		}
		findings = append(findings, domain.Finding{
			Code:     domain.RuleFormatting,
			Severity: domain.SeverityWarn,
			Message:  fmt.Sprintf("%q has formatting issues: %s", asset.Text, strings.Join(problems, ", ")),
			AssetID:  asset.ID,
			Observed: strings.Join(problems, ", "),
			Expected: "sentence or title case without gimmicky punctuation",
		})
	}

	return findings
}

func missingPathsRule(in Input, _ Thresholds) []domain.Finding {
	for _, p := range in.Ad.Paths {
		if strings.TrimSpace(p) != "" {
			return nil
		}
	}
	return []domain.Finding{{
		Code:     domain.RuleMissingPaths,
		Severity: domain.SeveritySuggest,
		Message:  "Ad has no display paths",
		Observed: "0 paths",
		Expected: fmt.Sprintf("%d paths", domain.MaxPaths),
	}}
}
