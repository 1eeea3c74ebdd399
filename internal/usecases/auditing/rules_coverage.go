package auditing

import (
	"fmt"
	"strings"

	"github.com/vfg2006/rsa-auditor-api/internal/domain"
	"github.com/vfg2006/rsa-auditor-api/pkg/utils"
)

func echoStopwords() map[string]bool {
	return map[string]bool{
		"the": true, "and": true, "for": true, "near": true, "with": true, "you": true,
		"your": true, "buy": true, "online": true, "best": true, "cheap": true, "shop": true,
		"store": true, "sale": true, "deals": true, "free": true, "now": true, "get": true,
		"from": true, "how": true, "what": true, "are": true,
	}
}

func assetCountRule(in Input, t Thresholds) []domain.Finding {
	var findings []domain.Finding

	headlines := len(in.Ad.AssetsOfType(domain.AssetTypeHeadline))
	if headlines < t.MinHeadlines {
		findings = append(findings, domain.Finding{
			Code:     domain.RuleInsufficientHeadlines,
			Severity: domain.SeverityWarn,
			Message:  fmt.Sprintf("Ad has %d enabled headlines; at least %d are recommended", headlines, t.MinHeadlines),
			Observed: fmt.Sprintf("%d headlines", headlines),
			Expected: fmt.Sprintf(">= %d headlines", t.MinHeadlines),
		})
	}

	descriptions := len(in.Ad.AssetsOfType(domain.AssetTypeDescription))
	if descriptions < t.MinDescriptions {
		findings = append(findings, domain.Finding{
			Code:     domain.RuleInsufficientDescriptions,
			Severity: domain.SeverityWarn,
			Message:  fmt.Sprintf("Ad has %d enabled descriptions; at least %d are recommended", descriptions, t.MinDescriptions),
			Observed: fmt.Sprintf("%d descriptions", descriptions),
			Expected: fmt.Sprintf(">= %d descriptions", t.MinDescriptions),
		})
	}

	return findings
}

// echoTokens retorna os tokens relevantes dos principais termos, na ordem de aparição
func echoTokens(in Input, limit int) []string {
	terms := in.Context.TopKeywords
	if len(terms) == 0 {
		terms = append(append([]string{}, in.Keywords...), in.SearchTerms...)
	}
	if len(terms) > limit {
		terms = terms[:limit]
	}

	stop := echoStopwords()
	seen := make(map[string]bool)
	var tokens []string
	for _, term := range terms {
		for _, tok := range utils.Tokens(term) {
			if utils.RuneLen(tok) < 3 && !utils.IsAcronym(tok) {
				continue
			}
			if stop[tok] || seen[tok] {
				continue
			}
			seen[tok] = true
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

func queryEchoRule(in Input, t Thresholds) []domain.Finding {
	tokens := echoTokens(in, t.QueryEchoTerms)
	if len(tokens) == 0 {
		return nil
	}

	for _, headline := range in.Ad.AssetsOfType(domain.AssetTypeHeadline) {
		for _, tok := range tokens {
			if utils.ContainsToken(headline.Text, tok) {
				return nil
			}
		}
	}

	return []domain.Finding{{
		Code:     domain.RuleQueryEchoMissing,
		Severity: domain.SeveritySuggest,
		Message:  "No headline echoes the top keywords or search terms",
		Observed: "no headline contains: " + strings.Join(tokens, ", "),
		Expected: "at least one headline with a top query term",
	}}
}

// underperformingNgramRule procura bigramas recorrentes em assets com CTR muito abaixo do benchmark
func underperformingNgramRule(in Input, t Thresholds) []domain.Finding {
	if in.RuleSet.CTRBenchmark <= 0 {
		return nil
	}
	ceiling := in.RuleSet.CTRBenchmark * t.NgramCTRRatio

	counts := make(map[string]int)
	var order []string
	for _, asset := range enabledAssets(in.Ad) {
		if asset.Metrics.Impressions < t.NgramMinImpressions || assetCTR(asset) >= ceiling {
			continue
		}
		tokens := utils.Tokens(asset.Text)
		seen := make(map[string]bool)
		for i := 0; i+1 < len(tokens); i++ {
			bigram := tokens[i] + " " + tokens[i+1]
			if seen[bigram] {
				continue
			}
			seen[bigram] = true
			if _, ok := counts[bigram]; !ok {
				order = append(order, bigram)
			}
			counts[bigram]++
		}
	}

	var findings []domain.Finding
	for _, bigram := range order {
		if counts[bigram] < t.NgramMinAssets {
			continue
		}
		findings = append(findings, domain.Finding{
			Code:     domain.RuleUnderperformingNgram,
			Severity: domain.SeveritySuggest,
			Message:  fmt.Sprintf("Phrase %q appears in %d assets with CTR below %s", bigram, counts[bigram], pct(ceiling)),
			Observed: bigram,
			Expected: fmt.Sprintf("asset CTR >= %s", pct(ceiling)),
		})
	}
	return findings
}

func assetCTR(a domain.Asset) float64 {
	if a.Metrics.CTR > 0 || a.Metrics.Impressions == 0 {
		return a.Metrics.CTR
	}
	return float64(a.Metrics.Clicks) / float64(a.Metrics.Impressions)
}
