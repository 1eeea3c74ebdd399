package auditing

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/vfg2006/rsa-auditor-api/internal/domain"
	"github.com/vfg2006/rsa-auditor-api/pkg/utils"
)

func staleAdRule(in Input, t Thresholds) []domain.Finding {
	if in.Now.IsZero() {
		return nil
	}
	days := in.Ad.DaysSinceEdit(in.Now)
	if days <= t.StaleDays {
		return nil
	}
	return []domain.Finding{{
		Code:     domain.RuleStaleAd,
		Severity: domain.SeverityWarn,
		Message:  fmt.Sprintf("Ad was last edited %d days ago", days),
		Observed: fmt.Sprintf("%d days", days),
		Expected: fmt.Sprintf("<= %d days", t.StaleDays),
	}}
}

func weekCTR(w domain.WeeklyMetric) float64 {
	if w.CTR > 0 || w.Impressions == 0 {
		return w.CTR
	}
	return utils.Ratio(float64(w.Clicks), float64(w.Impressions))
}

// ctrDeclineRule exige queda estrita nas últimas semanas, todas com volume mínimo
func ctrDeclineRule(in Input, t Thresholds) []domain.Finding {
	if len(in.Ad.WeeklyTrend) < t.DeclineWeeks || t.DeclineWeeks < 2 {
		return nil
	}

	weeks := make([]domain.WeeklyMetric, len(in.Ad.WeeklyTrend))
	copy(weeks, in.Ad.WeeklyTrend)
	sort.SliceStable(weeks, func(i, j int) bool {
		return weeks[i].WeekStart.Before(weeks[j].WeekStart)
	})
	recent := weeks[len(weeks)-t.DeclineWeeks:]

	for i, w := range recent {
		if w.Impressions < t.DeclineMinImpressions {
			return nil
		}
		if i > 0 && weekCTR(w) >= weekCTR(recent[i-1]) {
			return nil
		}
	}

	values := make([]string, 0, len(recent))
	for _, w := range recent {
		values = append(values, pct(weekCTR(w)))
	}
	return []domain.Finding{{
		Code:     domain.RuleCTRDecline,
		Severity: domain.SeverityWarn,
		Message:  fmt.Sprintf("CTR declined for %d consecutive weeks", t.DeclineWeeks),
		Observed: strings.Join(values, " -> "),
		Expected: "stable or rising weekly CTR",
	}}
}

func missingVariantRule(in Input, t Thresholds) []domain.Finding {
	// zero significa que a contagem do grupo não foi informada
	if in.Ad.AdGroupAdCount == 0 || in.Ad.AdGroupAdCount >= t.MinAdsPerGroup {
		return nil
	}
	return []domain.Finding{{
		Code:     domain.RuleMissingVariant,
		Severity: domain.SeveritySuggest,
		Message:  fmt.Sprintf("Ad group has %d ad; add a variant to test against", in.Ad.AdGroupAdCount),
		Observed: fmt.Sprintf("%d ads", in.Ad.AdGroupAdCount),
		Expected: fmt.Sprintf(">= %d ads", t.MinAdsPerGroup),
	}}
}

func lowServeShareRule(in Input, t Thresholds) []domain.Finding {
	adImpressions := in.Ad.Metrics.Impressions
	if adImpressions < t.LowServeShareImpressions {
		return nil
	}

	var findings []domain.Finding
	for _, asset := range enabledAssets(in.Ad) {
		if asset.Metrics.Impressions == 0 {
			continue
		}
		share := asset.ServeShare
		if share == 0 {
			share = utils.Ratio(float64(asset.Metrics.Impressions), float64(adImpressions))
		}
		if share >= t.LowServeShare {
			continue
		}
		findings = append(findings, domain.Finding{
			Code:     domain.RuleLowServeShare,
			Severity: domain.SeveritySuggest,
			Message:  fmt.Sprintf("%q serves in only %s of impressions", asset.Text, pct(share)),
			AssetID:  asset.ID,
			Observed: pct(share),
			Expected: ">= " + pct(t.LowServeShare),
		})
	}
	return findings
}

func deadAssetRule(in Input, t Thresholds) []domain.Finding {
	if in.Now.IsZero() || in.Ad.DaysSinceEdit(in.Now) < t.DeadAssetDays {
		return nil
	}

	var findings []domain.Finding
	for _, asset := range enabledAssets(in.Ad) {
		if asset.Metrics.Impressions > 0 {
			continue
		}
		findings = append(findings, domain.Finding{
			Code:     domain.RuleDeadAsset,
			Severity: domain.SeverityWarn,
			Message:  fmt.Sprintf("%q has no impressions %d days after the last edit", asset.Text, in.Ad.DaysSinceEdit(in.Now)),
			AssetID:  asset.ID,
			Observed: "0 lifetime impressions",
			Expected: "> 0 impressions",
		})
	}
	return findings
}

type seasonalEvent struct {
	phrase string
	months []time.Month
}

func seasonalEvents() []seasonalEvent {
	return []seasonalEvent{
		{phrase: "black friday", months: []time.Month{time.November}},
		{phrase: "cyber monday", months: []time.Month{time.November, time.December}},
		{phrase: "christmas", months: []time.Month{time.November, time.December}},
		{phrase: "holiday sale", months: []time.Month{time.November, time.December}},
		{phrase: "new year", months: []time.Month{time.December, time.January}},
		{phrase: "valentine", months: []time.Month{time.January, time.February}},
		{phrase: "valentines", months: []time.Month{time.January, time.February}},
		{phrase: "tax season", months: []time.Month{time.January, time.February, time.March, time.April}},
		{phrase: "mother's day", months: []time.Month{time.April, time.May}},
		{phrase: "memorial day", months: []time.Month{time.May}},
		{phrase: "father's day", months: []time.Month{time.May, time.June}},
		{phrase: "4th of july", months: []time.Month{time.June, time.July}},
		{phrase: "fourth of july", months: []time.Month{time.June, time.July}},
		{phrase: "summer sale", months: []time.Month{time.May, time.June, time.July, time.August}},
		{phrase: "back to school", months: []time.Month{time.July, time.August, time.September}},
		{phrase: "labor day", months: []time.Month{time.August, time.September}},
		{phrase: "halloween", months: []time.Month{time.September, time.October}},
		{phrase: "thanksgiving", months: []time.Month{time.November}},
	}
}

type datePatterns struct {
	year        *regexp.Regexp
	foundedYear *regexp.Regexp
	modelYear   *regexp.Regexp
	monthDay    *regexp.Regexp
	numeric     *regexp.Regexp
}

func newDatePatterns() datePatterns {
	return datePatterns{
		year:        regexp.MustCompile(`\b(?:19|20)\d{2}\b`),
		foundedYear: regexp.MustCompile(`(?i)\b(?:since|est\.?|established|founded)\s+(?:in\s+)?(?:19|20)\d{2}\b`),
		modelYear:   regexp.MustCompile(`\b(?:19|20)\d{2}\s+([A-Z][A-Za-z0-9]*(?:-[A-Za-z0-9]+)*)`),
		monthDay:    regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sept|sep|oct|nov|dec)\.?\s+(\d{1,2})(?:st|nd|rd|th)?(?:,?\s+((?:19|20)\d{2}))?\b`),
		numeric:     regexp.MustCompile(`(?i)\b(?:(ends|until|thru|through|by|before|on|expires)\s+)?(\d{1,2})/(\d{1,2})(?:/(\d{2}|\d{4}))?\b`),
	}
}

// promoWords seguem um ano sem transformá-lo em ano-modelo ("2024 Sale" continua vencido)
var promoWords = map[string]bool{
	"sale": true, "sales": true, "deal": true, "deals": true, "event": true,
	"offer": true, "offers": true, "special": true, "specials": true,
	"clearance": true, "promo": true, "savings": true, "discount": true,
	"discounts": true, "collection": true, "summer": true, "winter": true,
	"spring": true, "fall": true, "holiday": true, "holidays": true,
}

// modelYearSpans marca "2023 Camry" e "2019 F-150": ano seguido de token de modelo
func modelYearSpans(p datePatterns, text string) [][]int {
	var spans [][]int
	for _, m := range p.modelYear.FindAllStringSubmatchIndex(text, -1) {
		if promoWords[strings.ToLower(text[m[2]:m[3]])] {
			continue
		}
		spans = append(spans, m[:2])
	}
	return spans
}

// expiredReference devolve a primeira referência temporal vencida do texto
func expiredReference(p datePatterns, text string, now time.Time) (string, bool) {
	founded := p.foundedYear.FindAllStringIndex(text, -1)
	models := modelYearSpans(p, text)
	for _, loc := range p.year.FindAllStringIndex(text, -1) {
		if insideAny(loc, founded) || insideAny(loc, models) || (loc[0] > 0 && text[loc[0]-1] == '$') {
			continue
		}
		year, _ := strconv.Atoi(text[loc[0]:loc[1]])
		if year < now.Year() {
			return text[loc[0]:loc[1]], true
		}
	}

	for _, m := range p.monthDay.FindAllStringSubmatch(text, -1) {
		month := monthIndex(m[1])
		day, _ := strconv.Atoi(m[2])
		year := now.Year()
		if m[3] != "" {
			year, _ = strconv.Atoi(m[3])
		}
		if isPastDate(year, month, day, now) {
			return m[0], true
		}
	}

	for _, m := range p.numeric.FindAllStringSubmatch(text, -1) {
		if m[1] == "" && m[4] == "" {
			// sem ano nem palavra de prazo, "1/2" é mais provavelmente uma fração
			continue
		}
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		year := now.Year()
		if m[4] != "" {
			year, _ = strconv.Atoi(m[4])
			if year < 100 {
				year += 2000
			}
		}
		if isPastDate(year, time.Month(month), day, now) {
			return strings.TrimSpace(m[0]), true
		}
	}

	for _, event := range seasonalEvents() {
		if !utils.ContainsPhrase(text, event.phrase) {
			continue
		}
		inSeason := false
		for _, month := range event.months {
			if month == now.Month() {
				inSeason = true
				break
			}
		}
		if !inSeason {
			return event.phrase, true
		}
	}

	return "", false
}

func expiredDateRule(in Input, _ Thresholds) []domain.Finding {
	if in.Now.IsZero() {
		return nil
	}
	p := newDatePatterns()

	var findings []domain.Finding
	for _, asset := range enabledAssets(in.Ad) {
		ref, expired := expiredReference(p, asset.Text, in.Now)
		if !expired {
			continue
		}
		findings = append(findings, domain.Finding{
			Code:     domain.RuleExpiredDateReference,
			Severity: domain.SeverityWarn,
			Message:  fmt.Sprintf("%q references %q, which is no longer current", asset.Text, ref),
			AssetID:  asset.ID,
			Observed: ref,
			Expected: "current dates and in-season events only",
		})
	}
	return findings
}

func monthIndex(prefix string) time.Month {
	switch strings.ToLower(prefix)[:3] {
	case "jan":
		return time.January
	case "feb":
		return time.February
	case "mar":
		return time.March
	case "apr":
		return time.April
	case "may":
		return time.May
	case "jun":
		return time.June
	case "jul":
		return time.July
	case "aug":
		return time.August
	case "sep":
		return time.September
	case "oct":
		return time.October
	case "nov":
		return time.November
	default:
		return time.December
	}
}

func isPastDate(year int, month time.Month, day int, now time.Time) bool {
	if month < time.January || month > time.December || day < 1 || day > 31 {
		return false
	}
	endOfDay := time.Date(year, month, day, 23, 59, 59, 0, now.Location())
	if endOfDay.Month() != month {
		return false
	}
	return endOfDay.Before(now)
}

func insideAny(loc []int, spans [][]int) bool {
	for _, s := range spans {
		if loc[0] >= s[0] && loc[1] <= s[1] {
			return true
		}
	}
	return false
}
