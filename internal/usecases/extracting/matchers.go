package extracting

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/vfg2006/rsa-auditor-api/internal/usecases/verticals"
	"github.com/vfg2006/rsa-auditor-api/pkg/utils"
)

// PlaceholderBrand é usado quando nenhuma marca pode ser inferida
const PlaceholderBrand = "Official Site"

type brandEntry struct {
	Display string
	Phrases []string
}

// brandFamilies retorna o léxico de marcas em ordem de precedência
func brandFamilies() [][]brandEntry {
	return [][]brandEntry{
		// automotivo
		{
			{Display: "Ford", Phrases: []string{"ford"}},
			{Display: "Toyota", Phrases: []string{"toyota"}},
			{Display: "Honda", Phrases: []string{"honda"}},
			{Display: "Chevrolet", Phrases: []string{"chevrolet", "chevy"}},
			{Display: "BMW", Phrases: []string{"bmw"}},
			{Display: "Tesla", Phrases: []string{"tesla"}},
			{Display: "Nissan", Phrases: []string{"nissan"}},
			{Display: "Jeep", Phrases: []string{"jeep"}},
			{Display: "Subaru", Phrases: []string{"subaru"}},
			{Display: "Hyundai", Phrases: []string{"hyundai"}},
			{Display: "Kia", Phrases: []string{"kia"}},
			{Display: "Mazda", Phrases: []string{"mazda"}},
		},
		// consumo
		{
			{Display: "Nike", Phrases: []string{"nike"}},
			{Display: "Adidas", Phrases: []string{"adidas"}},
			{Display: "New Balance", Phrases: []string{"new balance"}},
			{Display: "Hoka", Phrases: []string{"hoka"}},
			{Display: "Lululemon", Phrases: []string{"lululemon"}},
			{Display: "Apple", Phrases: []string{"apple", "iphone"}},
			{Display: "Samsung", Phrases: []string{"samsung"}},
			{Display: "Sony", Phrases: []string{"sony"}},
		},
		// saúde
		{
			{Display: "Hims", Phrases: []string{"hims"}},
			{Display: "Teladoc", Phrases: []string{"teladoc"}},
			{Display: "Aspen Dental", Phrases: []string{"aspen dental"}},
			{Display: "One Medical", Phrases: []string{"one medical"}},
		},
		// serviços residenciais
		{
			{Display: "Roto-Rooter", Phrases: []string{"roto-rooter", "roto rooter"}},
			{Display: "Mr. Rooter", Phrases: []string{"mr rooter"}},
			{Display: "Trane", Phrases: []string{"trane"}},
			{Display: "Terminix", Phrases: []string{"terminix"}},
		},
		// jurídico
		{
			{Display: "Morgan & Morgan", Phrases: []string{"morgan morgan", "morgan and morgan"}},
			{Display: "LegalZoom", Phrases: []string{"legalzoom", "legal zoom"}},
		},
	}
}

func nameStopwords() map[string]bool {
	return map[string]bool{
		"search": true, "brand": true, "branded": true, "nonbrand": true, "non-brand": true,
		"campaign": true, "generic": true, "rsa": true, "ads": true, "ad": true, "group": true,
		"exact": true, "phrase": true, "broad": true, "core": true, "test": true, "promo": true,
		"sale": true, "local": true, "national": true, "us": true, "usa": true, "new": true,
		"used": true, "all": true, "the": true, "and": true, "for": true, "general": true,
		"main": true, "dsa": true, "pmax": true, "performance": true,
		"remarketing": true, "competitor": true, "competitors": true, "top": true, "best": true,
		"services": true, "service": true, "products": true, "shop": true, "store": true,
		"online": true, "official": true, "site": true, "near": true, "me": true,
	}
}

// genéricos de comércio que sozinhos não descrevem intenção
func commerceDenylist() map[string]bool {
	return map[string]bool{
		"buy": true, "shop": true, "online": true, "store": true, "cheap": true, "deal": true,
		"deals": true, "sale": true, "sales": true, "near": true, "me": true, "best": true,
		"price": true, "discount": true, "coupon": true, "free": true, "shipping": true,
		"order": true, "now": true,
	}
}

func storefrontTokens() map[string]bool {
	return map[string]bool{
		"store": true, "stores": true, "website": true, "site": true, "official": true,
		"homepage": true, "outlet": true,
	}
}

func priceTokens() map[string]bool {
	return map[string]bool{
		"price": true, "prices": true, "pricing": true, "cheap": true, "cheapest": true,
		"shipping": true, "coupon": true, "coupons": true, "discount": true, "deal": true,
		"deals": true, "cost": true,
	}
}

type patterns struct {
	alnumCode  *regexp.Regexp
	codeIgnore *regexp.Regexp
	yearModel  *regexp.Regexp
	locality   *regexp.Regexp
	inCity     *regexp.Regexp
	cityDealer *regexp.Regexp
	dealerCity *regexp.Regexp
}

func newPatterns() patterns {
	return patterns{
		alnumCode:  regexp.MustCompile(`\b([A-Za-z]{1,4}-?\d{1,4}[A-Za-z]{0,2})\b`),
		codeIgnore: regexp.MustCompile(`(?i)^(q[1-4]|h[12]|fy\d+)$`),
		yearModel:  regexp.MustCompile(`\b((?:19|20)\d{2}) ([A-Za-z][A-Za-z0-9-]+)\b`),
		locality:   regexp.MustCompile(`(?i)\b(near me|nearby|near by|close to me|in my area|open now|local)\b`),
		inCity:     regexp.MustCompile(`\b(?:in|near) ([a-z]+(?: [a-z]+){0,2})`),
		cityDealer: regexp.MustCompile(`([a-z]+(?: [a-z]+){0,2}) (?:dealers?|dealerships?)\b`),
		dealerCity: regexp.MustCompile(`\b(?:dealers?|dealerships?) (?:in )?([a-z]+(?: [a-z]+){0,2})`),
	}
}

// matchBrand procura a primeira família do léxico com ocorrência no corpus
func matchBrand(corpus []string) string {
	for _, family := range brandFamilies() {
		for _, brand := range family {
			for _, phrase := range brand.Phrases {
				for _, text := range corpus {
					if utils.ContainsPhrase(text, phrase) {
						return brand.Display
					}
				}
			}
		}
	}
	return ""
}

// matchCapitalizedBrand usa o primeiro token capitalizado dos nomes de campanha e grupo
func matchCapitalizedBrand(names []string, rs verticals.RuleSet, isCity func(string) bool) string {
	stop := nameStopwords()
	for _, name := range names {
		for _, raw := range strings.Fields(name) {
			word := strings.Trim(raw, "-|:/_,.()[]")
			if !isCapitalizedWord(word) {
				continue
			}
			lower := strings.ToLower(word)
			if stop[lower] || isSignal(rs, lower) || matchesAnyCategory(rs, word) || isCity(word) {
				continue
			}
			return word
		}
	}
	return ""
}

// matchAlnumCodes captura códigos de modelo como F-150, RAV4 e X5
func matchAlnumCodes(p patterns, text string) []string {
	var out []string
	for _, m := range p.alnumCode.FindAllStringSubmatch(text, -1) {
		code := m[1]
		if !hasLetter(code) || !hasDigit(code) || p.codeIgnore.MatchString(code) {
			continue
		}
		out = append(out, strings.ToUpper(code))
	}
	return out
}

// matchCapitalizedBigrams captura pares de palavras capitalizadas como "Air Max"
func matchCapitalizedBigrams(text string, exclude func(string) bool) []string {
	words := strings.Fields(text)
	var out []string
	for i := 0; i+1 < len(words); i++ {
		first := strings.Trim(words[i], ",.:;!?")
		second := strings.Trim(words[i+1], ",.:;!?")
		if !isTitleWord(first) || !isTitleWord(second) {
			continue
		}
		if exclude(first) || exclude(second) {
			continue
		}
		out = append(out, first+" "+second)
	}
	return out
}

// matchYearModels captura "2024 Camry"
func matchYearModels(p patterns, text string, exclude func(string) bool) []string {
	var out []string
	for _, m := range p.yearModel.FindAllStringSubmatch(text, -1) {
		if exclude(m[2]) {
			continue
		}
		out = append(out, m[1]+" "+utils.TitleCase(m[2]))
	}
	return out
}

// matchModels aplica as famílias em ordem e devolve até MaxModelsOrSKUs valores únicos
func matchModels(p patterns, corpus []string, exclude func(string) bool, limit int) []string {
	families := []func(string) []string{
		func(text string) []string { return matchAlnumCodes(p, text) },
		func(text string) []string { return matchCapitalizedBigrams(text, exclude) },
		func(text string) []string { return matchYearModels(p, text, exclude) },
	}

	seen := make(map[string]bool)
	out := make([]string, 0, limit)
	for _, family := range families {
		for _, text := range corpus {
			for _, model := range family(text) {
				key := strings.ToLower(model)
				if seen[key] {
					continue
				}
				seen[key] = true
				out = append(out, model)
				if len(out) == limit {
					return out
				}
			}
		}
	}
	return out
}

// matchCategory devolve a primeira regra de categoria da vertical presente no corpus
func matchCategory(rs verticals.RuleSet, corpus []string) (verticals.CategoryRule, bool) {
	for _, rule := range rs.Categories {
		for _, text := range corpus {
			if rule.Pattern.MatchString(text) {
				return rule, true
			}
		}
	}
	return verticals.CategoryRule{}, false
}

// matchLocality detecta frases de intenção local como "near me"
func matchLocality(p patterns, corpus []string) bool {
	for _, text := range corpus {
		if p.locality.MatchString(text) {
			return true
		}
	}
	return false
}

// matchCity promove capturas "in <cidade>" e "<cidade> dealer" apenas quando existem no gazetteer
func matchCity(p patterns, corpus []string, lookup func(string) (string, string, bool)) (string, string, bool) {
	for _, text := range corpus {
		normalized := utils.NormalizeText(text)

		for _, m := range p.inCity.FindAllStringSubmatch(normalized, -1) {
			if city, region, ok := longestPrefixCity(m[1], lookup); ok {
				return city, region, true
			}
		}
		for _, m := range p.dealerCity.FindAllStringSubmatch(normalized, -1) {
			if city, region, ok := longestPrefixCity(m[1], lookup); ok {
				return city, region, true
			}
		}
		for _, m := range p.cityDealer.FindAllStringSubmatch(normalized, -1) {
			if city, region, ok := anySpanCity(m[1], lookup); ok {
				return city, region, true
			}
		}
	}
	return "", "", false
}

func longestPrefixCity(capture string, lookup func(string) (string, string, bool)) (string, string, bool) {
	words := strings.Fields(capture)
	for n := len(words); n > 0; n-- {
		if city, region, ok := lookup(strings.Join(words[:n], " ")); ok {
			return city, region, true
		}
	}
	return "", "", false
}

// anySpanCity tenta todos os trechos contíguos da captura, do mais longo ao mais curto
func anySpanCity(capture string, lookup func(string) (string, string, bool)) (string, string, bool) {
	words := strings.Fields(capture)
	for size := len(words); size > 0; size-- {
		for start := 0; start+size <= len(words); start++ {
			if city, region, ok := lookup(strings.Join(words[start:start+size], " ")); ok {
				return city, region, true
			}
		}
	}
	return "", "", false
}

type rankInput struct {
	brand        string
	models       []string
	category     verticals.CategoryRule
	hasCategory  bool
	localityFunc func(string) bool
}

// scoreKeyword aplica os pesos heurísticos de relevância de um termo
func scoreKeyword(term string, in rankInput) int {
	score := 0
	if in.brand != "" && utils.ContainsPhrase(term, in.brand) {
		score += 3
	}
	for _, model := range in.models {
		if utils.ContainsPhrase(term, model) {
			score += 3
			break
		}
	}
	if in.hasCategory && (utils.ContainsPhrase(term, in.category.Name) || in.category.Pattern.MatchString(term)) {
		score += 2
	}
	if in.localityFunc != nil && in.localityFunc(term) {
		score++
	}

	storefront := storefrontTokens()
	price := priceTokens()
	var hasStorefront, hasPrice bool
	for _, tok := range utils.Tokens(term) {
		hasStorefront = hasStorefront || storefront[tok]
		hasPrice = hasPrice || price[tok]
	}
	if hasStorefront {
		score -= 3
	}
	if hasPrice {
		score -= 2
	}
	return score
}

// isDenylisted descarta termos formados só por genéricos de comércio
func isDenylisted(term string) bool {
	tokens := utils.Tokens(term)
	if len(tokens) == 0 {
		return true
	}
	deny := commerceDenylist()
	for _, tok := range tokens {
		if !deny[tok] {
			return false
		}
	}
	return true
}

// rankKeywords ordena palavras-chave e termos de busca pela pontuação heurística
func rankKeywords(keywords, searchTerms []string, in rankInput, limit int) []string {
	type scored struct {
		term  string
		score int
	}

	var candidates []scored
	for _, raw := range append(append([]string{}, keywords...), searchTerms...) {
		term := utils.CollapseSpaces(raw)
		if isDenylisted(term) {
			continue
		}
		candidates = append(candidates, scored{term: term, score: scoreKeyword(term, in)})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	ordered := make([]string, 0, len(candidates)+1)
	if in.brand != "" && in.brand != PlaceholderBrand && in.hasCategory {
		ordered = append(ordered, in.brand+" "+in.category.Name)
	}
	for _, c := range candidates {
		ordered = append(ordered, c.term)
	}

	return uniqueFold(ordered, limit)
}

// uniqueFold remove duplicados ignorando caixa, mantendo a primeira forma
func uniqueFold(items []string, limit int) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, limit)
	for _, item := range items {
		item = utils.CollapseSpaces(item)
		key := utils.NormalizeText(item)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
		if len(out) == limit {
			break
		}
	}
	return out
}

func isSignal(rs verticals.RuleSet, lower string) bool {
	for _, s := range rs.Signals {
		if s == lower {
			return true
		}
	}
	return false
}

func matchesAnyCategory(rs verticals.RuleSet, word string) bool {
	for _, rule := range rs.Categories {
		if rule.Pattern.MatchString(word) {
			return true
		}
	}
	return false
}

func isCapitalizedWord(word string) bool {
	runes := []rune(word)
	if len(runes) < 2 || !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if !unicode.IsLetter(r) && r != '-' && r != '\'' && r != '&' {
			return false
		}
	}
	return true
}

// isTitleWord exige inicial maiúscula seguida apenas de minúsculas
func isTitleWord(word string) bool {
	runes := []rune(word)
	if len(runes) < 2 || !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if !unicode.IsLower(r) {
			return false
		}
	}
	return true
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func hasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
