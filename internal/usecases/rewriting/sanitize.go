package rewriting

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/vfg2006/rsa-auditor-api/internal/domain"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/verticals"
	"github.com/vfg2006/rsa-auditor-api/pkg/utils"
)

const minLetters = 3

type sanitizer struct {
	insertionToken *regexp.Regexp
	keywordPrefix  *regexp.Regexp
}

func newSanitizer() sanitizer {
	return sanitizer{
		insertionToken: regexp.MustCompile(`\{[^{}]*\}`),
		keywordPrefix:  regexp.MustCompile(`(?i)\bkeyword\s*:\s*`),
	}
}

// Clean remove tokens de inserção dinâmica e prefixos "keyword:"; devolve false se sobrar pouco texto
func (s sanitizer) Clean(text string) (string, bool) {
	out := s.insertionToken.ReplaceAllString(text, " ")
	out = s.keywordPrefix.ReplaceAllString(out, " ")
	out = strings.NewReplacer("{", " ", "}", " ").Replace(out)
	out = utils.CollapseSpaces(out)
	out = strings.Trim(out, " ,;:-")

	letters := 0
	for _, r := range out {
		if unicode.IsLetter(r) {
			letters++
		}
	}
	return out, letters >= minLetters
}

// gate aplica a política da vertical; textos rejeitados passam por Repair e são checados de novo
func gate(rs verticals.RuleSet, text string) (string, bool) {
	if !rs.Rejects(text) {
		return text, true
	}
	repaired, ok := rs.Repair(text)
	if !ok || rs.Rejects(repaired) {
		return "", false
	}
	return repaired, true
}

// admit passa um candidato por sanitização, política e limite de tamanho
func (s sanitizer) admit(rs verticals.RuleSet, text string, assetType domain.AssetType) (string, bool) {
	clean, ok := s.Clean(text)
	if !ok {
		return "", false
	}
	gated, ok := gate(rs, clean)
	if !ok {
		return "", false
	}
	if utils.RuneLen(gated) > domain.MaxLength(assetType) {
		return "", false
	}
	return gated, true
}

// pool acumula candidatos únicos, ignorando textos já publicados no anúncio
type pool struct {
	limit int
	seen  map[string]bool
	items []string
}

func newPool(limit int, live []domain.Asset) *pool {
	p := &pool{limit: limit, seen: make(map[string]bool), items: make([]string, 0, limit)}
	for _, a := range live {
		p.seen[utils.NormalizeText(a.Text)] = true
	}
	return p
}

func (p *pool) add(text string) {
	if len(p.items) >= p.limit {
		return
	}
	key := utils.NormalizeText(text)
	if key == "" || p.seen[key] {
		return
	}
	p.seen[key] = true
	p.items = append(p.items, text)
}
