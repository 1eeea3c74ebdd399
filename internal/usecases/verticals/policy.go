package verticals

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vfg2006/rsa-auditor-api/pkg/utils"
)

// ForbiddenWindow é quantos tokens após o verbo são inspecionados em busca do objeto
const ForbiddenWindow = 4

const maxRepairAttempts = 4

type ViolationKind string

const (
	KindForbiddenPair ViolationKind = "forbidden_pair"
	KindErrorClaim    ViolationKind = "error_claim"
	KindWarnClaim     ViolationKind = "warn_claim"
)

// Violation descreve um trecho de texto que fere a política da vertical
type Violation struct {
	Kind       ViolationKind
	Reason     string
	Match      string
	Verb       string
	Suggestion string
}

// IsImperative informa se o token é um verbo imperativo reconhecido pela vertical
func (rs RuleSet) IsImperative(token string) bool {
	token = strings.ToLower(token)
	for _, v := range rs.ImperativeVerbs {
		if v == token {
			return true
		}
	}
	return false
}

// FindForbiddenPairs procura verbos imperativos seguidos, dentro da janela, de um objeto restrito
func (rs RuleSet) FindForbiddenPairs(text string) []Violation {
	tokens := utils.Tokens(text)
	var out []Violation
	for i, tok := range tokens {
		for _, pair := range rs.ForbiddenPairs {
			if tok != pair.Verb {
				continue
			}
			end := i + 1 + ForbiddenWindow
			if end > len(tokens) {
				end = len(tokens)
			}
			window := strings.Join(tokens[i+1:end], " ")
			if match := pair.ObjectPattern.FindString(window); match != "" {
				out = append(out, Violation{
					Kind:   KindForbiddenPair,
					Reason: pair.Reason,
					Match:  tok + " " + match,
					Verb:   pair.Verb,
				})
			}
		}
	}
	return out
}

func (rs RuleSet) MatchErrorClaims(text string) []Violation {
	return matchClaims(rs.ErrorClaims, text, KindErrorClaim)
}

func (rs RuleSet) MatchWarnClaims(text string) []Violation {
	return matchClaims(rs.WarnClaims, text, KindWarnClaim)
}

// Rejects indica se o texto não pode ser publicado nesta vertical
func (rs RuleSet) Rejects(text string) bool {
	return len(rs.FindForbiddenPairs(text)) > 0 || len(rs.MatchErrorClaims(text)) > 0
}

// Repair tenta reescrever um texto rejeitado trocando o verbo problemático pela
// alternativa da vertical ou a alegação pela sugestão cadastrada
func (rs RuleSet) Repair(text string) (string, bool) {
	current := text
	for attempt := 0; attempt < maxRepairAttempts; attempt++ {
		pairs := rs.FindForbiddenPairs(current)
		claims := rs.MatchErrorClaims(current)
		if len(pairs) == 0 && len(claims) == 0 {
			return current, true
		}

		if len(pairs) > 0 {
			next, ok := rs.replaceVerb(current, pairs[0].Verb, len(pairs))
			if !ok {
				return "", false
			}
			current = next
			continue
		}

		claim := claims[0]
		if claim.Suggestion == "" {
			return "", false
		}
		current = utils.CollapseSpaces(replaceFirstFold(current, claim.Match, claim.Suggestion))
	}
	return "", false
}

func (rs RuleSet) replaceVerb(text, verb string, violations int) (string, bool) {
	for _, replacement := range rs.ProblemToSolution[verb] {
		candidate := replaceFirstFold(text, verb, replacement)
		if len(rs.FindForbiddenPairs(candidate)) < violations {
			return candidate, true
		}
	}
	return "", false
}

func matchClaims(claims []Claim, text string, kind ViolationKind) []Violation {
	var out []Violation
	for _, c := range claims {
		if match := c.Pattern.FindString(text); match != "" {
			out = append(out, Violation{
				Kind:       kind,
				Reason:     c.Reason,
				Match:      match,
				Suggestion: c.Suggestion,
			})
		}
	}
	return out
}

// replaceFirstFold troca a primeira ocorrência da palavra, ignorando caixa e preservando o estilo original
func replaceFirstFold(text, word, replacement string) string {
	re, err := regexp.Compile(`(?i)(^|[^\p{L}\p{N}])(` + regexp.QuoteMeta(word) + `)($|[^\p{L}\p{N}])`)
	if err != nil {
		return text
	}
	loc := re.FindStringSubmatchIndex(text)
	if loc == nil {
		return text
	}
	original := text[loc[4]:loc[5]]
	return text[:loc[4]] + matchCase(original, replacement) + text[loc[5]:]
}

func matchCase(original, replacement string) string {
	switch {
	case strings.ToUpper(original) == original && utf8.RuneCountInString(original) > 1:
		return strings.ToUpper(replacement)
	case startsUpper(original):
		r, size := utf8.DecodeRuneInString(replacement)
		return string(unicode.ToUpper(r)) + replacement[size:]
	default:
		return strings.ToLower(replacement)
	}
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}
