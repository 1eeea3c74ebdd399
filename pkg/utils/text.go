package utils

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	reNonWord    = regexp.MustCompile(`[^\p{L}\p{N}\s-]+`)
	reMultiSpace = regexp.MustCompile(`\s+`)
	reToken      = regexp.MustCompile(`[\p{L}\p{N}]+(?:-[\p{L}\p{N}]+)*`)
)

// Siglas mantidas em caixa alta no title case
var acronyms = map[string]bool{
	"ed": true, "hvac": true, "suv": true, "suvs": true, "dui": true, "rx": true,
	"usa": true, "diy": true, "tv": true, "bmw": true, "gmc": true, "ac": true,
	"fda": true, "llc": true, "ny": true, "nyc": true, "la": true,
}

// Palavras curtas mantidas em minúsculo no meio do título
var minorWords = map[string]bool{
	"a": true, "an": true, "and": true, "of": true, "the": true, "for": true,
	"in": true, "on": true, "to": true, "or": true, "at": true, "by": true, "with": true,
}

// IsAcronym informa se a palavra é uma sigla conhecida
func IsAcronym(word string) bool {
	return acronyms[strings.Trim(strings.ToLower(word), ".,!?")]
}

// IsUpperWord informa se a palavra tem ao menos duas letras e todas maiúsculas
func IsUpperWord(word string) bool {
	return isUpperWord(word)
}

func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// NormalizeText remove pontuação, caixa e espaços extras para comparação
func NormalizeText(s string) string {
	s = strings.ToLower(s)
	s = reNonWord.ReplaceAllString(s, " ")
	s = reMultiSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// CollapseSpaces troca sequências de espaço por um único espaço
func CollapseSpaces(s string) string {
	return strings.TrimSpace(reMultiSpace.ReplaceAllString(s, " "))
}

// Tokens retorna as palavras em minúsculo na ordem em que aparecem
func Tokens(s string) []string {
	return reToken.FindAllString(strings.ToLower(s), -1)
}

// ContainsToken verifica se o texto contém a palavra inteira
func ContainsToken(text, token string) bool {
	token = strings.ToLower(token)
	for _, t := range Tokens(text) {
		if t == token {
			return true
		}
	}
	return false
}

// ContainsPhrase verifica se a frase aparece em limites de palavra
func ContainsPhrase(text, phrase string) bool {
	normalizedText := " " + NormalizeText(text) + " "
	normalizedPhrase := NormalizeText(phrase)
	if normalizedPhrase == "" {
		return false
	}
	return strings.Contains(normalizedText, " "+normalizedPhrase+" ")
}

// Jaccard calcula a similaridade entre dois conjuntos de tokens
func Jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	setA := make(map[string]bool, len(a))
	for _, t := range a {
		setA[t] = true
	}
	setB := make(map[string]bool, len(b))
	for _, t := range b {
		setB[t] = true
	}

	intersection := 0
	for t := range setA {
		if setB[t] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// TitleCase capitaliza cada palavra, preservando siglas conhecidas e tokens já em caixa alta
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		lower := strings.ToLower(w)
		switch {
		case acronyms[strings.Trim(lower, ".,!?")]:
			words[i] = strings.ToUpper(w)
		case i > 0 && minorWords[lower]:
			words[i] = lower
		case hasDigit(w) || isUpperWord(w):
			words[i] = strings.ToUpper(w)
		default:
			r, size := utf8.DecodeRuneInString(lower)
			words[i] = string(unicode.ToUpper(r)) + lower[size:]
		}
	}
	return strings.Join(words, " ")
}

// TruncateWords corta o texto no último limite de palavra que caiba em max runas
func TruncateWords(s string, max int) string {
	if RuneLen(s) <= max {
		return s
	}
	words := strings.Fields(s)
	out := ""
	for _, w := range words {
		candidate := w
		if out != "" {
			candidate = out + " " + w
		}
		if RuneLen(candidate) > max {
			break
		}
		out = candidate
	}
	return strings.TrimRight(out, " ,;:-")
}

func hasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func isUpperWord(s string) bool {
	letters := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			letters++
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return letters >= 2
}
