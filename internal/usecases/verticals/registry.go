// Package verticals mantém as tabelas de política linguística e de compliance por indústria
package verticals

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/vfg2006/rsa-auditor-api/pkg/utils"
)

type Vertical string

const (
	Healthcare   Vertical = "healthcare"
	Legal        Vertical = "legal"
	HomeServices Vertical = "home_services"
	Automotive   Vertical = "automotive"
	Ecommerce    Vertical = "ecommerce"
)

var ErrUnknownVertical = errors.New("unknown vertical")

// ForbiddenPair é um verbo imperativo que não pode aparecer próximo de um objeto restrito
type ForbiddenPair struct {
	Verb          string
	ObjectPattern *regexp.Regexp
	Reason        string
	// Example é um objeto que casa com o padrão, usado para montar casos sintéticos
	Example string
}

type Claim struct {
	Pattern    *regexp.Regexp
	Reason     string
	Suggestion string
}

type CategoryRule struct {
	Name    string
	Pattern *regexp.Regexp
}

// RuleSet é a política de uma vertical
type RuleSet struct {
	Vertical          Vertical
	ImperativeVerbs   []string
	IntentVerbs       []string
	ForbiddenPairs    []ForbiddenPair
	ProblemToSolution map[string][]string
	ErrorClaims       []Claim
	WarnClaims        []Claim
	Signals           []string
	Categories        []CategoryRule
	CTAs              []string
	CTRBenchmark      float64
	CVRBenchmark      float64
}

// Registry é a tabela ordenada de verticais com fallback para ecommerce
type Registry struct {
	ruleSets []RuleSet
	fallback Vertical
}

// NewRegistry monta a tabela na ordem de precedência de inferência
func NewRegistry() *Registry {
	return &Registry{
		ruleSets: []RuleSet{
			healthcareRuleSet(),
			legalRuleSet(),
			homeServicesRuleSet(),
			automotiveRuleSet(),
			ecommerceRuleSet(),
		},
		fallback: Ecommerce,
	}
}

// Verticals lista as verticais registradas na ordem da tabela
func (r *Registry) Verticals() []Vertical {
	out := make([]Vertical, 0, len(r.ruleSets))
	for _, rs := range r.ruleSets {
		out = append(out, rs.Vertical)
	}
	return out
}

func (r *Registry) Default() RuleSet {
	rs, _ := r.Lookup(string(r.fallback))
	return rs
}

// Lookup busca a política de uma vertical explícita
func (r *Registry) Lookup(vertical string) (RuleSet, error) {
	key := Vertical(normalizeVertical(vertical))
	for _, rs := range r.ruleSets {
		if rs.Vertical == key {
			return rs, nil
		}
	}
	return RuleSet{}, fmt.Errorf("%w: %q", ErrUnknownVertical, vertical)
}

// Infer escolhe a vertical com mais sinais no corpus; empate mantém a ordem da tabela
func (r *Registry) Infer(corpus []string) RuleSet {
	best := -1
	bestHits := 0
	for i, rs := range r.ruleSets {
		hits := countSignals(rs.Signals, corpus)
		if hits > bestHits {
			best = i
			bestHits = hits
		}
	}
	if best < 0 {
		return r.Default()
	}
	return r.ruleSets[best]
}

// Resolve usa a dica explícita quando houver, senão infere pelo corpus
func (r *Registry) Resolve(hint string, corpus []string) (RuleSet, error) {
	if strings.TrimSpace(hint) != "" {
		return r.Lookup(hint)
	}
	return r.Infer(corpus), nil
}

func normalizeVertical(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	v = strings.ReplaceAll(v, "-", "_")
	v = strings.ReplaceAll(v, " ", "_")
	switch v {
	case "generic", "retail", "e_commerce":
		return string(Ecommerce)
	case "health", "medical":
		return string(Healthcare)
	case "auto":
		return string(Automotive)
	}
	return v
}

func countSignals(signals, corpus []string) int {
	hits := 0
	for _, text := range corpus {
		for _, signal := range signals {
			if utils.ContainsPhrase(text, signal) {
				hits++
			}
		}
	}
	return hits
}
