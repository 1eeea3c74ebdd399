package verticals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleSet_FindForbiddenPairs(t *testing.T) {
	healthcare := healthcareRuleSet()

	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{name: "Verbo seguido do objeto", text: "Buy ED treatment online now", expected: 1},
		{name: "Objeto dentro da janela de 4 tokens", text: "Order your trusted online prescription", expected: 1},
		{name: "Objeto fora da janela", text: "Buy from a licensed clinic online for ED", expected: 0},
		{name: "Objeto antes do verbo", text: "ED treatment you can buy", expected: 0},
		{name: "Verbo permitido", text: "Start ED treatment online", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, healthcare.FindForbiddenPairs(tt.text), tt.expected)
		})
	}
}

func TestRuleSet_EveryForbiddenPairIsDetected(t *testing.T) {
	registry := NewRegistry()
	for _, v := range registry.Verticals() {
		rs, err := registry.Lookup(string(v))
		require.NoError(t, err)

		for _, pair := range rs.ForbiddenPairs {
			text := pair.Verb + " " + pair.Example
			assert.NotEmpty(t, rs.FindForbiddenPairs(text), "%s: %q", v, text)
			assert.True(t, rs.Rejects(text), "%s: %q", v, text)
			assert.True(t, rs.IsImperative(pair.Verb), "%s: verbo %q fora da lista imperativa", v, pair.Verb)

			if repaired, ok := rs.Repair(text); ok {
				assert.Empty(t, rs.FindForbiddenPairs(repaired), "%s: %q", v, repaired)
				assert.False(t, rs.Rejects(repaired))
			}
		}
	}
}

func TestRuleSet_Repair(t *testing.T) {
	tests := []struct {
		name     string
		rs       RuleSet
		text     string
		expected string
		ok       bool
	}{
		{
			name:     "Troca o verbo preservando a caixa",
			rs:       healthcareRuleSet(),
			text:     "Buy ED Treatment Online",
			expected: "Start ED Treatment Online",
			ok:       true,
		},
		{
			name:     "Verbo em minúsculo",
			rs:       healthcareRuleSet(),
			text:     "safely buy ed treatment",
			expected: "safely start ed treatment",
			ok:       true,
		},
		{
			name:     "Alegação trocada pela sugestão",
			rs:       legalRuleSet(),
			text:     "Guaranteed Settlement Lawyers",
			expected: "Experienced Counsel Lawyers",
			ok:       true,
		},
		{
			name: "Alegação sem sugestão é descartada",
			rs:   ecommerceRuleSet(),
			text: "Designer Replica Bags",
			ok:   false,
		},
		{
			name:     "Texto limpo não muda",
			rs:       automotiveRuleSet(),
			text:     "Shop Ford F-150 Trucks",
			expected: "Shop Ford F-150 Trucks",
			ok:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.rs.Repair(tt.text)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestRuleSet_Claims(t *testing.T) {
	healthcare := healthcareRuleSet()

	errs := healthcare.MatchErrorClaims("Miracle cure, no prescription needed")
	assert.Len(t, errs, 2)
	assert.Equal(t, KindErrorClaim, errs[0].Kind)

	warns := healthcare.MatchWarnClaims("The #1 telehealth clinic")
	require.Len(t, warns, 1)
	assert.Equal(t, "#1", warns[0].Match)

	assert.Empty(t, healthcare.MatchErrorClaims("Licensed providers, discreet care"))
}
