package verticals

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Lookup(t *testing.T) {
	registry := NewRegistry()

	tests := []struct {
		name     string
		input    string
		expected Vertical
		wantErr  bool
	}{
		{name: "Vertical explícita", input: "healthcare", expected: Healthcare},
		{name: "Caixa e hífen normalizados", input: "Home-Services", expected: HomeServices},
		{name: "Alias generic cai em ecommerce", input: "generic", expected: Ecommerce},
		{name: "Vertical desconhecida", input: "crypto", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs, err := registry.Lookup(tt.input)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrUnknownVertical))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, rs.Vertical)
		})
	}
}

func TestRegistry_Infer(t *testing.T) {
	registry := NewRegistry()

	tests := []struct {
		name     string
		corpus   []string
		expected Vertical
	}{
		{name: "Sinais de saúde", corpus: []string{"ED treatment online", "telehealth doctor"}, expected: Healthcare},
		{name: "Sinais de concessionária", corpus: []string{"Ford F-150 dealer Austin", "used trucks"}, expected: Automotive},
		{name: "Sinais jurídicos", corpus: []string{"car accident lawyer", "injury attorney"}, expected: Legal},
		{name: "Serviços residenciais", corpus: []string{"emergency plumber", "water heater repair"}, expected: HomeServices},
		{name: "Sem sinais usa o padrão", corpus: []string{"lorem ipsum"}, expected: Ecommerce},
		{name: "Corpus vazio usa o padrão", corpus: nil, expected: Ecommerce},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, registry.Infer(tt.corpus).Vertical)
		})
	}
}

func TestRegistry_InferTieKeepsRegistrationOrder(t *testing.T) {
	registry := NewRegistry()

	// um sinal de saúde e um de jurídico: vence a primeira vertical da tabela
	rs := registry.Infer([]string{"clinic lawyer"})
	assert.Equal(t, Healthcare, rs.Vertical)
}

func TestRegistry_Resolve(t *testing.T) {
	registry := NewRegistry()

	rs, err := registry.Resolve("legal", []string{"ED treatment"})
	require.NoError(t, err)
	assert.Equal(t, Legal, rs.Vertical)

	rs, err = registry.Resolve("  ", []string{"ED treatment"})
	require.NoError(t, err)
	assert.Equal(t, Healthcare, rs.Vertical)

	_, err = registry.Resolve("nope", nil)
	assert.ErrorIs(t, err, ErrUnknownVertical)
}

func TestRegistry_VerticalsOrder(t *testing.T) {
	assert.Equal(t,
		[]Vertical{Healthcare, Legal, HomeServices, Automotive, Ecommerce},
		NewRegistry().Verticals(),
	)
}

func TestRuleSets_Benchmarks(t *testing.T) {
	for _, v := range NewRegistry().Verticals() {
		rs, err := NewRegistry().Lookup(string(v))
		require.NoError(t, err)
		assert.Greater(t, rs.CTRBenchmark, 0.0, v)
		assert.Greater(t, rs.CVRBenchmark, 0.0, v)
		assert.NotEmpty(t, rs.IntentVerbs, v)
		assert.NotEmpty(t, rs.CTAs, v)
	}
}
