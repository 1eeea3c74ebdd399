package domain

type Geo struct {
	City           string `json:"city,omitempty"`
	Region         string `json:"region,omitempty"`
	HasLocalIntent bool   `json:"has_local_intent"`
}

type Offers struct {
	Financing       []string `json:"financing"`
	Promotions      []string `json:"promotions"`
	Trust           []string `json:"trust"`
	Differentiators []string `json:"differentiators"`
}

type RewriteConstraints struct {
	HeadlineCount    int  `json:"headline_count"`
	DescriptionCount int  `json:"description_count"`
	RequireLocation  bool `json:"require_location"`
}

// Valores fixos de geração por lote
const (
	DefaultHeadlineCount    = 6
	DefaultDescriptionCount = 2
	MaxTopKeywords          = 5
	MaxTopSearchTerms       = 10
	MaxModelsOrSKUs         = 3
)

// RewriteContext reúne o contexto extraído do corpus de palavras-chave e termos de busca
type RewriteContext struct {
	AccountName    string             `json:"account_name"`
	Vertical       string             `json:"vertical"`
	Brand          string             `json:"brand"`
	Category       string             `json:"category,omitempty"`
	Geo            Geo                `json:"geo"`
	TopKeywords    []string           `json:"top_keywords"`
	TopSearchTerms []string           `json:"top_search_terms"`
	ModelsOrSKUs   []string           `json:"models_or_skus"`
	Offers         Offers             `json:"offers"`
	Constraints    RewriteConstraints `json:"constraints"`
}
