// Package extracting deriva marca, modelos, categoria, geo e ofertas do corpus de um anúncio
package extracting

import (
	"strings"

	"github.com/vfg2006/rsa-auditor-api/internal/domain"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/verticals"
	"github.com/vfg2006/rsa-auditor-api/pkg/utils"
)

type Extractor struct {
	catalog  *Catalog
	patterns patterns
}

func NewExtractor(catalog *Catalog) *Extractor {
	return &Extractor{
		catalog:  catalog,
		patterns: newPatterns(),
	}
}

// Extract monta o RewriteContext de um anúncio. Campos obrigatórios nunca ficam nulos
func (e *Extractor) Extract(ad domain.Ad, keywords, searchTerms []string, rs verticals.RuleSet, accountName string) domain.RewriteContext {
	names := nonEmpty([]string{ad.CampaignName, ad.AdGroupName})
	corpus := nonEmpty(append(append(append([]string{}, names...), keywords...), searchTerms...))

	city, region, hasCity := matchCity(e.patterns, corpus, e.catalog.City)
	isCity := func(word string) bool {
		_, _, ok := e.catalog.City(word)
		return ok
	}

	brand := matchBrand(corpus)
	if brand == "" {
		brand = matchCapitalizedBrand(names, rs, isCity)
	}
	if brand == "" {
		brand = strings.TrimSpace(accountName)
	}
	if brand == "" {
		brand = PlaceholderBrand
	}

	stop := nameStopwords()
	brandTokens := make(map[string]bool)
	for _, tok := range utils.Tokens(brand) {
		brandTokens[tok] = true
	}
	excludeModelWord := func(word string) bool {
		lower := strings.ToLower(word)
		return stop[lower] || brandTokens[lower] || isSignal(rs, lower) || isCity(word)
	}
	models := matchModels(e.patterns, corpus, excludeModelWord, domain.MaxModelsOrSKUs)

	category, hasCategory := matchCategory(rs, corpus)
	locality := matchLocality(e.patterns, corpus)

	geo := domain.Geo{HasLocalIntent: locality || hasCity}
	if hasCity {
		geo.City = city
		geo.Region = region
	}

	rankBrand := brand
	if brand == PlaceholderBrand {
		rankBrand = ""
	}
	topKeywords := rankKeywords(keywords, searchTerms, rankInput{
		brand:       rankBrand,
		models:      models,
		category:    category,
		hasCategory: hasCategory,
		localityFunc: func(term string) bool {
			return e.patterns.locality.MatchString(term)
		},
	}, domain.MaxTopKeywords)

	rc := domain.RewriteContext{
		AccountName:    strings.TrimSpace(accountName),
		Vertical:       string(rs.Vertical),
		Brand:          brand,
		Geo:            geo,
		TopKeywords:    topKeywords,
		TopSearchTerms: uniqueFold(searchTerms, domain.MaxTopSearchTerms),
		ModelsOrSKUs:   models,
		Offers:         e.catalog.Offers(string(rs.Vertical)),
		Constraints: domain.RewriteConstraints{
			HeadlineCount:    domain.DefaultHeadlineCount,
			DescriptionCount: domain.DefaultDescriptionCount,
			RequireLocation:  geo.HasLocalIntent,
		},
	}
	if hasCategory {
		rc.Category = category.Name
	}

	return rc
}

func nonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			out = append(out, item)
		}
	}
	return out
}
