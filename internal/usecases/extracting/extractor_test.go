package extracting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/rsa-auditor-api/internal/domain"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/verticals"
)

func lookup(t *testing.T, vertical string) verticals.RuleSet {
	t.Helper()
	rs, err := verticals.NewRegistry().Lookup(vertical)
	require.NoError(t, err)
	return rs
}

func TestExtractor_Extract(t *testing.T) {
	extractor := NewExtractor(MustLoadCatalog())

	t.Run("Concessionária com intenção local e cidade", func(t *testing.T) {
		ad := domain.Ad{ID: "ad-1", CampaignName: "Ford Trucks - Austin", AdGroupName: "F-150"}
		keywords := []string{"ford f-150 dealer austin", "used trucks near me", "cheap trucks price"}
		searchTerms := []string{"f-150 dealer austin", "ford dealer near me", "free shipping"}

		rc := extractor.Extract(ad, keywords, searchTerms, lookup(t, "automotive"), "Austin Ford")

		assert.Equal(t, "Ford", rc.Brand)
		assert.Equal(t, "Trucks", rc.Category)
		assert.Equal(t, []string{"F-150"}, rc.ModelsOrSKUs)
		assert.Equal(t, domain.Geo{City: "Austin", Region: "TX", HasLocalIntent: true}, rc.Geo)
		assert.Equal(t, []string{
			"Ford Trucks",
			"ford f-150 dealer austin",
			"f-150 dealer austin",
			"ford dealer near me",
			"used trucks near me",
		}, rc.TopKeywords)
		assert.Equal(t, []string{"f-150 dealer austin", "ford dealer near me", "free shipping"}, rc.TopSearchTerms)
		assert.Equal(t, []string{"Flexible Financing", "Low APR Offers"}, rc.Offers.Financing)
		assert.True(t, rc.Constraints.RequireLocation)
		assert.Equal(t, domain.DefaultHeadlineCount, rc.Constraints.HeadlineCount)
		assert.Equal(t, domain.DefaultDescriptionCount, rc.Constraints.DescriptionCount)
		assert.Equal(t, "automotive", rc.Vertical)
	})

	t.Run("Sem corpus usa nome da campanha", func(t *testing.T) {
		ad := domain.Ad{ID: "ad-2", CampaignName: "Acme Plumbing - Search", AdGroupName: "Drain Cleaning"}

		rc := extractor.Extract(ad, nil, nil, lookup(t, "home_services"), "")

		assert.Equal(t, "Acme", rc.Brand)
		assert.Equal(t, "Plumbing", rc.Category)
		assert.Equal(t, []string{"Acme Plumbing"}, rc.TopKeywords)
		assert.NotNil(t, rc.TopSearchTerms)
		assert.Empty(t, rc.TopSearchTerms)
		assert.NotNil(t, rc.ModelsOrSKUs)
		assert.False(t, rc.Geo.HasLocalIntent)
		assert.False(t, rc.Constraints.RequireLocation)
	})

	t.Run("Fallback para o nome da conta", func(t *testing.T) {
		rc := extractor.Extract(domain.Ad{ID: "ad-3"}, nil, nil, lookup(t, "healthcare"), "Bright Smiles")
		assert.Equal(t, "Bright Smiles", rc.Brand)
		assert.Equal(t, "", rc.Category)
	})

	t.Run("Fallback para o placeholder", func(t *testing.T) {
		rc := extractor.Extract(domain.Ad{ID: "ad-4"}, nil, nil, lookup(t, "healthcare"), "  ")
		assert.Equal(t, PlaceholderBrand, rc.Brand)
		assert.Empty(t, rc.TopKeywords)
		assert.NotNil(t, rc.TopKeywords)
	})

	t.Run("Termos de busca limitados e únicos", func(t *testing.T) {
		terms := []string{"a1", "A1", "b2", "c3", "d4", "e5", "f6", "g7", "h8", "i9", "j10", "k11"}
		rc := extractor.Extract(domain.Ad{ID: "ad-5"}, nil, terms, lookup(t, "ecommerce"), "Shop")
		assert.Len(t, rc.TopSearchTerms, domain.MaxTopSearchTerms)
		assert.Equal(t, "a1", rc.TopSearchTerms[0])
		assert.Equal(t, "b2", rc.TopSearchTerms[1])
		assert.Len(t, rc.ModelsOrSKUs, domain.MaxModelsOrSKUs)
	})

	t.Run("Determinístico", func(t *testing.T) {
		ad := domain.Ad{ID: "ad-6", CampaignName: "Nike Running", AdGroupName: "Air Max"}
		keywords := []string{"nike air max", "running shoes near me"}
		first := extractor.Extract(ad, keywords, keywords, lookup(t, "ecommerce"), "Nike")
		second := extractor.Extract(ad, keywords, keywords, lookup(t, "ecommerce"), "Nike")
		assert.Equal(t, first, second)
	})
}

func TestCatalog(t *testing.T) {
	catalog, err := LoadCatalog()
	require.NoError(t, err)

	offers := catalog.Offers("healthcare")
	require.NotEmpty(t, offers.Promotions)
	assert.Equal(t, "Book a Consultation", offers.Promotions[0])

	unknown := catalog.Offers("crypto")
	assert.NotNil(t, unknown.Financing)
	assert.Empty(t, unknown.Financing)
	assert.Empty(t, unknown.Trust)

	city, region, ok := catalog.City("NYC")
	assert.True(t, ok)
	assert.Equal(t, "New York", city)
	assert.Equal(t, "NY", region)

	// cópia: alterar o retorno não contamina o catálogo
	offers.Promotions[0] = "changed"
	assert.Equal(t, "Book a Consultation", catalog.Offers("healthcare").Promotions[0])
}
