package rewriting

import (
	"github.com/vfg2006/rsa-auditor-api/internal/domain"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/extracting"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/verticals"
	"github.com/vfg2006/rsa-auditor-api/pkg/utils"
)

// descriptionTemplate segue Dor, Solução, Oferta e CTA; peças ausentes ficam nil
const descriptionTemplate = `{% if pain %}{{ pain }} {% endif %}` +
	`{% if solution %}{{ solution }}{% if city %} in {{ city }}{% endif %}.{% endif %}` +
	`{% if offer %} {{ offer }}.{% endif %}` +
	`{% if cta %} {{ cta }}.{% endif %}`

const solutionTemplate = `{% if brand %}{{ subject }} from {{ brand }}{% else %}{{ subject }} made simple{% endif %}`

// slot identifica a posição da fórmula de headlines
type slot int

const (
	slotIntent slot = iota
	slotOffer
	slotTrust
	slotLocation
	slotRepair
)

// slotsFor define com quais posições cada categoria de issue contribui
func slotsFor(category domain.IssueCategory) []slot {
	switch category {
	case domain.CategoryProof:
		return []slot{slotRepair, slotIntent, slotTrust}
	case domain.CategoryOffer:
		return []slot{slotOffer, slotIntent}
	case domain.CategoryLocal:
		return []slot{slotLocation, slotIntent}
	case domain.CategoryVariation:
		return []slot{slotIntent, slotOffer, slotTrust}
	default:
		return []slot{slotIntent}
	}
}

func painPoints(v verticals.Vertical) []string {
	switch v {
	case verticals.Healthcare:
		return []string{"Skip the waiting room.", "Care that fits your schedule."}
	case verticals.Legal:
		return []string{"Hurt in an accident?", "Facing a legal problem?"}
	case verticals.HomeServices:
		return []string{"Broken AC or leaky pipes?", "Need help around the house?"}
	case verticals.Automotive:
		return []string{"Ready for your next vehicle?", "Shopping for a new ride?"}
	default:
		return []string{"Looking for the perfect fit?", "Ready for an upgrade?"}
	}
}

// subject é o assunto principal dos headlines: categoria, depois palavra-chave, depois marca
func subject(rc domain.RewriteContext) string {
	if rc.Category != "" {
		return rc.Category
	}
	if len(rc.TopKeywords) > 0 {
		return utils.TitleCase(rc.TopKeywords[0])
	}
	if brand := realBrand(rc); brand != "" {
		return brand
	}
	return ""
}

func realBrand(rc domain.RewriteContext) string {
	if rc.Brand == extracting.PlaceholderBrand {
		return ""
	}
	return rc.Brand
}

func intentHeadlines(rc domain.RewriteContext, rs verticals.RuleSet) []string {
	var out []string
	if s := subject(rc); s != "" {
		for _, verb := range rs.IntentVerbs {
			out = append(out, verb+" "+s)
		}
	}
	for _, kw := range rc.TopKeywords {
		out = append(out, utils.TitleCase(kw))
	}
	return out
}

func offerHeadlines(rc domain.RewriteContext) []string {
	var out []string
	out = append(out, rc.Offers.Financing...)
	out = append(out, rc.Offers.Promotions...)
	out = append(out, rc.Offers.Differentiators...)
	return out
}

func trustHeadlines(rc domain.RewriteContext) []string {
	return append([]string{}, rc.Offers.Trust...)
}

func locationHeadlines(rc domain.RewriteContext) []string {
	if rc.Geo.City == "" {
		return nil
	}
	var out []string
	if s := subject(rc); s != "" {
		out = append(out, s+" in "+rc.Geo.City)
	}
	if brand := realBrand(rc); brand != "" {
		out = append(out, brand+" "+rc.Geo.City)
	}
	if rc.Geo.Region != "" {
		out = append(out, "Serving "+rc.Geo.City+", "+rc.Geo.Region)
	}
	return out
}

// descriptionOffers intercala as ofertas na ordem promoções, financiamento, diferenciais
func descriptionOffers(rc domain.RewriteContext) []string {
	var out []string
	out = append(out, rc.Offers.Promotions...)
	out = append(out, rc.Offers.Financing...)
	out = append(out, rc.Offers.Differentiators...)
	return out
}

func pick(items []string, i int) string {
	if len(items) == 0 {
		return ""
	}
	return items[i%len(items)]
}
