package domain

import (
	"time"
	"unicode/utf8"
)

type AssetType string

const (
	AssetTypeHeadline    AssetType = "HEADLINE"
	AssetTypeDescription AssetType = "DESCRIPTION"
)

type AssetStatus string

const (
	AssetStatusEnabled AssetStatus = "ENABLED"
	AssetStatusPaused  AssetStatus = "PAUSED"
)

type AdStrength string

const (
	AdStrengthPoor      AdStrength = "POOR"
	AdStrengthAverage   AdStrength = "AVERAGE"
	AdStrengthGood      AdStrength = "GOOD"
	AdStrengthExcellent AdStrength = "EXCELLENT"
)

// Limites de caracteres impostos pela plataforma para anúncios responsivos
const (
	HeadlineMaxLength    = 30
	DescriptionMaxLength = 90
	PathMaxLength        = 15
	MaxPaths             = 2
	MaxHeadlines         = 15
	MaxDescriptions      = 4
	MinHeadlines         = 3
	MinDescriptions      = 2
)

// Posições válidas para fixação de assets
const (
	PinHeadline1    = "HEADLINE_1"
	PinHeadline2    = "HEADLINE_2"
	PinHeadline3    = "HEADLINE_3"
	PinDescription1 = "DESCRIPTION_1"
	PinDescription2 = "DESCRIPTION_2"
)

type AssetMetrics struct {
	Impressions    int     `json:"impressions"`
	Clicks         int     `json:"clicks"`
	CTR            float64 `json:"ctr"`
	ConversionRate float64 `json:"conversion_rate"`
}

type Asset struct {
	ID          string       `json:"id"`
	Type        AssetType    `json:"type"`
	Text        string       `json:"text"`
	PinnedField string       `json:"pinned_field,omitempty"`
	Status      AssetStatus  `json:"status,omitempty"`
	Metrics     AssetMetrics `json:"metrics"`
	ServeShare  float64      `json:"serve_share"`
}

// IsEnabled considera status vazio como ativo
func (a Asset) IsEnabled() bool {
	return a.Status == "" || a.Status == AssetStatusEnabled
}

func (a Asset) IsPinned() bool {
	return a.PinnedField != ""
}

// CharCount conta runas, não bytes
func (a Asset) CharCount() int {
	return utf8.RuneCountInString(a.Text)
}

// MaxLength retorna o limite de caracteres para o tipo do asset
func MaxLength(t AssetType) int {
	if t == AssetTypeDescription {
		return DescriptionMaxLength
	}
	return HeadlineMaxLength
}

func ValidAssetType(t AssetType) bool {
	return t == AssetTypeHeadline || t == AssetTypeDescription
}

type AdMetrics struct {
	Impressions    int     `json:"impressions"`
	Clicks         int     `json:"clicks"`
	CTR            float64 `json:"ctr"`
	Conversions    float64 `json:"conversions"`
	ConversionRate float64 `json:"conversion_rate"`
	Cost           float64 `json:"cost"`
}

type WeeklyMetric struct {
	WeekStart   time.Time `json:"week_start"`
	Impressions int       `json:"impressions"`
	Clicks      int       `json:"clicks"`
	CTR         float64   `json:"ctr"`
}

// Ad é um snapshot somente leitura de um anúncio responsivo de pesquisa
type Ad struct {
	ID             string         `json:"id"`
	CampaignID     string         `json:"campaign_id"`
	CampaignName   string         `json:"campaign_name"`
	AdGroupID      string         `json:"ad_group_id"`
	AdGroupName    string         `json:"ad_group_name"`
	Assets         []Asset        `json:"assets"`
	Paths          []string       `json:"paths"`
	AdStrength     AdStrength     `json:"ad_strength"`
	PolicyIssues   []string       `json:"policy_issues"`
	Metrics        AdMetrics      `json:"metrics"`
	LastEditedAt   *time.Time     `json:"last_edited_at"`
	WeeklyTrend    []WeeklyMetric `json:"weekly_trend"`
	AdGroupAdCount int            `json:"ad_group_ad_count"`
}

// AssetsOfType retorna os assets ativos de um tipo, na ordem original
func (a *Ad) AssetsOfType(t AssetType) []Asset {
	assets := make([]Asset, 0, len(a.Assets))
	for _, asset := range a.Assets {
		if asset.Type == t && asset.IsEnabled() {
			assets = append(assets, asset)
		}
	}
	return assets
}

func (a *Ad) FindAsset(id string) (Asset, bool) {
	for _, asset := range a.Assets {
		if asset.ID == id {
			return asset, true
		}
	}
	return Asset{}, false
}

// DaysSinceEdit retorna -1 quando não há data de edição
func (a *Ad) DaysSinceEdit(now time.Time) int {
	if a.LastEditedAt == nil || a.LastEditedAt.IsZero() {
		return -1
	}
	return int(now.Sub(*a.LastEditedAt).Hours() / 24)
}
