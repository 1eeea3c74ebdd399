package domain

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarn    Severity = "warn"
	SeveritySuggest Severity = "suggest"
)

// Códigos de regra emitidos pelo auditor
const (
	// Estruturais
	RuleHeadlineTooLong    = "HEADLINE_TOO_LONG"
	RuleDescriptionTooLong = "DESCRIPTION_TOO_LONG"
	RulePathTooLong        = "PATH_TOO_LONG"
	RuleDuplicateAsset     = "DUPLICATE_ASSET"
	RuleNearDuplicateAsset = "NEAR_DUPLICATE_ASSET"
	RulePinStrategy        = "PIN_STRATEGY"
	RuleFormatting         = "FORMATTING"
	RuleMissingPaths       = "MISSING_PATHS"

	// Compliance
	RulePolicyClaimError    = "POLICY_CLAIM_ERROR"
	RulePolicyClaimWarn     = "POLICY_CLAIM_WARN"
	RuleForbiddenVerbObject = "FORBIDDEN_VERB_OBJECT"
	RulePolicyDisapproved   = "POLICY_DISAPPROVED"

	// Cobertura e relevância
	RuleInsufficientHeadlines    = "INSUFFICIENT_HEADLINES"
	RuleInsufficientDescriptions = "INSUFFICIENT_DESCRIPTIONS"
	RuleQueryEchoMissing         = "QUERY_ECHO_MISSING"
	RuleUnderperformingNgram     = "UNDERPERFORMING_NGRAM"

	// Performance
	RuleLowCTR               = "LOW_CTR"
	RuleLowConversionRate    = "LOW_CONVERSION_RATE"
	RuleWastedSpend          = "WASTED_SPEND"
	RuleSustainedWastedSpend = "SUSTAINED_WASTED_SPEND"
	RuleAssetNeverServed     = "ASSET_NEVER_SERVED"

	// Frescor e fadiga
	RuleStaleAd              = "STALE_AD"
	RuleCTRDecline           = "CTR_DECLINE"
	RuleMissingVariant       = "MISSING_VARIANT"
	RuleLowServeShare        = "LOW_SERVE_SHARE"
	RuleDeadAsset            = "DEAD_ASSET"
	RuleExpiredDateReference = "EXPIRED_DATE_REFERENCE"

	// Geo
	RuleMissingLocation = "MISSING_LOCATION"
)

// Finding representa uma violação ou observação de uma regra sobre um anúncio ou asset
type Finding struct {
	Code     string   `json:"code"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	AssetID  string   `json:"asset_id,omitempty"`
	Observed string   `json:"observed,omitempty"`
	Expected string   `json:"expected,omitempty"`
}

// CountBySeverity conta findings de uma severidade
func CountBySeverity(findings []Finding, severity Severity) int {
	count := 0
	for _, f := range findings {
		if f.Severity == severity {
			count++
		}
	}
	return count
}
