package classifying

import "github.com/vfg2006/rsa-auditor-api/internal/domain"

// entry descreve como um código de regra vira um issue; metric, benchmark e fix são templates Liquid
type entry struct {
	category  domain.IssueCategory
	issueType string
	metric    string
	benchmark string
	fix       string
}

// classificationTable cobre todas as famílias de regra; POLICY_DISAPPROVED fica de fora de propósito
func classificationTable() map[string]entry {
	return map[string]entry{
		domain.RuleHeadlineTooLong: {
			category:  domain.CategoryRelevance,
			issueType: "Headline too long",
			metric:    "{{ observed }}",
			benchmark: "{{ expected }}",
			fix:       "Shorten the headline so it fits in 30 characters",
		},
		domain.RuleDescriptionTooLong: {
			category:  domain.CategoryRelevance,
			issueType: "Description too long",
			metric:    "{{ observed }}",
			benchmark: "{{ expected }}",
			fix:       "Shorten the description so it fits in 90 characters",
		},
		domain.RulePathTooLong: {
			category:  domain.CategoryRelevance,
			issueType: "Display path too long",
			metric:    "{{ observed }}",
			benchmark: "{{ expected }}",
			fix:       "Use a shorter display path",
		},
		domain.RuleDuplicateAsset: {
			category:  domain.CategoryVariation,
			issueType: "Duplicate asset",
			metric:    "{{ observed }}",
			benchmark: "{{ expected }}",
			fix:       "Pause the duplicate and add a distinct message",
		},
		domain.RuleNearDuplicateAsset: {
			category:  domain.CategoryVariation,
			issueType: "Near-duplicate asset",
			metric:    "{{ observed }}",
			benchmark: "{{ expected }}",
			fix:       "Rewrite the asset around a different benefit or offer",
		},
		domain.RulePinStrategy: {
			category:  domain.CategoryVariation,
			issueType: "Restrictive pinning",
			metric:    "{{ observed }}",
			benchmark: "{{ expected }}",
			fix:       "Unpin assets so the platform can test combinations",
		},
		domain.RuleFormatting: {
			category:  domain.CategoryRelevance,
			issueType: "Formatting issue",
			metric:    "{{ observed }}",
			benchmark: "{{ expected }}",
			fix:       "Rewrite in title case without repeated punctuation",
		},
		domain.RuleMissingPaths: {
			category:  domain.CategoryRelevance,
			issueType: "Missing display paths",
			metric:    "{{ observed }}",
			benchmark: "{{ expected }}",
			fix:       "Add display paths that mirror the landing page",
		},
		domain.RulePolicyClaimError: {
			category:  domain.CategoryProof,
			issueType: "Prohibited claim",
			metric:    `"{{ observed }}"`,
			benchmark: "{{ expected }}",
			fix:       `Replace "{{ observed }}" with "{{ expected }}"`,
		},
		domain.RulePolicyClaimWarn: {
			category:  domain.CategoryProof,
			issueType: "Unsubstantiated claim",
			metric:    `"{{ observed }}"`,
			benchmark: "{{ expected }}",
			fix:       `Back up "{{ observed }}" or use "{{ expected }}"`,
		},
		domain.RuleForbiddenVerbObject: {
			category:  domain.CategoryProof,
			issueType: "Restricted call to action",
			metric:    `"{{ observed }}"`,
			benchmark: "{{ expected }}",
			fix:       "Lead with a compliant action such as booking or starting a consultation",
		},
		domain.RuleInsufficientHeadlines: {
			category:  domain.CategoryVariation,
			issueType: "Too few headlines",
			metric:    "{{ observed }}",
			benchmark: "{{ expected }}",
			fix:       "Add headlines that cover offer, proof and location",
		},
		domain.RuleInsufficientDescriptions: {
			category:  domain.CategoryVariation,
			issueType: "Too few descriptions",
			metric:    "{{ observed }}",
			benchmark: "{{ expected }}",
			fix:       "Add descriptions following pain, solution, offer and call to action",
		},
		domain.RuleQueryEchoMissing: {
			category:  domain.CategoryRelevance,
			issueType: "Query not echoed",
			metric:    "{{ observed }}",
			benchmark: "{{ expected }}",
			fix:       "Add a headline that repeats the top search term",
		},
		domain.RuleUnderperformingNgram: {
			category:  domain.CategoryCTR,
			issueType: "Underperforming phrase",
			metric:    `"{{ observed }}"`,
			benchmark: "{{ expected }}",
			fix:       `Test alternatives to "{{ observed }}"`,
		},
		domain.RuleLowCTR: {
			category:  domain.CategoryCTR,
			issueType: "Low CTR",
			metric:    "CTR {{ observed }}",
			benchmark: "CTR {{ expected }}",
			fix:       "Lead with the keyword and a clear benefit",
		},
		domain.RuleLowConversionRate: {
			category:  domain.CategoryOffer,
			issueType: "Low conversion rate",
			metric:    "CVR {{ observed }}",
			benchmark: "CVR {{ expected }}",
			fix:       "Make the offer and next step explicit",
		},
		domain.RuleWastedSpend: {
			category:  domain.CategoryOffer,
			issueType: "Spend without conversions",
			metric:    "{{ observed }}",
			benchmark: "{{ expected }}",
			fix:       "Test a stronger offer before spending more",
		},
		domain.RuleSustainedWastedSpend: {
			category:  domain.CategoryOffer,
			issueType: "Sustained spend without conversions",
			metric:    "{{ observed }}",
			benchmark: "{{ expected }}",
			fix:       "Pause the ad and rebuild the offer",
		},
		domain.RuleAssetNeverServed: {
			category:  domain.CategoryVariation,
			issueType: "Asset never served",
			metric:    "{{ observed }}",
			benchmark: "{{ expected }}",
			fix:       "Replace the asset with a new angle",
		},
		domain.RuleStaleAd: {
			category:  domain.CategoryVariation,
			issueType: "Stale creative",
			metric:    "{{ observed }} since last edit",
			benchmark: "{{ expected }}",
			fix:       "Add fresh headlines to restart learning",
		},
		domain.RuleCTRDecline: {
			category:  domain.CategoryCTR,
			issueType: "Declining CTR",
			metric:    "{{ observed }}",
			benchmark: "{{ expected }}",
			fix:       "Refresh headlines to counter creative fatigue",
		},
		domain.RuleMissingVariant: {
			category:  domain.CategoryVariation,
			issueType: "No ad variant",
			metric:    "{{ observed }}",
			benchmark: "{{ expected }}",
			fix:       "Add a second ad to the ad group to test against",
		},
		domain.RuleLowServeShare: {
			category:  domain.CategoryVariation,
			issueType: "Rarely served asset",
			metric:    "serve share {{ observed }}",
			benchmark: "serve share {{ expected }}",
			fix:       "Replace the asset with a stronger variant",
		},
		domain.RuleDeadAsset: {
			category:  domain.CategoryVariation,
			issueType: "Dead asset",
			metric:    "{{ observed }}",
			benchmark: "{{ expected }}",
			fix:       "Pause the asset and add a new variant",
		},
		domain.RuleExpiredDateReference: {
			category:  domain.CategoryOffer,
			issueType: "Expired offer",
			metric:    `"{{ observed }}"`,
			benchmark: "{{ expected }}",
			fix:       "Pause the asset and promote a current offer",
		},
		domain.RuleMissingLocation: {
			category:  domain.CategoryLocal,
			issueType: "Missing location",
			metric:    "{{ observed }}",
			benchmark: "{{ expected }}",
			fix:       "Add a headline that names the city or service area",
		},
	}
}
