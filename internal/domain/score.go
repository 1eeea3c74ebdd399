package domain

const SubScoreMax = 25

type Grade string

const (
	GradeExcellent Grade = "Excellent"
	GradeGood      Grade = "Good"
	GradeFair      Grade = "Fair"
	GradePoor      Grade = "Poor"
)

type Score struct {
	Coverage    int   `json:"coverage"`
	Diversity   int   `json:"diversity"`
	Compliance  int   `json:"compliance"`
	Performance int   `json:"performance"`
	Total       int   `json:"total"`
	Grade       Grade `json:"grade"`
}

// GradeFor converte o total em uma nota
func GradeFor(total int) Grade {
	switch {
	case total >= 85:
		return GradeExcellent
	case total >= 70:
		return GradeGood
	case total >= 50:
		return GradeFair
	default:
		return GradePoor
	}
}

type IssueCategory string

const (
	CategoryCTR       IssueCategory = "CTR"
	CategoryRelevance IssueCategory = "Relevance"
	CategoryOffer     IssueCategory = "Offer"
	CategoryProof     IssueCategory = "Proof"
	CategoryVariation IssueCategory = "Variation"
	CategoryLocal     IssueCategory = "Local"
)

type ClassifiedIssue struct {
	Category   IssueCategory `json:"category"`
	Type       string        `json:"type"`
	Metric     string        `json:"metric"`
	Benchmark  string        `json:"benchmark"`
	Fix        string        `json:"fix"`
	SourceRule string        `json:"source_rule"`
	Severity   Severity      `json:"severity"`
	AssetID    string        `json:"asset_id,omitempty"`
}

type PriorityTier string

const (
	PriorityHigh   PriorityTier = "High"
	PriorityMedium PriorityTier = "Medium"
	PriorityLow    PriorityTier = "Low"
)

type PriorityScore struct {
	Score   int          `json:"score"`
	Tier    PriorityTier `json:"tier"`
	Reasons []string     `json:"reasons"`
}
