package domain

import "time"

// BatchRequest é a entrada de uma auditoria em lote
type BatchRequest struct {
	AccountName string        `json:"account_name"`
	Vertical    string        `json:"vertical"`
	Keywords    []string      `json:"keywords"`
	SearchTerms []string      `json:"search_terms"`
	Ads         []Ad          `json:"ads"`
	AsOf        *time.Time    `json:"as_of"`
	Exclusions  []CooldownKey `json:"exclusions"`
}

type Optimization struct {
	Issues       []ClassifiedIssue `json:"issues"`
	Headlines    []string          `json:"headlines"`
	Descriptions []string          `json:"descriptions"`
	Priority     PriorityScore     `json:"priority"`
	Degraded     bool              `json:"degraded"`
}

type AdResult struct {
	AdID         string        `json:"ad_id"`
	Vertical     string        `json:"vertical"`
	Findings     []Finding     `json:"findings"`
	Score        Score         `json:"score"`
	Optimization *Optimization `json:"optimization,omitempty"`
	RuleErrors   []string      `json:"rule_errors,omitempty"`
}

type BatchSummary struct {
	AdCount            int     `json:"ad_count"`
	TotalFindings      int     `json:"total_findings"`
	TotalChanges       int     `json:"total_changes"`
	TotalOptimizations int     `json:"total_optimizations"`
	AverageScore       float64 `json:"average_score"`
}

type BatchResult struct {
	RunID    string              `json:"run_id,omitempty"`
	Vertical string              `json:"vertical"`
	Ads      []AdResult          `json:"ads"`
	Changes  []Change            `json:"changes"`
	Problems []ValidationProblem `json:"problems"`
	Summary  BatchSummary        `json:"summary"`
}

type RemediationMode string

const (
	ModeDryRun  RemediationMode = "dry_run"
	ModeExecute RemediationMode = "execute"
)

// RemediationRequest pede a remediação de um único finding de um anúncio
type RemediationRequest struct {
	Mode        RemediationMode `json:"mode"`
	AccountName string          `json:"account_name"`
	Vertical    string          `json:"vertical"`
	Keywords    []string        `json:"keywords"`
	SearchTerms []string        `json:"search_terms"`
	Ad          Ad              `json:"ad"`
	Finding     Finding         `json:"finding"`
	Changes     []Change        `json:"changes"`
	Exclusions  []CooldownKey   `json:"exclusions"`
	AsOf        *time.Time      `json:"as_of"`
}

type OutcomeStatus string

const (
	OutcomeApplied        OutcomeStatus = "applied"
	OutcomeBlocked        OutcomeStatus = "blocked"
	OutcomeFailed         OutcomeStatus = "failed"
	OutcomeCooldownActive OutcomeStatus = "cooldown_active"
)

type ChangeOutcome struct {
	ChangeID  string        `json:"change_id"`
	Op        ChangeOp      `json:"op"`
	Status    OutcomeStatus `json:"status"`
	CreatedID string        `json:"created_id,omitempty"`
	Error     string        `json:"error,omitempty"`
}

type RemediationResponse struct {
	Mode       RemediationMode     `json:"mode"`
	Changes    []Change            `json:"changes"`
	Blocking   []ValidationProblem `json:"blocking"`
	Advisory   []ValidationProblem `json:"advisory"`
	Outcomes   []ChangeOutcome     `json:"outcomes,omitempty"`
	CreatedIDs []string            `json:"created_ids,omitempty"`
}
