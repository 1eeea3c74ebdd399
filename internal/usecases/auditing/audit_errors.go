package auditing

import (
	"fmt"
)

// RuleEvaluationError indica que uma regra falhou; as demais continuam sendo avaliadas
type RuleEvaluationError struct {
	Rule string
	AdID string
	Err  error
}

func (e *RuleEvaluationError) Error() string {
	return fmt.Sprintf("rule %s failed for ad %s: %v", e.Rule, e.AdID, e.Err)
}

// Unwrap retorna o erro subjacente
func (e *RuleEvaluationError) Unwrap() error {
	return e.Err
}

func NewRuleEvaluationError(rule, adID string, err error) *RuleEvaluationError {
	return &RuleEvaluationError{Rule: rule, AdID: adID, Err: err}
}
