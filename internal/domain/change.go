package domain

import "time"

type ChangeOp string

const (
	OpAddAsset    ChangeOp = "ADD_ASSET"
	OpUpdateAsset ChangeOp = "UPDATE_ASSET"
	OpPauseAsset  ChangeOp = "PAUSE_ASSET"
	OpPauseAd     ChangeOp = "PAUSE_AD"
	OpSetPaths    ChangeOp = "SET_PATHS"
	OpPin         ChangeOp = "PIN"
	OpUnpin       ChangeOp = "UNPIN"
)

// Change é uma proposta de mutação autodescritiva, nunca aplicada pelo núcleo
type Change struct {
	ID          string    `json:"id"`
	Op          ChangeOp  `json:"op"`
	AdID        string    `json:"ad_id"`
	AdGroupID   string    `json:"ad_group_id,omitempty"`
	CampaignID  string    `json:"campaign_id,omitempty"`
	AssetID     string    `json:"asset_id,omitempty"`
	AssetType   AssetType `json:"asset_type,omitempty"`
	Text        string    `json:"text,omitempty"`
	CharCount   int       `json:"char_count,omitempty"`
	Paths       []string  `json:"paths,omitempty"`
	PinnedField string    `json:"pinned_field,omitempty"`
	RuleCode    string    `json:"rule_code"`
	Explanation string    `json:"explanation"`
}

type ValidationProblem struct {
	ChangeID string `json:"change_id"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Blocking bool   `json:"blocking"`
}

// SplitProblems separa problemas bloqueantes de consultivos
func SplitProblems(problems []ValidationProblem) (blocking, advisory []ValidationProblem) {
	blocking = make([]ValidationProblem, 0)
	advisory = make([]ValidationProblem, 0)
	for _, p := range problems {
		if p.Blocking {
			blocking = append(blocking, p)
		} else {
			advisory = append(advisory, p)
		}
	}
	return blocking, advisory
}

// CooldownKey identifica uma remediação executada recentemente
type CooldownKey struct {
	AdID     string `json:"ad_id"`
	RuleCode string `json:"rule_code"`
	AssetID  string `json:"asset_id"`
}

type CooldownEntry struct {
	Key        CooldownKey `json:"key"`
	ChangeID   string      `json:"change_id"`
	ExecutedAt time.Time   `json:"executed_at"`
	ExpiresAt  time.Time   `json:"expires_at"`
}

// ExclusionSet é o conjunto de chaves em cooldown
type ExclusionSet map[CooldownKey]struct{}

func NewExclusionSet(keys ...CooldownKey) ExclusionSet {
	set := make(ExclusionSet, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

func (s ExclusionSet) Contains(key CooldownKey) bool {
	if s == nil {
		return false
	}
	_, ok := s[key]
	return ok
}
