package auditing

// Thresholds concentra os limites numéricos das regras
type Thresholds struct {
	MinHeadlines    int
	MinDescriptions int

	NearDuplicateJaccard float64
	MaxPinnedShare       float64

	QueryEchoTerms int

	NgramMinAssets      int
	NgramCTRRatio       float64
	NgramMinImpressions int

	LowCTRMinImpressions     int
	LowCTRMinClicks          int
	LowCVRMinImpressions     int
	LowCVRMinClicks          int
	WastedSpendClicks        int
	SustainedWastedClicks    int
	SustainedWastedCost      float64
	NeverServedAdImpressions int

	StaleDays                int
	DeclineWeeks             int
	DeclineMinImpressions    int
	MinAdsPerGroup           int
	LowServeShare            float64
	LowServeShareImpressions int
	DeadAssetDays            int
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		MinHeadlines:    8,
		MinDescriptions: 3,

		NearDuplicateJaccard: 0.8,
		MaxPinnedShare:       0.5,

		QueryEchoTerms: 5,

		NgramMinAssets:      2,
		NgramCTRRatio:       0.5,
		NgramMinImpressions: 200,

		LowCTRMinImpressions:     1000,
		LowCTRMinClicks:          1,
		LowCVRMinImpressions:     1000,
		LowCVRMinClicks:          50,
		WastedSpendClicks:        100,
		SustainedWastedClicks:    250,
		SustainedWastedCost:      500,
		NeverServedAdImpressions: 1000,

		StaleDays:                30,
		DeclineWeeks:             3,
		DeclineMinImpressions:    200,
		MinAdsPerGroup:           2,
		LowServeShare:            0.05,
		LowServeShareImpressions: 1000,
		DeadAssetDays:            30,
	}
}
