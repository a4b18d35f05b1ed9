package scoring

// Heuristic constants of the scoring policy. The aggregate weights must stay
// as they are for results to be comparable with previously stored analyses.
const (
	DefaultMatchThreshold   = 0.30
	DefaultSubstringFloor   = 0.80
	DefaultTopKFraction     = 0.6
	DefaultHitRateWeight    = 0.6
	DefaultSimilarityWeight = 0.4

	DefaultCoverageWeight = 0.6
	DefaultFillerWeight   = 0.2
	DefaultPaceWeight     = 0.2

	DefaultFillerPenaltyCap = 10
	DefaultTargetWPM        = 150.0

	DefaultCoverageTipBelow = 0.6
	DefaultFillerTipAbove   = 4
	DefaultSlowWPM          = 110.0
	DefaultFastWPM          = 170.0
	DefaultBandLowWPM       = 130
	DefaultBandHighWPM      = 160

	MaxMissingInTip = 3
)

// Policy groups the tunable scoring constants.
type Policy struct {
	MatchThreshold   float64
	SubstringFloor   float64
	TopKFraction     float64
	HitRateWeight    float64
	SimilarityWeight float64

	CoverageWeight float64
	FillerWeight   float64
	PaceWeight     float64

	FillerPenaltyCap int
	TargetWPM        float64

	CoverageTipBelow float64
	FillerTipAbove   int
	SlowWPM          float64
	FastWPM          float64
	BandLowWPM       int
	BandHighWPM      int
}

func DefaultPolicy() Policy {
	return Policy{
		MatchThreshold:   DefaultMatchThreshold,
		SubstringFloor:   DefaultSubstringFloor,
		TopKFraction:     DefaultTopKFraction,
		HitRateWeight:    DefaultHitRateWeight,
		SimilarityWeight: DefaultSimilarityWeight,
		CoverageWeight:   DefaultCoverageWeight,
		FillerWeight:     DefaultFillerWeight,
		PaceWeight:       DefaultPaceWeight,
		FillerPenaltyCap: DefaultFillerPenaltyCap,
		TargetWPM:        DefaultTargetWPM,
		CoverageTipBelow: DefaultCoverageTipBelow,
		FillerTipAbove:   DefaultFillerTipAbove,
		SlowWPM:          DefaultSlowWPM,
		FastWPM:          DefaultFastWPM,
		BandLowWPM:       DefaultBandLowWPM,
		BandHighWPM:      DefaultBandHighWPM,
	}
}
