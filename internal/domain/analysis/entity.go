package analysis

// Result is one coherent snapshot of a document analysis. It is replaced as a
// whole on every new upload and never patched field by field.
type Result struct {
	RiskScore   int      `json:"riskScore"`
	PIICount    int      `json:"piiDetected"`
	ClauseCount int      `json:"clauses"`
	Language    string   `json:"language"`
	Issues      []string `json:"issues"`
	Summary     string   `json:"summary,omitempty"`
}

// Clone returns a deep copy so callers can't mutate a shared snapshot.
func (r Result) Clone() Result {
	out := r
	if r.Issues != nil {
		out.Issues = append(make([]string, 0, len(r.Issues)), r.Issues...)
	}
	return out
}

// Tier is the coarse risk classification derived from a score.
type Tier string

const (
	TierLow    Tier = "Low"
	TierMedium Tier = "Medium"
	TierHigh   Tier = "High"
)

func (t Tier) String() string { return string(t) }

// Score thresholds. The score is a safety score: higher means safer.
const (
	lowRiskFloor    = 80
	mediumRiskFloor = 60
)

// Classify maps a score to its tier. Total over all ints: anything below the
// medium floor, negatives included, is High.
func Classify(score int) Tier {
	switch {
	case score >= lowRiskFloor:
		return TierLow
	case score >= mediumRiskFloor:
		return TierMedium
	default:
		return TierHigh
	}
}

// Tier is a convenience for Classify(r.RiskScore).
func (r Result) Tier() Tier { return Classify(r.RiskScore) }
