package services

// Labels is the canonical category enumeration. The order matters: ties on
// the top score resolve to the earliest label in this slice.
var Labels = []string{
	"toxic",
	"severe_toxic",
	"obscene",
	"threat",
	"insult",
	"identity_hate",
}

// DefaultThresholds are the system-wide trigger values used for any label a
// user has not overridden. Threat-like categories trigger at lower scores.
var DefaultThresholds = map[string]float64{
	"toxic":         0.5,
	"severe_toxic":  0.4,
	"obscene":       0.5,
	"threat":        0.6,
	"insult":        0.5,
	"identity_hate": 0.4,
}

// ScoreSet maps each label to a classifier confidence in [0,1].
type ScoreSet map[string]float64

// ThresholdSet maps each label to its trigger value in [0,1]. A resolved set
// always carries every canonical label.
type ThresholdSet map[string]float64

// ValidLabel reports whether l is one of the canonical category labels.
func ValidLabel(l string) bool {
	for _, label := range Labels {
		if l == label {
			return true
		}
	}
	return false
}
