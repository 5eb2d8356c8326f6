package services

// Verdict is the flagging decision for one text. Immutable once produced.
type Verdict struct {
	Probabilities ScoreSet `json:"probabilities"`
	Flagged       bool     `json:"flagged"`
	MaxLabel      string   `json:"maxLabel"`
	MaxScore      float64  `json:"maxScore"`
}

// Decide converts raw category scores into a verdict. A text is flagged as
// soon as any single label's score reaches its threshold. The top label is
// the strictly highest score; exact ties keep the label scanned first, so
// canonical order breaks ties (an all-zero score set reports the first
// canonical label with score 0 rather than an empty label).
//
// Pure and total: missing labels in either map count as score 0 and the
// system default threshold respectively.
func Decide(scores ScoreSet, thresholds ThresholdSet) Verdict {
	probs := make(ScoreSet, len(Labels))

	flagged := false
	maxLabel := Labels[0]
	maxScore := scores[Labels[0]]

	for _, label := range Labels {
		score := scores[label]
		probs[label] = score

		threshold, ok := thresholds[label]
		if !ok {
			threshold = DefaultThresholds[label]
		}
		if score >= threshold {
			flagged = true
		}
		if score > maxScore {
			maxLabel = label
			maxScore = score
		}
	}

	return Verdict{
		Probabilities: probs,
		Flagged:       flagged,
		MaxLabel:      maxLabel,
		MaxScore:      maxScore,
	}
}
