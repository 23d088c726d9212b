package feed

import (
	"strings"
)

// Keyword stems, matched case-insensitively as substrings. Stems rather
// than words so "raised"/"raising" and "expansion"/"expanded" both hit.
var (
	bullishStems = []string{
		"partner", "launch", "rais", "fund", "grow", "expan",
		"milestone", "award", "integrat", "adopt", "secur", "approv", "list",
	}
	bearishStems = []string{
		"hack", "breach", "exploit", "fine", "lawsuit", "shutdown",
		"shut down", "crash", "layoff", "delay", "vulner", "suspend",
	}
)

// Classifier assigns a coarse sentiment label from fixed keyword sets.
// The bullish set is checked first and wins when both sets match; this
// is a documented precedence, not a scored decision. The label is a
// heuristic, not an authoritative classification.
type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

func (c *Classifier) Run(text string) Sentiment {
	lowered := strings.ToLower(text)

	for _, stem := range bullishStems {
		if strings.Contains(lowered, stem) {
			return SentimentBullish
		}
	}
	for _, stem := range bearishStems {
		if strings.Contains(lowered, stem) {
			return SentimentBearish
		}
	}
	return SentimentNeutral
}
