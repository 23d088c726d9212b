package feed

import (
	"testing"
)

func TestRunClassifies(t *testing.T) {
	classifier := NewClassifier()

	tests := []struct {
		name     string
		text     string
		expected Sentiment
	}{
		{"bullish launch", "Acme launches new platform", SentimentBullish},
		{"bullish raise stem", "Acme raised a $20M round", SentimentBullish},
		{"bearish breach", "Data breach hits Acme users", SentimentBearish},
		{"bearish layoffs", "Acme announces layoffs", SentimentBearish},
		{"case insensitive", "ACME PARTNERS WITH MEGACORP", SentimentBullish},
		{"neutral", "Acme mentioned in quarterly report", SentimentNeutral},
		{"empty text", "", SentimentNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifier.Run(tt.text); got != tt.expected {
				t.Errorf("Run(%q) = %s, want %s", tt.text, got, tt.expected)
			}
		})
	}
}

func TestRunBullishPrecedence(t *testing.T) {
	classifier := NewClassifier()

	// Contains both a bullish and a bearish keyword; bullish wins
	got := classifier.Run("Acme launches response to security breach")
	if got != SentimentBullish {
		t.Errorf("Expected bullish precedence, got: %s", got)
	}
}
