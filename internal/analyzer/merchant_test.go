package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractMerchant(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain description", "starbucks", "Starbucks"},
		{"truncates to three tokens", "whole foods market union square", "Whole Foods Market"},
		{"strips purchase prefix", "PURCHASE star coffee", "Star Coffee"},
		{"strips payment to prefix", "Payment to City Power & Light", "City Power &"},
		{"strips pos purchase prefix", "POS PURCHASE shell station 44", "Shell Station 44"},
		{"strips debit card prefix", "debit card purchase amazon.com", "Amazon.com"},
		{"empty remainder falls back", "purchase ", "purchase "},
		{"whitespace only", "   ", "   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractMerchant(tt.input))
		})
	}
}

func TestExtractMerchantStripsOnlyFirstPrefix(t *testing.T) {
	// "purchase " wins before "pos purchase " can be considered, and the
	// stripping happens exactly once.
	assert.Equal(t, "Pos Purchase Shell", ExtractMerchant("purchase pos purchase shell"))
}
