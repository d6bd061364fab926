package analyzer

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// merchantPrefixes are transaction-processor boilerplate prefixes stripped
// before extracting a merchant name. Only the first matching prefix is
// removed.
var merchantPrefixes = []string{
	"purchase ",
	"payment to ",
	"pos purchase ",
	"debit card purchase ",
}

var titleCaser = cases.Title(language.English)

// ExtractMerchant derives a display merchant name from a transaction
// description: strip a known prefix case-insensitively, keep the first up to
// three whitespace-separated tokens, and title-case the result. When nothing
// remains after stripping, the original description is returned unmodified.
func ExtractMerchant(description string) string {
	remainder := description
	lower := strings.ToLower(description)
	for _, prefix := range merchantPrefixes {
		if strings.HasPrefix(lower, prefix) {
			remainder = description[len(prefix):]
			break
		}
	}

	tokens := strings.Fields(remainder)
	if len(tokens) == 0 {
		return description
	}
	if len(tokens) > 3 {
		tokens = tokens[:3]
	}
	return titleCaser.String(strings.Join(tokens, " "))
}
