// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package inquiry

import (
	"regexp"
	"strings"

	"github.com/pdiddy/tradedesk/pkg/types"
)

const (
	monthNames      = `(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)`
	monthNamesNoMay = `(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)`
)

// datePatterns are tried in order; the first pattern with a match decides
// the literal date. In the day-first form "may" is also a verb ("the top
// 5 may help"), so it needs an ordinal suffix or a year to count.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`),
	regexp.MustCompile(`\b\d{4}[/-]\d{1,2}[/-]\d{1,2}\b`),
	regexp.MustCompile(`(?i)\b` + monthNames + `\.?\s+\d{1,2}(?:st|nd|rd|th)?(?:,?\s+\d{4})?\b`),
	regexp.MustCompile(`(?i)\b\d{1,2}(?:st|nd|rd|th)?\s+(?:of\s+)?` + monthNamesNoMay + `(?:,?\s+\d{4})?\b`),
	regexp.MustCompile(`(?i)\b(?:\d{1,2}(?:st|nd|rd|th)\s+(?:of\s+)?may(?:,?\s+\d{4})?|\d{1,2}\s+(?:of\s+)?may,?\s+\d{4})\b`),
}

// ResolvePeriod returns the period of interest named in text, or nil.
// Relative phrases always win over literal dates.
func ResolvePeriod(text string) *types.TimePeriod {
	lower := strings.ToLower(text)
	for _, r := range periodRules {
		if containsAny(lower, r.phrases) {
			return &types.TimePeriod{Kind: types.PeriodRelative, Value: r.token}
		}
	}
	for _, re := range datePatterns {
		if m := re.FindString(text); m != "" {
			return &types.TimePeriod{Kind: types.PeriodDate, Value: strings.TrimSpace(m)}
		}
	}
	return nil
}
