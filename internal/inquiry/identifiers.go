// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package inquiry

import (
	"regexp"
	"sort"
	"strings"
)

// idPattern is one identifier shape. group selects the capture holding the
// identifier; group 0 means the whole match is a prefixed code, which is
// upper-cased. bare marks the "#NNNNN" form, which carries no type of its
// own.
type idPattern struct {
	re    *regexp.Regexp
	group int
	bare  bool
}

var (
	tradePatterns = []idPattern{
		{re: regexp.MustCompile(`(?i)\bTRD[-_]?\d{5,10}\b`)},
		{re: regexp.MustCompile(`(?i)\bTXN[-_]?\d{5,10}\b`)},
		{re: regexp.MustCompile(`(?i)\btrade\s*(?:id|#|no\.?|number)?\s*[:#]?\s*(\d{5,10})\b`), group: 1},
		{re: regexp.MustCompile(`#(\d{5,10})\b`), group: 1, bare: true},
	}

	accountPatterns = []idPattern{
		{re: regexp.MustCompile(`(?i)\bACCT?[-_]?\d{5,10}\b`)},
		{re: regexp.MustCompile(`(?i)\baccount(?:\s+(?:id|number|no\.?))?\s*[:#]\s*(\d{4,12})\b`), group: 1},
	}
)

func (p idPattern) find(text string, into map[string]bool) {
	for _, m := range p.re.FindAllStringSubmatch(text, -1) {
		v := m[p.group]
		if p.group == 0 {
			v = strings.ToUpper(v)
		}
		into[v] = true
	}
}

// ExtractIdentifiers returns the trade and account identifiers mentioned
// in text, deduplicated and sorted. A value found only by the bare "#"
// form is treated as an account identifier when an account pattern also
// matched it, and is dropped from the trade set.
func ExtractIdentifiers(text string) (trades, accounts []string) {
	typed := map[string]bool{}
	bare := map[string]bool{}
	for _, p := range tradePatterns {
		if p.bare {
			p.find(text, bare)
			continue
		}
		p.find(text, typed)
	}

	acct := map[string]bool{}
	for _, p := range accountPatterns {
		p.find(text, acct)
	}

	for v := range bare {
		if !acct[v] {
			typed[v] = true
		}
	}
	return sortedKeys(typed), sortedKeys(acct)
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
