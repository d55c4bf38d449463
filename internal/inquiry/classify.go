// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package inquiry classifies support emails into structured requests using
// ordered lexical rule tables. Every function is pure: the same text always
// yields the same result.
package inquiry

import (
	"strings"

	"github.com/pdiddy/tradedesk/pkg/types"
)

func containsAny(lower string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// ClassifyIntent returns the first intent, in rule order, with a phrase
// present in text. It falls back to general_inquiry.
func ClassifyIntent(text string) types.IntentCategory {
	lower := strings.ToLower(text)
	for _, r := range intentRules {
		if containsAny(lower, r.phrases) {
			return r.intent
		}
	}
	return types.IntentGeneralInquiry
}

// ClassifyPriority returns high when any high-urgency phrase is present,
// low when only a low-urgency phrase is present, and medium otherwise.
func ClassifyPriority(text string) types.Priority {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, highUrgency):
		return types.PriorityHigh
	case containsAny(lower, lowUrgency):
		return types.PriorityLow
	default:
		return types.PriorityMedium
	}
}

// ActionsFor returns the recommended actions for intent. Unmapped intents
// get the general list.
func ActionsFor(intent types.IntentCategory) []string {
	actions, ok := intentActions[intent]
	if !ok {
		actions = generalActions
	}
	return append([]string(nil), actions...)
}

// Classify runs every classification step over text.
func Classify(text string) types.InquiryResult {
	trades, accounts := ExtractIdentifiers(text)
	intent := ClassifyIntent(text)
	return types.InquiryResult{
		Intent:     intent,
		TradeIDs:   trades,
		AccountIDs: accounts,
		TimePeriod: ResolvePeriod(text),
		Priority:   ClassifyPriority(text),
		Actions:    ActionsFor(intent),
	}
}
