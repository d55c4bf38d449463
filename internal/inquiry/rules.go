// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package inquiry

import "github.com/pdiddy/tradedesk/pkg/types"

// intentRule pairs an intent with the phrases that select it. Rules are
// evaluated in slice order and the first rule with any phrase present in
// the lower-cased text wins.
type intentRule struct {
	intent  types.IntentCategory
	phrases []string
}

var intentRules = []intentRule{
	{types.IntentTradeIssue, []string{
		"trade issue", "trade problem", "failed", "failure", "trade break",
		"rejected", "stuck", "not booked", "missing trade", "error",
	}},
	{types.IntentReportRequest, []string{
		"report", "generate", "extract", "export", "spreadsheet", "csv",
	}},
	{types.IntentDataVerification, []string{
		"verify", "verification", "validate", "confirm", "reconcile",
		"reconciliation", "mismatch", "discrepancy", "does not match", "doesn't match",
	}},
	{types.IntentSettlementInquiry, []string{
		"settlement", "settle", "clearing", "t+1", "t+2", "fail to deliver", "custodian",
	}},
	{types.IntentComplianceCheck, []string{
		"compliance", "regulatory", "surveillance", "alert", "audit", "suspicious",
		"spoofing", "wash trade", "insider", "front running", "layering",
	}},
	{types.IntentPositionInquiry, []string{
		"position", "holdings", "exposure", "balance", "inventory",
	}},
	{types.IntentTransactionHistory, []string{
		"history", "transactions", "activity", "historical", "past trades", "trail",
	}},
}

// Urgency phrases. The high list is checked first, so "not urgent" still
// reads as high.
var (
	highUrgency = []string{
		"urgent", "asap", "immediately", "critical", "emergency",
		"high priority", "right away", "escalat", "time sensitive", "time-sensitive",
	}
	lowUrgency = []string{
		"no rush", "when you can", "when you get a chance", "low priority",
		"whenever", "fyi",
	}
)

// periodRule maps relative-time phrases to a period token, in priority
// order.
type periodRule struct {
	token   string
	phrases []string
}

var periodRules = []periodRule{
	{types.PeriodLastWeek, []string{"last week", "past week"}},
	{types.PeriodLastMonth, []string{"last month", "past month"}},
	{types.PeriodYesterday, []string{"yesterday"}},
	{types.PeriodToday, []string{"today", "this morning"}},
	{types.PeriodLast7Days, []string{"last 7 days", "past 7 days"}},
	{types.PeriodLast30Days, []string{"last 30 days", "past 30 days"}},
}

var intentActions = map[types.IntentCategory][]string{
	types.IntentTradeIssue: {
		"Look up the trade status in the booking system",
		"Search trade processing configs for the failing flow",
		"Check trade history for the affected identifiers",
		"Escalate to trade support if the break is confirmed",
	},
	types.IntentReportRequest: {
		"Search SQL configs matching the requested report",
		"Identify the Java report generator",
		"Run the report for the requested period",
		"Send the generated report to the requester",
	},
	types.IntentDataVerification: {
		"Locate the reconciliation config",
		"Run the reconciliation report for the period",
		"Compare results against the source system",
	},
	types.IntentSettlementInquiry: {
		"Search settlement configs",
		"Check settlement status for the referenced trades",
		"Generate a settlement report if needed",
	},
	types.IntentComplianceCheck: {
		"Search compliance check configs",
		"Review surveillance alerts for the referenced accounts",
		"Generate a compliance report",
	},
	types.IntentPositionInquiry: {
		"Search position configs",
		"Run the position extract for the referenced accounts",
		"Verify positions against the books of record",
	},
	types.IntentTransactionHistory: {
		"Search transaction history configs",
		"Extract transaction history for the period",
		"Summarize account activity for the requester",
	},
}

var generalActions = []string{
	"Search for relevant config files",
	"Check trade history",
	"Generate compliance report",
}
