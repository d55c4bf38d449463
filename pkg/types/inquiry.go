// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// IntentCategory is the classification assigned to an inquiry email.
type IntentCategory string

const (
	IntentTradeIssue         IntentCategory = "trade_issue"
	IntentReportRequest      IntentCategory = "report_request"
	IntentDataVerification   IntentCategory = "data_verification"
	IntentSettlementInquiry  IntentCategory = "settlement_inquiry"
	IntentComplianceCheck    IntentCategory = "compliance_check"
	IntentPositionInquiry    IntentCategory = "position_inquiry"
	IntentTransactionHistory IntentCategory = "transaction_history"
	IntentGeneralInquiry     IntentCategory = "general_inquiry"
)

// Priority is the urgency level assigned to an inquiry email.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// PeriodKind tells whether a TimePeriod is a relative token or a literal
// date string copied from the email.
type PeriodKind string

const (
	PeriodRelative PeriodKind = "relative"
	PeriodDate     PeriodKind = "date"
)

// Relative period tokens.
const (
	PeriodLastWeek   = "last_week"
	PeriodLastMonth  = "last_month"
	PeriodYesterday  = "yesterday"
	PeriodToday      = "today"
	PeriodLast7Days  = "last_7_days"
	PeriodLast30Days = "last_30_days"
)

// TimePeriod is the period of interest mentioned in an inquiry.
type TimePeriod struct {
	Kind  PeriodKind `json:"kind" yaml:"kind"`
	Value string     `json:"value" yaml:"value"`
}

func (p *TimePeriod) String() string {
	if p == nil {
		return ""
	}
	return p.Value
}

// InquiryResult is the structured output of classifying one email.
type InquiryResult struct {
	Intent     IntentCategory `json:"intent" yaml:"intent"`
	TradeIDs   []string       `json:"trade_ids" yaml:"trade_ids"`
	AccountIDs []string       `json:"account_ids" yaml:"account_ids"`

	// TimePeriod is nil when the email names no period.
	TimePeriod *TimePeriod `json:"time_period" yaml:"time_period"`

	Priority Priority `json:"priority" yaml:"priority"`
	Actions  []string `json:"recommended_actions" yaml:"recommended_actions"`
}
