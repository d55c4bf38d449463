// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package inquiry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/tradedesk/pkg/types"
)

func TestExtractIdentifiers(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		trades   []string
		accounts []string
	}{
		{
			name:     "prefixed codes upper-cased",
			text:     "trd123456 and TXN-0001234 plus txn_55555",
			trades:   []string{"TRD123456", "TXN-0001234", "TXN_55555"},
			accounts: []string{},
		},
		{
			name:     "trade phrase forms",
			text:     "Trade ID: 1234567, trade #7654321 and trade number 99999",
			trades:   []string{"1234567", "7654321", "99999"},
			accounts: []string{},
		},
		{
			name:     "account forms",
			text:     "ACCT12345, acc-67890 and Account number: 4321",
			trades:   []string{},
			accounts: []string{"4321", "ACC-67890", "ACCT12345"},
		},
		{
			name:     "bare hash is a trade",
			text:     "see #24680 please",
			trades:   []string{"24680"},
			accounts: []string{},
		},
		{
			name:     "bare hash yields to account phrase",
			text:     "account #135790 looks wrong",
			trades:   []string{},
			accounts: []string{"135790"},
		},
		{
			name:     "typed trade kept even when also an account",
			text:     "trade 123456 on account: 123456",
			trades:   []string{"123456"},
			accounts: []string{"123456"},
		},
		{
			name:     "duplicates collapse",
			text:     "TRD123456 TRD123456 trd123456",
			trades:   []string{"TRD123456"},
			accounts: []string{},
		},
		{
			name:     "too short",
			text:     "TRD1234 and #1234",
			trades:   []string{},
			accounts: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trades, accounts := ExtractIdentifiers(tt.text)
			assert.Equal(t, tt.trades, trades)
			assert.Equal(t, tt.accounts, accounts)
		})
	}
}

func TestResolvePeriod(t *testing.T) {
	tests := []struct {
		text string
		want *types.TimePeriod
	}{
		{"anything from the past week", &types.TimePeriod{Kind: types.PeriodRelative, Value: types.PeriodLastWeek}},
		{"Last Month totals", &types.TimePeriod{Kind: types.PeriodRelative, Value: types.PeriodLastMonth}},
		{"it broke yesterday", &types.TimePeriod{Kind: types.PeriodRelative, Value: types.PeriodYesterday}},
		{"this morning's run", &types.TimePeriod{Kind: types.PeriodRelative, Value: types.PeriodToday}},
		{"over the past 7 days", &types.TimePeriod{Kind: types.PeriodRelative, Value: types.PeriodLast7Days}},
		{"in the last 30 days", &types.TimePeriod{Kind: types.PeriodRelative, Value: types.PeriodLast30Days}},
		{"on 2024-03-15 and yesterday", &types.TimePeriod{Kind: types.PeriodRelative, Value: types.PeriodYesterday}},
		{"trades on 03/15/2024", &types.TimePeriod{Kind: types.PeriodDate, Value: "03/15/2024"}},
		{"trades on 2024-03-15", &types.TimePeriod{Kind: types.PeriodDate, Value: "2024-03-15"}},
		{"booked March 15, 2024", &types.TimePeriod{Kind: types.PeriodDate, Value: "March 15, 2024"}},
		{"booked 15th of March", &types.TimePeriod{Kind: types.PeriodDate, Value: "15th of March"}},
		{"2024-03-15 then 1/2/24", &types.TimePeriod{Kind: types.PeriodDate, Value: "1/2/24"}},
		{"no dates here", nil},
		{"the top 5 may help", nil},
		{"settled on the 5th May", &types.TimePeriod{Kind: types.PeriodDate, Value: "5th May"}},
		{"booked 5 may 2024", &types.TimePeriod{Kind: types.PeriodDate, Value: "5 may 2024"}},
		{"booked 3 June", &types.TimePeriod{Kind: types.PeriodDate, Value: "3 June"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolvePeriod(tt.text), tt.text)
	}
}
