// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/pdiddy/tradedesk/pkg/types"
)

var summaryTmpl = template.Must(template.New("summary").Funcs(template.FuncMap{
	"join": func(s []string) string { return strings.Join(s, ", ") },
}).Parse(`Trade Surveillance Support - Response Summary
==============================================

Inquiry Type: {{.Intent}}
Priority: {{.Priority}}
{{- if .Period}}
Period: {{.Period}}
{{- end}}
{{- if .TradeIDs}}
Trades: {{join .TradeIDs}}
{{- end}}
{{- if .AccountIDs}}
Accounts: {{join .AccountIDs}}
{{- end}}

Actions Taken:
- Analyzed inquiry email
- Located {{len .ConfigFiles}} relevant configuration files
{{- range .ConfigFiles}}
  - {{.}}
{{- end}}
- Generated report: {{.ReportPath}}

Next Steps:
{{- range .Actions}}
- {{.}}
{{- end}}

Report Location: {{.ReportPath}}

Please review the generated report and let me know if you need any additional information.
`))

// SummaryInput is what a reply is built from.
type SummaryInput struct {
	Inquiry     types.InquiryResult
	ConfigFiles []string
	ReportPath  string
}

type summaryView struct {
	Intent      types.IntentCategory
	Priority    types.Priority
	Period      string
	TradeIDs    []string
	AccountIDs  []string
	ConfigFiles []string
	ReportPath  string
	Actions     []string
}

// Summary renders the operator reply for a handled inquiry.
func Summary(in SummaryInput) (string, error) {
	v := summaryView{
		Intent:      in.Inquiry.Intent,
		Priority:    in.Inquiry.Priority,
		Period:      in.Inquiry.TimePeriod.String(),
		TradeIDs:    in.Inquiry.TradeIDs,
		AccountIDs:  in.Inquiry.AccountIDs,
		ConfigFiles: in.ConfigFiles,
		ReportPath:  in.ReportPath,
		Actions:     in.Inquiry.Actions,
	}
	if v.Intent == "" {
		v.Intent = "unknown"
	}
	if v.Priority == "" {
		v.Priority = types.PriorityMedium
	}
	if v.ReportPath == "" {
		v.ReportPath = "none"
	}

	var buf bytes.Buffer
	if err := summaryTmpl.Execute(&buf, v); err != nil {
		return "", fmt.Errorf("rendering summary: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}
