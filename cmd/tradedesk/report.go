// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/pdiddy/tradedesk/internal/inquiry"
	"github.com/pdiddy/tradedesk/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run report classes and draft replies",
}

// --- run subcommand ---

var reportRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a Java report class against a SQL config file",
	Long: `Run launches "java -cp <report.classpath> <class> <config-file> <report-file>"
and waits for it, bounded by report.timeout. The report file is written under
--output-dir (default: report.output_dir).`,
	RunE: runReportRun,
}

func runReportRun(cmd *cobra.Command, args []string) error {
	app, err := loadApp()
	if err != nil {
		return err
	}
	defer app.close()

	var req report.Request
	req.Class, _ = cmd.Flags().GetString("class")
	req.ConfigFile, _ = cmd.Flags().GetString("config-file")
	req.OutputDir, _ = cmd.Flags().GetString("output-dir")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := report.NewRunner(app.cfg.Report, app.logger).Run(ctx, req)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
	} else {
		fmt.Printf("Status:   %s (%s)\n", res.Status, res.Duration)
		if res.ReportPath != "" {
			fmt.Printf("Report:   %s\n", res.ReportPath)
		}
		for _, e := range res.Errors {
			fmt.Fprintf(os.Stderr, "  %s\n", e)
		}
	}

	if res.Status != report.StatusSucceeded {
		return fmt.Errorf("report %s", res.Status)
	}
	return nil
}

// --- summary subcommand ---

var reportSummaryCmd = &cobra.Command{
	Use:   "summary [email-file|-]",
	Short: "Draft the reply to an inquiry",
	Long: `Summary classifies the email and renders the reply sent back to the
requester, listing the config files used and the generated report.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReportSummary,
}

func runReportSummary(cmd *cobra.Command, args []string) error {
	text, err := readInput(args)
	if err != nil {
		return err
	}
	configFiles, _ := cmd.Flags().GetStringSlice("config-file")
	reportPath, _ := cmd.Flags().GetString("report-path")

	summary, err := report.Summary(report.SummaryInput{
		Inquiry:     inquiry.Classify(text),
		ConfigFiles: configFiles,
		ReportPath:  reportPath,
	})
	if err != nil {
		return err
	}
	fmt.Println(summary)
	return nil
}

func init() {
	reportRunCmd.Flags().String("class", "", "fully qualified Java class to run")
	reportRunCmd.Flags().String("config-file", "", "SQL config file passed to the class")
	reportRunCmd.Flags().String("output-dir", "", "report directory (default: report.output_dir)")
	reportRunCmd.Flags().Bool("json", false, "output the run result as JSON")
	_ = reportRunCmd.MarkFlagRequired("class")
	_ = reportRunCmd.MarkFlagRequired("config-file")

	reportSummaryCmd.Flags().StringSlice("config-file", nil, "config file used (repeatable)")
	reportSummaryCmd.Flags().String("report-path", "", "path of the generated report")

	reportCmd.AddCommand(reportRunCmd)
	reportCmd.AddCommand(reportSummaryCmd)
	rootCmd.AddCommand(reportCmd)
}
