// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/tradedesk/internal/inquiry"
	"github.com/pdiddy/tradedesk/pkg/types"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [file|-]",
	Short: "Classify an inquiry email",
	Long: `Classify reads an email from a file, or from stdin when the argument is
"-" or missing, and prints its intent, priority, time period, trade and
account identifiers and the recommended actions.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClassify,
}

func runClassify(cmd *cobra.Command, args []string) error {
	text, err := readInput(args)
	if err != nil {
		return err
	}
	res := inquiry.Classify(text)

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	formatInquiry(os.Stdout, res)
	return nil
}

// readInput returns the contents of args[0], or stdin when args is empty
// or "-".
func readInput(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), nil
}

func formatInquiry(w io.Writer, res types.InquiryResult) {
	period := res.TimePeriod.String()
	if period == "" {
		period = "-"
	}
	fmt.Fprintf(w, "Intent:    %s\n", res.Intent)
	fmt.Fprintf(w, "Priority:  %s\n", res.Priority)
	fmt.Fprintf(w, "Period:    %s\n", period)
	fmt.Fprintf(w, "Trades:    %s\n", listOrDash(res.TradeIDs))
	fmt.Fprintf(w, "Accounts:  %s\n", listOrDash(res.AccountIDs))
	fmt.Fprintln(w, "Actions:")
	for i, a := range res.Actions {
		fmt.Fprintf(w, "  %d. %s\n", i+1, a)
	}
}

func listOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

func init() {
	classifyCmd.Flags().Bool("json", false, "output the result as JSON")

	rootCmd.AddCommand(classifyCmd)
}
