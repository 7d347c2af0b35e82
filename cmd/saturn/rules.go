package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"mercator-hq/saturn/pkg/cli"
	"mercator-hq/saturn/pkg/retention"
	"mercator-hq/saturn/pkg/retention/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect retention rule strings",
	Long:  `Inspect and validate retention rule strings without filtering anything.`,
}

var rulesCheckFlags struct {
	format string
}

var rulesCheckCmd = &cobra.Command{
	Use:   "check RULES",
	Short: "Validate and explain a rules string",
	Long: `Validate a retention rules string and explain what it keeps.

The check parses the rules the same way the filter does, prints the
canonical form, the per-category keep counts, and the worst-case number
of items the rules can retain at once.

Examples:
  # Explain a rules string
  saturn rules check recent5,days14,weeks8

  # Machine-readable form for scripts
  saturn rules check days30 --format json`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return cli.NewUsageError("requires exactly one retention rules string")
		}
		return nil
	},
	RunE: runRulesCheck,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.AddCommand(rulesCheckCmd)

	rulesCheckCmd.Flags().StringVar(&rulesCheckFlags.format, "format", "text", "output format: text, json")
}

// rulesReport is the JSON form of one rules check.
type rulesReport struct {
	Rules     string         `json:"rules"`
	Canonical string         `json:"canonical"`
	MaxKeep   int            `json:"max_keep"`
	Counts    map[string]int `json:"counts"`
}

func runRulesCheck(cmd *cobra.Command, args []string) error {
	out := io.Writer(os.Stdout)
	if cmd != nil {
		out = cmd.OutOrStdout()
	}

	format, err := cli.ParseFormat(rulesCheckFlags.format)
	if err != nil {
		return cli.NewUsageError(err.Error())
	}

	policy, err := rules.Parse(args[0])
	if err != nil {
		return err
	}

	if format == cli.FormatJSON {
		report := rulesReport{
			Rules:     args[0],
			Canonical: rules.Format(policy),
			MaxKeep:   policy.MaxKeep(),
			Counts:    make(map[string]int),
		}
		for category, n := range policy.Counts() {
			if n > 0 {
				report.Counts[category.String()] = n
			}
		}
		formatter := cli.NewFormatter(cli.FormatJSON)
		return formatter.FormatTo(out, report)
	}

	fmt.Fprintln(out, "✓ Rules valid")
	fmt.Fprintf(out, "Canonical form: %s\n", rules.Format(policy))
	fmt.Fprintf(out, "Keeps at most %d items:\n", policy.MaxKeep())
	for _, category := range retention.Categories() {
		if n := policy.Count(category); n > 0 {
			fmt.Fprintf(out, "  %-7s %d\n", category, n)
		}
	}
	return nil
}
