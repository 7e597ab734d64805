package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gyeh/feesched/internal/exitcode"
	"github.com/gyeh/feesched/internal/logging"
	"github.com/gyeh/feesched/internal/model"
	"github.com/gyeh/feesched/internal/normalize"
)

var checkDate string

var checkCmd = &cobra.Command{
	Use:   "check LINE...",
	Short: "Check a claim's billing lines for NCCI violations",
	Long: "Each LINE is CODE[:MODIFIERS[:UNITS]], with modifiers joined by '+'.\n" +
		"Example: feesched check 80061 82465:59 36415::4",
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkDate, "date", "", "Date of service (default: today)")
	rootCmd.AddCommand(checkCmd)
	addFileFlags(checkCmd.Flags())
}

func runCheck(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	lines, err := parseBillingLines(args)
	if err != nil {
		log.Error().Err(err).Msg("invalid billing line")
		os.Exit(exitcode.UsageError)
	}

	set := buildReferenceSet(ctx, log)
	engine := set.Engine()

	var violations []model.Violation
	if checkDate != "" {
		asOf := normalize.ParseDate(checkDate)
		if asOf == nil {
			log.Error().Str("date", checkDate).Msg("unparseable date of service")
			os.Exit(exitcode.UsageError)
		}
		violations, err = engine.EvaluateAt(lines, *asOf)
	} else {
		violations, err = engine.Evaluate(lines)
	}
	if err != nil {
		var ie *model.InputError
		if errors.As(err, &ie) {
			log.Error().Err(err).Msg("invalid input")
			os.Exit(exitcode.UsageError)
		}
		log.Error().Err(err).Msg("compliance check failed")
		os.Exit(exitcode.ValidationError)
	}

	if len(violations) == 0 {
		fmt.Println("No violations found.")
		return nil
	}
	for _, v := range violations {
		fmt.Println(v.String())
	}
	os.Exit(exitcode.ViolationsFound)
	return nil
}

// parseBillingLines parses CODE[:MODIFIERS[:UNITS]] arguments. Modifiers are
// joined by '+'; an empty middle segment means no modifiers.
func parseBillingLines(args []string) ([]model.BillingLine, error) {
	lines := make([]model.BillingLine, 0, len(args))
	for _, arg := range args {
		parts := strings.SplitN(arg, ":", 3)
		line := model.BillingLine{Code: parts[0], Units: 1}
		if len(parts) > 1 && parts[1] != "" {
			line.Modifiers = strings.Split(parts[1], "+")
		}
		if len(parts) > 2 && parts[2] != "" {
			units, err := strconv.Atoi(parts[2])
			if err != nil {
				return nil, fmt.Errorf("bad unit count in %q: %w", arg, err)
			}
			line.Units = units
		}
		lines = append(lines, line)
	}
	return lines, nil
}
