package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/feesched/internal/exitcode"
	"github.com/gyeh/feesched/internal/export"
	"github.com/gyeh/feesched/internal/logging"
)

var (
	batchInput  string
	batchOutput string
)

var priceBatchCmd = &cobra.Command{
	Use:   "price-batch",
	Short: "Price a CSV of (code, zip) pairs into a Parquet file",
	Long: "Reads a CSV of procedure code and ZIP pairs and writes one Parquet row " +
		"per input pair. Pairs that fail to price carry the error text instead of " +
		"an amount; the batch never drops rows.",
	RunE: runPriceBatch,
}

func init() {
	f := priceBatchCmd.Flags()
	f.StringVar(&batchInput, "input", "", "Input CSV of code,zip pairs (required)")
	f.StringVar(&batchOutput, "output", "", "Output Parquet path (required)")
	_ = priceBatchCmd.MarkFlagRequired("input")
	_ = priceBatchCmd.MarkFlagRequired("output")
	addFileFlags(f)
	rootCmd.AddCommand(priceBatchCmd)
}

func runPriceBatch(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	pairs, err := export.ReadPairs(batchInput)
	if err != nil {
		log.Error().Err(err).Msg("batch input read failed")
		os.Exit(exitcode.UsageError)
	}

	set := buildReferenceSet(ctx, log)
	calc := set.Calculator(cfg.EffectiveConversionFactor())

	rows := make([]export.PricedLine, 0, len(pairs))
	failed := 0
	for _, p := range pairs {
		quote, err := calc.Quote(p.Code, p.ZIP)
		if err != nil {
			rows = append(rows, export.Failed(p.Code, p.ZIP, err))
			failed++
			continue
		}
		rows = append(rows, export.FromQuote(quote))
	}

	if err := export.WriteParquet(batchOutput, rows); err != nil {
		log.Error().Err(err).Msg("batch output write failed")
		os.Exit(exitcode.LoadError)
	}

	log.Info().
		Int("priced", len(rows)-failed).
		Int("failed", failed).
		Str("output", batchOutput).
		Msg("batch pricing complete")
	fmt.Printf("Priced %d of %d pairs → %s\n", len(rows)-failed, len(rows), batchOutput)
	return nil
}
