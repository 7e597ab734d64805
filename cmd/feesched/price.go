package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/feesched/internal/exitcode"
	"github.com/gyeh/feesched/internal/logging"
	"github.com/gyeh/feesched/internal/model"
)

var priceCmd = &cobra.Command{
	Use:   "price CODE ZIP",
	Short: "Price a procedure code for a ZIP code",
	Args:  cobra.ExactArgs(2),
	RunE:  runPrice,
}

func init() {
	addFileFlags(priceCmd.Flags())
	rootCmd.AddCommand(priceCmd)
}

func runPrice(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	set := buildReferenceSet(ctx, log)
	calc := set.Calculator(cfg.EffectiveConversionFactor())

	quote, err := calc.Quote(args[0], args[1])
	if err != nil {
		var ie *model.InputError
		if errors.As(err, &ie) {
			log.Error().Err(err).Msg("invalid input")
			os.Exit(exitcode.UsageError)
		}
		var nf *model.NotFoundError
		if errors.As(err, &nf) {
			log.Error().Err(err).Str("stage", string(nf.Stage)).Msg("pricing failed")
			os.Exit(exitcode.NotFound)
		}
		log.Error().Err(err).Msg("pricing failed")
		os.Exit(exitcode.ValidationError)
	}

	fmt.Printf("Code:     %s\n", quote.Code)
	fmt.Printf("ZIP:      %s\n", quote.ZIP)
	fmt.Printf("County:   %s (%s, %s)\n", quote.CountyName, quote.CountyID, quote.State)
	fmt.Printf("Locality: %s (%s)\n", quote.LocalityName, quote.LocalityNumber)
	fmt.Printf("Price:    $%.2f\n", quote.Amount)
	return nil
}
