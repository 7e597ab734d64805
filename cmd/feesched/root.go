package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gyeh/feesched/internal/config"
)

var (
	cfg        config.Config
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "feesched",
	Short: "Medicare fee schedule pricer and coding compliance checker",
	Long: "Prices procedure codes by ZIP through the ZIP→county→locality→GPCI pipeline " +
		"and checks claims against the NCCI PTP, MUE, and add-on edits.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configPath != "" {
			return cfg.LoadFromFile(configPath)
		}
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.DSN, "dsn", os.Getenv("DATABASE_URL"), "Postgres connection string (or set DATABASE_URL)")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&configPath, "config", "", "Path to YAML config file")
	pf.Float64Var(&cfg.ConversionFactor, "conversion-factor", 0, "Dollars per RVU (default: schedule-year constant)")
}

// addFileFlags registers the reference file flags shared by commands that
// can read the published files directly.
func addFileFlags(f *pflag.FlagSet) {
	f.StringVar(&cfg.Files.ZipCounty, "zip-county", "", "ZIP-county crosswalk CSV")
	f.StringVar(&cfg.Files.CountyNames, "county-names", "", "Census county reference file")
	f.StringVar(&cfg.Files.Locality, "locality", "", "Locality configuration CSV")
	f.StringVar(&cfg.Files.GPCI, "gpci", "", "GPCI multipliers CSV")
	f.StringVar(&cfg.Files.RVU, "rvu", "", "Relative value units CSV")
	f.StringVar(&cfg.Files.PTP, "ptp", "", "NCCI procedure-to-procedure edits file")
	f.StringVar(&cfg.Files.MUE, "mue", "", "NCCI medically unlikely edits CSV")
	f.StringVar(&cfg.Files.MUEServiceType, "mue-service-type", "Practitioner", "Service type label for MUE rows")
	f.StringVar(&cfg.Files.Addon, "addon", "", "NCCI add-on code edits file")
}

// filesConfigured reports whether any reference file flag or config value is
// set; commands use it to choose between file and Postgres sources.
func filesConfigured() bool {
	f := cfg.Files
	return f.ZipCounty != "" || f.CountyNames != "" || f.Locality != "" ||
		f.GPCI != "" || f.RVU != "" || f.PTP != "" || f.MUE != "" || f.Addon != ""
}
