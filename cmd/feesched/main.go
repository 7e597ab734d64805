// feesched prices Medicare claims and checks them for NCCI coding
// violations, backed by either the published reference files or a Postgres
// copy of them.
package main

import (
	"os"

	"github.com/gyeh/feesched/internal/exitcode"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitcode.UsageError)
	}
}
