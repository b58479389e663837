package main

import (
	"fmt"
	"os"

	"github.com/cloo-solutions/suggestscore/internal/cli"
	"github.com/cloo-solutions/suggestscore/internal/cli/client"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "suggestscore",
		Short: "Suggestscore CLI - keyword search-suggestion coverage",
		Long: `Suggestscore CLI estimates how much autocomplete coverage a keyword gets.

Environment variables:
  SUGGESTSCORE_API_URL           API base URL (default: http://localhost:8080)
  SUGGESTSCORE_VENDOR_BASE_URL   Vendor endpoint for --local and suggest`,
		Version:      version,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().Bool("output", false, "Output as JSON")
	rootCmd.PersistentFlags().String("api-url", "", "API base URL (overrides env)")
	cli.AddHelpJSONFlag(rootCmd)

	rootCmd.AddCommand(client.EstimateCmd())
	rootCmd.AddCommand(client.SuggestCmd())

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
