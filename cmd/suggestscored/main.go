package main

import (
	"fmt"
	"os"

	"github.com/cloo-solutions/suggestscore/internal/cli"
	"github.com/cloo-solutions/suggestscore/internal/cli/admin"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "suggestscored",
		Short: "Suggestscore daemon",
		Long: `Suggestscore daemon serving keyword coverage estimates over HTTP.

Configuration is read from SUGGESTSCORE_* environment variables and an
optional .env file in the working directory.`,
	}

	cli.AddHelpJSONFlag(rootCmd)
	rootCmd.AddCommand(admin.ServeCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
