package client

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cloo-solutions/suggestscore/internal/cli"
	"github.com/cloo-solutions/suggestscore/internal/config"
	"github.com/cloo-solutions/suggestscore/internal/domain"
	"github.com/spf13/cobra"
)

// SuggestCmd creates the suggest command, a single raw vendor lookup.
func SuggestCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "suggest <query>",
		Short: "Show the vendor's suggestions for one query",
		Long: `Issues one autocomplete request against the vendor and prints the phrases.

Only phrases containing the query as a whole word are shown unless --all is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			query := args[0]

			if err := domain.ValidateKeyword(query); err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			phrases, err := cli.NewCompletionClient(cfg, nil).Fetch(cmd.Context(), query)
			if err != nil {
				return fmt.Errorf("suggest failed: %w", err)
			}

			if !all {
				phrases = domain.FilterExact(phrases, query).Sorted()
			}

			return printSuggestions(cmd.OutOrStdout(), query, phrases, outputJSON)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Show every phrase, including inexact matches")

	return cmd
}

func printSuggestions(w io.Writer, query string, phrases []string, outputJSON bool) error {
	if outputJSON {
		output, err := json.MarshalIndent(map[string]interface{}{
			"query":       query,
			"suggestions": phrases,
		}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(output))
		return nil
	}

	if len(phrases) == 0 {
		fmt.Fprintln(w, "No suggestions found.")
		return nil
	}

	for _, phrase := range phrases {
		fmt.Fprintln(w, phrase)
	}
	return nil
}
