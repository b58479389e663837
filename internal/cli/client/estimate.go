package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/cloo-solutions/suggestscore/internal/cli"
	"github.com/cloo-solutions/suggestscore/internal/config"
	"github.com/spf13/cobra"
)

// EstimateCmd creates the estimate command.
func EstimateCmd() *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "estimate <keyword>",
		Short: "Estimate search-suggestion coverage for a keyword",
		Long: `Scores how many distinct exact-match suggestions the vendor's autocomplete
returns for a keyword and its one-word expansions.

By default the running suggestscored service is asked. With --local the
estimation runs in this process, talking to the vendor directly.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")

			var (
				result *EstimateResponse
				err    error
			)
			if local {
				result, err = estimateLocal(cmd.Context(), args[0])
			} else {
				result, err = NewAPIClientWithCmd(cmd).Estimate(cmd.Context(), args[0])
			}
			if err != nil {
				return fmt.Errorf("estimate failed: %w", err)
			}

			return printEstimate(cmd.OutOrStdout(), result, outputJSON)
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "Run the estimation in-process instead of calling the API")

	return cmd
}

func estimateLocal(ctx context.Context, keyword string) (*EstimateResponse, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	defer cancel()

	result, err := cli.NewEstimationService(cfg, nil).Estimate(ctx, keyword)
	if err != nil {
		return nil, err
	}
	return &EstimateResponse{Keyword: result.Keyword(), Score: result.Score()}, nil
}

func printEstimate(w io.Writer, result *EstimateResponse, outputJSON bool) error {
	if outputJSON {
		output, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(output))
		return nil
	}

	fmt.Fprintf(w, "%s: %d\n", result.Keyword, result.Score)
	return nil
}
