package cli

import (
	"github.com/spf13/cobra"
)

func newMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match generation commands",
	}

	cmd.AddCommand(newMatchGenerateCmd())

	return cmd
}

func newMatchGenerateCmd() *cobra.Command {
	var playerIDs []string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate random doubles matches",
		Long: `Generate random doubles matches from a pool of players.

Without --player the active player selection is used as the pool.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"player_ids": playerIDs}
			var result []Match

			if err := client.Post("/api/v1/matches/generate", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&playerIDs, "player", nil, "Player id to include (repeatable)")

	return cmd
}
