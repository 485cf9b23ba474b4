package cli

import (
	"github.com/spf13/cobra"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player roster commands",
	}

	cmd.AddCommand(newPlayerListCmd())
	cmd.AddCommand(newPlayerAddCmd())
	cmd.AddCommand(newPlayerRenameCmd())
	cmd.AddCommand(newPlayerRemoveCmd())

	return cmd
}

func newPlayerListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all players",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Player

			if err := client.Get("/api/v1/players", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayerAddCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a player to the roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"name": name}
			var result Player

			if err := client.Post("/api/v1/players", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Player name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newPlayerRenameCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "rename <id>",
		Short: "Rename a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"name": name}

			if err := client.Patch("/api/v1/players/"+args[0], req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Player updated")
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New player name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newPlayerRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a player from the roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/players/" + args[0]); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Player removed")
			return nil
		},
	}
}
