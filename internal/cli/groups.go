package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newGroupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Group management commands",
	}

	cmd.AddCommand(newGroupListCmd())
	cmd.AddCommand(newGroupAddCmd())
	cmd.AddCommand(newGroupUpdateCmd())
	cmd.AddCommand(newGroupRemoveCmd())
	cmd.AddCommand(newGroupAddPlayerCmd())
	cmd.AddCommand(newGroupRemovePlayerCmd())
	cmd.AddCommand(newGroupSubPagesCmd())
	cmd.AddCommand(newGroupActiveCmd())

	return cmd
}

func newGroupListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Group

			if err := client.Get("/api/v1/groups", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGroupAddCmd() *cobra.Command {
	var name, color string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a group",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"name": name, "color": color}
			var result Group

			if err := client.Post("/api/v1/groups", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Group name (required)")
	cmd.Flags().StringVar(&color, "color", "", "Group color")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newGroupUpdateCmd() *cobra.Command {
	var name, color string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a group's name and color",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"name": name, "color": color}

			if err := client.Patch("/api/v1/groups/"+args[0], req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Group updated")
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Group name (required)")
	cmd.Flags().StringVar(&color, "color", "", "Group color")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newGroupRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/groups/" + args[0]); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Group removed")
			return nil
		},
	}
}

func newGroupAddPlayerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-player <group-id> <player-id>",
		Short: "Add a player to a group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/groups/"+args[0]+"/players/"+args[1], nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Player added to group")
			return nil
		},
	}
}

func newGroupRemovePlayerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-player <group-id> <player-id>",
		Short: "Remove a player from a group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/groups/" + args[0] + "/players/" + args[1]); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Player removed from group")
			return nil
		},
	}
}

func newGroupSubPagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "subpages <group-id>",
		Short: "List a group's sub-pages, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []SubPage

			if err := client.Get("/api/v1/groups/"+args[0]+"/subpages", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGroupActiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "active",
		Short: "Active player selection commands",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List active player ids",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []string

			if err := client.Get("/api/v1/active-players", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle <player-id>",
		Short: "Toggle a player's active state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/active-players/"+args[0]+"/toggle", nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Active state toggled")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <player-id> <true|false>",
		Short: "Set a player's active state explicitly",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			active, err := strconv.ParseBool(args[1])
			if err != nil {
				return fmt.Errorf("invalid active state %q: expected true or false", args[1])
			}

			req := map[string]bool{"active": active}
			if err := client.Put("/api/v1/active-players/"+args[0], req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Active state set")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Clear the active player selection",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/active-players"); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Active players cleared")
			return nil
		},
	})

	return cmd
}
