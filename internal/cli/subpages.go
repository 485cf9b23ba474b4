package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newSubPageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subpage",
		Short: "Sub-page and attendance commands",
	}

	cmd.AddCommand(newSubPageListCmd())
	cmd.AddCommand(newSubPageGetCmd())
	cmd.AddCommand(newSubPageAddCmd())
	cmd.AddCommand(newSubPageUpdateCmd())
	cmd.AddCommand(newSubPageRemoveCmd())
	cmd.AddCommand(newSubPageAddPlayerCmd())
	cmd.AddCommand(newSubPageRemovePlayerCmd())
	cmd.AddCommand(newSubPageToggleCmd())

	return cmd
}

func newSubPageListCmd() *cobra.Command {
	var groupID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sub-pages",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/subpages"
			if groupID != "" {
				path += "?group_id=" + groupID
			}

			var result []SubPage
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&groupID, "group", "", "Filter by group id")

	return cmd
}

func newSubPageGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a sub-page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result SubPage

			if err := client.Get("/api/v1/subpages/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSubPageAddCmd() *cobra.Command {
	var groupID, name, date string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a sub-page",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"group_id": groupID,
				"name":     name,
			}
			if date != "" {
				parsed, err := time.Parse("2006-01-02", date)
				if err != nil {
					return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
				}
				req["date"] = parsed
			}

			var result SubPage
			if err := client.Post("/api/v1/subpages", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&groupID, "group", "", "Group id (required)")
	cmd.Flags().StringVar(&name, "name", "", "Sub-page name (required)")
	cmd.Flags().StringVar(&date, "date", "", "Session date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("group")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newSubPageUpdateCmd() *cobra.Command {
	var name, date string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a sub-page's name and date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"name": name}
			if date != "" {
				parsed, err := time.Parse("2006-01-02", date)
				if err != nil {
					return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
				}
				req["date"] = parsed
			}

			if err := client.Patch("/api/v1/subpages/"+args[0], req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Sub-page updated")
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Sub-page name (required)")
	cmd.Flags().StringVar(&date, "date", "", "Session date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newSubPageRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a sub-page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/subpages/" + args[0]); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Sub-page removed")
			return nil
		},
	}
}

func newSubPageAddPlayerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-player <subpage-id> <player-id>",
		Short: "Mark a player present on a sub-page",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/subpages/"+args[0]+"/players/"+args[1], nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Player marked present")
			return nil
		},
	}
}

func newSubPageRemovePlayerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-player <subpage-id> <player-id>",
		Short: "Mark a player absent on a sub-page",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/subpages/" + args[0] + "/players/" + args[1]); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Player marked absent")
			return nil
		},
	}
}

func newSubPageToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <subpage-id> <player-id>",
		Short: "Toggle a player's presence on a sub-page",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/subpages/"+args[0]+"/players/"+args[1]+"/toggle", nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Presence toggled")
			return nil
		},
	}
}
