package cli

import (
	"github.com/spf13/cobra"
)

func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Refetch all collections from the remote store",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result map[string]any

			if err := client.Post("/api/v1/sync", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.AddCommand(newSyncSnapshotCmd())

	return cmd
}

func newSyncSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Offline bootstrap snapshot commands",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the saved snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result map[string]any

			if err := client.Get("/api/v1/snapshot", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "save",
		Short: "Save the current caches as a snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/snapshot", nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Snapshot saved")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete the saved snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/snapshot"); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Snapshot cleared")
			return nil
		},
	})

	return cmd
}
