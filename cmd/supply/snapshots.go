package main

import (
	"fmt"
	"strconv"

	"github.com/Veraticus/supply-flow/internal/cli"
	"github.com/Veraticus/supply-flow/internal/model"
	"github.com/spf13/cobra"
)

func snapshotsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "List or prune stored snapshots",
		Long: `List the snapshots in the local cache, newest first.
With --prune N every snapshot except the newest N is deleted.`,
		RunE: runSnapshots,
	}

	cmd.Flags().Int("limit", 20, "maximum snapshots to list (0 lists all)")
	cmd.Flags().Int("prune", -1, "delete all but the newest N snapshots")

	return cmd
}

func runSnapshots(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	limit, _ := cmd.Flags().GetInt("limit")
	prune, _ := cmd.Flags().GetInt("prune")

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	out := cmd.OutOrStdout()

	if cmd.Flags().Changed("prune") {
		removed, err := store.PruneSnapshots(ctx, prune)
		if err != nil {
			return fmt.Errorf("failed to prune snapshots: %w", err)
		}
		fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Removed %d snapshots", removed)))
	}

	snapshots, err := store.ListSnapshots(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}

	if len(snapshots) == 0 {
		fmt.Fprintln(out, cli.FormatWarning("No snapshots stored. Run 'supply sync' to create one."))
		return nil
	}

	fmt.Fprintln(out, cli.FormatTitle("Snapshots"))
	fmt.Fprintln(out, cli.RenderTable([]string{"ID", "Taken at", "Source", "Records"}, snapshotRows(snapshots), 3))
	return nil
}

func snapshotRows(snapshots []model.Snapshot) [][]string {
	rows := make([][]string, len(snapshots))
	for i, s := range snapshots {
		rows[i] = []string{
			s.ID,
			s.TakenAt.Local().Format("2006-01-02 15:04:05"),
			s.Source,
			strconv.Itoa(s.RecordCount),
		}
	}
	return rows
}
