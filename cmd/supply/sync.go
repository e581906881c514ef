package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/supply-flow/internal/cli"
	"github.com/Veraticus/supply-flow/internal/common"
	"github.com/spf13/cobra"
)

func syncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Pull purchase records into a new local snapshot",
		Long: `Read every purchase record from the configured source and store it as a new
snapshot in the local cache. Reports read the latest snapshot unless --live is given.`,
		RunE: runSync,
	}

	cmd.Flags().String("source", sourceSheets, "record source (sheets, xlsx)")
	cmd.Flags().String("file", "", "workbook path when --source=xlsx")
	cmd.Flags().String("sheet", "", "worksheet name when --source=xlsx (default: first sheet)")
	cmd.Flags().Int("keep", 0, "prune older snapshots, keeping this many (0 keeps all)")
	cmd.Flags().Bool("no-progress", false, "disable the progress bar")

	return cmd
}

func runSync(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	kind, _ := cmd.Flags().GetString("source")
	file, _ := cmd.Flags().GetString("file")
	sheet, _ := cmd.Flags().GetString("sheet")
	keep, _ := cmd.Flags().GetInt("keep")
	noProgress, _ := cmd.Flags().GetBool("no-progress")

	src, err := newSource(ctx, sourceOptions{kind: kind, file: file, sheet: sheet})
	if err != nil {
		return err
	}

	slog.Info("Reading purchase records", "source", src.Name())
	records, err := src.Records(ctx)
	if err != nil {
		return fmt.Errorf("failed to read records from %s: %w", src.Name(), err)
	}
	if len(records) == 0 {
		return common.NewUserError("The source returned no purchase records; nothing to save", common.ErrNoRecords)
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	var progress func(int)
	if !noProgress {
		bar := cli.NewProgressBar(cmd.ErrOrStderr(), len(records), "Saving records...")
		progress = func(done int) {
			_ = bar.Set(done)
		}
	}

	snapshot, err := store.SaveSnapshot(ctx, src.Name(), records, progress)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Saved snapshot %s with %d records", snapshot.ID, snapshot.RecordCount)))

	if keep > 0 {
		removed, err := store.PruneSnapshots(ctx, keep)
		if err != nil {
			return fmt.Errorf("failed to prune snapshots: %w", err)
		}
		if removed > 0 {
			slog.Info("Pruned old snapshots", "removed", removed, "kept", keep)
		}
	}

	return nil
}
