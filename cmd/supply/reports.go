package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/Veraticus/supply-flow/internal/cli"
	"github.com/Veraticus/supply-flow/internal/common"
	"github.com/Veraticus/supply-flow/internal/config"
	"github.com/Veraticus/supply-flow/internal/model"
	"github.com/Veraticus/supply-flow/internal/report"
	"github.com/Veraticus/supply-flow/internal/service"
	"github.com/Veraticus/supply-flow/internal/source"
	"github.com/spf13/cobra"
)

// reportBuilder assembles one view from records.
type reportBuilder func(records []model.PurchaseRecord, opts report.Options) report.Report

func dashboardCmd() *cobra.Command {
	return newReportCmd("dashboard", "Spend per company and the account plan tree",
		`Rank companies by spend and break spend down by account plan, category,
supplier and material. --search matches company, supplier, account plan and item.`,
		func(records []model.PurchaseRecord, opts report.Options) report.Report {
			return report.NewDashboard(records, opts)
		}, false)
}

func suppliersCmd() *cobra.Command {
	return newReportCmd("suppliers", "Rank suppliers by spend",
		`Rank suppliers by spend with their share of the total. --search matches the
supplier name only.`,
		func(records []model.PurchaseRecord, opts report.Options) report.Report {
			return report.NewSuppliers(records, opts)
		}, false)
}

func productsCmd() *cobra.Command {
	return newReportCmd("products", "List purchases per company and supplier",
		`List purchases grouped by company (alphabetical) and supplier (by spend).
--search matches item, supplier and invoice number.`,
		func(records []model.PurchaseRecord, opts report.Options) report.Report {
			return report.NewProducts(records, opts)
		}, false)
}

func periodCmd() *cobra.Command {
	return newReportCmd("period", "Printable purchase listing for a date window",
		`List purchases inside a date window with the period total and spend per month.
Without --from and --to the window covers the last report.window_days days.
--search matches company, supplier, invoice number and item.`,
		func(records []model.PurchaseRecord, opts report.Options) report.Report {
			return report.NewPeriod(records, opts)
		}, true)
}

func newReportCmd(use, short, long string, build reportBuilder, defaultWindow bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd, build, defaultWindow)
		},
	}

	cmd.Flags().String("from", "", "first day to include (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "last day to include (YYYY-MM-DD)")
	cmd.Flags().StringP("search", "s", "", "case-insensitive search term")
	cmd.Flags().StringSlice("fields", nil, "search only these fields (company, supplier, item, account_plan, invoice, ...)")
	cmd.Flags().StringP("format", "f", string(report.FormatTable), "output format (table, json, csv, xlsx)")
	cmd.Flags().StringP("output", "o", "", "write to this file instead of stdout")
	cmd.Flags().Bool("live", false, "read the source directly instead of the latest snapshot")
	cmd.Flags().String("source", sourceSheets, "record source with --live (sheets, xlsx)")
	cmd.Flags().String("file", "", "workbook path with --live --source=xlsx")
	cmd.Flags().String("snapshot", "", "snapshot ID to report on (default: latest)")
	cmd.Flags().Bool("export", false, "also write the report to sheets.report_spreadsheet_id")

	return cmd
}

// reportFlags are the parsed report flags.
type reportFlags struct {
	start    *time.Time
	end      *time.Time
	search   string
	fields   []model.Field
	format   report.Format
	output   string
	live     bool
	source   sourceOptions
	snapshot string
	export   bool
}

func parseReportFlags(cmd *cobra.Command, defaultWindow bool, now time.Time) (reportFlags, error) {
	var (
		f   reportFlags
		err error
	)
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	format, _ := cmd.Flags().GetString("format")
	f.search, _ = cmd.Flags().GetString("search")
	fields, _ := cmd.Flags().GetStringSlice("fields")
	f.output, _ = cmd.Flags().GetString("output")
	f.live, _ = cmd.Flags().GetBool("live")
	f.source.kind, _ = cmd.Flags().GetString("source")
	f.source.file, _ = cmd.Flags().GetString("file")
	f.snapshot, _ = cmd.Flags().GetString("snapshot")
	f.export, _ = cmd.Flags().GetBool("export")

	if f.start, err = parseDay(from); err != nil {
		return f, err
	}
	if f.end, err = parseDay(to); err != nil {
		return f, err
	}
	if f.start != nil && f.end != nil && f.end.Before(*f.start) {
		return f, common.NewUserError("--to must not be before --from", nil)
	}

	for _, name := range fields {
		field, err := model.ParseField(name)
		if err != nil {
			return f, common.NewUserError(err.Error(), err)
		}
		f.fields = append(f.fields, field)
	}

	if defaultWindow && f.start == nil && f.end == nil {
		days, err := config.WindowDays()
		if err != nil {
			return f, err
		}
		start, end := report.LastDays(now, days)
		f.start, f.end = &start, &end
	}

	if f.format, err = report.ParseFormat(format); err != nil {
		return f, common.NewUserError(err.Error(), err)
	}
	if f.format == report.FormatXLSX && f.output == "" {
		return f, common.NewUserError("--format xlsx needs --output", nil)
	}

	return f, nil
}

func runReport(cmd *cobra.Command, build reportBuilder, defaultWindow bool) error {
	ctx := cmd.Context()

	flags, err := parseReportFlags(cmd, defaultWindow, time.Now())
	if err != nil {
		return err
	}

	parsing, err := config.LoadParsing()
	if err != nil {
		return err
	}

	records, err := loadRecords(ctx, flags)
	if err != nil {
		return err
	}

	r := build(records, report.Options{
		Start:    flags.start,
		End:      flags.end,
		Search:   flags.search,
		Fields:   flags.fields,
		Quantity: parsing.Numbers,
	})

	if err := writeReport(cmd.OutOrStdout(), r, flags); err != nil {
		return err
	}

	if flags.export {
		client, err := newSheetsClient(ctx)
		if err != nil {
			return err
		}
		if err := report.Export(ctx, client, r); err != nil {
			return fmt.Errorf("failed to export report: %w", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatSuccess("Exported report to Google Sheets"))
	}

	return nil
}

// loadRecords reads records from the source with --live and from a stored
// snapshot otherwise.
func loadRecords(ctx context.Context, flags reportFlags) ([]model.PurchaseRecord, error) {
	if flags.live {
		src, err := newSource(ctx, flags.source)
		if err != nil {
			return nil, err
		}
		return source.RecordsOrEmpty(ctx, src, common.Component("source")), nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = store.Close() }()

	return snapshotRecords(ctx, store, flags)
}

func snapshotRecords(ctx context.Context, store service.Storage, flags reportFlags) ([]model.PurchaseRecord, error) {
	id := flags.snapshot
	if id == "" {
		latest, err := store.LatestSnapshot(ctx)
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewUserError("No snapshot stored yet; run 'supply sync' first or pass --live", err)
		}
		if err != nil {
			return nil, err
		}
		id = latest.ID
		slog.Debug("Using latest snapshot", "id", id, "taken_at", latest.TakenAt, "source", latest.Source)
	}

	records, err := store.GetRecords(ctx, id, service.RecordQuery{Start: flags.start, End: flags.end})
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.NewUserError(fmt.Sprintf("Snapshot %s does not exist", id), err)
	}
	return records, err
}

func writeReport(stdout io.Writer, r report.Report, flags reportFlags) error {
	if flags.output == "" {
		return report.Write(stdout, r, flags.format)
	}

	out, err := os.Create(config.ExpandPath(flags.output))
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := report.Write(out, r, flags.format); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	slog.Info("Wrote report", "path", flags.output, "format", flags.format)
	return nil
}
