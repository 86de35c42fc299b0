package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"stock-checker/core/reconcile"
	"stock-checker/core/tableio"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the reconcile command
	localRef    string
	supplierRef string
	outRef      string
	reportJSON  string
	missingOut  string
	minStock    int
	dryRunStock bool
)

// reconcileCmd runs one reconciliation pass and writes the updated catalog.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Copy supplier stock into the catalog and recompute visibility",
	Long: `Reconcile the local catalog export against the supplier stock export.

Stock is matched by product code first and by normalized name second.
Products at or below the minimum stock are hidden, gift box variants follow
their base product with a per size threshold, and products missing at the
supplier are hidden and reported.

Sources can be local .xlsx/.csv files, http(s):// URLs, s3://bucket/object
references (a trailing "/" picks the newest object) or db://table.

Examples:
  # Files in, file out
  reconcile --local export.xlsx --supplier sklad.xlsx --out vystup.xlsx

  # Newest supplier export from the bucket, catalog from the shop database
  reconcile --local db:// --supplier s3://exports/supplier/ --out s3://exports/results/vystup.xlsx

  # Report only
  reconcile --local export.xlsx --supplier sklad.csv --dry-run --report-json report.json`,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().StringVar(&localRef, "local", "", "Local catalog source (required)")
	reconcileCmd.Flags().StringVar(&supplierRef, "supplier", "", "Supplier stock source (required)")
	reconcileCmd.Flags().StringVar(&outRef, "out", "vystup.xlsx", "Output path or s3://bucket/object")
	reconcileCmd.Flags().StringVar(&reportJSON, "report-json", "", "Write the change report as JSON to this path")
	reconcileCmd.Flags().StringVar(&missingOut, "missing-out", "", "Write products missing at the supplier as a table to this path or s3://bucket/object")
	reconcileCmd.Flags().IntVar(&minStock, "min-stock", -1, "Override the minimum stock to show (default from config)")
	reconcileCmd.Flags().BoolVar(&dryRunStock, "dry-run", false, "Report only, do not write the output table")
	_ = reconcileCmd.MarkFlagRequired("local")
	_ = reconcileCmd.MarkFlagRequired("supplier")

	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.log.Sync()

	if minStock >= 0 {
		s.opts.Thresholds.MinStockToShow = minStock
	}

	var extra []string
	if !dryRunStock {
		extra = append(extra, outRef)
	}
	if missingOut != "" {
		extra = append(extra, missingOut)
	}

	s.log.Info("Starting stock reconciliation", zap.Int("min_stock_to_show", s.opts.Thresholds.MinStockToShow))
	p, err := s.run(ctx, localRef, supplierRef, extra...)
	if err != nil {
		return err
	}

	printReconcileReport(s.log, p.result.Report)

	if reportJSON != "" {
		data, err := json.MarshalIndent(p.result.Report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		if err := os.WriteFile(reportJSON, data, 0644); err != nil {
			return fmt.Errorf("failed to save report: %w", err)
		}
		s.log.Info("Report saved", zap.String("file", reportJSON))
	}

	if missingOut != "" {
		missing := tableio.ReportTable(p.result.Report.MissingUnique())
		if err := tableio.Save(ctx, missingOut, missing, s.deps.Storage); err != nil {
			return fmt.Errorf("failed to save missing products: %w", err)
		}
		s.log.Info("Missing products saved", zap.String("out", missingOut), zap.Int("rows", len(missing.Rows)))
	}

	if dryRunStock {
		s.log.Info("Dry-run mode: output table was not written.")
		return nil
	}

	out := tableio.ApplyRows(p.local, p.layout, p.result.Rows)
	if err := tableio.Save(ctx, outRef, out, s.deps.Storage); err != nil {
		return fmt.Errorf("failed to save output: %w", err)
	}
	s.log.Info("Output saved", zap.String("out", outRef), zap.Int("rows", len(out.Rows)))

	return nil
}

// printReconcileReport prints a formatted reconciliation report using logger.
func printReconcileReport(l *zap.Logger, r *reconcile.Report) {
	missing := r.MissingUnique()

	l.Info("Reconciliation report",
		zap.Int("stock_changes", r.StockChanges),
		zap.Int("newly_hidden", r.HiddenCount),
		zap.Int("newly_visible", r.VisibleCount),
		zap.Int("total_visible", r.TotalVisible),
		zap.Int("missing", len(missing)),
		zap.Int("missing_excluding_bundles", len(r.MissingExcludingBundles)),
	)

	if len(r.DuplicateCodes) > 0 {
		l.Warn("Catalog has repeated product codes", zap.Int("rows", len(r.DuplicateCodes)))
	}
	if len(r.SupplierCollisions) > 0 {
		l.Warn("Supplier export has repeated keys, the last row wins", zap.Int("collisions", len(r.SupplierCollisions)))
	}

	// Show sample of missing products (max 5 for logger)
	if len(missing) > 0 {
		maxShow := 5
		if len(missing) < maxShow {
			maxShow = len(missing)
		}
		for i := 0; i < maxShow; i++ {
			row := missing[i]
			l.Info("Missing at supplier",
				zap.String("code", row.Code),
				zap.String("name", row.Name),
				zap.String("category", row.Category),
			)
		}
		if len(missing) > maxShow {
			l.Info("Additional missing products not shown", zap.Int("count", len(missing)-maxShow))
		}
	}
}
