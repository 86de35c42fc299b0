package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"stock-checker/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report catalog and supplier data problems without writing anything",
	Long: `Runs a reconciliation in memory and reports products missing at the supplier,
catalog rows whose code is unknown to the supplier, repeated catalog codes and
repeated supplier keys. Outputs metrics by default or a detailed JSON file with --json.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&localRef, "local", "", "Local catalog source (required)")
	checkCmd.Flags().StringVar(&supplierRef, "supplier", "", "Supplier stock source (required)")
	checkCmd.Flags().Bool("json", false, "Save the detailed findings as JSON")
	_ = checkCmd.MarkFlagRequired("local")
	_ = checkCmd.MarkFlagRequired("supplier")

	RootCmd.AddCommand(checkCmd)
}

// checkSummary lists the data problems found in one pass.
type checkSummary struct {
	Status                  string                 `json:"status"`
	Rows                    int                    `json:"rows"`
	SupplierCodes           int                    `json:"supplier_codes"`
	SupplierNames           int                    `json:"supplier_names"`
	Missing                 []reconcile.ProductRow `json:"missing"`
	MissingExcludingBundles []reconcile.ProductRow `json:"missing_excluding_bundles"`
	UnmatchedByCode         []reconcile.ProductRow `json:"unmatched_by_code"`
	DuplicateCodes          []reconcile.ProductRow `json:"duplicate_codes"`
	SupplierCollisions      []reconcile.Collision  `json:"supplier_collisions"`
}

func summarizeCheck(p *pass) checkSummary {
	r := p.result.Report
	codes, names := p.result.Index.Len()

	s := checkSummary{
		Status:                  "PASS",
		Rows:                    len(p.result.Rows),
		SupplierCodes:           codes,
		SupplierNames:           names,
		Missing:                 r.MissingUnique(),
		MissingExcludingBundles: r.MissingExcludingBundles,
		UnmatchedByCode:         r.UnmatchedByCode,
		DuplicateCodes:          r.DuplicateCodes,
		SupplierCollisions:      r.SupplierCollisions,
	}
	if len(s.Missing) > 0 || len(s.UnmatchedByCode) > 0 {
		s.Status = "WARNING"
	}
	if len(s.DuplicateCodes) > 0 || len(s.SupplierCollisions) > 0 {
		s.Status = "FAIL"
	}
	return s
}

func runCheck(cmd *cobra.Command, args []string) error {
	startTime := time.Now()
	jsonOutput, _ := cmd.Flags().GetBool("json")

	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.log.Sync()

	p, err := s.run(cmd.Context(), localRef, supplierRef)
	if err != nil {
		return err
	}

	summary := summarizeCheck(p)

	var filename string
	if jsonOutput {
		filename = fmt.Sprintf("check_%d.json", time.Now().Unix())
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		if err := os.WriteFile(filename, data, 0644); err != nil {
			return fmt.Errorf("failed to save JSON file: %w", err)
		}
		s.log.Info("Detailed JSON report saved", zap.String("file", filename))
	}

	executionTime := time.Since(startTime)

	// Always display metrics
	fmt.Println("\n=== Stock Data Check ===")
	fmt.Printf("Status: %s\n", summary.Status)
	fmt.Printf("Catalog Rows: %d\n", summary.Rows)
	fmt.Printf("Supplier Codes: %d\n", summary.SupplierCodes)
	fmt.Printf("Supplier Names: %d\n", summary.SupplierNames)
	fmt.Printf("Missing At Supplier: %d (%d without gift boxes)\n", len(summary.Missing), len(summary.MissingExcludingBundles))
	fmt.Printf("Unknown Codes: %d\n", len(summary.UnmatchedByCode))
	fmt.Printf("Repeated Catalog Codes: %d\n", len(summary.DuplicateCodes))
	fmt.Printf("Repeated Supplier Keys: %d\n", len(summary.SupplierCollisions))
	fmt.Printf("Execution Time: %s\n", executionTime.String())
	if filename != "" {
		fmt.Printf("\nDetailed JSON saved to: %s\n", filename)
	}

	s.log.Info("Stock data check completed",
		zap.String("status", summary.Status),
		zap.Int("rows", summary.Rows),
		zap.Int("missing", len(summary.Missing)),
		zap.Int("unmatched_by_code", len(summary.UnmatchedByCode)),
		zap.Int("duplicate_codes", len(summary.DuplicateCodes)),
		zap.Int("supplier_collisions", len(summary.SupplierCollisions)),
		zap.Duration("execution_time", executionTime),
	)
	return nil
}
