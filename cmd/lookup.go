package cmd

import (
	"fmt"
	"strings"

	"stock-checker/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// lookupCmd represents the lookup command
var lookupCmd = &cobra.Command{
	Use:   "lookup [code or name]",
	Short: "Show how a catalog product is matched and reconciled",
	Long: `Runs a reconciliation in memory and prints, for every catalog row with the given
code or name, the supplier match, the threshold applied and the resulting stock and visibility.`,
	Args: cobra.ExactArgs(1),
	RunE: runLookup,
}

func init() {
	lookupCmd.Flags().StringVar(&localRef, "local", "", "Local catalog source (required)")
	lookupCmd.Flags().StringVar(&supplierRef, "supplier", "", "Supplier stock source (required)")
	_ = lookupCmd.MarkFlagRequired("local")
	_ = lookupCmd.MarkFlagRequired("supplier")

	RootCmd.AddCommand(lookupCmd)
}

// productDetail describes how one catalog row was reconciled.
type productDetail struct {
	Row              int
	Code             string
	Name             string
	Normalized       string
	Category         string
	Bundle           bool
	SizeClass        reconcile.SizeClass
	Threshold        int
	MatchedBy        string
	SupplierStock    int
	StockBefore      int
	StockAfter       int
	VisibilityBefore string
	VisibilityAfter  string
	Missing          bool
}

func runLookup(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.log.Sync()

	p, err := s.run(cmd.Context(), localRef, supplierRef)
	if err != nil {
		return err
	}

	details := findProducts(p, s.opts, args[0])
	if len(details) == 0 {
		s.log.Warn("No catalog row matches", zap.String("query", args[0]))
		return nil
	}

	for _, d := range details {
		printProductDetail(d)
	}
	return nil
}

// findProducts returns the rows whose code equals query or whose normalized name equals the normalized query.
func findProducts(p *pass, opts reconcile.Options, query string) []productDetail {
	code := strings.TrimSpace(query)
	name := reconcile.NormalizeName(query)

	missing := make(map[int]bool, len(p.result.Report.MissingProducts))
	for _, row := range p.result.Report.MissingProducts {
		missing[row.Index] = true
	}

	var out []productDetail
	for i, before := range p.before {
		normalized := reconcile.NormalizeName(before.Name)
		if before.Code != code && (name == "" || normalized != name) {
			continue
		}

		after := p.result.Rows[i]
		d := productDetail{
			Row:              i,
			Code:             before.Code,
			Name:             before.Name,
			Normalized:       normalized,
			Category:         before.Category,
			Bundle:           opts.IsBundle(before.Category),
			Threshold:        opts.Thresholds.MinStockToShow,
			StockBefore:      before.Stock,
			StockAfter:       after.Stock,
			VisibilityBefore: before.Visibility,
			VisibilityAfter:  after.Visibility,
			Missing:          missing[i],
		}
		if d.Bundle {
			d.SizeClass = reconcile.ClassifyVolume(before.VariantVolume)
			d.Threshold = opts.Thresholds.BundleThreshold(d.SizeClass)
		}

		switch {
		case opts.Ignore.Contains(before.Code):
			d.MatchedBy = "ignored"
		default:
			if stock, ok := p.result.Index.ByCode(before.Code); ok {
				d.MatchedBy, d.SupplierStock = "code", stock
			} else if stock, ok := p.result.Index.ByName(before.Name); ok {
				d.MatchedBy, d.SupplierStock = "name", stock
			} else {
				d.MatchedBy = "none"
			}
		}

		out = append(out, d)
	}
	return out
}

func printProductDetail(d productDetail) {
	fmt.Println("\n--- Product Detail View ---")
	fmt.Printf("Row:            %d\n", d.Row+1)
	fmt.Printf("Code:           %s\n", d.Code)
	fmt.Printf("Name:           %s\n", d.Name)
	fmt.Printf("Normalized:     %s\n", d.Normalized)
	fmt.Printf("Category:       %s\n", d.Category)
	if d.Bundle {
		fmt.Printf("Gift box:       size class %s\n", d.SizeClass)
	}
	fmt.Println("---------------------------")
	fmt.Printf("Matched by:     %s\n", d.MatchedBy)
	if d.MatchedBy == "code" || d.MatchedBy == "name" {
		fmt.Printf("Supplier stock: %d\n", d.SupplierStock)
	}
	fmt.Printf("Threshold:      %d\n", d.Threshold)
	fmt.Printf("Stock:          %d -> %d\n", d.StockBefore, d.StockAfter)

	visColor := "\033[32m" // Green
	if reconcile.ParseVisibility(d.VisibilityAfter) == reconcile.Hidden {
		visColor = "\033[33m" // Yellow
	}
	if d.Missing {
		visColor = "\033[31m" // Red
	}
	resetColor := "\033[0m"

	fmt.Printf("Visibility:     %s -> %s%s%s\n", d.VisibilityBefore, visColor, d.VisibilityAfter, resetColor)
	if d.Missing {
		fmt.Println("Missing at supplier")
	}
	fmt.Println("---------------------------")
}
