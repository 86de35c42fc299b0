// Package reconcile reconciles a local product catalog against a supplier stock export.
//
// A run takes two already-coerced row sets and never performs I/O:
//   - the supplier rows are indexed by exact code and by normalized name
//   - every local row resolves its supplier stock (code first, name second)
//   - stock is copied over and visibility recomputed from the configured thresholds
//   - "mix your own gift box" variants inherit stock and visibility from the product they share a name with
//   - rows without a supplier counterpart are hidden and reported as missing
//
// # Visibility snapshot
//
// The visibility of every row is captured before the pass starts. A change is only
// reported when the final value differs from that snapshot, no matter how many times
// a row was touched by cascades from other rows. HiddenCount and VisibleCount are
// therefore deduplicated per row: each row adds at most one to one of them.
//
// # Thresholds
//
// Non-bundle rows are hidden when their resolved stock is at or below MinStockToShow.
// Bundle variants use a per size class threshold, the size class being the first
// digit 1-4 of the variant volume column (class 4 when there is none).
//
// # Usage
//
//	opts := reconcile.DefaultOptions()
//	result := reconcile.Run(localRows, supplierRows, opts)
//	fmt.Println(result.Report.StockChanges, len(result.Report.MissingProducts))
package reconcile
