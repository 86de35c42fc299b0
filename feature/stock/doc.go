// Package stock exposes stock reconciliation over HTTP.
//
// # Endpoints
//
//   - POST /stock/reconcile: multipart upload of the local catalog ("local") and the
//     supplier export ("supplier" file or "supplier_ref" URL). Returns vystup.xlsx with
//     the summary counts in X-Stock-* headers, or the full report with ?format=json.
//   - GET /stock/config: the effective thresholds, ignored codes and bundle categories.
//
// Form fields min_stock and threshold_1..threshold_4 override the configured
// thresholds for one request.
package stock
