// Package tableio loads and saves the tabular catalog exports around a reconciliation run.
//
// Tables are kept as raw string cells with a header row. Typed rows for the
// reconcile package are produced once at ingestion (LocalRows, SupplierRows) and
// the results are written back into a copy of the original table (ApplyRows), so
// the emitted file keeps every column, the row count and the row order.
//
// # Sources
//
//   - FileSource: local .xlsx or .csv file
//   - HTTPSource: download with retries (http:// and https:// references)
//   - StorageSource: object storage (s3://bucket/object, or s3://bucket/prefix/ for the newest object)
//   - DBSource: a shop database table (db://table)
//
// Every fetch failure wraps ErrInputUnavailable.
package tableio
