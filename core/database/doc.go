// Package database handles the optional connection to the shop database.
//
// It wraps GORM to configure a MySQL connection from the application's configuration.
// The connection is only opened when the local catalog is read straight from a table
// (a "db://table" source) instead of an exported spreadsheet.
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a table in definition order. The table source
// uses it to build the header row, which in turn drives the column detection of the
// catalog loader (e.g. the variant volume column).
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return err
//	}
//
//	columns, err := database.GetTableColumns(db, "products")
package database
