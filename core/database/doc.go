// Package database handles database connections and schema inspection.
//
// It wraps GORM to open MySQL or PostgreSQL (production) or SQLite (single-node
// deployments and tests) based on the application's configuration.
//
// # Connect
//
// Connect opens the configured driver, applies pool settings and verifies the
// connection with a bounded ping. SQLite connections are limited to a single
// open connection so in-memory databases are shared.
//
// # Schema Inspection
//
// GetTableColumns lists a table's columns. The integrity feature uses it to
// verify that the stock tables match the GORM models.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "stock_lots")
package database
