// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to configure
// MySQL (production) or SQLite (local runs, tests) connections from the
// application's configuration.
//
// # Connect
//
// Connect opens the configured driver, sets pool limits and pings the server
// within the configured timeout. In-memory SQLite databases are pinned to a
// single connection.
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a table. The integrity feature compares
// them against the pipeline's models to detect a schema that drifted from the
// migrations.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "monsters")
package database
