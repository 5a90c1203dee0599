// Package config provides configuration management for the stock manager.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file (via godotenv). Defaults come from the `default` struct
// tags of each section.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key, ledger name
//   - Database: driver (mysql, sqlite) and connection details
//   - Storage: S3/MinIO receipt archive
//   - Log: level and format
//   - Lock: ledger lock backend (memory, redis)
//   - Reconcile: name matching and lot selection policies
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
