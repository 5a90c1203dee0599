package server

import "regexp"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// JWTSecret signs and verifies bearer tokens. Empty disables token auth.
	JWTSecret string `mapstructure:"jwt_secret" default:""`
	// Ledger names the inventory this instance reconciles. Rows and the ledger lock are scoped to it.
	Ledger string `mapstructure:"ledger" default:"default"`
}

var ledgerName = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,62}$`)

// IsValidLedger checks if the configured ledger name is usable as a lock key segment.
func (c Config) IsValidLedger() bool {
	return ledgerName.MatchString(c.Ledger)
}
