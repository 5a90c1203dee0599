// Package server holds the HTTP server configuration.
//
// While the start command handles the server startup, this package defines the
// configuration structure and its validation: the listen port, the API key and
// the ledger name that scopes the ledger lock.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server
// settings and by the inventory feature to derive its lock key.
package server
