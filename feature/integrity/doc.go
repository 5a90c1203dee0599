// Package integrity provides system health checks.
//
// While the 'inventory' package applies scans and receipts, this package
// validates the infrastructure and the stored stock.
//
// # Checks Provided
//
//   - Structure: Checks if the receipt archive folders exist in the storage bucket (e.g., /receipts).
//   - Schema: Validates that the inventory tables match the GORM models (columns, types).
//   - Stock: Audits the catalog and ledger for orphan lots, negative quantities and duplicate barcodes.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /integrity/schema : Runs schema check.
//   - GET /integrity/stock : Runs stock audit.
package integrity
