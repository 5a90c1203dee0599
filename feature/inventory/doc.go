// Package inventory implements the stock reconciliation feature.
//
// It wraps the core/reconcile engine in load-reconcile-save cycles:
//  1. Acquire the ledger lock (core/lock).
//  2. Load the catalog and ledger from the database (Repository).
//  3. Apply one scan, removal or receipt with the engine.
//  4. Save the recorded changes in one transaction.
//
// Raw receipt payloads are archived to object storage when enabled.
//
// # Components
//
//   - Repository: GORM persistence for products, stock lots and receipts,
//     scoped to one ledger. Its LockKey names the lock for that ledger.
//   - Archive: MinIO upload of raw receipt payloads under receipts/.
//   - Service: Orchestrates locking, loading, reconciliation and saving.
//   - Handler: Exposes HTTP endpoints.
//   - Loader: Registers the feature with the application.
//
// # HTTP Endpoints
//
//   - POST /inventory/scan : Add one unit by barcode.
//   - POST /inventory/remove : Remove one unit by barcode.
//   - POST /inventory/receipts : Apply a parsed receipt (supports ?dry_run=true).
//   - GET /inventory/receipts/:id : Stored receipt.
//   - GET /inventory/receipts/:id/raw : Archived raw payload.
//   - GET /inventory/products : Catalog.
//   - GET /inventory/lots : Ledger.
package inventory
