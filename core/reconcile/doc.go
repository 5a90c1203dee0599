// Package reconcile implements the stock reconciliation engine.
//
// It decides, for every incoming signal, whether the signal refers to a known
// product, whether that product already has an open stock lot, and how
// quantities and timestamps change as a result.
//
// # Architecture
//
// The package consists of three parts:
//
// 1. Collections: Catalog (products) and Ledger (stock lots), wrapped by an
// Inventory handle that the caller owns exclusively during one engine call.
// The Inventory records every mutation in a Changes set so a repository can
// persist only the delta.
//
// 2. Resolver: identity lookups. Barcodes match exactly; receipt names go
// through a NameMatcher (case-insensitive equality by default) and lots
// through a LotSelector (first in ledger order by default).
//
// 3. Engine: the three operations.
//   - AddByBarcode: one scanned unit; creates the product and/or lot on first sight.
//   - AddByReceipt: every receipt line in order; fractional quantities are truncated.
//   - RemoveByBarcode: one unit out; a lot reaching zero leaves the ledger.
//
// # Failure model
//
// No operation returns an error. Absence is a value: RemoveByBarcode returns a
// RemoveResult tagged NotFound, Depleted or Decremented.
//
// # Usage Example
//
//	engine := reconcile.NewEngine()
//	inv := reconcile.NewInventory(catalog, ledger)
//
//	product, lot := engine.AddByBarcode(inv, "7891000100103", reconcile.ProductMeta{})
//	results := engine.AddByReceipt(inv, receipt)
//	res := engine.RemoveByBarcode(inv, "7891000100103")
//
//	// Persist inv.Changes(), then inv.ResetChanges().
package reconcile
