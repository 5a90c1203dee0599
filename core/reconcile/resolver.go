package reconcile

import (
	"strings"

	"github.com/google/uuid"
)

// NameMatcher decides whether a receipt line name refers to a catalog product name.
type NameMatcher interface {
	Match(productName, receiptName string) bool
}

// NameMatcherFunc adapts a function to NameMatcher.
type NameMatcherFunc func(productName, receiptName string) bool

// Match implements NameMatcher.
func (f NameMatcherFunc) Match(productName, receiptName string) bool {
	return f(productName, receiptName)
}

// EqualFoldMatcher matches names that are equal under Unicode case folding.
// No trimming, tokenization or partial matching.
var EqualFoldMatcher NameMatcher = NameMatcherFunc(strings.EqualFold)

// TrimmedFoldMatcher additionally trims and collapses whitespace before comparing.
// Enabling it changes which receipt lines merge into existing products.
var TrimmedFoldMatcher NameMatcher = NameMatcherFunc(func(productName, receiptName string) bool {
	return strings.EqualFold(collapseSpaces(productName), collapseSpaces(receiptName))
})

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// LotSelector picks "the" lot of a product when the ledger holds several.
type LotSelector interface {
	Select(candidates []*StockLot) *StockLot
}

// LotSelectorFunc adapts a function to LotSelector.
type LotSelectorFunc func(candidates []*StockLot) *StockLot

// Select implements LotSelector.
func (f LotSelectorFunc) Select(candidates []*StockLot) *StockLot {
	return f(candidates)
}

// FirstLotSelector picks the first lot in ledger order.
var FirstLotSelector LotSelector = LotSelectorFunc(func(candidates []*StockLot) *StockLot {
	if len(candidates) == 0 {
		return nil
	}
	return candidates[0]
})

// EarliestExpirySelector picks the lot expiring first (FEFO).
// Lots without an expiry date come last; ties keep ledger order.
var EarliestExpirySelector LotSelector = LotSelectorFunc(func(candidates []*StockLot) *StockLot {
	var best *StockLot
	for _, lot := range candidates {
		switch {
		case best == nil:
			best = lot
		case lot.ExpiryDate == nil:
		case best.ExpiryDate == nil || lot.ExpiryDate.Before(*best.ExpiryDate):
			best = lot
		}
	}
	return best
})

// Resolver finds catalog and ledger entries for incoming signals.
type Resolver struct {
	names NameMatcher
	lots  LotSelector
}

// NewResolver creates a resolver. Nil policies fall back to EqualFoldMatcher and FirstLotSelector.
func NewResolver(names NameMatcher, lots LotSelector) *Resolver {
	if names == nil {
		names = EqualFoldMatcher
	}
	if lots == nil {
		lots = FirstLotSelector
	}
	return &Resolver{names: names, lots: lots}
}

// FindByBarcode returns the first product whose barcode equals barcode exactly.
func (r *Resolver) FindByBarcode(catalog *Catalog, barcode string) *Product {
	for _, p := range catalog.All() {
		if p.Barcode == barcode {
			return p
		}
	}
	return nil
}

// FindByName returns the first product, in catalog order, whose name matches.
// First match wins; this is a simple tie-break, not a best-match search.
func (r *Resolver) FindByName(catalog *Catalog, name string) *Product {
	for _, p := range catalog.All() {
		if r.names.Match(p.Name, name) {
			return p
		}
	}
	return nil
}

// FindLotByProduct returns the lot selected for the product, or nil if it has none.
func (r *Resolver) FindLotByProduct(ledger *Ledger, productID uuid.UUID) *StockLot {
	var candidates []*StockLot
	for _, lot := range ledger.All() {
		if lot.ProductID == productID {
			candidates = append(candidates, lot)
		}
	}
	return r.lots.Select(candidates)
}

// IsPlaceholderBarcode reports whether barcode was generated rather than scanned.
func IsPlaceholderBarcode(barcode string) bool {
	return strings.HasPrefix(barcode, PlaceholderBarcodePrefix)
}
