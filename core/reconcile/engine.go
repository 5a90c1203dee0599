package reconcile

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// MaxLotQuantity is the largest quantity a lot can hold. Additions beyond it saturate.
const MaxLotQuantity = math.MaxInt32

// Engine applies scan and receipt events to an Inventory.
// It holds no inventory state of its own and is not safe for concurrent use
// on the same Inventory; callers serialize access per ledger.
type Engine struct {
	resolver *Resolver
	now      func() time.Time
	newID    func() uuid.UUID
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator sets the generator for product, lot and placeholder identities.
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(e *Engine) { e.newID = newID }
}

// WithNameMatcher sets the receipt name matching policy.
func WithNameMatcher(m NameMatcher) Option {
	return func(e *Engine) { e.resolver.names = m }
}

// WithLotSelector sets the lot selection policy.
func WithLotSelector(s LotSelector) Option {
	return func(e *Engine) { e.resolver.lots = s }
}

// NewEngine creates an engine with the default policies unless overridden.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		resolver: NewResolver(nil, nil),
		now:      time.Now,
		newID:    uuid.New,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Resolver exposes the engine's resolver for read-only lookups.
func (e *Engine) Resolver() *Resolver {
	return e.resolver
}

// AddByBarcode records one scanned unit. It never fails.
func (e *Engine) AddByBarcode(inv *Inventory, barcode string, meta ProductMeta) (*Product, *StockLot) {
	now := e.now()

	product := e.resolver.FindByBarcode(inv.Catalog, barcode)
	if product == nil {
		name := "Product " + barcode
		if meta.Name != nil && *meta.Name != "" {
			name = *meta.Name
		}
		product = e.newProduct(inv, name, barcode, now)
		product.Brand = meta.Brand
		product.Unit = meta.Unit
		return product, e.newLot(inv, product, 1, nil, nil, now)
	}

	product.UpdatedAt = now
	inv.changes.touchProduct(product, false)

	lot := e.resolver.FindLotByProduct(inv.Ledger, product.ID)
	if lot == nil {
		return product, e.newLot(inv, product, 1, nil, nil, now)
	}
	lot.Quantity = addUnits(lot.Quantity, 1)
	lot.UpdatedAt = now
	inv.changes.touchLot(lot, false)
	return product, lot
}

// AddByReceipt applies every line of the receipt in order and returns one pair per line.
// Later lines see products and lots created or updated by earlier ones.
func (e *Engine) AddByReceipt(inv *Inventory, receipt Receipt) []Reconciled {
	results := make([]Reconciled, 0, len(receipt.Items))
	now := e.now()

	for _, item := range receipt.Items {
		qty := TruncateQuantity(item.Quantity)
		receiptID := receipt.ID
		purchaseDate := receipt.PurchaseDate

		product := e.resolver.FindByName(inv.Catalog, item.Name)
		if product == nil {
			product = e.newProduct(inv, item.Name, e.placeholderBarcode(), now)
			lot := e.newLot(inv, product, qty, &receiptID, &purchaseDate, now)
			results = append(results, Reconciled{Product: product, Lot: lot})
			continue
		}

		product.UpdatedAt = now
		inv.changes.touchProduct(product, false)

		lot := e.resolver.FindLotByProduct(inv.Ledger, product.ID)
		if lot == nil {
			lot = e.newLot(inv, product, qty, &receiptID, &purchaseDate, now)
		} else {
			lot.Quantity = addUnits(lot.Quantity, qty)
			lot.ReceiptID = &receiptID
			lot.PurchaseDate = &purchaseDate
			lot.UpdatedAt = now
			inv.changes.touchLot(lot, false)
		}
		results = append(results, Reconciled{Product: product, Lot: lot})
	}

	return results
}

// RemoveByBarcode takes one unit out of the product's lot.
// Absence is reported through the result, never as an error.
func (e *Engine) RemoveByBarcode(inv *Inventory, barcode string) RemoveResult {
	product := e.resolver.FindByBarcode(inv.Catalog, barcode)
	if product == nil {
		return RemoveResult{Outcome: RemoveNotFound}
	}

	lot := e.resolver.FindLotByProduct(inv.Ledger, product.ID)
	if lot == nil {
		return RemoveResult{Outcome: RemoveNotFound, Product: product}
	}

	now := e.now()
	lot.Quantity--
	lot.UpdatedAt = now
	product.UpdatedAt = now
	inv.changes.touchProduct(product, false)

	if lot.Quantity <= 0 {
		inv.Ledger.Remove(lot.ID)
		inv.changes.removeLot(lot.ID)
		id := lot.ID
		return RemoveResult{Outcome: RemoveDepleted, Product: product, RemovedLotID: &id}
	}

	inv.changes.touchLot(lot, false)
	return RemoveResult{Outcome: RemoveDecremented, Product: product, Lot: lot}
}

// TruncateQuantity converts a receipt quantity to whole units, dropping the fraction.
// 0.5 becomes 0 and 2.9 becomes 2: weighed goods are undercounted.
// Negative and NaN values yield 0 so a lot never goes below zero.
// Values at or above MaxLotQuantity, +Inf included, yield MaxLotQuantity.
func TruncateQuantity(q float64) int {
	switch {
	case math.IsNaN(q) || q < 0:
		return 0
	case q >= MaxLotQuantity:
		return MaxLotQuantity
	}
	return int(math.Trunc(q))
}

// addUnits adds qty to current without exceeding MaxLotQuantity.
func addUnits(current, qty int) int {
	if qty <= 0 {
		return current
	}
	if current >= MaxLotQuantity || qty > MaxLotQuantity-current {
		return max(current, MaxLotQuantity)
	}
	return current + qty
}

func (e *Engine) placeholderBarcode() string {
	return PlaceholderBarcodePrefix + e.newID().String()
}

func (e *Engine) newProduct(inv *Inventory, name, barcode string, now time.Time) *Product {
	p := &Product{
		ID:        e.newID(),
		Name:      name,
		Barcode:   barcode,
		CreatedAt: now,
		UpdatedAt: now,
	}
	inv.Catalog.Append(p)
	inv.changes.touchProduct(p, true)
	return p
}

func (e *Engine) newLot(inv *Inventory, product *Product, qty int, receiptID *uuid.UUID, purchaseDate *time.Time, now time.Time) *StockLot {
	lot := &StockLot{
		ID:           e.newID(),
		ProductID:    product.ID,
		Quantity:     qty,
		ReceiptID:    receiptID,
		PurchaseDate: purchaseDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	inv.Ledger.Append(lot)
	inv.changes.touchLot(lot, true)
	return lot
}
