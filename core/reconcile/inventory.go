package reconcile

import (
	"github.com/google/uuid"
)

// Catalog is the ordered collection of known products.
// Order matters: lookups return the first match.
type Catalog struct {
	products []*Product
}

// NewCatalog creates a catalog holding the given products in order.
func NewCatalog(products ...*Product) *Catalog {
	return &Catalog{products: append([]*Product(nil), products...)}
}

// Append adds a product at the end of the catalog.
func (c *Catalog) Append(p *Product) {
	c.products = append(c.products, p)
}

// All returns the products in catalog order. The slice must not be modified.
func (c *Catalog) All() []*Product {
	return c.products
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Ledger is the ordered collection of stock lots.
type Ledger struct {
	lots []*StockLot
}

// NewLedger creates a ledger holding the given lots in order.
func NewLedger(lots ...*StockLot) *Ledger {
	return &Ledger{lots: append([]*StockLot(nil), lots...)}
}

// Append adds a lot at the end of the ledger.
func (l *Ledger) Append(lot *StockLot) {
	l.lots = append(l.lots, lot)
}

// Remove deletes the lot with the given ID, preserving the order of the rest.
// It returns false if no such lot exists.
func (l *Ledger) Remove(id uuid.UUID) bool {
	for i, lot := range l.lots {
		if lot.ID == id {
			l.lots = append(l.lots[:i], l.lots[i+1:]...)
			return true
		}
	}
	return false
}

// All returns the lots in ledger order. The slice must not be modified.
func (l *Ledger) All() []*StockLot {
	return l.lots
}

// Len returns the number of lots.
func (l *Ledger) Len() int {
	return len(l.lots)
}

// Inventory is the scoped handle an engine call works on.
// The caller owns it exclusively for the duration of the call and persists
// the recorded Changes afterwards.
type Inventory struct {
	Catalog *Catalog
	Ledger  *Ledger

	changes Changes
}

// NewInventory wraps a catalog and ledger. Nil arguments become empty collections.
func NewInventory(catalog *Catalog, ledger *Ledger) *Inventory {
	if catalog == nil {
		catalog = NewCatalog()
	}
	if ledger == nil {
		ledger = NewLedger()
	}
	return &Inventory{
		Catalog: catalog,
		Ledger:  ledger,
		changes: newChanges(),
	}
}

// Changes returns the mutations recorded since the inventory was created or last reset.
func (inv *Inventory) Changes() *Changes {
	return &inv.changes
}

// ResetChanges clears the change set, typically after a successful save.
func (inv *Inventory) ResetChanges() {
	inv.changes = newChanges()
}

// Changes is the delta produced by engine calls on an Inventory.
type Changes struct {
	// Products holds created or touched products in first-touch order.
	Products []*Product
	// Lots holds created or updated lots that are still in the ledger.
	Lots []*StockLot
	// RemovedLots holds IDs of lots that left the ledger.
	RemovedLots []uuid.UUID

	CreatedProducts int
	CreatedLots     int

	seenProducts map[uuid.UUID]struct{}
	seenLots     map[uuid.UUID]struct{}
}

func newChanges() Changes {
	return Changes{
		seenProducts: make(map[uuid.UUID]struct{}),
		seenLots:     make(map[uuid.UUID]struct{}),
	}
}

// IsEmpty reports whether nothing was mutated.
func (c *Changes) IsEmpty() bool {
	return len(c.Products) == 0 && len(c.Lots) == 0 && len(c.RemovedLots) == 0
}

func (c *Changes) touchProduct(p *Product, created bool) {
	if created {
		c.CreatedProducts++
	}
	if _, ok := c.seenProducts[p.ID]; ok {
		return
	}
	c.seenProducts[p.ID] = struct{}{}
	c.Products = append(c.Products, p)
}

func (c *Changes) touchLot(lot *StockLot, created bool) {
	if created {
		c.CreatedLots++
	}
	if _, ok := c.seenLots[lot.ID]; ok {
		return
	}
	c.seenLots[lot.ID] = struct{}{}
	c.Lots = append(c.Lots, lot)
}

func (c *Changes) removeLot(id uuid.UUID) {
	if _, ok := c.seenLots[id]; ok {
		delete(c.seenLots, id)
		for i, lot := range c.Lots {
			if lot.ID == id {
				c.Lots = append(c.Lots[:i], c.Lots[i+1:]...)
				break
			}
		}
	}
	c.RemovedLots = append(c.RemovedLots, id)
}
