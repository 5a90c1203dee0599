package reconcile

// Summary provides aggregate counts for the changes of one reconciliation.
type Summary struct {
	// ProductsCreated counts products added to the catalog.
	ProductsCreated int `json:"products_created"`

	// ProductsTouched counts distinct products created or stamped.
	ProductsTouched int `json:"products_touched"`

	// LotsCreated counts lots added to the ledger.
	LotsCreated int `json:"lots_created"`

	// LotsUpdated counts distinct lots created or changed that are still active.
	LotsUpdated int `json:"lots_updated"`

	// LotsRemoved counts lots that reached zero and left the ledger.
	LotsRemoved int `json:"lots_removed"`

	// UnitsOnHand is the total quantity across the ledger afterwards.
	UnitsOnHand int `json:"units_on_hand"`
}

// Summarize builds a Summary from the inventory and its recorded changes.
func Summarize(inv *Inventory) Summary {
	c := inv.Changes()
	s := Summary{
		ProductsCreated: c.CreatedProducts,
		ProductsTouched: len(c.Products),
		LotsCreated:     c.CreatedLots,
		LotsUpdated:     len(c.Lots),
		LotsRemoved:     len(c.RemovedLots),
	}
	for _, lot := range inv.Ledger.All() {
		s.UnitsOnHand += lot.Quantity
	}
	return s
}
