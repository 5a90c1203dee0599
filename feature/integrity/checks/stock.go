package checks

import (
	"stock-manager/core/reconcile"

	"github.com/google/uuid"
)

// StockReport lists inconsistencies found in the catalog and ledger.
type StockReport struct {
	Products            int         `json:"products"`
	Lots                int         `json:"lots"`
	PlaceholderProducts int         `json:"placeholder_products"`
	EmptyLots           []uuid.UUID `json:"empty_lots"`
	NegativeLots        []uuid.UUID `json:"negative_lots"`
	OrphanLots          []uuid.UUID `json:"orphan_lots"`
	DuplicateBarcodes   []string    `json:"duplicate_barcodes"`
	MultiLotProducts    []uuid.UUID `json:"multi_lot_products"`
	Healthy             bool        `json:"healthy"`
}

// CheckStock audits the catalog and ledger.
//
// Lots with zero units are reported but do not make the stock unhealthy:
// a receipt line below one unit creates them. Duplicate barcodes and products
// with several lots are not reachable through scans or receipts; only the
// first match is ever used for them.
func CheckStock(products []*reconcile.Product, lots []*reconcile.StockLot) *StockReport {
	report := &StockReport{
		Products:          len(products),
		Lots:              len(lots),
		EmptyLots:         []uuid.UUID{},
		NegativeLots:      []uuid.UUID{},
		OrphanLots:        []uuid.UUID{},
		DuplicateBarcodes: []string{},
		MultiLotProducts:  []uuid.UUID{},
	}

	known := make(map[uuid.UUID]bool, len(products))
	barcodes := make(map[string]int, len(products))
	for _, p := range products {
		known[p.ID] = true
		if p.HasPlaceholderBarcode() {
			report.PlaceholderProducts++
		}
		barcodes[p.Barcode]++
		if barcodes[p.Barcode] == 2 {
			report.DuplicateBarcodes = append(report.DuplicateBarcodes, p.Barcode)
		}
	}

	perProduct := make(map[uuid.UUID]int, len(lots))
	for _, lot := range lots {
		switch {
		case lot.Quantity < 0:
			report.NegativeLots = append(report.NegativeLots, lot.ID)
		case lot.Quantity == 0:
			report.EmptyLots = append(report.EmptyLots, lot.ID)
		}
		if !known[lot.ProductID] {
			report.OrphanLots = append(report.OrphanLots, lot.ID)
			continue
		}
		perProduct[lot.ProductID]++
		if perProduct[lot.ProductID] == 2 {
			report.MultiLotProducts = append(report.MultiLotProducts, lot.ProductID)
		}
	}

	report.Healthy = len(report.NegativeLots) == 0 &&
		len(report.OrphanLots) == 0 &&
		len(report.DuplicateBarcodes) == 0
	return report
}
