package reconcile

import (
	"time"

	"github.com/google/uuid"
)

// PlaceholderBarcodePrefix marks barcodes generated for products first seen on a receipt.
const PlaceholderBarcodePrefix = "NOBARCODE_"

// Product is a catalog entry. Barcode is the business key.
type Product struct {
	// ID is the generated identity of the product.
	ID uuid.UUID `json:"id"`

	// Name is the display name. Receipt matching compares against it.
	Name string `json:"name"`

	// Barcode is either a scanned code or a generated placeholder.
	Barcode string `json:"barcode"`

	// Brand is the optional manufacturer or brand name.
	Brand *string `json:"brand,omitempty"`

	// Unit is the optional unit of measure (e.g. "kg", "un").
	Unit *string `json:"unit,omitempty"`

	// DefaultExpiryDays is the optional default shelf life in days.
	DefaultExpiryDays *int `json:"default_expiry_days,omitempty"`

	// ImageURL is the optional image reference.
	ImageURL *string `json:"image_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasPlaceholderBarcode reports whether the product was created from a receipt line.
func (p *Product) HasPlaceholderBarcode() bool {
	return IsPlaceholderBarcode(p.Barcode)
}

// StockLot is a quantity of a single product sharing purchase and expiry metadata.
type StockLot struct {
	// ID is the generated identity of the lot. It is never reused once the lot is removed.
	ID uuid.UUID `json:"id"`

	// ProductID is the owning product.
	ProductID uuid.UUID `json:"product_id"`

	// Quantity is a whole number of units, never negative.
	Quantity int `json:"quantity"`

	// PurchaseDate is the purchase date of the last receipt that fed this lot.
	PurchaseDate *time.Time `json:"purchase_date,omitempty"`

	// ExpiryDate is the optional lot-specific expiry date.
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`

	// ReceiptID is the last receipt that fed this lot.
	ReceiptID *uuid.UUID `json:"receipt_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReceiptLineItem is one line of a parsed fiscal receipt.
type ReceiptLineItem struct {
	// Name is the product name as printed on the receipt.
	Name string `json:"name"`

	// Quantity may be fractional for weighed goods.
	Quantity float64 `json:"quantity"`

	// UnitPrice is optional.
	UnitPrice *float64 `json:"unit_price,omitempty"`
}

// Receipt is an already-parsed purchase event. The engine never mutates it.
type Receipt struct {
	ID           uuid.UUID         `json:"id"`
	RawPayload   string            `json:"raw_payload"`
	StoreName    *string           `json:"store_name,omitempty"`
	PurchaseDate time.Time         `json:"purchase_date"`
	Items        []ReceiptLineItem `json:"items"`
	ProcessedAt  time.Time         `json:"processed_at"`
}

// ProductMeta carries display metadata used only when a scan creates a new product.
type ProductMeta struct {
	Name  *string
	Brand *string
	Unit  *string
}

// Reconciled pairs the product and lot affected by one event or receipt line.
type Reconciled struct {
	Product *Product  `json:"product"`
	Lot     *StockLot `json:"lot"`
}

// RemoveOutcome tells the caller what a removal did.
type RemoveOutcome string

const (
	// RemoveNotFound means no product with that barcode, or the product has no lot.
	RemoveNotFound RemoveOutcome = "not_found"
	// RemoveDepleted means the last unit was removed and the lot left the ledger.
	RemoveDepleted RemoveOutcome = "depleted"
	// RemoveDecremented means one unit was removed and the lot is still active.
	RemoveDecremented RemoveOutcome = "decremented"
)

// RemoveResult is the tagged result of RemoveByBarcode.
type RemoveResult struct {
	// Outcome is the variant of this result.
	Outcome RemoveOutcome `json:"outcome"`

	// Product is set unless the barcode was unknown.
	Product *Product `json:"product,omitempty"`

	// Lot is the updated lot. Only set for RemoveDecremented.
	Lot *StockLot `json:"lot,omitempty"`

	// RemovedLotID is the identity of the deleted lot. Only set for RemoveDepleted.
	RemovedLotID *uuid.UUID `json:"removed_lot_id,omitempty"`
}
