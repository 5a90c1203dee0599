package inventory

import (
	"time"

	"stock-manager/core/reconcile"

	"github.com/google/uuid"
)

// ProductRecord is the 'products' table.
type ProductRecord struct {
	ID                string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	Ledger            string    `gorm:"column:ledger;type:varchar(64);not null;default:'default';index"`
	Seq               int64     `gorm:"column:seq;index"`
	Name              string    `gorm:"column:name;type:varchar(255);not null;index"`
	Barcode           string    `gorm:"column:barcode;type:varchar(64);not null;index"`
	Brand             *string   `gorm:"column:brand;type:varchar(255)"`
	Unit              *string   `gorm:"column:unit;type:varchar(32)"`
	DefaultExpiryDays *int      `gorm:"column:default_expiry_days"`
	ImageURL          *string   `gorm:"column:image_url;type:varchar(512)"`
	CreatedAt         time.Time `gorm:"column:created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
}

// TableName overrides the table name.
func (ProductRecord) TableName() string {
	return "products"
}

// StockLotRecord is the 'stock_lots' table.
type StockLotRecord struct {
	ID           string     `gorm:"column:id;primaryKey;type:varchar(36)"`
	Ledger       string     `gorm:"column:ledger;type:varchar(64);not null;default:'default';index"`
	Seq          int64      `gorm:"column:seq;index"`
	ProductID    string     `gorm:"column:product_id;type:varchar(36);not null;index"`
	Quantity     int        `gorm:"column:quantity;not null"`
	PurchaseDate *time.Time `gorm:"column:purchase_date"`
	ExpiryDate   *time.Time `gorm:"column:expiry_date"`
	ReceiptID    *string    `gorm:"column:receipt_id;type:varchar(36)"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

// TableName overrides the table name.
func (StockLotRecord) TableName() string {
	return "stock_lots"
}

// ReceiptRecord is the 'receipts' table.
type ReceiptRecord struct {
	ID           string              `gorm:"column:id;primaryKey;type:varchar(36)"`
	Ledger       string              `gorm:"column:ledger;type:varchar(64);not null;default:'default';index"`
	RawPayload   string              `gorm:"column:raw_payload;type:text"`
	StoreName    *string             `gorm:"column:store_name;type:varchar(255)"`
	PurchaseDate time.Time           `gorm:"column:purchase_date"`
	ProcessedAt  time.Time           `gorm:"column:processed_at"`
	Lines        []ReceiptLineRecord `gorm:"foreignKey:ReceiptID;references:ID"`
}

// TableName overrides the table name.
func (ReceiptRecord) TableName() string {
	return "receipts"
}

// ReceiptLineRecord is the 'receipt_lines' table.
type ReceiptLineRecord struct {
	ID        uint     `gorm:"column:id;primaryKey;autoIncrement"`
	ReceiptID string   `gorm:"column:receipt_id;type:varchar(36);not null;index"`
	Position  int      `gorm:"column:position;not null"`
	Name      string   `gorm:"column:name;type:varchar(255);not null"`
	Quantity  float64  `gorm:"column:quantity;not null"`
	UnitPrice *float64 `gorm:"column:unit_price"`
}

// TableName overrides the table name.
func (ReceiptLineRecord) TableName() string {
	return "receipt_lines"
}

// Models lists every table of the feature, in migration order.
func Models() []any {
	return []any{&ProductRecord{}, &StockLotRecord{}, &ReceiptRecord{}, &ReceiptLineRecord{}}
}

func productFromRecord(r ProductRecord) (*reconcile.Product, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, err
	}
	return &reconcile.Product{
		ID:                id,
		Name:              r.Name,
		Barcode:           r.Barcode,
		Brand:             r.Brand,
		Unit:              r.Unit,
		DefaultExpiryDays: r.DefaultExpiryDays,
		ImageURL:          r.ImageURL,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}, nil
}

func productToRecord(p *reconcile.Product) ProductRecord {
	return ProductRecord{
		ID:                p.ID.String(),
		Name:              p.Name,
		Barcode:           p.Barcode,
		Brand:             p.Brand,
		Unit:              p.Unit,
		DefaultExpiryDays: p.DefaultExpiryDays,
		ImageURL:          p.ImageURL,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func lotFromRecord(r StockLotRecord) (*reconcile.StockLot, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, err
	}
	productID, err := uuid.Parse(r.ProductID)
	if err != nil {
		return nil, err
	}
	lot := &reconcile.StockLot{
		ID:           id,
		ProductID:    productID,
		Quantity:     r.Quantity,
		PurchaseDate: r.PurchaseDate,
		ExpiryDate:   r.ExpiryDate,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if r.ReceiptID != nil {
		receiptID, err := uuid.Parse(*r.ReceiptID)
		if err != nil {
			return nil, err
		}
		lot.ReceiptID = &receiptID
	}
	return lot, nil
}

func lotToRecord(l *reconcile.StockLot) StockLotRecord {
	rec := StockLotRecord{
		ID:           l.ID.String(),
		ProductID:    l.ProductID.String(),
		Quantity:     l.Quantity,
		PurchaseDate: l.PurchaseDate,
		ExpiryDate:   l.ExpiryDate,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
	if l.ReceiptID != nil {
		s := l.ReceiptID.String()
		rec.ReceiptID = &s
	}
	return rec
}

func receiptToRecord(r *reconcile.Receipt) ReceiptRecord {
	rec := ReceiptRecord{
		ID:           r.ID.String(),
		RawPayload:   r.RawPayload,
		StoreName:    r.StoreName,
		PurchaseDate: r.PurchaseDate,
		ProcessedAt:  r.ProcessedAt,
		Lines:        make([]ReceiptLineRecord, 0, len(r.Items)),
	}
	for i, item := range r.Items {
		rec.Lines = append(rec.Lines, ReceiptLineRecord{
			ReceiptID: rec.ID,
			Position:  i,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return rec
}

func receiptFromRecord(r ReceiptRecord) (*reconcile.Receipt, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, err
	}
	receipt := &reconcile.Receipt{
		ID:           id,
		RawPayload:   r.RawPayload,
		StoreName:    r.StoreName,
		PurchaseDate: r.PurchaseDate,
		ProcessedAt:  r.ProcessedAt,
		Items:        make([]reconcile.ReceiptLineItem, 0, len(r.Lines)),
	}
	for _, line := range r.Lines {
		receipt.Items = append(receipt.Items, reconcile.ReceiptLineItem{
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}
	return receipt, nil
}
