package inventory

import (
	"context"
	"errors"
	"fmt"

	"stock-manager/core/reconcile"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultLedger is used when no ledger name is given.
const DefaultLedger = "default"

// Repository persists the catalog, ledger and receipts of one named ledger with GORM.
// Several ledgers can share a database; every row carries its ledger name.
type Repository struct {
	db     *gorm.DB
	ledger string
}

// NewRepository creates a repository for ledger on db.
func NewRepository(db *gorm.DB, ledger string) *Repository {
	if ledger == "" {
		ledger = DefaultLedger
	}
	return &Repository{db: db, ledger: ledger}
}

// Ledger returns the ledger name rows are scoped to.
func (r *Repository) Ledger() string {
	return r.ledger
}

// LockKey returns the lock key guarding this ledger. Writers to the same ledger
// share it whatever their configuration.
func (r *Repository) LockKey() string {
	return "ledger:" + r.ledger
}

func (r *Repository) scoped(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Where("ledger = ?", r.ledger)
}

// DB returns the underlying connection.
func (r *Repository) DB() *gorm.DB {
	return r.db
}

// Migrate creates or upgrades the feature's tables.
func (r *Repository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate inventory tables: %w", err)
	}
	return nil
}

// Load reads the whole catalog and ledger into a fresh Inventory.
// Both collections are ordered by insertion sequence so first-match lookups are stable.
func (r *Repository) Load(ctx context.Context) (*reconcile.Inventory, error) {
	var (
		products []*reconcile.Product
		lots     []*reconcile.StockLot
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		products, err = r.ListProducts(gctx)
		return err
	})

	g.Go(func() error {
		var err error
		lots, err = r.ListLots(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return reconcile.NewInventory(reconcile.NewCatalog(products...), reconcile.NewLedger(lots...)), nil
}

// ListProducts returns every product in catalog order.
func (r *Repository) ListProducts(ctx context.Context) ([]*reconcile.Product, error) {
	var records []ProductRecord
	if err := r.scoped(ctx).Order("seq, id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	products := make([]*reconcile.Product, 0, len(records))
	for _, rec := range records {
		p, err := productFromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("invalid product %s: %w", rec.ID, err)
		}
		products = append(products, p)
	}
	return products, nil
}

// ListLots returns every lot in ledger order.
func (r *Repository) ListLots(ctx context.Context) ([]*reconcile.StockLot, error) {
	var records []StockLotRecord
	if err := r.scoped(ctx).Order("seq, id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load stock lots: %w", err)
	}

	lots := make([]*reconcile.StockLot, 0, len(records))
	for _, rec := range records {
		lot, err := lotFromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("invalid stock lot %s: %w", rec.ID, err)
		}
		lots = append(lots, lot)
	}
	return lots, nil
}

// GetReceipt returns a stored receipt with its lines in receipt order.
func (r *Repository) GetReceipt(ctx context.Context, id uuid.UUID) (*reconcile.Receipt, error) {
	var rec ReceiptRecord
	err := r.scoped(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&rec, "id = ?", id.String()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReceiptNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load receipt %s: %w", id, err)
	}
	return receiptFromRecord(rec)
}

// Save persists the inventory's recorded changes and, when given, the receipt
// that produced them, in one transaction.
func (r *Repository) Save(ctx context.Context, inv *reconcile.Inventory, receipt *reconcile.Receipt) error {
	changes := inv.Changes()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if receipt != nil {
			var n int64
			if err := tx.Model(&ReceiptRecord{}).Where("id = ?", receipt.ID.String()).Count(&n).Error; err != nil {
				return fmt.Errorf("failed to check receipt: %w", err)
			}
			if n > 0 {
				return fmt.Errorf("%w: %s", ErrDuplicateReceipt, receipt.ID)
			}
			rec := receiptToRecord(receipt)
			rec.Ledger = r.ledger
			if err := tx.Create(&rec).Error; err != nil {
				return fmt.Errorf("failed to save receipt: %w", err)
			}
		}

		if len(changes.Products) > 0 {
			seq, err := maxSeq(tx, &ProductRecord{})
			if err != nil {
				return err
			}
			records := make([]ProductRecord, 0, len(changes.Products))
			for i, p := range changes.Products {
				rec := productToRecord(p)
				rec.Ledger = r.ledger
				rec.Seq = seq + int64(i) + 1
				records = append(records, rec)
			}
			// Existing rows keep their seq; only mutable fields are updated.
			err = tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"name", "barcode", "brand", "unit", "default_expiry_days", "image_url", "updated_at"}),
			}).Create(&records).Error
			if err != nil {
				return fmt.Errorf("failed to save products: %w", err)
			}
		}

		if len(changes.Lots) > 0 {
			seq, err := maxSeq(tx, &StockLotRecord{})
			if err != nil {
				return err
			}
			records := make([]StockLotRecord, 0, len(changes.Lots))
			for i, lot := range changes.Lots {
				rec := lotToRecord(lot)
				rec.Ledger = r.ledger
				rec.Seq = seq + int64(i) + 1
				records = append(records, rec)
			}
			err = tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"quantity", "purchase_date", "expiry_date", "receipt_id", "updated_at"}),
			}).Create(&records).Error
			if err != nil {
				return fmt.Errorf("failed to save stock lots: %w", err)
			}
		}

		if len(changes.RemovedLots) > 0 {
			ids := make([]string, 0, len(changes.RemovedLots))
			for _, id := range changes.RemovedLots {
				ids = append(ids, id.String())
			}
			if err := tx.Where("ledger = ? AND id IN ?", r.ledger, ids).Delete(&StockLotRecord{}).Error; err != nil {
				return fmt.Errorf("failed to delete stock lots: %w", err)
			}
		}

		return nil
	})
}

func maxSeq(tx *gorm.DB, model any) (int64, error) {
	var seq int64
	if err := tx.Model(model).Select("COALESCE(MAX(seq), 0)").Scan(&seq).Error; err != nil {
		return 0, fmt.Errorf("failed to read sequence: %w", err)
	}
	return seq, nil
}
