package inventory

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"stock-manager/core/lock"
	"stock-manager/core/metrics"
	"stock-manager/core/reconcile"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxBarcodeLength = 64

// Service runs load-reconcile-save cycles under the ledger lock.
type Service struct {
	repo    *Repository
	engine  *reconcile.Engine
	locker  lock.Locker
	archive *Archive
	metrics *metrics.Metrics
	logger  *zap.Logger
	cache   *snapshotCache
	now     func() time.Time
}

// Options bundles the collaborators of a Service. Archive may be nil.
type Options struct {
	Repository *Repository
	Engine     *reconcile.Engine
	Locker     lock.Locker
	Archive    *Archive
	Metrics    *metrics.Metrics
	Logger     *zap.Logger
	// SnapshotTTL is how long listings may be served from memory. Zero disables caching.
	SnapshotTTL time.Duration
}

// NewService creates a new inventory service.
func NewService(opts Options) *Service {
	s := &Service{
		repo:    opts.Repository,
		engine:  opts.Engine,
		locker:  opts.Locker,
		archive: opts.Archive,
		metrics: opts.Metrics,
		logger:  opts.Logger,
		now:     time.Now,
	}
	s.cache = newSnapshotCache(opts.SnapshotTTL, func(ctx context.Context) (*reconcile.Inventory, error) {
		return s.repo.Load(ctx)
	})
	return s
}

// ScanResult is the outcome of a barcode scan.
type ScanResult struct {
	reconcile.Reconciled
	Summary reconcile.Summary `json:"summary"`
}

// RemoveReport is the outcome of a barcode removal.
type RemoveReport struct {
	reconcile.RemoveResult
	Summary reconcile.Summary `json:"summary"`
}

// ReceiptInput is an already-parsed receipt submitted for reconciliation.
type ReceiptInput struct {
	// ID is optional; a new one is generated when nil. Reusing an ID is rejected.
	ID           *uuid.UUID                  `json:"id,omitempty"`
	RawPayload   string                      `json:"raw_payload"`
	StoreName    *string                     `json:"store_name,omitempty"`
	PurchaseDate time.Time                   `json:"purchase_date"`
	Items        []reconcile.ReceiptLineItem `json:"items"`
}

// ReceiptReport is the outcome of a receipt reconciliation.
type ReceiptReport struct {
	ReceiptID uuid.UUID              `json:"receipt_id"`
	DryRun    bool                   `json:"dry_run"`
	Results   []reconcile.Reconciled `json:"results"`
	Summary   reconcile.Summary      `json:"summary"`
}

// Scan adds one unit for barcode.
func (s *Service) Scan(ctx context.Context, barcode string, meta reconcile.ProductMeta) (*ScanResult, error) {
	if err := validateBarcode(barcode); err != nil {
		return nil, err
	}

	var res *ScanResult
	err := s.withInventory(ctx, "scan", nil, false, func(inv *reconcile.Inventory) {
		product, lot := s.engine.AddByBarcode(inv, barcode, meta)
		res = &ScanResult{Reconciled: reconcile.Reconciled{Product: product, Lot: lot}}
		res.Summary = reconcile.Summarize(inv)
		s.logger.Info("Scanned product in",
			zap.String("barcode", barcode),
			zap.String("product_id", product.ID.String()),
			zap.String("lot_id", lot.ID.String()),
			zap.Int("quantity", lot.Quantity),
		)
	})
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveEvent("scan", "added")
	return res, nil
}

// Remove takes one unit out for barcode. Unknown barcodes are a result, not an error.
func (s *Service) Remove(ctx context.Context, barcode string) (*RemoveReport, error) {
	if err := validateBarcode(barcode); err != nil {
		return nil, err
	}

	var res *RemoveReport
	err := s.withInventory(ctx, "remove", nil, false, func(inv *reconcile.Inventory) {
		out := s.engine.RemoveByBarcode(inv, barcode)
		res = &RemoveReport{RemoveResult: out, Summary: reconcile.Summarize(inv)}

		l := s.logger.With(zap.String("barcode", barcode), zap.String("outcome", string(out.Outcome)))
		switch out.Outcome {
		case reconcile.RemoveNotFound:
			l.Info("Nothing to remove")
		case reconcile.RemoveDepleted:
			l.Info("Removed last unit", zap.String("lot_id", out.RemovedLotID.String()))
		default:
			l.Info("Removed one unit", zap.String("lot_id", out.Lot.ID.String()), zap.Int("quantity", out.Lot.Quantity))
		}
	})
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveEvent("remove", string(res.Outcome))
	return res, nil
}

// ImportReceipt applies every line of a receipt. With dryRun the result is
// computed on the current state but nothing is saved or archived.
func (s *Service) ImportReceipt(ctx context.Context, in ReceiptInput, dryRun bool) (*ReceiptReport, error) {
	if err := validateReceipt(in); err != nil {
		return nil, err
	}

	receipt := reconcile.Receipt{
		ID:           uuid.New(),
		RawPayload:   in.RawPayload,
		StoreName:    in.StoreName,
		PurchaseDate: in.PurchaseDate.UTC(),
		Items:        append([]reconcile.ReceiptLineItem(nil), in.Items...),
		ProcessedAt:  s.now().UTC(),
	}
	if in.ID != nil {
		receipt.ID = *in.ID
	}

	var report *ReceiptReport
	err := s.withInventory(ctx, "receipt", &receipt, dryRun, func(inv *reconcile.Inventory) {
		results := s.engine.AddByReceipt(inv, receipt)
		report = &ReceiptReport{
			ReceiptID: receipt.ID,
			DryRun:    dryRun,
			Results:   results,
			Summary:   reconcile.Summarize(inv),
		}
		s.logger.Info("Reconciled receipt",
			zap.String("receipt_id", receipt.ID.String()),
			zap.Int("items", len(receipt.Items)),
			zap.Int("products_created", report.Summary.ProductsCreated),
			zap.Int("lots_created", report.Summary.LotsCreated),
			zap.Bool("dry_run", dryRun),
		)
	})
	if err != nil {
		return nil, err
	}
	if dryRun {
		return report, nil
	}
	s.metrics.ObserveEvent("receipt", "applied")

	if s.archive != nil {
		if err := s.archive.Store(ctx, &receipt); err != nil {
			// The payload is also in the receipts table.
			s.logger.Warn("Receipt archive failed", zap.String("receipt_id", receipt.ID.String()), zap.Error(err))
		}
	}

	return report, nil
}

// Products returns the catalog. The result is shared and must not be modified.
func (s *Service) Products(ctx context.Context) ([]*reconcile.Product, error) {
	snap, err := s.cache.get(ctx)
	if err != nil {
		return nil, err
	}
	return snap.products, nil
}

// Lots returns the ledger. The result is shared and must not be modified.
func (s *Service) Lots(ctx context.Context) ([]*reconcile.StockLot, error) {
	snap, err := s.cache.get(ctx)
	if err != nil {
		return nil, err
	}
	return snap.lots, nil
}

// Receipt returns a stored receipt.
func (s *Service) Receipt(ctx context.Context, id uuid.UUID) (*reconcile.Receipt, error) {
	return s.repo.GetReceipt(ctx, id)
}

// RawReceipt returns the archived raw payload of a receipt.
func (s *Service) RawReceipt(ctx context.Context, id uuid.UUID) (string, error) {
	if s.archive == nil {
		return "", ErrArchiveDisabled
	}
	return s.archive.Fetch(ctx, id)
}

// withInventory holds the ledger lock while fn runs on freshly loaded state,
// then saves the recorded changes unless dryRun is set.
func (s *Service) withInventory(ctx context.Context, op string, receipt *reconcile.Receipt, dryRun bool, fn func(inv *reconcile.Inventory)) error {
	start := time.Now()
	defer s.metrics.ObserveDuration(op, start)

	release, err := s.locker.Acquire(ctx, s.repo.LockKey())
	if err != nil {
		return err
	}
	defer release()

	inv, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}

	fn(inv)

	if dryRun {
		return nil
	}

	changes := inv.Changes()
	if changes.IsEmpty() && receipt == nil {
		return nil
	}
	if err := s.repo.Save(ctx, inv, receipt); err != nil {
		s.logger.Error("Failed to save reconciliation", zap.String("operation", op), zap.Error(err))
		return err
	}
	s.cache.invalidate()
	s.metrics.ObserveChanges(changes.CreatedProducts, changes.CreatedLots, len(changes.RemovedLots))
	s.logger.Debug("Saved reconciliation",
		zap.String("operation", op),
		zap.Int("products", len(changes.Products)),
		zap.Int("lots", len(changes.Lots)),
		zap.Int("removed_lots", len(changes.RemovedLots)),
	)
	inv.ResetChanges()
	return nil
}

func validateBarcode(barcode string) error {
	if strings.TrimSpace(barcode) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidBarcode)
	}
	if len(barcode) > maxBarcodeLength {
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidBarcode, maxBarcodeLength)
	}
	return nil
}

func validateReceipt(in ReceiptInput) error {
	if in.PurchaseDate.IsZero() {
		return fmt.Errorf("%w: purchase_date is required", ErrInvalidReceipt)
	}
	for i, item := range in.Items {
		if strings.TrimSpace(item.Name) == "" {
			return fmt.Errorf("%w: item %d has no name", ErrInvalidReceipt, i)
		}
		if math.IsNaN(item.Quantity) || math.IsInf(item.Quantity, 0) || item.Quantity < 0 {
			return fmt.Errorf("%w: item %d has invalid quantity %v", ErrInvalidReceipt, i, item.Quantity)
		}
		if item.Quantity > reconcile.MaxLotQuantity {
			return fmt.Errorf("%w: item %d quantity %v exceeds %d", ErrInvalidReceipt, i, item.Quantity, reconcile.MaxLotQuantity)
		}
		if item.UnitPrice != nil && *item.UnitPrice < 0 {
			return fmt.Errorf("%w: item %d has negative unit price", ErrInvalidReceipt, i)
		}
	}
	return nil
}
