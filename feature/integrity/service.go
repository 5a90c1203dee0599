package integrity

import (
	"context"
	"fmt"

	"stock-manager/core/storage"
	"stock-manager/feature/integrity/checks"
	"stock-manager/feature/inventory"

	"go.uber.org/zap"
)

// Service handles integrity checks.
type Service struct {
	client storage.Client
	bucket string
	repo   *inventory.Repository
	logger *zap.Logger
}

// NewService creates a new integrity service. client may be nil when storage is disabled.
func NewService(client storage.Client, bucket string, repo *inventory.Repository, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		repo:   repo,
		logger: logger,
	}
}

// StorageEnabled reports whether structure checks can run.
func (s *Service) StorageEnabled() bool {
	return s.client != nil
}

// CheckStructure returns a list of missing folders.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	if s.client == nil {
		return nil, fmt.Errorf("storage is disabled")
	}
	return checks.CheckStructure(ctx, s.client, s.bucket)
}

// FixStructure creates the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	if s.client == nil {
		return fmt.Errorf("storage is disabled")
	}
	return checks.FixStructure(ctx, s.client, s.bucket, s.logger, missing)
}

// CheckSchema compares the inventory tables with their models.
func (s *Service) CheckSchema(ctx context.Context) (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.repo.DB().WithContext(ctx), inventory.Models())
}

// CheckStock audits the stored catalog and ledger.
func (s *Service) CheckStock(ctx context.Context) (*checks.StockReport, error) {
	inv, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return checks.CheckStock(inv.Catalog.All(), inv.Ledger.All()), nil
}

// CheckAll runs every check; a failing check is reported in place.
func (s *Service) CheckAll(ctx context.Context) map[string]any {
	report := make(map[string]any)

	if s.StorageEnabled() {
		if missing, err := s.CheckStructure(ctx); err != nil {
			report["structure"] = map[string]any{"status": "error", "error": err.Error()}
		} else {
			report["structure"] = map[string]any{"status": "ok", "missing": missing}
		}
	} else {
		report["structure"] = map[string]any{"status": "disabled"}
	}

	if schema, err := s.CheckSchema(ctx); err != nil {
		report["schema"] = map[string]any{"status": "error", "error": err.Error()}
	} else {
		report["schema"] = schema
	}

	if stock, err := s.CheckStock(ctx); err != nil {
		report["stock"] = map[string]any{"status": "error", "error": err.Error()}
	} else {
		report["stock"] = stock
	}

	return report
}
