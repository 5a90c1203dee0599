package inventory

import (
	"context"
	"errors"
	"testing"
	"time"

	"stock-manager/core/database"
	"stock-manager/core/reconcile"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupMockDB creates a mock GORM DB for testing.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

// setupRepository returns a migrated repository on a private in-memory sqlite database.
func setupRepository(t *testing.T) *Repository {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	repo := NewRepository(db, DefaultLedger)
	require.NoError(t, repo.Migrate(context.Background()))
	return repo
}

func TestRepository_SaveAndLoadKeepsOrder(t *testing.T) {
	ctx := context.Background()
	repo := setupRepository(t)
	engine := reconcile.NewEngine()

	inv, err := repo.Load(ctx)
	require.NoError(t, err)
	for _, code := range []string{"c", "a", "b"} {
		engine.AddByBarcode(inv, code, reconcile.ProductMeta{})
	}
	require.NoError(t, repo.Save(ctx, inv, nil))

	// A second cycle touches the oldest product; it must not move to the end.
	inv, err = repo.Load(ctx)
	require.NoError(t, err)
	engine.AddByBarcode(inv, "c", reconcile.ProductMeta{})
	engine.AddByBarcode(inv, "d", reconcile.ProductMeta{})
	require.NoError(t, repo.Save(ctx, inv, nil))

	products, err := repo.ListProducts(ctx)
	require.NoError(t, err)
	var codes []string
	for _, p := range products {
		codes = append(codes, p.Barcode)
	}
	assert.Equal(t, []string{"c", "a", "b", "d"}, codes)

	lots, err := repo.ListLots(ctx)
	require.NoError(t, err)
	require.Len(t, lots, 4)
	assert.Equal(t, products[0].ID, lots[0].ProductID)
	assert.Equal(t, 2, lots[0].Quantity)
}

func TestRepository_SaveDeletesRemovedLots(t *testing.T) {
	ctx := context.Background()
	repo := setupRepository(t)
	engine := reconcile.NewEngine()

	inv, err := repo.Load(ctx)
	require.NoError(t, err)
	engine.AddByBarcode(inv, "1", reconcile.ProductMeta{})
	require.NoError(t, repo.Save(ctx, inv, nil))

	inv, err = repo.Load(ctx)
	require.NoError(t, err)
	res := engine.RemoveByBarcode(inv, "1")
	require.Equal(t, reconcile.RemoveDepleted, res.Outcome)
	require.NoError(t, repo.Save(ctx, inv, nil))

	lots, err := repo.ListLots(ctx)
	require.NoError(t, err)
	assert.Empty(t, lots)

	products, err := repo.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestRepository_Receipts(t *testing.T) {
	ctx := context.Background()
	repo := setupRepository(t)
	engine := reconcile.NewEngine()
	price := 4.5

	receipt := reconcile.Receipt{
		ID:           uuid.New(),
		RawPayload:   "LEITE 2 x 4,50",
		PurchaseDate: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		ProcessedAt:  time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC),
		Items: []reconcile.ReceiptLineItem{
			{Name: "Leite", Quantity: 2, UnitPrice: &price},
			{Name: "Pao", Quantity: 1},
		},
	}

	inv, err := repo.Load(ctx)
	require.NoError(t, err)
	engine.AddByReceipt(inv, receipt)
	require.NoError(t, repo.Save(ctx, inv, &receipt))

	got, err := repo.GetReceipt(ctx, receipt.ID)
	require.NoError(t, err)
	assert.Equal(t, receipt.RawPayload, got.RawPayload)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Leite", got.Items[0].Name)
	assert.Equal(t, 4.5, *got.Items[0].UnitPrice)
	assert.Equal(t, "Pao", got.Items[1].Name)

	lots, err := repo.ListLots(ctx)
	require.NoError(t, err)
	require.Len(t, lots, 2)
	require.NotNil(t, lots[0].ReceiptID)
	assert.Equal(t, receipt.ID, *lots[0].ReceiptID)

	t.Run("Duplicate", func(t *testing.T) {
		inv, err := repo.Load(ctx)
		require.NoError(t, err)
		engine.AddByReceipt(inv, receipt)
		err = repo.Save(ctx, inv, &receipt)
		assert.True(t, errors.Is(err, ErrDuplicateReceipt))

		// The rejected cycle left the ledger untouched.
		lots, err := repo.ListLots(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, lots[0].Quantity)
	})

	t.Run("Not Found", func(t *testing.T) {
		_, err := repo.GetReceipt(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrReceiptNotFound)
	})
}

func TestRepository_LoadError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db, DefaultLedger)

	mock.MatchExpectationsInOrder(false)
	mock.ExpectQuery("SELECT \\* FROM `products`").WillReturnError(errors.New("connection refused"))
	mock.ExpectQuery("SELECT \\* FROM `stock_lots`").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	inv, err := repo.Load(context.Background())
	assert.Error(t, err)
	assert.Nil(t, inv)
	assert.Contains(t, err.Error(), "failed to load products")
}

func TestRepository_ListProducts_InvalidID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db, DefaultLedger)

	rows := sqlmock.NewRows([]string{"id", "seq", "name", "barcode"}).AddRow("not-a-uuid", 1, "Milk", "1")
	mock.ExpectQuery("SELECT \\* FROM `products` WHERE ledger = \\? ORDER BY seq, id").
		WithArgs(DefaultLedger).
		WillReturnRows(rows)

	products, err := repo.ListProducts(context.Background())
	assert.Error(t, err)
	assert.Nil(t, products)
	assert.Contains(t, err.Error(), "invalid product not-a-uuid")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SaveRollsBack(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db, DefaultLedger)

	inv := reconcile.NewInventory(nil, nil)
	reconcile.NewEngine().AddByBarcode(inv, "1", reconcile.ProductMeta{})

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COALESCE\\(MAX\\(seq\\), 0\\) FROM `products`").
		WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(0))
	mock.ExpectExec("INSERT INTO `products`").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.Save(context.Background(), inv, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save products")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Ledger(t *testing.T) {
	db, _ := setupMockDB(t)

	repo := NewRepository(db, "")
	assert.Equal(t, DefaultLedger, repo.Ledger())
	assert.Equal(t, "ledger:default", repo.LockKey())
	assert.Equal(t, "ledger:kitchen", NewRepository(db, "kitchen").LockKey())
}

func TestRepository_ReceiptsAreScopedToLedger(t *testing.T) {
	ctx := context.Background()
	repo := setupRepository(t)
	other := NewRepository(repo.DB(), "kitchen")

	receipt := reconcile.Receipt{
		ID:           uuid.New(),
		PurchaseDate: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		Items:        []reconcile.ReceiptLineItem{{Name: "Cafe", Quantity: 1}},
	}
	inv, err := repo.Load(ctx)
	require.NoError(t, err)
	reconcile.NewEngine().AddByReceipt(inv, receipt)
	require.NoError(t, repo.Save(ctx, inv, &receipt))

	_, err = other.GetReceipt(ctx, receipt.ID)
	assert.ErrorIs(t, err, ErrReceiptNotFound)

	// Receipt IDs stay unique across ledgers.
	inv, err = other.Load(ctx)
	require.NoError(t, err)
	assert.Zero(t, inv.Catalog.Len())
	err = other.Save(ctx, inv, &receipt)
	assert.ErrorIs(t, err, ErrDuplicateReceipt)
}
