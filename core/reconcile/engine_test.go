package reconcile

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedClock returns a clock that advances one second per call.
func fixedClock() func() time.Time {
	t := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func strPtr(s string) *string { return &s }

func newTestEngine(opts ...Option) *Engine {
	return NewEngine(append([]Option{WithClock(fixedClock())}, opts...)...)
}

func TestAddByBarcode_NewThenExisting(t *testing.T) {
	engine := newTestEngine()
	inv := NewInventory(nil, nil)

	product, lot := engine.AddByBarcode(inv, "555", ProductMeta{Name: strPtr("Milk")})
	require.NotNil(t, product)
	require.NotNil(t, lot)
	assert.Equal(t, 1, inv.Catalog.Len())
	assert.Equal(t, 1, inv.Ledger.Len())
	assert.Equal(t, "555", product.Barcode)
	assert.Equal(t, "Milk", product.Name)
	assert.Equal(t, 1, lot.Quantity)
	assert.Equal(t, product.ID, lot.ProductID)

	created := product.UpdatedAt
	again, lot2 := engine.AddByBarcode(inv, "555", ProductMeta{})
	assert.Equal(t, 1, inv.Catalog.Len())
	assert.Equal(t, 1, inv.Ledger.Len())
	assert.Same(t, product, again)
	assert.Same(t, lot, lot2)
	assert.Equal(t, 2, lot2.Quantity)
	assert.True(t, again.UpdatedAt.After(created))
	assert.Equal(t, "Milk", again.Name)
}

func TestAddByBarcode_DefaultName(t *testing.T) {
	engine := newTestEngine()
	inv := NewInventory(nil, nil)

	product, _ := engine.AddByBarcode(inv, "7891000", ProductMeta{Brand: strPtr("Acme"), Unit: strPtr("un")})
	assert.Equal(t, "Product 7891000", product.Name)
	assert.Equal(t, "Acme", *product.Brand)
	assert.Equal(t, "un", *product.Unit)
	assert.False(t, product.HasPlaceholderBarcode())
}

func TestAddByBarcode_KnownProductWithoutLot(t *testing.T) {
	engine := newTestEngine()
	existing := &Product{ID: uuid.New(), Name: "Rice", Barcode: "111"}
	inv := NewInventory(NewCatalog(existing), nil)

	product, lot := engine.AddByBarcode(inv, "111", ProductMeta{Name: strPtr("ignored")})
	assert.Same(t, existing, product)
	assert.Equal(t, "Rice", product.Name)
	assert.Equal(t, 1, lot.Quantity)
	assert.Equal(t, 1, inv.Ledger.Len())
	assert.Equal(t, 0, inv.Changes().CreatedProducts)
	assert.Equal(t, 1, inv.Changes().CreatedLots)
}

func TestAddByReceipt_SameNewProductTwice(t *testing.T) {
	engine := newTestEngine()
	inv := NewInventory(nil, nil)
	receipt := Receipt{
		ID:           uuid.New(),
		PurchaseDate: time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC),
		Items: []ReceiptLineItem{
			{Name: "Bread", Quantity: 1.0},
			{Name: "Bread", Quantity: 2.0},
		},
	}

	results := engine.AddByReceipt(inv, receipt)
	require.Len(t, results, 2)
	assert.Equal(t, 1, inv.Catalog.Len())
	assert.Equal(t, 1, inv.Ledger.Len())
	assert.Same(t, results[0].Product, results[1].Product)
	assert.Same(t, results[0].Lot, results[1].Lot)
	assert.Equal(t, "Bread", results[0].Product.Name)
	assert.Equal(t, 3, results[0].Lot.Quantity)
	assert.True(t, results[0].Product.HasPlaceholderBarcode())
	assert.Equal(t, receipt.ID, *results[0].Lot.ReceiptID)
	assert.Equal(t, receipt.PurchaseDate, *results[0].Lot.PurchaseDate)
}

func TestAddByReceipt_CaseInsensitiveMatchOverwritesOrigin(t *testing.T) {
	engine := newTestEngine()
	oldReceipt := uuid.New()
	oldDate := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	product := &Product{ID: uuid.New(), Name: "Coffee", Barcode: "222"}
	lot := &StockLot{ID: uuid.New(), ProductID: product.ID, Quantity: 4, ReceiptID: &oldReceipt, PurchaseDate: &oldDate}
	inv := NewInventory(NewCatalog(product), NewLedger(lot))

	receipt := Receipt{
		ID:           uuid.New(),
		PurchaseDate: time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC),
		Items:        []ReceiptLineItem{{Name: "COFFEE", Quantity: 2.7}},
	}
	results := engine.AddByReceipt(inv, receipt)

	require.Len(t, results, 1)
	assert.Same(t, product, results[0].Product)
	assert.Same(t, lot, results[0].Lot)
	assert.Equal(t, 6, lot.Quantity)
	assert.Equal(t, receipt.ID, *lot.ReceiptID)
	assert.Equal(t, receipt.PurchaseDate, *lot.PurchaseDate)
	assert.Equal(t, 1, inv.Catalog.Len())
}

func TestAddByReceipt_NoTrimmingByDefault(t *testing.T) {
	engine := newTestEngine()
	product := &Product{ID: uuid.New(), Name: "Tea", Barcode: "333"}
	inv := NewInventory(NewCatalog(product), nil)

	results := engine.AddByReceipt(inv, Receipt{ID: uuid.New(), Items: []ReceiptLineItem{{Name: " Tea ", Quantity: 1}}})
	require.Len(t, results, 1)
	assert.NotSame(t, product, results[0].Product)
	assert.Equal(t, 2, inv.Catalog.Len())
}

func TestAddByReceipt_TrimmedMatcher(t *testing.T) {
	engine := newTestEngine(WithNameMatcher(TrimmedFoldMatcher))
	product := &Product{ID: uuid.New(), Name: "Green  Tea", Barcode: "333"}
	inv := NewInventory(NewCatalog(product), nil)

	results := engine.AddByReceipt(inv, Receipt{ID: uuid.New(), Items: []ReceiptLineItem{{Name: " green tea", Quantity: 1}}})
	require.Len(t, results, 1)
	assert.Same(t, product, results[0].Product)
	assert.Equal(t, 1, inv.Catalog.Len())
}

func TestAddByReceipt_TruncationBoundary(t *testing.T) {
	engine := newTestEngine()
	inv := NewInventory(nil, nil)

	results := engine.AddByReceipt(inv, Receipt{ID: uuid.New(), Items: []ReceiptLineItem{{Name: "Cheese", Quantity: 0.5}}})
	require.Len(t, results, 1)
	require.NotNil(t, results[0].Lot)
	assert.Equal(t, 0, results[0].Lot.Quantity)
	assert.Equal(t, 1, inv.Ledger.Len())
}

func TestAddByReceipt_LaterItemSeesEarlierProduct(t *testing.T) {
	engine := newTestEngine()
	inv := NewInventory(nil, nil)

	results := engine.AddByReceipt(inv, Receipt{ID: uuid.New(), Items: []ReceiptLineItem{
		{Name: "Apples", Quantity: 3},
		{Name: "Pears", Quantity: 1},
		{Name: "apples", Quantity: 2},
	}})

	require.Len(t, results, 3)
	assert.Equal(t, 2, inv.Catalog.Len())
	assert.Same(t, results[0].Product, results[2].Product)
	assert.Equal(t, 5, results[2].Lot.Quantity)
	assert.Equal(t, "Pears", results[1].Product.Name)
	assert.NotEqual(t, results[0].Product.Barcode, results[1].Product.Barcode)
}

func TestAddByReceipt_Empty(t *testing.T) {
	engine := newTestEngine()
	inv := NewInventory(nil, nil)

	results := engine.AddByReceipt(inv, Receipt{ID: uuid.New()})
	assert.NotNil(t, results)
	assert.Empty(t, results)
	assert.True(t, inv.Changes().IsEmpty())
	assert.Equal(t, 0, inv.Catalog.Len())
}

func TestRemoveByBarcode_UnknownBarcode(t *testing.T) {
	engine := newTestEngine()
	inv := NewInventory(nil, nil)

	res := engine.RemoveByBarcode(inv, "404")
	assert.Equal(t, RemoveNotFound, res.Outcome)
	assert.Nil(t, res.Product)
	assert.Nil(t, res.Lot)
	assert.Equal(t, 0, inv.Catalog.Len())
	assert.Equal(t, 0, inv.Ledger.Len())
	assert.True(t, inv.Changes().IsEmpty())
}

func TestRemoveByBarcode_ProductWithoutLotIsUntouched(t *testing.T) {
	engine := newTestEngine()
	stamp := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	product := &Product{ID: uuid.New(), Name: "Salt", Barcode: "999", UpdatedAt: stamp}
	inv := NewInventory(NewCatalog(product), nil)

	res := engine.RemoveByBarcode(inv, "999")
	assert.Equal(t, RemoveNotFound, res.Outcome)
	assert.Equal(t, stamp, product.UpdatedAt)
	assert.True(t, inv.Changes().IsEmpty())
}

func TestRemoveByBarcode_DecrementThenDeplete(t *testing.T) {
	engine := newTestEngine()
	inv := NewInventory(nil, nil)
	engine.AddByBarcode(inv, "777", ProductMeta{})
	_, lot := engine.AddByBarcode(inv, "777", ProductMeta{})
	lotID := lot.ID

	res := engine.RemoveByBarcode(inv, "777")
	assert.Equal(t, RemoveDecremented, res.Outcome)
	require.NotNil(t, res.Lot)
	assert.Equal(t, 1, res.Lot.Quantity)
	assert.Equal(t, 1, inv.Ledger.Len())

	res = engine.RemoveByBarcode(inv, "777")
	assert.Equal(t, RemoveDepleted, res.Outcome)
	assert.Nil(t, res.Lot)
	require.NotNil(t, res.RemovedLotID)
	assert.Equal(t, lotID, *res.RemovedLotID)
	assert.Equal(t, 0, inv.Ledger.Len())
	assert.Equal(t, 1, inv.Catalog.Len())

	// A later add creates a brand-new lot identity.
	_, fresh := engine.AddByBarcode(inv, "777", ProductMeta{})
	assert.NotEqual(t, lotID, fresh.ID)
	assert.Equal(t, 1, fresh.Quantity)
}

func TestRemoveByBarcode_ZeroQuantityLotIsRemoved(t *testing.T) {
	engine := newTestEngine()
	product := &Product{ID: uuid.New(), Name: "Ham", Barcode: "abc"}
	lot := &StockLot{ID: uuid.New(), ProductID: product.ID, Quantity: 0}
	inv := NewInventory(NewCatalog(product), NewLedger(lot))

	res := engine.RemoveByBarcode(inv, "abc")
	assert.Equal(t, RemoveDepleted, res.Outcome)
	assert.Equal(t, 0, inv.Ledger.Len())
}

func TestQuantityConservation(t *testing.T) {
	engine := newTestEngine()
	inv := NewInventory(nil, nil)
	const n = 25

	for i := 0; i < n; i++ {
		engine.AddByBarcode(inv, "conserve", ProductMeta{})
	}
	product := engine.Resolver().FindByBarcode(inv.Catalog, "conserve")
	require.NotNil(t, product)
	assert.Equal(t, n, engine.Resolver().FindLotByProduct(inv.Ledger, product.ID).Quantity)

	for i := 0; i < n-1; i++ {
		assert.Equal(t, RemoveDecremented, engine.RemoveByBarcode(inv, "conserve").Outcome)
	}
	assert.Equal(t, RemoveDepleted, engine.RemoveByBarcode(inv, "conserve").Outcome)
	assert.Nil(t, engine.Resolver().FindLotByProduct(inv.Ledger, product.ID))
	assert.Equal(t, RemoveNotFound, engine.RemoveByBarcode(inv, "conserve").Outcome)
}

func TestRemoveByBarcode_EarliestExpirySelector(t *testing.T) {
	engine := newTestEngine(WithLotSelector(EarliestExpirySelector))
	product := &Product{ID: uuid.New(), Name: "Yogurt", Barcode: "yog"}
	later := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	sooner := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	a := &StockLot{ID: uuid.New(), ProductID: product.ID, Quantity: 3, ExpiryDate: &later}
	b := &StockLot{ID: uuid.New(), ProductID: product.ID, Quantity: 2, ExpiryDate: &sooner}
	inv := NewInventory(NewCatalog(product), NewLedger(a, b))

	res := engine.RemoveByBarcode(inv, "yog")
	assert.Equal(t, RemoveDecremented, res.Outcome)
	assert.Same(t, b, res.Lot)
	assert.Equal(t, 1, b.Quantity)
	assert.Equal(t, 3, a.Quantity)
}

func TestTruncateQuantity(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want int
	}{
		{"whole", 3, 3},
		{"fraction below one", 0.5, 0},
		{"fraction above one", 2.9, 2},
		{"negative", -1.5, 0},
		{"nan", math.NaN(), 0},
		{"at the bound", MaxLotQuantity, MaxLotQuantity},
		{"far above int64", 1e19, MaxLotQuantity},
		{"positive infinity", math.Inf(1), MaxLotQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateQuantity(tt.in))
		})
	}
}

func TestAddByReceipt_QuantitySaturates(t *testing.T) {
	engine := newTestEngine()
	inv := NewInventory(nil, nil)
	receipt := Receipt{ID: uuid.New(), Items: []ReceiptLineItem{
		{Name: "Rice", Quantity: 1e19},
		{Name: "Rice", Quantity: MaxLotQuantity},
	}}

	results := engine.AddByReceipt(inv, receipt)
	require.Len(t, results, 2)
	assert.Equal(t, MaxLotQuantity, results[1].Lot.Quantity)

	product, lot := engine.AddByBarcode(inv, results[0].Product.Barcode, ProductMeta{})
	assert.Same(t, results[0].Product, product)
	assert.Equal(t, MaxLotQuantity, lot.Quantity)
}

func TestAddUnits(t *testing.T) {
	assert.Equal(t, 5, addUnits(2, 3))
	assert.Equal(t, 2, addUnits(2, 0))
	assert.Equal(t, MaxLotQuantity, addUnits(MaxLotQuantity-1, 5))
	assert.Equal(t, MaxLotQuantity, addUnits(MaxLotQuantity, 1))
}
