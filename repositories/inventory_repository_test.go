package repositories

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReserveAndRelease(t *testing.T) {
	db := setupTestDB(t)
	whs := createWarehouse(t, db, "WH01")
	variant := createVariant(t, db, "SKU-1")
	createInventory(t, db, whs.ID, variant.ID, 10, 0)

	repo := NewInventoryRepository(db)

	require.NoError(t, repo.Reserve(whs.ID, variant.ID, 4))

	inv := getInventory(t, db, whs.ID, variant.ID)
	require.Equal(t, 10, inv.QtyOnhand)
	require.Equal(t, 4, inv.QtyReserved)

	available, err := repo.GetAvailable(whs.ID, variant.ID)
	require.NoError(t, err)
	require.Equal(t, 6, available)

	require.NoError(t, repo.Release(whs.ID, variant.ID, 4))

	inv = getInventory(t, db, whs.ID, variant.ID)
	require.Equal(t, 0, inv.QtyReserved)
	requireInvariant(t, db)
}

func TestReserveInsufficientStock(t *testing.T) {
	db := setupTestDB(t)
	whs := createWarehouse(t, db, "WH01")
	variant := createVariant(t, db, "SKU-1")
	createInventory(t, db, whs.ID, variant.ID, 5, 3)

	repo := NewInventoryRepository(db)

	// available = 2, minta 3
	err := repo.Reserve(whs.ID, variant.ID, 3)
	require.ErrorIs(t, err, ErrInsufficientStock)

	inv := getInventory(t, db, whs.ID, variant.ID)
	require.Equal(t, 3, inv.QtyReserved)
}

func TestReserveUnknownInventory(t *testing.T) {
	db := setupTestDB(t)
	repo := NewInventoryRepository(db)

	err := repo.Reserve(99, 99, 1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestReleaseInvariantViolation(t *testing.T) {
	db := setupTestDB(t)
	whs := createWarehouse(t, db, "WH01")
	variant := createVariant(t, db, "SKU-1")
	createInventory(t, db, whs.ID, variant.ID, 10, 2)

	repo := NewInventoryRepository(db)

	// release lebih besar dari reserved = bug caller, bukan clamp
	err := repo.Release(whs.ID, variant.ID, 3)
	require.ErrorIs(t, err, ErrInvariantViolation)

	inv := getInventory(t, db, whs.ID, variant.ID)
	require.Equal(t, 2, inv.QtyReserved)
}

func TestAdjustOnhand(t *testing.T) {
	db := setupTestDB(t)
	whs := createWarehouse(t, db, "WH01")
	variant := createVariant(t, db, "SKU-1")
	createInventory(t, db, whs.ID, variant.ID, 5, 2)

	repo := NewInventoryRepository(db)

	require.NoError(t, repo.AdjustOnhand(whs.ID, variant.ID, 7))
	inv := getInventory(t, db, whs.ID, variant.ID)
	require.Equal(t, 12, inv.QtyOnhand)
	require.Equal(t, 2, inv.QtyReserved)

	// Turunkan sampai di bawah reserved → invariant violation
	err := repo.AdjustOnhand(whs.ID, variant.ID, -11)
	require.ErrorIs(t, err, ErrInvariantViolation)

	inv = getInventory(t, db, whs.ID, variant.ID)
	require.Equal(t, 12, inv.QtyOnhand)
	requireInvariant(t, db)
}

func TestAllocateWarehouseFirstFit(t *testing.T) {
	db := setupTestDB(t)
	whs1 := createWarehouse(t, db, "WH01")
	whs2 := createWarehouse(t, db, "WH02")
	variant := createVariant(t, db, "SKU-1")
	createInventory(t, db, whs1.ID, variant.ID, 3, 0)
	createInventory(t, db, whs2.ID, variant.ID, 10, 0)

	repo := NewInventoryRepository(db)

	// W1 available 3 tidak cukup untuk 5, jatuh ke W2. Line tidak di-split.
	whsID, err := repo.AllocateWarehouse(variant.ID, 5)
	require.NoError(t, err)
	require.Equal(t, whs2.ID, whsID)

	// 2 unit muat di W1 (first-fit, bukan best-fit)
	whsID, err = repo.AllocateWarehouse(variant.ID, 2)
	require.NoError(t, err)
	require.Equal(t, whs1.ID, whsID)
}

func TestAllocateWarehouseInsufficient(t *testing.T) {
	db := setupTestDB(t)
	whs1 := createWarehouse(t, db, "WH01")
	whs2 := createWarehouse(t, db, "WH02")
	variant := createVariant(t, db, "SKU-1")
	createInventory(t, db, whs1.ID, variant.ID, 3, 0)
	createInventory(t, db, whs2.ID, variant.ID, 4, 2)

	repo := NewInventoryRepository(db)

	// Total available 5, tapi tidak ada satu warehouse yang punya 4
	_, err := repo.AllocateWarehouse(variant.ID, 4)
	require.ErrorIs(t, err, ErrInsufficientStock)
}

func TestEnsureForVariant(t *testing.T) {
	db := setupTestDB(t)
	whs1 := createWarehouse(t, db, "WH01")
	whs2 := createWarehouse(t, db, "WH02")
	variant := createVariant(t, db, "SKU-1")

	repo := NewInventoryRepository(db)
	require.NoError(t, repo.EnsureForVariant(variant.ID))

	invs, err := repo.GetByVariantID(variant.ID)
	require.NoError(t, err)
	require.Len(t, invs, 2)
	require.Equal(t, whs1.ID, invs[0].WarehouseID)
	require.Equal(t, whs2.ID, invs[1].WarehouseID)
	require.Equal(t, 0, invs[0].QtyOnhand)
	require.Equal(t, 0, invs[0].QtyReserved)

	// Idempotent: panggilan kedua tidak menggandakan row
	require.NoError(t, repo.EnsureForVariant(variant.ID))
	invs, err = repo.GetByVariantID(variant.ID)
	require.NoError(t, err)
	require.Len(t, invs, 2)
}

func TestEnsureForWarehouse(t *testing.T) {
	db := setupTestDB(t)
	variant1 := createVariant(t, db, "SKU-1")
	variant2 := createVariant(t, db, "SKU-2")
	whs := createWarehouse(t, db, "WH01")

	repo := NewInventoryRepository(db)
	require.NoError(t, repo.EnsureForWarehouse(whs.ID))

	invs1, err := repo.GetByVariantID(variant1.ID)
	require.NoError(t, err)
	require.Len(t, invs1, 1)

	invs2, err := repo.GetByVariantID(variant2.ID)
	require.NoError(t, err)
	require.Len(t, invs2, 1)
}

func TestGetLedger(t *testing.T) {
	db := setupTestDB(t)
	whs := createWarehouse(t, db, "WH01")
	variant := createVariant(t, db, "SKU-1")
	createInventory(t, db, whs.ID, variant.ID, 8, 3)

	repo := NewInventoryRepository(db)
	rows, err := repo.GetLedger()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "WH01", rows[0].WhsCode)
	require.Equal(t, "SKU-1", rows[0].VariantSku)
	require.Equal(t, 8, rows[0].QtyOnhand)
	require.Equal(t, 3, rows[0].QtyReserved)
	require.Equal(t, 5, rows[0].QtyAvailable)
}
