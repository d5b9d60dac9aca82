package repositories

import (
	"errors"
	"fmt"

	"shop-app/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InventoryRepository adalah ledger stok per (warehouse, variant).
// Semua mutasi harus dipanggil dengan db yang sudah berupa transaksi
// kalau jadi bagian dari flow multi-step (order, stock entry).
type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// forUpdate menambahkan row lock supaya read-modify-write atomic per row.
// sqlite (dipakai di test) tidak mengenal FOR UPDATE dan memang
// men-serialisasi writer sendiri.
func (r *InventoryRepository) forUpdate() *gorm.DB {
	if r.db.Dialector.Name() == "sqlite" {
		return r.db
	}
	return r.db.Clauses(clause.Locking{Strength: "UPDATE"})
}

func (r *InventoryRepository) GetByVariantAndWarehouse(variantID uint, warehouseID uint) (*models.Inventory, error) {
	var inv models.Inventory
	err := r.db.Where("variant_id = ? AND warehouse_id = ?", variantID, warehouseID).First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *InventoryRepository) GetByVariantID(variantID uint) ([]models.Inventory, error) {
	var invs []models.Inventory
	if err := r.db.Where("variant_id = ?", variantID).Order("warehouse_id ASC").Find(&invs).Error; err != nil {
		return nil, err
	}
	return invs, nil
}

// getLocked membaca satu ledger row dengan row lock.
func (r *InventoryRepository) getLocked(warehouseID uint, variantID uint) (*models.Inventory, error) {
	var inv models.Inventory
	err := r.forUpdate().
		Where("warehouse_id = ? AND variant_id = ?", warehouseID, variantID).
		First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *InventoryRepository) GetAvailable(warehouseID uint, variantID uint) (int, error) {
	inv, err := r.GetByVariantAndWarehouse(variantID, warehouseID)
	if err != nil {
		return 0, err
	}
	return inv.QtyAvailable(), nil
}

// Reserve menahan qty untuk order yang belum dipenuhi.
// Gagal dengan ErrInsufficientStock kalau qty > available.
func (r *InventoryRepository) Reserve(warehouseID uint, variantID uint, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("reserve qty must be positive, got %d", qty)
	}

	inv, err := r.getLocked(warehouseID, variantID)
	if err != nil {
		return err
	}

	if qty > inv.QtyAvailable() {
		return ErrInsufficientStock
	}

	inv.QtyReserved += qty
	return r.db.Save(inv).Error
}

// Release melepas reservasi, dipanggil saat order dibatalkan.
// qty_reserved negatif berarti bug di caller (over-cancellation):
// transaksi di-abort dengan ErrInvariantViolation, tidak di-clamp.
func (r *InventoryRepository) Release(warehouseID uint, variantID uint, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("release qty must be positive, got %d", qty)
	}

	inv, err := r.getLocked(warehouseID, variantID)
	if err != nil {
		return err
	}

	if inv.QtyReserved-qty < 0 {
		logrus.WithFields(logrus.Fields{
			"warehouse_id": warehouseID,
			"variant_id":   variantID,
			"qty_reserved": inv.QtyReserved,
			"release_qty":  qty,
		}).Error("release would drive qty_reserved negative")
		return ErrInvariantViolation
	}

	inv.QtyReserved -= qty
	return r.db.Save(inv).Error
}

// AdjustOnhand mengubah stok fisik, dipanggil oleh stock entry:
// delta positif saat submit, negatif saat cancel. Tidak menyentuh qty_reserved.
func (r *InventoryRepository) AdjustOnhand(warehouseID uint, variantID uint, delta int) error {
	inv, err := r.getLocked(warehouseID, variantID)
	if err != nil {
		return err
	}

	newOnhand := inv.QtyOnhand + delta
	if newOnhand < 0 || newOnhand < inv.QtyReserved {
		logrus.WithFields(logrus.Fields{
			"warehouse_id": warehouseID,
			"variant_id":   variantID,
			"qty_onhand":   inv.QtyOnhand,
			"qty_reserved": inv.QtyReserved,
			"delta":        delta,
		}).Error("onhand adjustment would break reserved <= onhand")
		return ErrInvariantViolation
	}

	inv.QtyOnhand = newOnhand
	return r.db.Save(inv).Error
}

// AllocateWarehouse memilih warehouse untuk satu order line: first-fit
// di urutan warehouse_id ASC, warehouse pertama yang available >= qty.
// Satu line tidak pernah di-split ke beberapa warehouse.
func (r *InventoryRepository) AllocateWarehouse(variantID uint, qty int) (uint, error) {
	if qty <= 0 {
		return 0, fmt.Errorf("allocation qty must be positive, got %d", qty)
	}

	var invs []models.Inventory
	if err := r.forUpdate().
		Where("variant_id = ?", variantID).
		Order("warehouse_id ASC").
		Find(&invs).Error; err != nil {
		return 0, err
	}

	for _, inv := range invs {
		if inv.QtyAvailable() >= qty {
			return inv.WarehouseID, nil
		}
	}

	return 0, ErrInsufficientStock
}

// EnsureForVariant membuat ledger row kosong untuk variant baru
// di semua warehouse yang ada.
func (r *InventoryRepository) EnsureForVariant(variantID uint) error {
	var warehouses []models.Warehouse
	if err := r.db.Find(&warehouses).Error; err != nil {
		return err
	}

	for _, whs := range warehouses {
		var count int64
		if err := r.db.Model(&models.Inventory{}).
			Where("warehouse_id = ? AND variant_id = ?", whs.ID, variantID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		inv := models.Inventory{WarehouseID: whs.ID, VariantID: variantID}
		if err := r.db.Create(&inv).Error; err != nil {
			return err
		}
	}

	return nil
}

// EnsureForWarehouse membuat ledger row kosong untuk warehouse baru
// di semua variant yang ada.
func (r *InventoryRepository) EnsureForWarehouse(warehouseID uint) error {
	var variants []models.Variant
	if err := r.db.Find(&variants).Error; err != nil {
		return err
	}

	for _, variant := range variants {
		var count int64
		if err := r.db.Model(&models.Inventory{}).
			Where("warehouse_id = ? AND variant_id = ?", warehouseID, variant.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		inv := models.Inventory{WarehouseID: warehouseID, VariantID: variant.ID}
		if err := r.db.Create(&inv).Error; err != nil {
			return err
		}
	}

	return nil
}

type LedgerRow struct {
	WhsCode      string `json:"whs_code"`
	WhsName      string `json:"whs_name"`
	ProductName  string `json:"product_name"`
	VariantSku   string `json:"variant_sku"`
	Size         string `json:"size"`
	Color        string `json:"color"`
	QtyOnhand    int    `json:"qty_onhand"`
	QtyReserved  int    `json:"qty_reserved"`
	QtyAvailable int    `json:"qty_available"`
}

func (r *InventoryRepository) GetLedger() ([]LedgerRow, error) {
	sql := `select w.code as whs_code, w.name as whs_name,
	p.name as product_name, v.sku as variant_sku, v.size, v.color,
	i.qty_onhand, i.qty_reserved,
	i.qty_onhand - i.qty_reserved as qty_available
	from inventories i
	inner join warehouses w on i.warehouse_id = w.id
	inner join variants v on i.variant_id = v.id
	inner join products p on v.product_id = p.id
	where i.deleted_at is null
	order by w.code, v.sku`

	var rows []LedgerRow
	if err := r.db.Raw(sql).Scan(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}
