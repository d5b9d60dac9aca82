package models

import "gorm.io/gorm"

// Inventory adalah ledger row per (warehouse, variant).
// Invariant: 0 <= qty_reserved <= qty_onhand setelah setiap transaksi commit.
type Inventory struct {
	gorm.Model
	WarehouseID uint `json:"warehouse_id" gorm:"uniqueIndex:idx_warehouse_variant;not null"`
	VariantID   uint `json:"variant_id" gorm:"uniqueIndex:idx_warehouse_variant;not null"`
	QtyOnhand   int  `json:"qty_onhand" gorm:"default:0"`
	QtyReserved int  `json:"qty_reserved" gorm:"default:0"`
}

func (i *Inventory) QtyAvailable() int {
	return i.QtyOnhand - i.QtyReserved
}
