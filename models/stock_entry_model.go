package models

import (
	"shop-app/types"

	"gorm.io/gorm"
)

const (
	StockEntryDraft     = "draft"
	StockEntrySubmitted = "submitted"
	StockEntryCancelled = "cancelled"
)

const (
	StockEntryTypeImport     = "import"
	StockEntryTypeAdjustment = "adjustment"
)

// StockEntry adalah dokumen penerimaan barang.
// Lifecycle: draft -> submitted -> cancelled.
// Submit menambah qty_onhand inventory, cancel membalikkan persis.
type StockEntry struct {
	gorm.Model
	ID           types.SnowflakeID `json:"ID" gorm:"primaryKey"`
	Code         string            `json:"code" gorm:"uniqueIndex"`
	Type         string            `json:"type" gorm:"default:import"`
	Status       string            `json:"status" gorm:"default:draft"`
	SupplierName string            `json:"supplier_name"`
	Note         string            `json:"note"`
	TotalCost    int64             `json:"total_cost" gorm:"default:0"`
	Items        []StockEntryItem  `json:"items" gorm:"foreignKey:StockEntryID"`
	CreatedBy    int               `json:"created_by"`
	UpdatedBy    int               `json:"updated_by"`
}

type StockEntryItem struct {
	gorm.Model
	StockEntryID types.SnowflakeID `json:"stock_entry_id" gorm:"index"`
	InventoryID  uint              `json:"inventory_id" gorm:"not null"`
	Quantity     int               `json:"quantity" gorm:"not null"`
	UnitCost     int64             `json:"unit_cost" gorm:"default:0"`
	Note         string            `json:"note"`
}
