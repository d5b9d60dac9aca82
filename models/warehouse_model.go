package models

import "gorm.io/gorm"

const (
	WarehouseActive   = "active"
	WarehouseInactive = "inactive"
)

type Warehouse struct {
	gorm.Model
	Name      string `json:"name" gorm:"not null" validate:"required"`
	Code      string `json:"code" gorm:"uniqueIndex;not null" validate:"required"`
	Status    string `json:"status" gorm:"default:active"`
	CreatedBy int    `json:"created_by"`
	UpdatedBy int    `json:"updated_by"`
}
