package models

import "gorm.io/gorm"

type Product struct {
	gorm.Model
	Name      string    `json:"name" gorm:"not null" validate:"required"`
	SKU       string    `json:"sku" gorm:"uniqueIndex;not null" validate:"required"`
	Category  string    `json:"category"`
	Price     int64     `json:"price" validate:"gte=0"` // harga dalam satuan terkecil (cents/rupiah)
	Embedding string    `json:"-" gorm:"type:text"`     // search embedding, diisi oleh reindexer
	Variants  []Variant `json:"variants" gorm:"foreignKey:ProductID"`
	CreatedBy int       `json:"created_by"`
	UpdatedBy int       `json:"updated_by"`
}

// Variant adalah SKU yang bisa dibeli (kombinasi size/color dari satu product).
type Variant struct {
	gorm.Model
	ProductID uint   `json:"product_id" gorm:"index;not null"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	SKU       string `json:"sku" gorm:"uniqueIndex;not null"`
}
