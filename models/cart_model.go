package models

import "gorm.io/gorm"

// Cart hanyalah staging area per user, bukan sumber kebenaran stok.
type Cart struct {
	gorm.Model
	UserID uint       `json:"user_id" gorm:"uniqueIndex;not null"`
	Items  []CartItem `json:"items" gorm:"foreignKey:CartID"`
}

type CartItem struct {
	gorm.Model
	CartID    uint `json:"cart_id" gorm:"index;not null"`
	ProductID uint `json:"product_id" gorm:"not null"`
	VariantID uint `json:"variant_id" gorm:"not null"`
	Quantity  int  `json:"quantity" gorm:"default:1"`
}
