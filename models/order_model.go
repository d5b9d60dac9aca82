package models

import (
	"shop-app/types"

	"gorm.io/gorm"
)

const (
	OrderUnpaid      = "unpaid"
	OrderPending     = "pending"
	OrderReadyToShip = "ready_to_ship"
	OrderShipping    = "shipping"
	OrderDelivered   = "delivered"
	OrderCompleted   = "completed"
	OrderCancelled   = "cancelled"
)

// OrderStatusPriority menentukan urutan maju status order.
// Advance hanya boleh naik tepat satu langkah; cancelled di luar urutan ini.
var OrderStatusPriority = map[string]int{
	OrderUnpaid:      0,
	OrderPending:     1,
	OrderReadyToShip: 2,
	OrderShipping:    3,
	OrderDelivered:   4,
	OrderCompleted:   5,
}

type Order struct {
	gorm.Model
	ID          types.SnowflakeID `json:"ID" gorm:"primaryKey"`
	Code        string            `json:"code" gorm:"uniqueIndex"`
	UserID      uint              `json:"user_id" gorm:"index;not null"`
	Status      string            `json:"status" gorm:"default:unpaid"`
	SubTotal    int64             `json:"sub_total" gorm:"default:0"`
	Discount    int64             `json:"discount" gorm:"default:0"` // persen 0-100
	ShippingFee int64             `json:"shipping_fee" gorm:"default:0"`
	TotalAmount int64             `json:"total_amount" gorm:"default:0"`
	IsCOD       bool              `json:"is_cod" gorm:"default:false"`
	Items       []OrderItem       `json:"items" gorm:"foreignKey:OrderID"`
}

// OrderItem menyimpan alokasi warehouse yang dipilih saat order dibuat.
// WarehouseID tidak pernah di-reassign setelah itu.
type OrderItem struct {
	gorm.Model
	OrderID     types.SnowflakeID `json:"order_id" gorm:"index"`
	ProductID   uint              `json:"product_id" gorm:"not null"`
	VariantID   uint              `json:"variant_id" gorm:"not null"`
	WarehouseID uint              `json:"warehouse_id" gorm:"not null"`
	Quantity    int               `json:"quantity" gorm:"not null"`
	Rate        int64             `json:"rate" gorm:"default:0"` // harga satuan saat order
}
