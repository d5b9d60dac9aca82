package repositories

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"shop-app/controllers/idgen"
	"shop-app/models"
	"shop-app/types"

	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

type OrderItemInput struct {
	ProductID uint  `json:"product_id" validate:"required"`
	VariantID uint  `json:"variant_id" validate:"required"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
	Rate      int64 `json:"rate" validate:"gte=0"`
}

type CreateOrderInput struct {
	UserID      uint             `json:"user_id" validate:"required"`
	Discount    int64            `json:"discount" validate:"gte=0,lte=100"` // persen
	ShippingFee int64            `json:"shipping_fee" validate:"gte=0"`
	IsCOD       bool             `json:"is_cod"`
	Items       []OrderItemInput `json:"items" validate:"required,min=1,dive"`
}

func (r *OrderRepository) GenerateOrderCode() (string, error) {
	var lastOrder models.Order

	// Ambil order terakhir
	if err := r.db.Unscoped().Order("code DESC").First(&lastOrder).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	// Tanggal sekarang dalam format YYMMDD
	currentDate := time.Now().Format("060102")

	var orderNo string
	if lastOrder.Code != "" && len(lastOrder.Code) >= 12 {
		lastDatePart := lastOrder.Code[2:8]
		lastSequenceStr := lastOrder.Code[len(lastOrder.Code)-4:]

		if currentDate != lastDatePart {
			// Tanggal berubah → reset nomor urut ke 1
			orderNo = fmt.Sprintf("SO%s%04d", currentDate, 1)
		} else {
			lastSequenceInt, _ := strconv.Atoi(lastSequenceStr)
			orderNo = fmt.Sprintf("SO%s%04d", currentDate, lastSequenceInt+1)
		}
	} else {
		orderNo = fmt.Sprintf("SO%s%04d", currentDate, 1)
	}

	return orderNo, nil
}

// CreateOrder menjalankan seluruh fulfillment dalam satu transaksi:
// alokasi warehouse per line, hitung total, simpan order, reservasi stok,
// lalu rekonsiliasi cart. Satu line gagal dialokasi berarti seluruh order
// batal tanpa ada reservasi yang tersisa.
// Mengembalikan order dan daftar product id yang tersentuh, untuk
// trigger reindex setelah commit.
func (r *OrderRepository) CreateOrder(input CreateOrderInput) (*models.Order, []uint, error) {
	tx := r.db.Begin()
	if tx.Error != nil {
		return nil, nil, errors.New("failed to start transaction")
	}

	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
		}
	}()

	invRepo := NewInventoryRepository(tx)

	// 1. Alokasikan semua line dulu. Baris inventory yang dibaca di sini
	// terkunci sampai commit, jadi reservasi di bawah pakai data yang sama.
	warehouseIDs := make([]uint, len(input.Items))
	for i, item := range input.Items {
		whsID, err := invRepo.AllocateWarehouse(item.VariantID, item.Quantity)
		if err != nil {
			tx.Rollback()
			return nil, nil, err
		}
		warehouseIDs[i] = whsID
	}

	// 2. Hitung total dalam satuan terkecil
	var subTotal int64
	for _, item := range input.Items {
		subTotal += item.Rate * int64(item.Quantity)
	}
	totalAmount := subTotal - subTotal*input.Discount/100 + input.ShippingFee

	status := models.OrderUnpaid
	if input.IsCOD {
		status = models.OrderPending
	}

	code, err := r.GenerateOrderCode()
	if err != nil {
		tx.Rollback()
		return nil, nil, err
	}

	// 3. Simpan order beserta alokasi warehouse per line
	order := models.Order{
		ID:          types.SnowflakeID(idgen.GenerateID()),
		Code:        code,
		UserID:      input.UserID,
		Status:      status,
		SubTotal:    subTotal,
		Discount:    input.Discount,
		ShippingFee: input.ShippingFee,
		TotalAmount: totalAmount,
		IsCOD:       input.IsCOD,
	}

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		return nil, nil, err
	}

	for i, item := range input.Items {
		orderItem := models.OrderItem{
			OrderID:     order.ID,
			ProductID:   item.ProductID,
			VariantID:   item.VariantID,
			WarehouseID: warehouseIDs[i],
			Quantity:    item.Quantity,
			Rate:        item.Rate,
		}
		if err := tx.Create(&orderItem).Error; err != nil {
			tx.Rollback()
			return nil, nil, err
		}
	}

	// 4. Reservasi per line
	for i, item := range input.Items {
		if err := invRepo.Reserve(warehouseIDs[i], item.VariantID, item.Quantity); err != nil {
			tx.Rollback()
			return nil, nil, err
		}
	}

	// 5. Rekonsiliasi cart user
	cartRepo := NewCartRepository(tx)
	for _, item := range input.Items {
		if err := cartRepo.ConsumeOrderedItem(input.UserID, item.ProductID, item.VariantID, item.Quantity); err != nil {
			tx.Rollback()
			return nil, nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, nil, err
	}

	created, err := r.GetByID(order.ID)
	if err != nil {
		return nil, nil, err
	}

	return created, distinctProductIDs(input.Items), nil
}

func distinctProductIDs(items []OrderItemInput) []uint {
	seen := map[uint]bool{}
	var ids []uint
	for _, item := range items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}
	return ids
}

// CancelOrder hanya boleh dari unpaid/pending. Reservasi setiap item
// dilepas persis sejumlah yang ditahan, lalu status jadi cancelled.
// Cancel kedua kali ditolak dengan ErrInvalidTransition, bukan no-op.
func (r *OrderRepository) CancelOrder(id types.SnowflakeID) (*models.Order, []uint, error) {
	tx := r.db.Begin()
	if tx.Error != nil {
		return nil, nil, errors.New("failed to start transaction")
	}

	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
		}
	}()

	var order models.Order
	if err := tx.Preload("Items").Where("id = ?", id).First(&order).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	if order.Status != models.OrderUnpaid && order.Status != models.OrderPending {
		tx.Rollback()
		return nil, nil, ErrInvalidTransition
	}

	invRepo := NewInventoryRepository(tx)
	var productIDs []uint
	seen := map[uint]bool{}
	for _, item := range order.Items {
		if err := invRepo.Release(item.WarehouseID, item.VariantID, item.Quantity); err != nil {
			tx.Rollback()
			return nil, nil, err
		}
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			productIDs = append(productIDs, item.ProductID)
		}
	}

	res := tx.Model(&models.Order{}).
		Where("id = ? AND status IN ?", id, []string{models.OrderUnpaid, models.OrderPending}).
		Update("status", models.OrderCancelled)
	if res.Error != nil {
		tx.Rollback()
		return nil, nil, res.Error
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return nil, nil, ErrInvalidTransition
	}

	if err := tx.Commit().Error; err != nil {
		return nil, nil, err
	}

	cancelled, err := r.GetByID(id)
	if err != nil {
		return nil, nil, err
	}

	return cancelled, productIDs, nil
}

// AdvanceStatus menaikkan status order tepat satu langkah.
// Tidak boleh loncat, tidak boleh mundur; cancelled tidak bisa lewat sini.
func (r *OrderRepository) AdvanceStatus(id types.SnowflakeID, newStatus string) (*models.Order, error) {
	newPriority, ok := models.OrderStatusPriority[newStatus]
	if !ok {
		return nil, ErrInvalidTransition
	}

	var order models.Order
	if err := r.db.Where("id = ?", id).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	currentPriority, ok := models.OrderStatusPriority[order.Status]
	if !ok {
		// order cancelled: tidak ada jalan maju lagi
		return nil, ErrInvalidTransition
	}

	if newPriority-currentPriority != 1 {
		return nil, ErrInvalidTransition
	}

	res := r.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", id, order.Status).
		Update("status", newStatus)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrInvalidTransition
	}

	return r.GetByID(id)
}

func (r *OrderRepository) GetByID(id types.SnowflakeID) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").Where("id = ?", id).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

type OrderList struct {
	ID          types.SnowflakeID `json:"ID"`
	Code        string            `json:"code"`
	Status      string            `json:"status"`
	UserName    string            `json:"user_name"`
	UserEmail   string            `json:"user_email"`
	TotalLine   int               `json:"total_line"`
	TotalQty    int               `json:"total_qty"`
	SubTotal    int64             `json:"sub_total"`
	TotalAmount int64             `json:"total_amount"`
	IsCOD       bool              `json:"is_cod"`
	CreatedAt   time.Time         `json:"created_at"`
}

func (r *OrderRepository) GetOrderList() ([]OrderList, error) {
	sql := `WITH detail AS (
				SELECT order_id, COUNT(id) AS total_line, SUM(quantity) AS total_qty
				FROM order_items
				WHERE deleted_at IS NULL
				GROUP BY order_id
			)
			SELECT o.id, o.code, o.status, u.name AS user_name, u.email AS user_email,
			COALESCE(d.total_line, 0) AS total_line, COALESCE(d.total_qty, 0) AS total_qty,
			o.sub_total, o.total_amount, o.is_cod, o.created_at
			FROM orders o
			LEFT JOIN detail d ON o.id = d.order_id
			LEFT JOIN users u ON o.user_id = u.id
			WHERE o.deleted_at IS NULL
			ORDER BY o.created_at DESC`

	var list []OrderList
	if err := r.db.Raw(sql).Scan(&list).Error; err != nil {
		return nil, err
	}

	return list, nil
}
