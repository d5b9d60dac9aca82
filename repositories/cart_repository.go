package repositories

import (
	"errors"

	"shop-app/models"

	"gorm.io/gorm"
)

type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// GetByUserID mengambil cart user, dibuat kosong kalau belum ada.
func (r *CartRepository) GetByUserID(userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID}
		if err := r.db.Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddItem menambah quantity kalau line (product, variant) sudah ada di cart.
func (r *CartRepository) AddItem(userID uint, productID uint, variantID uint, qty int) (*models.Cart, error) {
	cart, err := r.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	var item models.CartItem
	err = r.db.Where("cart_id = ? AND product_id = ? AND variant_id = ?", cart.ID, productID, variantID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		item = models.CartItem{
			CartID:    cart.ID,
			ProductID: productID,
			VariantID: variantID,
			Quantity:  qty,
		}
		if err := r.db.Create(&item).Error; err != nil {
			return nil, err
		}
		return r.GetByUserID(userID)
	}
	if err != nil {
		return nil, err
	}

	item.Quantity += qty
	if err := r.db.Save(&item).Error; err != nil {
		return nil, err
	}

	return r.GetByUserID(userID)
}

func (r *CartRepository) RemoveItem(cartID uint, productID uint, variantID uint) error {
	res := r.db.Where("cart_id = ? AND product_id = ? AND variant_id = ?", cartID, productID, variantID).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ConsumeOrderedItem dipanggil dari transaksi pembuatan order: kalau
// quantity cart <= quantity order, line dihapus; kalau lebih, dikurangi.
// Line yang tidak ada di cart di-skip (order bisa datang dari luar cart).
func (r *CartRepository) ConsumeOrderedItem(userID uint, productID uint, variantID uint, qty int) error {
	var cart models.Cart
	err := r.db.Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	var item models.CartItem
	err = r.db.Where("cart_id = ? AND product_id = ? AND variant_id = ?", cart.ID, productID, variantID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if item.Quantity <= qty {
		return r.db.Delete(&item).Error
	}

	item.Quantity -= qty
	return r.db.Save(&item).Error
}
