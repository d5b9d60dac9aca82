package repositories

import (
	"testing"

	"shop-app/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type orderFixture struct {
	db       *gorm.DB
	repo     *OrderRepository
	user     models.User
	whs1     models.Warehouse
	whs2     models.Warehouse
	product  models.Product
	variant1 models.Variant
	variant2 models.Variant
}

func newOrderFixture(t *testing.T) orderFixture {
	t.Helper()
	db := setupTestDB(t)
	user := createUser(t, db, "buyer@shop.local")
	whs1 := createWarehouse(t, db, "WH01")
	whs2 := createWarehouse(t, db, "WH02")

	product := models.Product{Name: "Sneaker", SKU: "SNK", Price: 50000}
	require.NoError(t, db.Create(&product).Error)

	variant1 := models.Variant{ProductID: product.ID, Size: "40", Color: "white", SKU: "SNK-40"}
	require.NoError(t, db.Create(&variant1).Error)
	variant2 := models.Variant{ProductID: product.ID, Size: "42", Color: "white", SKU: "SNK-42"}
	require.NoError(t, db.Create(&variant2).Error)

	return orderFixture{
		db:       db,
		repo:     NewOrderRepository(db),
		user:     user,
		whs1:     whs1,
		whs2:     whs2,
		product:  product,
		variant1: variant1,
		variant2: variant2,
	}
}

func TestCreateOrderReservesAndComputesTotals(t *testing.T) {
	fx := newOrderFixture(t)
	createInventory(t, fx.db, fx.whs1.ID, fx.variant1.ID, 10, 0)

	order, productIDs, err := fx.repo.CreateOrder(CreateOrderInput{
		UserID:      fx.user.ID,
		Discount:    10,
		ShippingFee: 2000,
		Items: []OrderItemInput{
			{ProductID: fx.product.ID, VariantID: fx.variant1.ID, Quantity: 4, Rate: 50000},
		},
	})
	require.NoError(t, err)

	require.Equal(t, models.OrderUnpaid, order.Status)
	require.Equal(t, int64(200000), order.SubTotal)
	// 200000 - 10% + 2000
	require.Equal(t, int64(182000), order.TotalAmount)
	require.NotEmpty(t, order.Code)
	require.Equal(t, []uint{fx.product.ID}, productIDs)

	require.Len(t, order.Items, 1)
	require.Equal(t, fx.whs1.ID, order.Items[0].WarehouseID)

	inv := getInventory(t, fx.db, fx.whs1.ID, fx.variant1.ID)
	require.Equal(t, 10, inv.QtyOnhand)
	require.Equal(t, 4, inv.QtyReserved)
	requireInvariant(t, fx.db)
}

func TestCreateOrderCODForcesPending(t *testing.T) {
	fx := newOrderFixture(t)
	createInventory(t, fx.db, fx.whs1.ID, fx.variant1.ID, 5, 0)

	order, _, err := fx.repo.CreateOrder(CreateOrderInput{
		UserID: fx.user.ID,
		IsCOD:  true,
		Items: []OrderItemInput{
			{ProductID: fx.product.ID, VariantID: fx.variant1.ID, Quantity: 1, Rate: 50000},
		},
	})
	require.NoError(t, err)
	require.Equal(t, models.OrderPending, order.Status)
	require.True(t, order.IsCOD)
}

func TestCreateOrderPicksFirstFitWarehouse(t *testing.T) {
	fx := newOrderFixture(t)
	createInventory(t, fx.db, fx.whs1.ID, fx.variant1.ID, 3, 0)
	createInventory(t, fx.db, fx.whs2.ID, fx.variant1.ID, 10, 0)

	order, _, err := fx.repo.CreateOrder(CreateOrderInput{
		UserID: fx.user.ID,
		Items: []OrderItemInput{
			{ProductID: fx.product.ID, VariantID: fx.variant1.ID, Quantity: 5, Rate: 50000},
		},
	})
	require.NoError(t, err)

	// 5 unit tidak muat di W1 (3), seluruh line jatuh ke W2
	require.Equal(t, fx.whs2.ID, order.Items[0].WarehouseID)
	require.Equal(t, 5, getInventory(t, fx.db, fx.whs2.ID, fx.variant1.ID).QtyReserved)
	require.Equal(t, 0, getInventory(t, fx.db, fx.whs1.ID, fx.variant1.ID).QtyReserved)
}

func TestCreateOrderAllOrNothing(t *testing.T) {
	fx := newOrderFixture(t)
	createInventory(t, fx.db, fx.whs1.ID, fx.variant1.ID, 10, 0)
	createInventory(t, fx.db, fx.whs1.ID, fx.variant2.ID, 1, 0)

	_, _, err := fx.repo.CreateOrder(CreateOrderInput{
		UserID: fx.user.ID,
		Items: []OrderItemInput{
			{ProductID: fx.product.ID, VariantID: fx.variant1.ID, Quantity: 2, Rate: 50000},
			{ProductID: fx.product.ID, VariantID: fx.variant2.ID, Quantity: 5, Rate: 50000},
		},
	})
	require.ErrorIs(t, err, ErrInsufficientStock)

	// Line pertama tidak meninggalkan reservasi apa pun
	require.Equal(t, 0, getInventory(t, fx.db, fx.whs1.ID, fx.variant1.ID).QtyReserved)
	require.Equal(t, 0, getInventory(t, fx.db, fx.whs1.ID, fx.variant2.ID).QtyReserved)

	var count int64
	require.NoError(t, fx.db.Model(&models.Order{}).Count(&count).Error)
	require.Equal(t, int64(0), count)
}

func TestCreateOrderLastUnitExclusive(t *testing.T) {
	fx := newOrderFixture(t)
	createInventory(t, fx.db, fx.whs1.ID, fx.variant1.ID, 1, 0)

	input := CreateOrderInput{
		UserID: fx.user.ID,
		Items: []OrderItemInput{
			{ProductID: fx.product.ID, VariantID: fx.variant1.ID, Quantity: 1, Rate: 50000},
		},
	}

	// Dua order berebut unit terakhir: tepat satu yang dapat
	_, _, err := fx.repo.CreateOrder(input)
	require.NoError(t, err)

	_, _, err = fx.repo.CreateOrder(input)
	require.ErrorIs(t, err, ErrInsufficientStock)

	inv := getInventory(t, fx.db, fx.whs1.ID, fx.variant1.ID)
	require.Equal(t, 1, inv.QtyReserved)
	requireInvariant(t, fx.db)
}

func TestCreateOrderConsumesCart(t *testing.T) {
	fx := newOrderFixture(t)
	createInventory(t, fx.db, fx.whs1.ID, fx.variant1.ID, 10, 0)
	createInventory(t, fx.db, fx.whs1.ID, fx.variant2.ID, 10, 0)

	cartRepo := NewCartRepository(fx.db)
	_, err := cartRepo.AddItem(fx.user.ID, fx.product.ID, fx.variant1.ID, 2)
	require.NoError(t, err)
	_, err = cartRepo.AddItem(fx.user.ID, fx.product.ID, fx.variant2.ID, 5)
	require.NoError(t, err)

	_, _, err = fx.repo.CreateOrder(CreateOrderInput{
		UserID: fx.user.ID,
		Items: []OrderItemInput{
			// qty order == qty cart → line dihapus
			{ProductID: fx.product.ID, VariantID: fx.variant1.ID, Quantity: 2, Rate: 50000},
			// qty order < qty cart → dikurangi
			{ProductID: fx.product.ID, VariantID: fx.variant2.ID, Quantity: 3, Rate: 50000},
		},
	})
	require.NoError(t, err)

	cart, err := cartRepo.GetByUserID(fx.user.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, fx.variant2.ID, cart.Items[0].VariantID)
	require.Equal(t, 2, cart.Items[0].Quantity)
}

func TestCancelOrderReleasesReservation(t *testing.T) {
	fx := newOrderFixture(t)
	createInventory(t, fx.db, fx.whs1.ID, fx.variant1.ID, 10, 0)

	order, _, err := fx.repo.CreateOrder(CreateOrderInput{
		UserID: fx.user.ID,
		Items: []OrderItemInput{
			{ProductID: fx.product.ID, VariantID: fx.variant1.ID, Quantity: 4, Rate: 50000},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 4, getInventory(t, fx.db, fx.whs1.ID, fx.variant1.ID).QtyReserved)

	cancelled, productIDs, err := fx.repo.CancelOrder(order.ID)
	require.NoError(t, err)
	require.Equal(t, models.OrderCancelled, cancelled.Status)
	require.Equal(t, []uint{fx.product.ID}, productIDs)

	// Reservasi dilepas persis 4
	require.Equal(t, 0, getInventory(t, fx.db, fx.whs1.ID, fx.variant1.ID).QtyReserved)

	// Cancel kedua bukan no-op, tapi ditolak
	_, _, err = fx.repo.CancelOrder(order.ID)
	require.ErrorIs(t, err, ErrInvalidTransition)
	requireInvariant(t, fx.db)
}

func TestCancelOrderPastPendingRejected(t *testing.T) {
	fx := newOrderFixture(t)
	createInventory(t, fx.db, fx.whs1.ID, fx.variant1.ID, 10, 0)

	order, _, err := fx.repo.CreateOrder(CreateOrderInput{
		UserID: fx.user.ID,
		Items: []OrderItemInput{
			{ProductID: fx.product.ID, VariantID: fx.variant1.ID, Quantity: 1, Rate: 50000},
		},
	})
	require.NoError(t, err)

	_, err = fx.repo.AdvanceStatus(order.ID, models.OrderPending)
	require.NoError(t, err)
	_, err = fx.repo.AdvanceStatus(order.ID, models.OrderReadyToShip)
	require.NoError(t, err)

	_, _, err = fx.repo.CancelOrder(order.ID)
	require.ErrorIs(t, err, ErrInvalidTransition)

	// Reservasi tetap utuh
	require.Equal(t, 1, getInventory(t, fx.db, fx.whs1.ID, fx.variant1.ID).QtyReserved)
}

func TestAdvanceStatusSingleStepOnly(t *testing.T) {
	fx := newOrderFixture(t)
	createInventory(t, fx.db, fx.whs1.ID, fx.variant1.ID, 10, 0)

	order, _, err := fx.repo.CreateOrder(CreateOrderInput{
		UserID: fx.user.ID,
		Items: []OrderItemInput{
			{ProductID: fx.product.ID, VariantID: fx.variant1.ID, Quantity: 1, Rate: 50000},
		},
	})
	require.NoError(t, err)
	require.Equal(t, models.OrderUnpaid, order.Status)

	// Loncat dari unpaid ke shipping ditolak
	_, err = fx.repo.AdvanceStatus(order.ID, models.OrderShipping)
	require.ErrorIs(t, err, ErrInvalidTransition)

	// Mundur juga ditolak
	_, err = fx.repo.AdvanceStatus(order.ID, models.OrderUnpaid)
	require.ErrorIs(t, err, ErrInvalidTransition)

	// Naik satu-satu sampai ready_to_ship
	for _, next := range []string{models.OrderPending, models.OrderReadyToShip} {
		_, err = fx.repo.AdvanceStatus(order.ID, next)
		require.NoError(t, err)
	}

	// Dari ready_to_ship, shipping valid
	advanced, err := fx.repo.AdvanceStatus(order.ID, models.OrderShipping)
	require.NoError(t, err)
	require.Equal(t, models.OrderShipping, advanced.Status)

	// Status cancelled bukan bagian dari advance
	_, err = fx.repo.AdvanceStatus(order.ID, models.OrderCancelled)
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestAdvanceStatusCancelledOrder(t *testing.T) {
	fx := newOrderFixture(t)
	createInventory(t, fx.db, fx.whs1.ID, fx.variant1.ID, 10, 0)

	order, _, err := fx.repo.CreateOrder(CreateOrderInput{
		UserID: fx.user.ID,
		Items: []OrderItemInput{
			{ProductID: fx.product.ID, VariantID: fx.variant1.ID, Quantity: 1, Rate: 50000},
		},
	})
	require.NoError(t, err)

	_, _, err = fx.repo.CancelOrder(order.ID)
	require.NoError(t, err)

	// Order yang sudah cancelled tidak bisa maju lagi
	_, err = fx.repo.AdvanceStatus(order.ID, models.OrderPending)
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestGetOrderList(t *testing.T) {
	fx := newOrderFixture(t)
	createInventory(t, fx.db, fx.whs1.ID, fx.variant1.ID, 10, 0)

	order, _, err := fx.repo.CreateOrder(CreateOrderInput{
		UserID: fx.user.ID,
		Items: []OrderItemInput{
			{ProductID: fx.product.ID, VariantID: fx.variant1.ID, Quantity: 2, Rate: 50000},
		},
	})
	require.NoError(t, err)

	list, err := fx.repo.GetOrderList()
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, order.Code, list[0].Code)
	require.Equal(t, fx.user.Email, list[0].UserEmail)
	require.Equal(t, 1, list[0].TotalLine)
	require.Equal(t, 2, list[0].TotalQty)
}
