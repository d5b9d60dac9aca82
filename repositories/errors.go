package repositories

import "errors"

var (
	// ErrInsufficientStock: qty yang diminta melebihi stok available
	// di semua warehouse. Seluruh operasi dibatalkan, tidak ada partial state.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidTransition: precondition state machine tidak terpenuhi
	// (submit non-draft, cancel non-submitted, advance status loncat, dst).
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrNotFound: inventory/order/stock entry/cart yang direferensikan tidak ada.
	ErrNotFound = errors.New("record not found")

	// ErrInvariantViolation: bug guard internal, misalnya release yang membuat
	// qty_reserved negatif. Transaksi di-abort, tidak pernah di-clamp diam-diam.
	ErrInvariantViolation = errors.New("inventory invariant violation")
)
