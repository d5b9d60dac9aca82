package repositories

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"shop-app/controllers/idgen"
	"shop-app/models"
	"shop-app/types"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type StockEntryRepository struct {
	db *gorm.DB
}

func NewStockEntryRepository(db *gorm.DB) *StockEntryRepository {
	return &StockEntryRepository{db: db}
}

type StockEntryItemInput struct {
	InventoryID uint   `json:"inventory_id" validate:"required"`
	Quantity    int    `json:"quantity" validate:"required,gt=0"`
	UnitCost    int64  `json:"unit_cost" validate:"gte=0"`
	Note        string `json:"note"`
}

type StockEntryInput struct {
	Type         string                `json:"type"`
	SupplierName string                `json:"supplier_name"`
	Note         string                `json:"note"`
	Items        []StockEntryItemInput `json:"items" validate:"required,min=1,dive"`
}

func (r *StockEntryRepository) GenerateStockEntryCode() (string, error) {
	var lastEntry models.StockEntry

	// Ambil entry terakhir
	if err := r.db.Unscoped().Order("code DESC").First(&lastEntry).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	// Tanggal sekarang dalam format YYMMDD
	currentDate := time.Now().Format("060102")

	var entryNo string
	if lastEntry.Code != "" && len(lastEntry.Code) >= 12 {
		lastDatePart := lastEntry.Code[2:8]
		lastSequenceStr := lastEntry.Code[len(lastEntry.Code)-4:]

		if currentDate != lastDatePart {
			// Tanggal berubah → reset nomor urut ke 1
			entryNo = fmt.Sprintf("SE%s%04d", currentDate, 1)
		} else {
			lastSequenceInt, _ := strconv.Atoi(lastSequenceStr)
			entryNo = fmt.Sprintf("SE%s%04d", currentDate, lastSequenceInt+1)
		}
	} else {
		entryNo = fmt.Sprintf("SE%s%04d", currentDate, 1)
	}

	return entryNo, nil
}

func totalCost(items []StockEntryItemInput) int64 {
	var total int64
	for _, item := range items {
		total += int64(item.Quantity) * item.UnitCost
	}
	return total
}

// Create menyimpan stock entry baru dengan status draft.
func (r *StockEntryRepository) Create(input StockEntryInput, userID int) (*models.StockEntry, error) {
	tx := r.db.Begin()
	if tx.Error != nil {
		return nil, errors.New("failed to start transaction")
	}

	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
		}
	}()

	// Pastikan semua inventory yang direferensikan ada
	for _, item := range input.Items {
		var count int64
		if err := tx.Model(&models.Inventory{}).Where("id = ?", item.InventoryID).Count(&count).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		if count == 0 {
			tx.Rollback()
			return nil, ErrNotFound
		}
	}

	code, err := r.GenerateStockEntryCode()
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	entryType := input.Type
	if entryType == "" {
		entryType = models.StockEntryTypeImport
	}

	entry := models.StockEntry{
		ID:           types.SnowflakeID(idgen.GenerateID()),
		Code:         code,
		Type:         entryType,
		Status:       models.StockEntryDraft,
		SupplierName: input.SupplierName,
		Note:         input.Note,
		TotalCost:    totalCost(input.Items),
		CreatedBy:    userID,
	}

	if err := tx.Create(&entry).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	for _, item := range input.Items {
		entryItem := models.StockEntryItem{
			StockEntryID: entry.ID,
			InventoryID:  item.InventoryID,
			Quantity:     item.Quantity,
			UnitCost:     item.UnitCost,
			Note:         item.Note,
		}
		if err := tx.Create(&entryItem).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return r.GetByID(entry.ID)
}

// Update mengganti item list secara keseluruhan dan menghitung ulang total cost.
// Hanya boleh selama status masih draft.
func (r *StockEntryRepository) Update(id types.SnowflakeID, input StockEntryInput, userID int) (*models.StockEntry, error) {
	tx := r.db.Begin()
	if tx.Error != nil {
		return nil, errors.New("failed to start transaction")
	}

	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
		}
	}()

	var entry models.StockEntry
	if err := tx.Where("id = ?", id).First(&entry).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if entry.Status != models.StockEntryDraft {
		tx.Rollback()
		return nil, ErrInvalidTransition
	}

	for _, item := range input.Items {
		var count int64
		if err := tx.Model(&models.Inventory{}).Where("id = ?", item.InventoryID).Count(&count).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		if count == 0 {
			tx.Rollback()
			return nil, ErrNotFound
		}
	}

	// Hapus item lama, ganti dengan yang baru
	if err := tx.Unscoped().Where("stock_entry_id = ?", id).Delete(&models.StockEntryItem{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	for _, item := range input.Items {
		entryItem := models.StockEntryItem{
			StockEntryID: entry.ID,
			InventoryID:  item.InventoryID,
			Quantity:     item.Quantity,
			UnitCost:     item.UnitCost,
			Note:         item.Note,
		}
		if err := tx.Create(&entryItem).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	updates := map[string]interface{}{
		"supplier_name": input.SupplierName,
		"note":          input.Note,
		"total_cost":    totalCost(input.Items),
		"updated_by":    userID,
	}
	if input.Type != "" {
		updates["type"] = input.Type
	}

	if err := tx.Model(&models.StockEntry{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return r.GetByID(id)
}

// Delete hanya boleh untuk entry yang masih draft.
func (r *StockEntryRepository) Delete(id types.SnowflakeID) error {
	tx := r.db.Begin()
	if tx.Error != nil {
		return errors.New("failed to start transaction")
	}

	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
		}
	}()

	var entry models.StockEntry
	if err := tx.Where("id = ?", id).First(&entry).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if entry.Status != models.StockEntryDraft {
		tx.Rollback()
		return ErrInvalidTransition
	}

	if err := tx.Where("stock_entry_id = ?", id).Delete(&models.StockEntryItem{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Delete(&entry).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// Submit menerapkan +quantity ke qty_onhand setiap inventory yang
// direferensikan, lalu draft -> submitted. All-or-nothing: satu item
// gagal berarti seluruh submit di-rollback.
func (r *StockEntryRepository) Submit(id types.SnowflakeID, userID int) (*models.StockEntry, error) {
	if err := r.applyTransition(id, userID, models.StockEntryDraft, models.StockEntrySubmitted, +1); err != nil {
		return nil, err
	}
	return r.GetByID(id)
}

// Cancel membalikkan submit: -quantity ke setiap inventory,
// lalu submitted -> cancelled. Hanya valid dari submitted.
func (r *StockEntryRepository) Cancel(id types.SnowflakeID, userID int) (*models.StockEntry, error) {
	if err := r.applyTransition(id, userID, models.StockEntrySubmitted, models.StockEntryCancelled, -1); err != nil {
		return nil, err
	}
	return r.GetByID(id)
}

func (r *StockEntryRepository) applyTransition(id types.SnowflakeID, userID int, fromStatus string, toStatus string, sign int) error {
	tx := r.db.Begin()
	if tx.Error != nil {
		return errors.New("failed to start transaction")
	}

	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
		}
	}()

	var entry models.StockEntry
	if err := tx.Preload("Items").Where("id = ?", id).First(&entry).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if entry.Status != fromStatus {
		tx.Rollback()
		return ErrInvalidTransition
	}

	invRepo := NewInventoryRepository(tx)
	for _, item := range entry.Items {
		var inv models.Inventory
		if err := tx.Where("id = ?", item.InventoryID).First(&inv).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := invRepo.AdjustOnhand(inv.WarehouseID, inv.VariantID, sign*item.Quantity); err != nil {
			tx.Rollback()
			return err
		}
	}

	// Guard status sekali lagi di update, jaga-jaga kalau ada submit paralel
	res := tx.Model(&models.StockEntry{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Updates(map[string]interface{}{"status": toStatus, "updated_by": userID})
	if res.Error != nil {
		tx.Rollback()
		return res.Error
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return ErrInvalidTransition
	}

	return tx.Commit().Error
}

func (r *StockEntryRepository) GetByID(id types.SnowflakeID) (*models.StockEntry, error) {
	var entry models.StockEntry
	err := r.db.Preload("Items").Where("id = ?", id).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

type StockEntryFilter struct {
	Status        string `json:"status"`
	Type          string `json:"type"`
	SupplierName  string `json:"supplier_name"`
	WarehouseName string `json:"warehouse_name"`
	VariantSku    string `json:"variant_sku"`
	SortBy        string `json:"sort_by"`
	SortDir       string `json:"sort_dir"`
}

type StockEntryList struct {
	ID           types.SnowflakeID `json:"ID"`
	Code         string            `json:"code"`
	Type         string            `json:"type"`
	Status       string            `json:"status"`
	SupplierName string            `json:"supplier_name"`
	Note         string            `json:"note"`
	TotalCost    int64             `json:"total_cost"`
	TotalLine    int               `json:"total_line"`
	TotalQty     int               `json:"total_qty"`
	CreatedAt    time.Time         `json:"created_at"`
}

var stockEntrySortColumns = []string{"code", "status", "type", "supplier_name", "total_cost", "created_at"}

// Filter adalah query read-only, tidak menyentuh state.
func (r *StockEntryRepository) Filter(filter StockEntryFilter) ([]StockEntryList, error) {
	sql := `WITH detail AS (
				SELECT stock_entry_id, COUNT(id) AS total_line, SUM(quantity) AS total_qty
				FROM stock_entry_items
				WHERE deleted_at IS NULL
				GROUP BY stock_entry_id
			)
			SELECT e.id, e.code, e.type, e.status, e.supplier_name, e.note,
			e.total_cost, COALESCE(d.total_line, 0) AS total_line,
			COALESCE(d.total_qty, 0) AS total_qty, e.created_at
			FROM stock_entries e
			LEFT JOIN detail d ON e.id = d.stock_entry_id
			WHERE e.deleted_at IS NULL`

	var args []interface{}

	if filter.Status != "" {
		sql += " AND e.status = ?"
		args = append(args, filter.Status)
	}
	if filter.Type != "" {
		sql += " AND e.type = ?"
		args = append(args, filter.Type)
	}
	if filter.SupplierName != "" {
		sql += " AND e.supplier_name LIKE ?"
		args = append(args, "%"+filter.SupplierName+"%")
	}
	if filter.WarehouseName != "" {
		sql += ` AND EXISTS (
			SELECT 1 FROM stock_entry_items si
			INNER JOIN inventories inv ON si.inventory_id = inv.id
			INNER JOIN warehouses w ON inv.warehouse_id = w.id
			WHERE si.stock_entry_id = e.id AND w.name LIKE ?)`
		args = append(args, "%"+filter.WarehouseName+"%")
	}
	if filter.VariantSku != "" {
		sql += ` AND EXISTS (
			SELECT 1 FROM stock_entry_items si
			INNER JOIN inventories inv ON si.inventory_id = inv.id
			INNER JOIN variants v ON inv.variant_id = v.id
			WHERE si.stock_entry_id = e.id AND v.sku LIKE ?)`
		args = append(args, "%"+filter.VariantSku+"%")
	}

	sortBy := filter.SortBy
	if !slices.Contains(stockEntrySortColumns, sortBy) {
		sortBy = "created_at"
	}
	sortDir := "DESC"
	if strings.EqualFold(filter.SortDir, "asc") {
		sortDir = "ASC"
	}
	sql += " ORDER BY e." + sortBy + " " + sortDir

	var list []StockEntryList
	if err := r.db.Raw(sql, args...).Scan(&list).Error; err != nil {
		return nil, err
	}

	return list, nil
}
