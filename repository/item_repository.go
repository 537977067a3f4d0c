package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/Govind-619/inventory-manager/models"
	"github.com/Govind-619/inventory-manager/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ValueInput is a caller-supplied value for one characteristic
type ValueInput struct {
	CharacteristicID uint
	Value            string
}

// NewItem is the input of CreateItem
type NewItem struct {
	Name         string
	Manufacturer *string
	Quantity     int
	Price        decimal.Decimal
	CategoryID   uint
	Values       []ValueInput
}

// ListItems returns every item without relations
func (r *Repository) ListItems(ctx context.Context) ([]models.Item, error) {
	items := []models.Item{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, classifyError(err, "fetch items")
	}
	return items, nil
}

// CreateItem creates an item with one value per characteristic of its
// category. The characteristic lookup and the insert share a transaction,
// so the value set always matches the category at commit time.
func (r *Repository) CreateItem(ctx context.Context, input NewItem) (*models.Item, error) {
	var created models.Item
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.Preload("Characteristics", orderByName).First(&category, input.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFoundError("Category not found", err)
			}
			return err
		}

		item := models.Item{
			Name:         strings.TrimSpace(input.Name),
			Manufacturer: input.Manufacturer,
			Quantity:     input.Quantity,
			Price:        input.Price,
			CategoryID:   category.ID,
			CharValues:   MaterializeValues(category.Characteristics, input.Values),
		}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}

		return tx.Preload("CharValues", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).Preload("CharValues.Characteristic").First(&created, item.ID).Error
	})
	if err != nil {
		return nil, classifyError(err, "create item")
	}

	utils.LogDebug("Created item %d with %d characteristic values", created.ID, len(created.CharValues))
	return &created, nil
}

// MaterializeValues builds exactly one value row per characteristic. The
// first supplied entry for a characteristic wins; a missing entry yields an
// empty value and entries for foreign characteristics are dropped.
func MaterializeValues(characteristics []models.Characteristic, supplied []ValueInput) []models.CharacteristicValue {
	byID := make(map[uint]string, len(supplied))
	for _, in := range supplied {
		if _, seen := byID[in.CharacteristicID]; !seen {
			byID[in.CharacteristicID] = in.Value
		}
	}

	values := make([]models.CharacteristicValue, 0, len(characteristics))
	for _, ch := range characteristics {
		values = append(values, models.CharacteristicValue{
			CharacteristicID: ch.ID,
			Value:            byID[ch.ID],
		})
	}
	return values
}

// UpdateItemQuantity sets the stock level of an item
func (r *Repository) UpdateItemQuantity(ctx context.Context, id uint, quantity int) (*models.Item, error) {
	db := r.db.WithContext(ctx)

	var item models.Item
	if err := db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("Item not found", err)
		}
		return nil, classifyError(err, "update item")
	}

	result := db.Model(&item).Update("quantity", quantity)
	if result.Error != nil {
		return nil, classifyError(result.Error, "update item")
	}
	if result.RowsAffected == 0 {
		return nil, utils.NotFoundError("Item not found", nil)
	}

	var updated models.Item
	if err := db.First(&updated, id).Error; err != nil {
		return nil, classifyError(err, "update item")
	}
	return &updated, nil
}

// DeleteItem removes an item; its values go through ON DELETE CASCADE
func (r *Repository) DeleteItem(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Item{}, id)
	if result.Error != nil {
		return classifyError(result.Error, "delete item")
	}
	if result.RowsAffected == 0 {
		return utils.NotFoundError("Item not found", nil)
	}
	return nil
}

// CountValues reports how many characteristic values an item has
func (r *Repository) CountValues(ctx context.Context, itemID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CharacteristicValue{}).Where("item_id = ?", itemID).Count(&count).Error
	if err != nil {
		return 0, classifyError(err, "count characteristic values")
	}
	return count, nil
}
