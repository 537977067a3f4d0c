package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Govind-619/inventory-manager/models"
	"github.com/Govind-619/inventory-manager/utils"
	"gorm.io/gorm"
)

// NewCharacteristic describes a characteristic created with its category
type NewCharacteristic struct {
	Name          string
	DisplayedName string
}

// NewCategory is the input of CreateCategory
type NewCategory struct {
	Name            string
	Characteristics []NewCharacteristic
}

func orderByName(db *gorm.DB) *gorm.DB {
	return db.Order("name ASC").Order("id ASC")
}

// ListCategories returns every category ordered by name
func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	if err := r.db.WithContext(ctx).Scopes(orderByName).Find(&categories).Error; err != nil {
		return nil, classifyError(err, "fetch categories")
	}
	return categories, nil
}

// CreateCategory creates a category and its characteristics atomically
func (r *Repository) CreateCategory(ctx context.Context, input NewCategory) (*models.Category, error) {
	category := models.Category{
		Name:            strings.TrimSpace(input.Name),
		Characteristics: make([]models.Characteristic, 0, len(input.Characteristics)),
	}
	for _, ch := range input.Characteristics {
		category.Characteristics = append(category.Characteristics, models.Characteristic{
			Name:          ch.Name,
			DisplayedName: ch.DisplayedName,
		})
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.Category{}).Where("name = ?", category.Name).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return utils.ConflictError("A category with this name already exists", nil)
		}
		return tx.Create(&category).Error
	})
	if err != nil {
		return nil, classifyError(err, "create category")
	}

	utils.LogDebug("Created category %d with %d characteristics", category.ID, len(category.Characteristics))
	return &category, nil
}

// GetCategory returns a category with its characteristics ordered by name
func (r *Repository) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).
		Preload("Characteristics", orderByName).
		First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFoundError("Category not found", err)
	}
	if err != nil {
		return nil, classifyError(err, "fetch category")
	}
	return &category, nil
}

// FindCategoryByName resolves a category by its unique name
func (r *Repository) FindCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).
		Preload("Characteristics", orderByName).
		Where("name = ?", strings.TrimSpace(name)).
		First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFoundError("Category not found", err)
	}
	if err != nil {
		return nil, classifyError(err, "fetch category")
	}
	return &category, nil
}

// DeleteCategory removes a category that no item references.
// Characteristics go with it through the ON DELETE CASCADE constraint.
func (r *Repository) DeleteCategory(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFoundError("Category not found", err)
			}
			return err
		}

		var itemCount int64
		if err := tx.Model(&models.Item{}).Where("category_id = ?", id).Count(&itemCount).Error; err != nil {
			return err
		}
		if itemCount > 0 {
			return utils.ConflictError(fmt.Sprintf("Cannot delete category that has %d item(s) associated with it", itemCount), nil)
		}

		return tx.Delete(&category).Error
	})
	if err != nil {
		return classifyError(err, "delete category")
	}
	return nil
}
