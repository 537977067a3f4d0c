package repository

import (
	"context"
	"sort"
	"strings"

	"github.com/Govind-619/inventory-manager/models"
	"github.com/Govind-619/inventory-manager/utils"
	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// MissingValue is rendered for cells an item has no value for
const MissingValue = "-"

// DashboardRow is one table row of the dashboard
type DashboardRow struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	Manufacturer string          `json:"manufacturer"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	Category     string          `json:"category"`
	Values       []string        `json:"values"`
}

// DashboardView is the item table: its characteristic columns, the items
// backing it and the rendered rows, Values aligned with Characteristics.
type DashboardView struct {
	CategoryName    string                  `json:"categoryName,omitempty"`
	Characteristics []models.Characteristic `json:"characteristics"`
	Items           []models.Item           `json:"items"`
	Rows            []DashboardRow          `json:"rows"`
}

// Dashboard assembles the item table. With a category name the columns are
// that category's characteristics; an unknown name yields an empty table.
// Without one, the columns are derived from the values present on items.
func (r *Repository) Dashboard(ctx context.Context, categoryName string) (*DashboardView, error) {
	categoryName = strings.TrimSpace(categoryName)
	view := &DashboardView{
		CategoryName:    categoryName,
		Characteristics: []models.Characteristic{},
		Items:           []models.Item{},
		Rows:            []DashboardRow{},
	}

	if categoryName != "" {
		category, err := r.FindCategoryByName(ctx, categoryName)
		if utils.IsNotFoundError(err) {
			utils.LogDebug("Dashboard category %q not found", categoryName)
			return view, nil
		}
		if err != nil {
			return nil, err
		}

		items, err := r.itemsWithValues(ctx, func(db *gorm.DB) *gorm.DB {
			return db.Where("category_id = ?", category.ID)
		})
		if err != nil {
			return nil, err
		}
		view.Items = items
		if len(category.Characteristics) > 0 {
			view.Characteristics = category.Characteristics
		}
	} else {
		items, err := r.itemsWithValues(ctx, func(db *gorm.DB) *gorm.DB { return db })
		if err != nil {
			return nil, err
		}
		view.Items = items
		view.Characteristics = DeriveColumns(items)
	}

	view.Rows = BuildRows(view.Items, view.Characteristics)
	return view, nil
}

func (r *Repository) itemsWithValues(ctx context.Context, filter func(*gorm.DB) *gorm.DB) ([]models.Item, error) {
	items := []models.Item{}
	err := r.db.WithContext(ctx).
		Scopes(filter, orderByName).
		Preload("Category").
		Preload("CharValues.Characteristic").
		Find(&items).Error
	if err != nil {
		return nil, classifyError(err, "fetch items")
	}
	return items, nil
}

// DeriveColumns returns the characteristics referenced by the items'
// values, one per id in first-encounter order, then sorted by displayed
// name with a locale collator. Characteristics without values on any item
// are not columns.
func DeriveColumns(items []models.Item) []models.Characteristic {
	seen := make(map[uint]bool)
	columns := []models.Characteristic{}
	for _, item := range items {
		for _, cv := range item.CharValues {
			if cv.Characteristic == nil || seen[cv.Characteristic.ID] {
				continue
			}
			seen[cv.Characteristic.ID] = true
			columns = append(columns, *cv.Characteristic)
		}
	}

	collator := collate.New(language.Und)
	sort.SliceStable(columns, func(i, j int) bool {
		return collator.CompareString(columns[i].DisplayedName, columns[j].DisplayedName) < 0
	})
	return columns
}

// BuildRows renders items against the given columns
func BuildRows(items []models.Item, columns []models.Characteristic) []DashboardRow {
	rows := make([]DashboardRow, 0, len(items))
	for _, item := range items {
		byCharacteristic := make(map[uint]string, len(item.CharValues))
		for _, cv := range item.CharValues {
			byCharacteristic[cv.CharacteristicID] = cv.Value
		}

		values := make([]string, len(columns))
		for i, col := range columns {
			value, ok := byCharacteristic[col.ID]
			if !ok {
				value = MissingValue
			}
			values[i] = value
		}

		row := DashboardRow{
			ID:           item.ID,
			Name:         item.Name,
			Manufacturer: MissingValue,
			Quantity:     item.Quantity,
			Price:        item.Price,
			Values:       values,
		}
		if item.Manufacturer != nil && *item.Manufacturer != "" {
			row.Manufacturer = *item.Manufacturer
		}
		if item.Category != nil {
			row.Category = item.Category.Name
		}
		rows = append(rows, row)
	}
	return rows
}
