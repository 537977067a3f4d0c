package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Item is a stocked product. Items block deletion of their category.
type Item struct {
	ID           uint                  `json:"id" gorm:"primaryKey"`
	Name         string                `json:"name" gorm:"not null;index"`
	Manufacturer *string               `json:"manufacturer"`
	Quantity     int                   `json:"quantity" gorm:"not null;default:0;check:chk_items_quantity,quantity >= 0"`
	Price        decimal.Decimal       `json:"price" gorm:"type:numeric(12,2);not null"`
	CategoryID   uint                  `json:"categoryId" gorm:"not null;index"`
	Category     *Category             `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
	CharValues   []CharacteristicValue `json:"charValues,omitempty" gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}

// BeforeSave hook to standardize item names
func (i *Item) BeforeSave(tx *gorm.DB) error {
	i.Name = strings.TrimSpace(i.Name)
	if i.Manufacturer != nil {
		m := strings.TrimSpace(*i.Manufacturer)
		if m == "" {
			i.Manufacturer = nil
		} else {
			i.Manufacturer = &m
		}
	}
	return nil
}

// CharacteristicValue holds the value an item has for one characteristic
type CharacteristicValue struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	ItemID           uint            `json:"itemId" gorm:"not null;uniqueIndex:idx_item_characteristic"`
	CharacteristicID uint            `json:"characteristicId" gorm:"not null;uniqueIndex:idx_item_characteristic"`
	Characteristic   *Characteristic `json:"characteristic,omitempty" gorm:"foreignKey:CharacteristicID;constraint:OnDelete:CASCADE"`
	Value            string          `json:"value" gorm:"not null;default:''"`
}
