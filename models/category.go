package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Category groups items that share the same set of characteristics
type Category struct {
	ID              uint             `json:"id" gorm:"primaryKey"`
	Name            string           `json:"name" gorm:"uniqueIndex;not null"`
	Characteristics []Characteristic `json:"characteristics,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// BeforeSave hook to ensure name is always trimmed
func (c *Category) BeforeSave(tx *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	return nil
}

// Characteristic is a custom attribute defined by a category.
// Name is the internal key, DisplayedName the column label.
type Characteristic struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	Name          string `json:"name" gorm:"not null"`
	DisplayedName string `json:"displayedName" gorm:"not null"`
	CategoryID    uint   `json:"categoryId" gorm:"not null;index"`
}

// BeforeSave hook to standardize characteristic labels
func (ch *Characteristic) BeforeSave(tx *gorm.DB) error {
	ch.Name = strings.TrimSpace(ch.Name)
	ch.DisplayedName = strings.TrimSpace(ch.DisplayedName)
	return nil
}
