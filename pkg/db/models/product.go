package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/cocobloom/storefront-backend/pkg/db/types"
)

// Product is a storefront catalog listing. Price is whole dirhams;
// the cart freezes it into line items at add time.
type Product struct {
	ID          uuid.UUID           `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Slug        string              `gorm:"column:slug;not null;uniqueIndex" json:"slug"`
	Name        string              `gorm:"column:name;not null" json:"name"`
	Subtitle    *string             `gorm:"column:subtitle" json:"subtitle,omitempty"`
	Price       int                 `gorm:"column:price;not null" json:"price"`
	OldPrice    *int                `gorm:"column:old_price" json:"old_price,omitempty"`
	Images      dbtypes.StringSlice `gorm:"column:images;type:text;not null" json:"images"`
	Variants    dbtypes.VariantDefs `gorm:"column:variants;type:text;not null" json:"variants"`
	Volume      *string             `gorm:"column:volume" json:"volume,omitempty"`
	InStock     bool                `gorm:"column:in_stock;not null" json:"in_stock"`
	Tags        dbtypes.StringSlice `gorm:"column:tags;type:text;not null" json:"tags"`
	Description string              `gorm:"column:description;not null" json:"description"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName pins the table to the storefront naming.
func (Product) TableName() string { return "products" }
