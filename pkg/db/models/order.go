package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/cocobloom/storefront-backend/pkg/db/types"
	"github.com/cocobloom/storefront-backend/pkg/enums"
)

// Order is the durable snapshot produced by checkout submission. Totals are
// copied from the breakdown at submission time and never recomputed.
type Order struct {
	ID            uuid.UUID         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Code          string            `gorm:"column:code;not null;uniqueIndex" json:"code"`
	Status        enums.OrderStatus `gorm:"column:status;not null" json:"status"`
	SessionID     string            `gorm:"column:session_id;not null" json:"-"`
	CustomerName  string            `gorm:"column:customer_name;not null" json:"customer_name"`
	Phone         string            `gorm:"column:phone;not null;index" json:"phone"`
	City          string            `gorm:"column:city;not null" json:"city"`
	Address       string            `gorm:"column:address;not null" json:"address"`
	Notes         *string           `gorm:"column:notes" json:"notes,omitempty"`
	PreferredTime *string           `gorm:"column:preferred_time" json:"preferred_time,omitempty"`
	PromoCode     *string           `gorm:"column:promo_code" json:"promo_code,omitempty"`
	Subtotal      int               `gorm:"column:subtotal;not null" json:"subtotal"`
	Discount      int               `gorm:"column:discount;not null" json:"discount"`
	Shipping      int               `gorm:"column:shipping;not null" json:"shipping"`
	TaxIncluded   int               `gorm:"column:tax_included;not null" json:"tax_included"`
	Total         int               `gorm:"column:total;not null" json:"total"`
	Items         []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName pins the table to the storefront naming.
func (Order) TableName() string { return "orders" }

// OrderItem is one ledger line frozen into the order.
type OrderItem struct {
	ID                uuid.UUID         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OrderID           uuid.UUID         `gorm:"column:order_id;type:uuid;not null;index" json:"-"`
	ProductID         string            `gorm:"column:product_id;not null" json:"product_id"`
	Name              string            `gorm:"column:name;not null" json:"name"`
	VariantSelections dbtypes.StringMap `gorm:"column:variant_selections;type:text" json:"variant_selections,omitempty"`
	Qty               int               `gorm:"column:qty;not null" json:"qty"`
	UnitPrice         int               `gorm:"column:unit_price;not null" json:"unit_price"`
	LineTotal         int               `gorm:"column:line_total;not null" json:"line_total"`
	CreatedAt         time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName pins the table to the storefront naming.
func (OrderItem) TableName() string { return "order_items" }
