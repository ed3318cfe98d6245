package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product in the catalog.
// Every product belongs to exactly one category.
type Product struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(13,2)" json:"unitPrice"`
	ImageURL     string          `json:"imageUrl"`
	Active       bool            `json:"active"`
	UnitsInStock int             `json:"unitsInStock"`
	DateCreated  time.Time       `gorm:"<-:create;autoCreateTime" json:"dateCreated"`
	LastUpdated  time.Time       `gorm:"autoUpdateTime" json:"lastUpdated"`
	CategoryID   uint            `gorm:"not null;index" json:"categoryId"`
}

func (p *Product) TableName() string {
	return "product"
}

// MarshalJSON writes the unit price as a JSON number with two decimals.
func (p Product) MarshalJSON() ([]byte, error) {
	type product Product
	return json.Marshal(struct {
		product
		UnitPrice json.Number `json:"unitPrice"`
	}{
		product:   product(p),
		UnitPrice: json.Number(p.UnitPrice.StringFixed(2)),
	})
}

// Entities lists every persisted model, parents first.
func Entities() []any {
	return []any{&Category{}, &Product{}}
}
