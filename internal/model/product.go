package model

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices are rendered as JSON numbers for the storefront
	decimal.MarshalJSONWithoutQuotes = true
}

// ProductCategory is one of the fixed storefront categories
type ProductCategory string

const (
	CategoryJerseys      ProductCategory = "jerseys"
	CategoryApparel      ProductCategory = "apparel"
	CategoryAccessories  ProductCategory = "accessories"
	CategoryCollectibles ProductCategory = "collectibles"
)

// ProductCategories lists every accepted category
var ProductCategories = []ProductCategory{
	CategoryJerseys,
	CategoryApparel,
	CategoryAccessories,
	CategoryCollectibles,
}

// Valid reports whether c is one of ProductCategories
func (c ProductCategory) Valid() bool {
	for _, known := range ProductCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Product is a merchandise item in the store
type Product struct {
	ID          string          `json:"_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Category    ProductCategory `json:"category"`
	InStock     bool            `json:"inStock"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ProductFilter narrows product listings
type ProductFilter struct {
	InStockOnly bool
}
