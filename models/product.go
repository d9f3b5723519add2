// Package models contains the domain entities for the sales analytics service
package models

// Product categories form a closed enumeration; order-item rows carry the
// catalog categories, product summaries the retail ones.
const (
	CategoryElectronics = "Eletrônicos"
	CategoryFashion     = "Moda"
	CategoryBooks       = "Livros"
	CategoryFurniture   = "Móveis"
	CategoryClothing    = "Vestuário"
	CategoryFood        = "Alimentos"
)

// CatalogCategories are the categories present in the fixed order catalog.
func CatalogCategories() []string {
	return []string{CategoryElectronics, CategoryFashion, CategoryBooks, CategoryFurniture}
}

// RetailCategories are the categories used by the product summary table.
func RetailCategories() []string {
	return []string{CategoryElectronics, CategoryClothing, CategoryFood}
}

// Product is an immutable catalog entry. Order items copy its price, name and
// category at order time; they never reference the catalog afterwards.
type Product struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	UnitPrice float64 `json:"unit_price"`
}

// ProductSummary is the pre-aggregated product table: one row per product
// with units sold and derived revenue.
type ProductSummary struct {
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
	UnitsSold int     `json:"units_sold"`
	Revenue   float64 `json:"revenue"` // Price * UnitsSold, computed at generation time
}
