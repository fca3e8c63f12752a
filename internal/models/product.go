package models

// Product represents an item in the storefront catalog.
// Stock is informational only; cart operations never reserve it.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Featured    bool    `json:"featured"`
	Stock       int     `json:"stock"`
}

// ProductRow is a raw catalog store row. Optional columns may be
// absent (nil) and are defaulted by MapProduct.
type ProductRow struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Image       string
	Category    string
	Featured    *bool
	Stock       *int
}

// MapProduct translates a raw store row into the canonical Product
// shape, defaulting absent optional fields.
func MapProduct(row ProductRow) Product {
	p := Product{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Price:       row.Price,
		Image:       row.Image,
		Category:    row.Category,
	}
	if row.Featured != nil {
		p.Featured = *row.Featured
	}
	if row.Stock != nil {
		p.Stock = *row.Stock
	}
	return p
}
