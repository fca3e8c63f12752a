package models

// Category drives the storefront filter sidebar. Categories are a
// static enumeration, not persisted; product.Category is a free-form
// tag that is expected to match one of these ids.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CategoryAll is the sentinel id meaning "no category filter".
const CategoryAll = "all"

// Categories is the fixed set offered by the storefront.
var Categories = []Category{
	{ID: CategoryAll, Name: "All Products"},
	{ID: "accessories", Name: "Accessories"},
	{ID: "chargers", Name: "Chargers"},
	{ID: "power", Name: "Power"},
	{ID: "cables", Name: "Cables"},
	{ID: "input", Name: "Input Devices"},
}
