package repositories

import (
	"tienda/internal/models"
)

// ProductFilter narrows and orders a product listing. MinPrice and MaxPrice
// apply only when both are set. SortBy is "name" or "price"; empty means
// unsorted. Page is 1-based.
type ProductFilter struct {
	MinPrice *float64
	MaxPrice *float64
	SortBy   string
	SortDesc bool
	Page     int
	PerPage  int
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	List(filter ProductFilter) ([]models.Product, int64, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}
