package services

import (
	"tienda/internal/models"
	"tienda/internal/repositories"
)

// PageSize is the fixed number of products returned per listing page.
const PageSize = 10

// ProductService handles business logic related to products.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// ProductUpdate holds the fields of a partial product update. Nil fields are
// left untouched on the stored record.
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	Stock       *int
}

// ListProducts retrieves one page of products and its pagination metadata.
func (s *ProductService) ListProducts(filter repositories.ProductFilter) (*models.ProductPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	filter.PerPage = PageSize

	products, total, err := s.repo.List(filter)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + PageSize - 1) / PageSize)
	return &models.ProductPage{
		Items:      products,
		Page:       filter.Page,
		PerPage:    PageSize,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct creates a new product.
func (s *ProductService) CreateProduct(product *models.Product) error {
	return s.repo.Create(product)
}

// UpdateProduct merges the supplied fields onto the stored product and
// persists the result. Fields absent from the update keep their prior values.
func (s *ProductService) UpdateProduct(id string, update ProductUpdate) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		product.Name = *update.Name
	}
	if update.Description != nil {
		product.Description = *update.Description
	}
	if update.Price != nil {
		product.Price = *update.Price
	}
	if update.Stock != nil {
		product.Stock = *update.Stock
	}

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	return s.repo.Delete(id)
}
