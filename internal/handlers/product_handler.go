package handlers

import (
	"log"
	"strconv"

	"tienda/internal/models"
	"tienda/internal/repositories"
	"tienda/internal/services"
	"tienda/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validation.New(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleList)
	productRoutes.Post("/", h.HandleCreate)
	productRoutes.Get("/:id", h.HandleGet)
	productRoutes.Put("/:id", h.HandleUpdate)
	productRoutes.Patch("/:id", h.HandleUpdate)
	productRoutes.Delete("/:id", h.HandleDelete)
}

// CreateProductRequest is the payload for creating a product. Price and
// Stock are pointers so that an explicit zero passes "required".
type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required,max=255"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Stock       *int     `json:"stock" validate:"required,gte=0"`
}

// UpdateProductRequest is the payload for a partial product update. Supplied
// fields are re-validated with the same rules as creation; nil fields keep
// their stored values.
type UpdateProductRequest struct {
	Name        *string  `json:"name" validate:"omitempty,max=255"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
}

// HandleList returns one page of products, optionally filtered by a price
// range and sorted by name or price.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	filter := repositories.ProductFilter{}

	// The range filter applies only when both bounds parse; a partial or
	// malformed pair is ignored.
	minStr, maxStr := c.Query("min_price"), c.Query("max_price")
	if minStr != "" && maxStr != "" {
		minPrice, errMin := strconv.ParseFloat(minStr, 64)
		maxPrice, errMax := strconv.ParseFloat(maxStr, 64)
		if errMin == nil && errMax == nil {
			filter.MinPrice = &minPrice
			filter.MaxPrice = &maxPrice
		}
	}

	switch sortBy := c.Query("sort_by"); sortBy {
	case "name", "price":
		filter.SortBy = sortBy
		filter.SortDesc = c.Query("sort_direction") == "desc"
	}

	filter.Page = c.QueryInt("page", 1)

	page, err := h.service.ListProducts(filter)
	if err != nil {
		return respondServiceError(c, err, "Product not found", "Could not retrieve products")
	}
	return respondSuccess(c, fiber.StatusOK, "Products retrieved successfully", page)
}

// HandleCreate creates a new product.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create product request body: %v", err)
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, validation.Messages(err))
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Stock:       *req.Stock,
	}
	if err := h.service.CreateProduct(product); err != nil {
		return respondServiceError(c, err, "Product not found", "Could not create product")
	}
	return respondSuccess(c, fiber.StatusCreated, "Product created successfully", product)
}

// HandleGet returns a single product by its ID.
func (h *ProductHandler) HandleGet(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.Params("id"))
	if err != nil {
		return respondServiceError(c, err, "Product not found", "Could not retrieve product")
	}
	return respondSuccess(c, fiber.StatusOK, "Product retrieved successfully", product)
}

// HandleUpdate merges the supplied fields onto an existing product.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	var req UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update product request body: %v", err)
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, validation.Messages(err))
	}

	product, err := h.service.UpdateProduct(c.Params("id"), services.ProductUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	})
	if err != nil {
		return respondServiceError(c, err, "Product not found", "Could not update product")
	}
	return respondSuccess(c, fiber.StatusOK, "Product updated successfully", product)
}

// HandleDelete removes a product by its ID.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.Params("id")); err != nil {
		return respondServiceError(c, err, "Product not found", "Could not delete product")
	}
	return respondSuccess(c, fiber.StatusOK, "Product deleted successfully", nil)
}
