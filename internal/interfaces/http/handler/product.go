package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/loja/backend/internal/application/catalog"
)

// ProductHandler serves the product catalog
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List handles GET /api/produtos and returns the bare product array
func (h *ProductHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.productService.List(c.Request.Context()))
}

// GetByID handles GET /api/produtos/:id
func (h *ProductHandler) GetByID(c *gin.Context) {
	product, err := h.productService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}
