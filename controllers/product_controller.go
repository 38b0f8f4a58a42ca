package controllers

import (
	"net/http"

	"storefront-service/models"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
)

// ProductController handles HTTP requests for the catalog.
type ProductController struct {
	productService services.ProductService
}

func NewProductController(productService services.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// ListProducts handles GET /api/products.
func (pc *ProductController) ListProducts(ctx *gin.Context) {
	products, svcErr := pc.productService.ListProducts(ctx.Request.Context())
	if svcErr != nil {
		fail(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, products)
}

// GetProduct handles GET /api/products/:id.
func (pc *ProductController) GetProduct(ctx *gin.Context) {
	product, svcErr := pc.productService.GetProduct(ctx.Request.Context(), ctx.Param("id"))
	if svcErr != nil {
		fail(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, product)
}

// CreateProduct handles POST /api/products.
func (pc *ProductController) CreateProduct(ctx *gin.Context) {
	var req models.ProductIn
	if !bindJSON(ctx, &req) {
		return
	}

	product, svcErr := pc.productService.CreateProduct(ctx.Request.Context(), &req)
	if svcErr != nil {
		fail(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusCreated, product)
}

// SeedProducts handles POST /api/seed.
func (pc *ProductController) SeedProducts(ctx *gin.Context) {
	products, svcErr := pc.productService.SeedProducts(ctx.Request.Context())
	if svcErr != nil {
		fail(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusCreated, products)
}
