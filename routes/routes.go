package routes

import (
	"net/http"

	apperrors "storefront-service/common/errors"
	"storefront-service/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterSystemRoutes sets up liveness, diagnostics and schema routes.
func RegisterSystemRoutes(r *gin.Engine, sc *controllers.SystemController) {
	r.GET("/", sc.Root)
	r.GET("/test", sc.Test)
	r.GET("/schema", sc.Schema)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, apperrors.Detail("Not Found"))
	})
}

// RegisterProductRoutes sets up catalog routes under /api.
func RegisterProductRoutes(r *gin.Engine, pc *controllers.ProductController) {
	api := r.Group("/api")
	api.GET("/products", pc.ListProducts)
	api.GET("/products/:id", pc.GetProduct)
	api.POST("/products", pc.CreateProduct)
	api.POST("/seed", pc.SeedProducts)
}

// RegisterOrderRoutes sets up order routes under /api.
func RegisterOrderRoutes(r *gin.Engine, oc *controllers.OrderController) {
	api := r.Group("/api")
	api.POST("/orders", oc.CreateOrder)
}
