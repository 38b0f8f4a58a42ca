package controllers

import (
	"net/http"

	"storefront-service/schema"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
)

// SystemController serves liveness, diagnostics and the schema description.
type SystemController struct {
	diagnostics services.DiagnosticsService
}

func NewSystemController(diagnostics services.DiagnosticsService) *SystemController {
	return &SystemController{diagnostics: diagnostics}
}

// Root handles GET /.
func (sc *SystemController) Root(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "Ecommerce backend is running"})
}

// Test handles GET /test. It always answers 200.
func (sc *SystemController) Test(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, sc.diagnostics.Report(ctx.Request.Context()))
}

// Schema handles GET /schema.
func (sc *SystemController) Schema(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, schema.All())
}
