package controllers

import (
	apperrors "storefront-service/common/errors"
	"storefront-service/common/validation"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
)

// fail attaches a service error for ErrorMiddleware to render.
func fail(ctx *gin.Context, svcErr *services.ServiceError) {
	_ = ctx.Error(apperrors.New(svcErr.StatusCode, svcErr.Message, svcErr))
}

// bindJSON binds the request body and reports a 400 on failure.
func bindJSON(ctx *gin.Context, dst interface{}) bool {
	if err := ctx.ShouldBindJSON(dst); err != nil {
		_ = ctx.Error(apperrors.BadRequest(validation.Detail(err), err))
		return false
	}
	return true
}
