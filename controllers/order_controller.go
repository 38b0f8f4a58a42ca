package controllers

import (
	"net/http"

	"storefront-service/models"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
)

// OrderController handles order placement.
type OrderController struct {
	orderService services.OrderService
}

func NewOrderController(orderService services.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// CreateOrder handles POST /api/orders.
func (oc *OrderController) CreateOrder(ctx *gin.Context) {
	var req models.OrderIn
	if !bindJSON(ctx, &req) {
		return
	}

	order, svcErr := oc.orderService.CreateOrder(ctx.Request.Context(), &req)
	if svcErr != nil {
		fail(ctx, svcErr)
		return
	}

	body := make(gin.H, len(order)+1)
	for k, v := range order {
		body[k] = v
	}
	body["message"] = "Order placed successfully"
	ctx.JSON(http.StatusCreated, body)
}
