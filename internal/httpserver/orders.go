package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"artmart-core/internal/domain"
	"artmart-core/internal/service/checkout"
)

type checkoutRequest struct {
	PromoCode       string                  `json:"promoCode"`
	ShippingAddress *domain.ShippingAddress `json:"shippingAddress"`
}

func checkoutHandler(svc CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in checkoutRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid checkout payload"})
			return
		}
		order, err := svc.Checkout(c.Request.Context(), in.PromoCode, in.ShippingAddress)
		if err != nil {
			switch {
			case errors.Is(err, checkout.ErrUnknownPromo):
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown promo code"})
			case errors.Is(err, checkout.ErrIncompleteAddress):
				c.JSON(http.StatusBadRequest, gin.H{"error": "incomplete shipping address"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not place order"})
			}
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

func listOrdersHandler(store OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var orders []domain.Order
		if raw, ok := c.GetQuery("status"); ok {
			status := domain.OrderStatus(raw)
			if !status.Valid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
				return
			}
			orders = store.OrdersByStatus(ctx, status)
		} else {
			orders = store.Orders(ctx)
		}
		if orders == nil {
			orders = []domain.Order{}
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders, "total": len(orders)})
	}
}

func getOrderHandler(store OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := store.OrderByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not read orders"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func updateOrderStatusHandler(store OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			Status domain.OrderStatus `json:"status"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status payload"})
			return
		}
		if !in.Status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
			return
		}
		err := store.UpdateOrderStatus(c.Request.Context(), c.Param("id"), in.Status)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			case errors.Is(err, domain.ErrInvalidTransition):
				c.JSON(http.StatusConflict, gin.H{"error": "invalid status transition"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not persist order"})
			}
			return
		}
		order, err := store.OrderByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not read orders"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func orderSummaryHandler(store OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		c.JSON(http.StatusOK, gin.H{
			"totalOrders":     store.TotalOrders(ctx),
			"totalSpentCents": store.TotalSpentCents(ctx),
		})
	}
}
