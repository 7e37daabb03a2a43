package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"artmart-core/internal/domain"
)

type cartResponse struct {
	Items         []domain.LineItem `json:"items"`
	ItemCount     int               `json:"itemCount"`
	SubtotalCents int64             `json:"subtotalCents"`
}

func cartSnapshot(store CartStore) cartResponse {
	items := store.Items()
	if items == nil {
		items = []domain.LineItem{}
	}
	return cartResponse{
		Items:         items,
		ItemCount:     store.ItemCount(),
		SubtotalCents: store.TotalCents(),
	}
}

func getCartHandler(store CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, cartSnapshot(store))
	}
}

func addCartItemHandler(store CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var ref domain.ItemRef
		if err := c.ShouldBindJSON(&ref); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item payload"})
			return
		}
		if ref.ID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "id required"})
			return
		}
		if ref.UnitPriceCents < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unit price must not be negative"})
			return
		}
		if strings.TrimSpace(ref.Title) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title required"})
			return
		}
		if err := store.AddItem(c.Request.Context(), ref); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not persist cart"})
			return
		}
		c.JSON(http.StatusOK, cartSnapshot(store))
	}
}

func setCartQuantityHandler(store CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
			return
		}
		var in struct {
			Quantity int `json:"quantity"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quantity payload"})
			return
		}
		if err := store.SetQuantity(c.Request.Context(), id, in.Quantity); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "item not in cart"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not persist cart"})
			return
		}
		c.JSON(http.StatusOK, cartSnapshot(store))
	}
}

func removeCartItemHandler(store CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
			return
		}
		if err := store.RemoveItem(c.Request.Context(), id); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not persist cart"})
			return
		}
		c.JSON(http.StatusOK, cartSnapshot(store))
	}
}

func clearCartHandler(store CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := store.Clear(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not persist cart"})
			return
		}
		c.JSON(http.StatusOK, cartSnapshot(store))
	}
}

func resolvePromoHandler(promos PromoResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Param("code")
		pct, ok := promos.Resolve(code)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown promo code"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": strings.ToUpper(strings.TrimSpace(code)), "discountPercent": pct})
	}
}
