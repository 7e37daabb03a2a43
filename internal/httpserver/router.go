package httpserver

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"artmart-core/internal/domain"
)

// CartStore is the slice of the cart store the handlers use.
type CartStore interface {
	Items() []domain.LineItem
	AddItem(ctx context.Context, ref domain.ItemRef) error
	RemoveItem(ctx context.Context, id int64) error
	SetQuantity(ctx context.Context, id int64, quantity int) error
	Clear(ctx context.Context) error
	ItemCount() int
	TotalCents() int64
}

// OrderStore is the slice of the order store the handlers use.
type OrderStore interface {
	Orders(ctx context.Context) []domain.Order
	OrderByID(ctx context.Context, id string) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) error
	OrdersByStatus(ctx context.Context, status domain.OrderStatus) []domain.Order
	TotalOrders(ctx context.Context) int
	TotalSpentCents(ctx context.Context) int64
}

// CheckoutService converts the cart into a persisted order.
type CheckoutService interface {
	Checkout(ctx context.Context, promoCode string, addr *domain.ShippingAddress) (domain.Order, error)
}

// PromoResolver maps promo codes to discount percentages.
type PromoResolver interface {
	Resolve(code string) (percent int, ok bool)
}

// Deps carries the stores and services the routes are wired against.
type Deps struct {
	Cart     CartStore
	Orders   OrderStore
	Checkout CheckoutService
	Promos   PromoResolver
}

// buildRouter wires routes for the storefront session API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, corsOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	if len(corsOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     corsOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.GET("/cart", getCartHandler(deps.Cart))
	router.POST("/cart/items", addCartItemHandler(deps.Cart))
	router.PUT("/cart/items/:id", setCartQuantityHandler(deps.Cart))
	router.DELETE("/cart/items/:id", removeCartItemHandler(deps.Cart))
	router.DELETE("/cart", clearCartHandler(deps.Cart))

	router.GET("/promo/:code", resolvePromoHandler(deps.Promos))

	router.POST("/checkout", checkoutHandler(deps.Checkout))
	router.GET("/orders", listOrdersHandler(deps.Orders))
	router.GET("/orders/summary", orderSummaryHandler(deps.Orders))
	router.GET("/orders/:id", getOrderHandler(deps.Orders))
	router.PATCH("/orders/:id/status", updateOrderStatusHandler(deps.Orders))

	return router
}
