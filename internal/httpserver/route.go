package httpserver

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/basic_shop/internal/middleware/auth"
	loggingmw "github.com/Skotchmaster/basic_shop/internal/middleware/logging"
)

type Deps struct {
	ProductHandler *ProductHTTP
	CartHandler    *CartHTTP
	SearchHandler  *SearchHTTP
	HealthHandler  *HealthHTTP
	AdminJWTSecret []byte
}

// New builds the echo instance with the middleware stack and all routes.
func New(logger *slog.Logger, d *Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	Register(e, d)
	return e
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", d.HealthHandler.Live)
	e.GET("/health/ready", d.HealthHandler.Ready)

	adminMW := auth.RequireAdmin(d.AdminJWTSecret)

	products := e.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/search", d.SearchHandler.SearchProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.POST("", d.ProductHandler.CreateProducts, adminMW)
	products.DELETE("/:id", d.ProductHandler.DeleteProduct, adminMW)

	cart := e.Group("/cart")
	cart.POST("", d.CartHandler.AddToCart)
	cart.GET("/total_price", d.CartHandler.GetTotalPrice)
	cart.DELETE("/remove/:cart_item_id", d.CartHandler.RemoveCartItem)
}
