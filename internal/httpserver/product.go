package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/basic_shop/internal/logging"
	"github.com/Skotchmaster/basic_shop/internal/service"
	"github.com/Skotchmaster/basic_shop/internal/transport"
)

const msgProductNotFound = "Product not found"

type ProductHTTP struct {
	Svc *service.CatalogService
}

// parseID reads an integer path parameter. Negative ids parse but can never
// match a row, so they come back with ok false.
func parseID(c echo.Context, name string) (id uint, ok bool, err error) {
	n, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, false, err
	}
	if n < 0 {
		return 0, false, nil
	}
	return uint(n), true, nil
}

func (h *ProductHTTP) CreateProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_products")

	var reqs []transport.CreateProductRequest
	if err := c.Bind(&reqs); err != nil || reqs == nil {
		l.Warn("create_products_failed", "status", 422, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "body must be an array of products")
	}
	for i, req := range reqs {
		if req.Name == nil || req.Price == nil {
			l.Warn("create_products_failed", "status", 422, "reason", "missing field", "index", i)
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "name and price are required")
		}
	}

	created, err := h.Svc.CreateProducts(ctx, reqs)
	if err != nil {
		l.Error("create_products_failed", "status", 500, "reason", "cannot add product to db", "created", len(created), "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot add product to db")
	}

	l.Info("create_products_success", "count", len(created))
	return c.JSON(http.StatusOK, transport.NewProductsResponse(created))
}

func (h *ProductHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	items, err := h.Svc.ListProducts(ctx)
	if err != nil {
		l.Error("get_products_failed", "status", 500, "reason", "cannot list products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list products")
	}

	return c.JSON(http.StatusOK, transport.NewProductsResponse(items))
}

func (h *ProductHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, ok, err := parseID(c, "id")
	if err != nil {
		l.Warn("get_product_failed", "status", 422, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "id is not an integer")
	}
	if !ok {
		l.Warn("get_product_failed", "status", 404, "reason", "product not found", "product_id", c.Param("id"))
		return echo.NewHTTPError(http.StatusNotFound, msgProductNotFound)
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_product_failed", "status", 404, "reason", "product not found", "product_id", id)
			return echo.NewHTTPError(http.StatusNotFound, msgProductNotFound)
		}
		l.Error("get_product_failed", "status", 500, "reason", "cannot get product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get product")
	}

	return c.JSON(http.StatusOK, transport.NewProductResponse(product))
}

func (h *ProductHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete_product")

	id, ok, err := parseID(c, "id")
	if err != nil {
		l.Warn("delete_product_failed", "status", 422, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "id is not an integer")
	}
	if !ok {
		l.Warn("delete_product_failed", "status", 404, "reason", "product not found", "product_id", c.Param("id"))
		return echo.NewHTTPError(http.StatusNotFound, msgProductNotFound)
	}

	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("delete_product_failed", "status", 404, "reason", "product not found", "product_id", id)
			return echo.NewHTTPError(http.StatusNotFound, msgProductNotFound)
		}
		l.Error("delete_product_failed", "status", 500, "reason", "cannot delete product from db", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete product from db")
	}

	l.Info("delete_product_success", "product_id", id)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Product deleted"})
}
