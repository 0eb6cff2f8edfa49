package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/basic_shop/internal/logging"
	"github.com/Skotchmaster/basic_shop/internal/service"
	"github.com/Skotchmaster/basic_shop/internal/transport"
)

const msgCartItemNotFound = "Cart item not found"

type CartHTTP struct {
	Svc *service.CartService
}

// bindAddToCart reads product_id and quantity from the query string. The body
// is decoded only when the query leaves one of them out.
func bindAddToCart(c echo.Context) (transport.AddToCartRequest, error) {
	var req transport.AddToCartRequest
	pidParam, qtyParam := c.QueryParam("product_id"), c.QueryParam("quantity")

	if pidParam == "" || qtyParam == "" {
		if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
			return req, err
		}
	}

	if pidParam != "" {
		id, err := strconv.ParseInt(pidParam, 10, 64)
		if err != nil {
			return req, fmt.Errorf("product_id: %w", err)
		}
		req.ProductID = &id
	}
	if qtyParam != "" {
		q, err := strconv.Atoi(qtyParam)
		if err != nil {
			return req, fmt.Errorf("quantity: %w", err)
		}
		req.Quantity = &q
	}

	if req.ProductID == nil || req.Quantity == nil {
		return req, errors.New("product_id and quantity are required")
	}
	return req, nil
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_to_cart")

	req, err := bindAddToCart(c)
	if err != nil {
		l.Warn("add_to_cart_failed", "status", 422, "reason", "invalid params", "error", err)
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "product_id and quantity must be integers")
	}

	if *req.ProductID < 0 {
		l.Warn("add_to_cart_failed", "status", 404, "reason", "product not found", "product_id", *req.ProductID)
		return echo.NewHTTPError(http.StatusNotFound, msgProductNotFound)
	}

	item, err := h.Svc.AddToCart(ctx, uint(*req.ProductID), *req.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("add_to_cart_failed", "status", 404, "reason", "product not found", "product_id", *req.ProductID)
			return echo.NewHTTPError(http.StatusNotFound, msgProductNotFound)
		}
		l.Error("add_to_cart_failed", "status", 500, "reason", "cannot update cart", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update cart")
	}

	l.Info("add_to_cart_success", "product_id", item.ProductID, "quantity", item.Quantity)
	return c.JSON(http.StatusOK, transport.CartItemResponse{ProductID: item.ProductID, Quantity: item.Quantity})
}

func (h *CartHTTP) GetTotalPrice(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get_total_price")

	total, err := h.Svc.CartTotal(ctx)
	if err != nil {
		l.Error("get_total_price_failed", "status", 500, "reason", "cannot read cart", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot read cart")
	}

	return c.JSON(http.StatusOK, total)
}

func (h *CartHTTP) RemoveCartItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_cart_item")

	id, ok, err := parseID(c, "cart_item_id")
	if err != nil {
		l.Warn("remove_cart_item_failed", "status", 422, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "cart_item_id is not an integer")
	}
	if !ok {
		l.Warn("remove_cart_item_failed", "status", 404, "reason", "cart item not found", "cart_item_id", c.Param("cart_item_id"))
		return echo.NewHTTPError(http.StatusNotFound, msgCartItemNotFound)
	}

	item, err := h.Svc.RemoveCartItem(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("remove_cart_item_failed", "status", 404, "reason", "cart item not found", "cart_item_id", id)
			return echo.NewHTTPError(http.StatusNotFound, msgCartItemNotFound)
		}
		l.Error("remove_cart_item_failed", "status", 500, "reason", "cannot remove cart item", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot remove cart item")
	}

	l.Info("remove_cart_item_success", "cart_item_id", id, "product_id", item.ProductID)
	return c.JSON(http.StatusOK, transport.CartItemResponse{ProductID: item.ProductID, Quantity: 0})
}
