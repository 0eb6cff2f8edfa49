package httpserver

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/basic_shop/internal/models"
	"github.com/Skotchmaster/basic_shop/internal/transport"
)

func TestAddToCartQueryParams(t *testing.T) {
	env := newTestEnv(t, nil)
	created := env.createProducts(map[string]any{"name": "Widget", "price": 9.99})
	id := created[0].ID

	rec := env.doJSONRequest(http.MethodPost, fmt.Sprintf("/cart/?product_id=%d&quantity=2", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, transport.CartItemResponse{ProductID: id, Quantity: 2}, decode[transport.CartItemResponse](t, rec))

	rec = env.doJSONRequest(http.MethodPost, fmt.Sprintf("/cart?product_id=%d&quantity=3", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 5, decode[transport.CartItemResponse](t, rec).Quantity)

	var rows int64
	require.NoError(t, env.DB.Model(&models.CartItem{}).Count(&rows).Error)
	require.EqualValues(t, 1, rows)
}

func TestAddToCartJSONBody(t *testing.T) {
	env := newTestEnv(t, nil)
	created := env.createProducts(map[string]any{"name": "Widget", "price": 1})

	rec := env.doJSONRequest(http.MethodPost, "/cart/", map[string]any{"product_id": created[0].ID, "quantity": 4})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 4, decode[transport.CartItemResponse](t, rec).Quantity)
}

func TestAddToCartErrors(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.doJSONRequest(http.MethodPost, "/cart/?product_id=42&quantity=1", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Product not found", errorMessage(t, rec))

	rec = env.doJSONRequest(http.MethodPost, "/cart/?product_id=42", nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = env.doJSONRequest(http.MethodPost, "/cart/?product_id=x&quantity=1", nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAddToCartQueryIgnoresBody(t *testing.T) {
	env := newTestEnv(t, nil)
	created := env.createProducts(map[string]any{"name": "Widget", "price": 1})

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/cart/?product_id=%d&quantity=2", created[0].ID), strings.NewReader("product_id=9"))
	req.Header.Set(echo.HeaderContentType, echo.MIMETextPlain)
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, transport.CartItemResponse{ProductID: created[0].ID, Quantity: 2}, decode[transport.CartItemResponse](t, rec))
}

func TestNegativeIDsAreNotFound(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.doJSONRequest(http.MethodPost, "/cart/?product_id=-1&quantity=1", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Product not found", errorMessage(t, rec))

	rec = env.doJSONRequest(http.MethodPost, "/cart/", map[string]any{"product_id": -3, "quantity": 1})
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.doJSONRequest(http.MethodDelete, "/cart/remove/-1", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Cart item not found", errorMessage(t, rec))

	rec = env.doJSONRequest(http.MethodGet, "/products/-1", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Product not found", errorMessage(t, rec))

	rec = env.doJSONRequest(http.MethodDelete, "/products/-1", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartTotalEmpty(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.doJSONRequest(http.MethodGet, "/cart/total_price/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"items":[],"total_price":0}`, rec.Body.String())
}

func TestRemoveCartItemNotFound(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.doJSONRequest(http.MethodDelete, "/cart/remove/7", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Cart item not found", errorMessage(t, rec))

	rec = env.doJSONRequest(http.MethodDelete, "/cart/remove/seven", nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

// Widget walk-through: create, add, total, remove, product gone.
func TestWidgetScenario(t *testing.T) {
	env := newTestEnv(t, nil)

	created := env.createProducts(map[string]any{"name": "Widget", "price": 9.99})
	id := created[0].ID

	rec := env.doJSONRequest(http.MethodPost, fmt.Sprintf("/cart/?product_id=%d&quantity=2", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.doJSONRequest(http.MethodGet, "/cart/total_price/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	total := decode[transport.CartTotalResponse](t, rec)
	require.Len(t, total.Items, 1)
	line := total.Items[0]
	require.Equal(t, id, line.ProductID)
	require.Equal(t, "Widget", line.ProductName)
	require.Equal(t, 2, line.Quantity)
	require.Equal(t, 9.99, line.PricePerUnit)
	require.InDelta(t, 19.98, line.PriceAsPerCount, 1e-9)
	require.InDelta(t, 19.98, total.TotalPrice, 1e-9)

	raw := decode[map[string]any](t, rec)
	item := raw["items"].([]any)[0].(map[string]any)
	for _, key := range []string{"product_id", "product_name", "quantity", "price_per_unit", "price_as_per_count"} {
		require.Contains(t, item, key)
	}

	var cartItem models.CartItem
	require.NoError(t, env.DB.Where("product_id = ?", id).First(&cartItem).Error)

	rec = env.doJSONRequest(http.MethodDelete, fmt.Sprintf("/cart/remove/%d", cartItem.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, transport.CartItemResponse{ProductID: id, Quantity: 0}, decode[transport.CartItemResponse](t, rec))

	rec = env.doJSONRequest(http.MethodGet, fmt.Sprintf("/products/%d", id), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	total = decode[transport.CartTotalResponse](t, env.doJSONRequest(http.MethodGet, "/cart/total_price", nil))
	require.Empty(t, total.Items)
}
