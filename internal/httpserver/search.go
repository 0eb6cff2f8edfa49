package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/basic_shop/internal/logging"
	"github.com/Skotchmaster/basic_shop/internal/service/search"
	"github.com/Skotchmaster/basic_shop/internal/transport"
	"github.com/Skotchmaster/basic_shop/internal/util"
)

type SearchHTTP struct {
	Searcher *search.Searcher
}

func (h *SearchHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, limit := util.Calculate(page, size)

	total, products, err := h.Searcher.Search(ctx, q, from, limit)
	if err != nil {
		if errors.Is(err, search.ErrDisabled) {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not configured")
		}
		l.Error("search_failed", "status", 500, "reason", "search backend error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}

	return c.JSON(http.StatusOK, transport.SearchResponse{
		Total:    total,
		Products: transport.NewProductsResponse(products),
	})
}
