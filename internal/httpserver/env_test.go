package httpserver

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/basic_shop/internal/db"
	"github.com/Skotchmaster/basic_shop/internal/mykafka"
	"github.com/Skotchmaster/basic_shop/internal/repo"
	"github.com/Skotchmaster/basic_shop/internal/service"
	"github.com/Skotchmaster/basic_shop/internal/service/search"
	"github.com/Skotchmaster/basic_shop/internal/transport"
)

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	DB *gorm.DB
}

func newTestEnv(t *testing.T, adminSecret []byte) *testEnv {
	t.Helper()
	gdb := db.OpenTest(t)

	r := &repo.GormRepo{DB: gdb}
	producer := mykafka.NewProducer(nil)
	searcher := search.New(nil, "products")

	deps := &Deps{
		ProductHandler: &ProductHTTP{Svc: &service.CatalogService{Repo: r, Events: producer, Index: searcher, Topic: "product_events"}},
		CartHandler:    &CartHTTP{Svc: &service.CartService{Repo: r, Events: producer, Index: searcher, Topic: "cart_events"}},
		SearchHandler:  &SearchHTTP{Searcher: searcher},
		HealthHandler:  &HealthHTTP{DB: gdb},
		AdminJWTSecret: adminSecret,
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &testEnv{T: t, E: New(logger, deps), DB: gdb}
}

func (env *testEnv) doJSONRequest(method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) createProducts(products ...map[string]any) []transport.ProductResponse {
	env.T.Helper()

	rec := env.doJSONRequest(http.MethodPost, "/products/", products)
	require.Equal(env.T, http.StatusOK, rec.Code, rec.Body.String())

	var created []transport.ProductResponse
	require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Len(env.T, created, len(products))
	return created
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, rec)["message"]
}
