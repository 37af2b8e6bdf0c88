package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dafibh/sprout/sprout-backend/internal/service"
	"github.com/dafibh/sprout/sprout-backend/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	e          *echo.Echo
	store      *testutil.MockKeyValueStore
	projection *service.ProjectionService
	presets    *service.PresetService
	purchases  *service.PurchaseService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := testutil.NewMockKeyValueStore()
	projection := service.NewProjectionService(store, service.ProjectionOptions{
		Namespace:            "test",
		DefaultMonthlyIncome: decimal.RequireFromString("3120"),
	})
	require.NoError(t, projection.Load(context.Background()))

	presets, err := service.LoadEmbeddedPresets()
	require.NoError(t, err)

	return &testEnv{
		e:          echo.New(),
		store:      store,
		projection: projection,
		presets:    service.NewPresetService(presets),
		purchases:  service.NewPurchaseService(presets.PurchaseFees),
	}
}

func (env *testEnv) request(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req = httptest.NewRequest(method, path, nil)
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return env.e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
