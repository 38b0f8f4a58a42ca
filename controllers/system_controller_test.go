package controllers_test

import (
	"net/http"
	"testing"

	"storefront-service/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Root(t *testing.T) {
	r := setupRouter(&mockProductService{}, &mockOrderService{}, &mockDiagnostics{})

	w := perform(r, http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Ecommerce backend is running"}`, w.Body.String())
}

func TestController_Test_Disconnected(t *testing.T) {
	ds := &mockDiagnostics{report: services.DiagnosticsReport{
		Backend:          "✅ Running",
		Database:         "❌ Not Available",
		ConnectionStatus: "Not Connected",
		Collections:      []string{},
		Cache:            "disabled",
	}}
	r := setupRouter(&mockProductService{}, &mockOrderService{}, ds)

	w := perform(r, http.MethodGet, "/test", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeObject(t, w)
	assert.Equal(t, "✅ Running", resp["backend"])
	assert.Nil(t, resp["database_url"])
	assert.Nil(t, resp["database_name"])
	assert.Equal(t, []interface{}{}, resp["collections"])
}

func TestController_Schema(t *testing.T) {
	r := setupRouter(&mockProductService{}, &mockOrderService{}, &mockDiagnostics{})

	w := perform(r, http.MethodGet, "/schema", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeObject(t, w)
	for _, key := range []string{"user", "product", "order"} {
		entity, ok := resp[key].(map[string]interface{})
		require.True(t, ok, key)
		assert.NotEmpty(t, entity["required"], key)
	}
}

func TestController_UnknownRoute(t *testing.T) {
	r := setupRouter(&mockProductService{}, &mockOrderService{}, &mockDiagnostics{})

	w := perform(r, http.MethodGet, "/api/unknown", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not Found", decodeObject(t, w)["detail"])
}
