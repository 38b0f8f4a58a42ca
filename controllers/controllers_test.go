package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "storefront-service/common/errors"
	"storefront-service/common/validation"
	"storefront-service/controllers"
	"storefront-service/database"
	"storefront-service/models"
	"storefront-service/routes"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := validation.Register(); err != nil {
		panic(err)
	}
}

// --- Mock services ---

type mockProductService struct {
	listFn   func(ctx context.Context) ([]database.Document, *services.ServiceError)
	getFn    func(ctx context.Context, id string) (database.Document, *services.ServiceError)
	createFn func(ctx context.Context, req *models.ProductIn) (database.Document, *services.ServiceError)
	seedFn   func(ctx context.Context) ([]database.Document, *services.ServiceError)
}

func (m *mockProductService) ListProducts(ctx context.Context) ([]database.Document, *services.ServiceError) {
	return m.listFn(ctx)
}
func (m *mockProductService) GetProduct(ctx context.Context, id string) (database.Document, *services.ServiceError) {
	return m.getFn(ctx, id)
}
func (m *mockProductService) CreateProduct(ctx context.Context, req *models.ProductIn) (database.Document, *services.ServiceError) {
	return m.createFn(ctx, req)
}
func (m *mockProductService) SeedProducts(ctx context.Context) ([]database.Document, *services.ServiceError) {
	return m.seedFn(ctx)
}

type mockOrderService struct {
	createFn func(ctx context.Context, req *models.OrderIn) (database.Document, *services.ServiceError)
	calls    int
}

func (m *mockOrderService) CreateOrder(ctx context.Context, req *models.OrderIn) (database.Document, *services.ServiceError) {
	m.calls++
	return m.createFn(ctx, req)
}

type mockDiagnostics struct {
	report services.DiagnosticsReport
}

func (m *mockDiagnostics) Report(context.Context) services.DiagnosticsReport { return m.report }

// --- Helpers ---

func setupRouter(ps services.ProductService, ords services.OrderService, ds services.DiagnosticsService) *gin.Engine {
	r := gin.New()
	r.Use(apperrors.ErrorMiddleware())
	routes.RegisterSystemRoutes(r, controllers.NewSystemController(ds))
	routes.RegisterProductRoutes(r, controllers.NewProductController(ps))
	routes.RegisterOrderRoutes(r, controllers.NewOrderController(ords))
	return r
}

func perform(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	switch b := body.(type) {
	case nil:
		buf = &bytes.Buffer{}
	case string:
		buf = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		buf = bytes.NewBuffer(raw)
	}
	req, _ := http.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeObject(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

var (
	unavailable = &services.ServiceError{StatusCode: http.StatusInternalServerError, Message: services.MsgDatabaseUnavailable}
	notFound    = &services.ServiceError{StatusCode: http.StatusNotFound, Message: services.MsgProductNotFound}
	invalidID   = &services.ServiceError{StatusCode: http.StatusBadRequest, Message: services.MsgInvalidProductID}
)
