package errors_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "storefront-service/common/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	r := gin.New()
	r.Use(apperrors.ErrorMiddleware())
	r.GET("/", handler)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	r.ServeHTTP(w, req)
	return w
}

func detail(t *testing.T, w *httptest.ResponseRecorder) string {
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["detail"]
}

func TestErrorMiddleware_AppError(t *testing.T) {
	w := serve(func(c *gin.Context) {
		_ = c.Error(apperrors.New(http.StatusNotFound, "Product not found", nil))
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product not found", detail(t, w))
}

func TestErrorMiddleware_UnknownErrorIs500(t *testing.T) {
	w := serve(func(c *gin.Context) {
		_ = c.Error(errors.New("boom"))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", detail(t, w))
}

func TestErrorMiddleware_LeavesWrittenResponses(t *testing.T) {
	w := serve(func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
		_ = c.Error(errors.New("late"))
	})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestError_Message(t *testing.T) {
	cause := errors.New("bad hex")
	err := apperrors.BadRequest("Invalid product id", cause)

	assert.Equal(t, http.StatusBadRequest, err.Code)
	assert.Equal(t, "Invalid product id: bad hex", err.Error())
	assert.ErrorIs(t, err, cause)
}
