package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows any origin, method and header, with credentials. Browsers
// ignore "*" on credentialed requests, so the request origin and the
// preflight's requested headers are echoed back instead.
func CORS() gin.HandlerFunc {
	handler := cors.New(cors.Config{
		AllowOriginFunc: func(string) bool { return true },
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
			http.MethodDelete, http.MethodHead, http.MethodOptions,
		},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})

	return func(c *gin.Context) {
		requested := c.GetHeader("Access-Control-Request-Headers")
		if c.Request.Method != http.MethodOptions || requested == "" {
			handler(c)
			return
		}

		w := c.Writer
		c.Writer = &preflightWriter{ResponseWriter: w, allowHeaders: requested}
		handler(c)
		c.Writer = w
	}
}

// preflightWriter replaces the configured Access-Control-Allow-Headers with
// the requested ones right before the preflight response is flushed.
type preflightWriter struct {
	gin.ResponseWriter
	allowHeaders string
}

func (w *preflightWriter) WriteHeaderNow() {
	if !w.Written() {
		w.Header().Set("Access-Control-Allow-Headers", w.allowHeaders)
	}
	w.ResponseWriter.WriteHeaderNow()
}
