package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/beka-birhanu/minesweeper-api/api/i"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type pingController struct{}

func (pingController) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/ping", func(ctx *gin.Context) { ctx.String(http.StatusOK, "pong") })
}

func (pingController) RegisterProtected(route *gin.RouterGroup) {
	route.GET("/secret", func(ctx *gin.Context) { ctx.String(http.StatusOK, "secret") })
}

func TestRouterHandler(t *testing.T) {
	r := NewRouter(Config{
		BaseURL:     "/api",
		Mode:        gin.TestMode,
		Controllers: []i.Controller{pingController{}},
		AuthorizationMiddleware: func(ctx *gin.Context) {
			if ctx.GetHeader("Authorization") == "" {
				ctx.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			ctx.Next()
		},
	})
	h := r.Handler()

	tests := []struct {
		name string
		path string
		auth string
		want int
	}{
		{name: "public route", path: "/api/v1/ping", want: http.StatusOK},
		{name: "protected without token", path: "/api/v1/secret", want: http.StatusUnauthorized},
		{name: "protected with token", path: "/api/v1/secret", auth: "Bearer x", want: http.StatusOK},
		{name: "outside base url", path: "/v1/ping", want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
