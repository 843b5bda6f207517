package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snscard-backend/internal/config"
	"snscard-backend/internal/fetch"
	"snscard-backend/internal/service"
)

const errorImageURL = "https://static.example-sns.com/card/error.png"

func newTestRouter(upstreamURL string) (*gin.Engine, *config.Config) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Upstream: config.UpstreamConfig{
			BaseURL:   upstreamURL,
			Timeout:   2 * time.Second,
			UserAgent: "test-agent",
		},
		Render: config.RenderConfig{
			ErrorImageURL: errorImageURL,
			CacheControl:  "public, max-age=3600, s-maxage=3600",
		},
	}

	cardService := service.NewCardService(cfg, fetch.NewChain(&cfg.Upstream))
	cardHandler := NewCardHandler(cardService, cfg)

	router := gin.New()
	router.GET("/api/card/render", cardHandler.RenderCard)
	return router, cfg
}

func TestRenderCardMissingParamsRedirects(t *testing.T) {
	upstreamCalls := 0
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upstreamCalls++
		w.Write([]byte("png-bytes"))
	}))
	defer upstream.Close()

	router, _ := newTestRouter(upstream.URL)

	tests := []struct {
		name  string
		query string
	}{
		{"no id", "/api/card/render?title=hello"},
		{"no title", "/api/card/render?id=42"},
		{"nothing", "/api/card/render"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.query, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, errorImageURL, w.Header().Get("Location"))
		})
	}

	// 校验失败不会打到上游
	assert.Equal(t, 0, upstreamCalls)
}

func TestRenderCardSuccess(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("png-bytes"))
	}))
	defer upstream.Close()

	router, cfg := newTestRouter(upstream.URL)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/card/render?id=42&title=Hello_World_Example_Title_Here&like=10&comment=2&repo=1&share=0&date=2024_01_01", nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64)")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
	assert.Equal(t, cfg.Render.CacheControl, w.Header().Get("Cache-Control"))

	body := w.Body.String()
	assert.Contains(t, body, ">Hello World Example Ti...</text>")
	assert.Contains(t, body, `<text x="708" y="2183"`)
	assert.Contains(t, body, ">more</text>")
	assert.Contains(t, body, ">2024 01 01</text>")
	assert.Contains(t, body, "data:image/png;base64,")
}

func TestRenderCardDeviceOffsets(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("png-bytes"))
	}))
	defer upstream.Close()

	router, _ := newTestRouter(upstream.URL)

	tests := []struct {
		name      string
		userAgent string
		titleY    string
	}{
		{"ios", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)", `y="2182"`},
		{"android", "Mozilla/5.0 (Linux; Android 14; Pixel 8)", `y="2184"`},
		{"other", "curl/8.0", `y="2183"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/card/render?id=42&title=hello", nil)
			req.Header.Set("User-Agent", tt.userAgent)
			router.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), tt.titleY)
		})
	}
}

func TestRenderCardUpstreamFailureRedirects(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer upstream.Close()

	router, _ := newTestRouter(upstream.URL)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/card/render?id=42&title=hello", nil)
	router.ServeHTTP(w, req)

	// 上游失败也不给消费方裂图，统一跳兜底
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, errorImageURL, w.Header().Get("Location"))
}
