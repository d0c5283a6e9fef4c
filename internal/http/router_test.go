package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-chat-analytics/internal/config"
	"github.com/tbourn/go-chat-analytics/internal/sentiment"
	"github.com/tbourn/go-chat-analytics/internal/services"
	"github.com/tbourn/go-chat-analytics/internal/session"
	"github.com/tbourn/go-chat-analytics/internal/stopwords"
)

func testConfig() config.Config {
	return config.Config{
		APIBasePath:    "/api/v1",
		MaxUploadBytes: 1 << 20,
		RateRPS:        1000,
		RateBurst:      1000,
	}
}

func newEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := services.NewAnalysisService(
		session.NewStore(time.Minute),
		stopwords.FromWords([]string{"the"}),
		stopwords.FromWords([]string{"the"}),
		sentiment.NewScorer(),
		25,
	)

	r := gin.New()
	RegisterRoutes(r, svc, testConfig())
	return r
}

func TestHealth(t *testing.T) {
	r := newEngine(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health -> %d", w.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r := newEngine(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /metrics -> %d", w.Code)
	}
}

func TestFallbacks(t *testing.T) {
	r := newEngine(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown route -> %d", w.Code)
	}

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodDelete, "/health", nil))
	if w2.Code != http.StatusMethodNotAllowed {
		t.Fatalf("bad method -> %d", w2.Code)
	}
}

func TestUploadAndPanelRoundTrip(t *testing.T) {
	r := newEngine(t)

	chat := "3/1/21, 10:00 - Alice: hello there\n" +
		"3/1/21, 10:01 - Bob: hello back\n"

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", strings.NewReader(chat))
	req.Header.Set("Content-Type", "text/plain")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("upload -> %d: %s", w.Code, w.Body.String())
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("missing request id header")
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/api/v1/reports/"+created.ID+"/summary", nil)
	r.ServeHTTP(w2, req2)
	if w2.Code != http.StatusOK {
		t.Fatalf("summary -> %d: %s", w2.Code, w2.Body.String())
	}
}

func TestGroupWithPrefix(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if g := groupWithPrefix(r, "/"); g.BasePath() != "/" {
		t.Fatalf("root group base = %q", g.BasePath())
	}
	if g := groupWithPrefix(r, "/api/v1"); g.BasePath() != "/api/v1" {
		t.Fatalf("group base = %q", g.BasePath())
	}
}
