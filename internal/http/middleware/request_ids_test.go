package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/lifetwin-backend/internal/observability"
	"github.com/yungbote/lifetwin-backend/internal/platform/ctxutil"
)

func TestRequestIDs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDs())
	r.GET("/api/ping", func(c *gin.Context) {
		td := ctxutil.GetTraceData(c.Request.Context())
		if td == nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, td.RequestID)
	})

	cases := []struct {
		name   string
		header string
		keep   bool
	}{
		{name: "client id kept", header: "req-123", keep: true},
		{name: "empty generated", header: "", keep: false},
		{name: "spaces rejected", header: "has space", keep: false},
		{name: "too long rejected", header: strings.Repeat("a", maxRequestIDLen+1), keep: false},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
		if tc.header != "" {
			req.Header.Set(headerRequestID, tc.header)
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		got := rec.Header().Get(headerRequestID)
		if got == "" || rec.Body.String() != got {
			t.Fatalf("%s: header %q and context id %q should match", tc.name, got, rec.Body.String())
		}
		if tc.keep != (got == tc.header) {
			t.Fatalf("%s: got id %q for header %q", tc.name, got, tc.header)
		}
		if rec.Header().Get(headerTraceID) != "" {
			t.Fatalf("%s: no span is active, trace header must be absent", tc.name)
		}
	}
}

func TestMetricsSkipsHealthAndCollapsesUnknownRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("METRICS_ENABLED", "true")
	m := observability.Init(nil)
	if m == nil {
		t.Fatalf("metrics should be enabled")
	}

	r := gin.New()
	r.Use(Metrics(m, "/healthcheck"))
	r.GET("/healthcheck", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/logs/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for _, path := range []string{"/healthcheck", "/api/logs/abc", "/wp-admin.php"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	var buf bytes.Buffer
	if err := m.WritePrometheus(&buf); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `route="/api/logs/:id",status="204"`) {
		t.Fatalf("templated route missing:\n%s", out)
	}
	if !strings.Contains(out, `route="unmatched",status="404"`) {
		t.Fatalf("unknown path should use the unmatched label:\n%s", out)
	}
	if strings.Contains(out, "/healthcheck") || strings.Contains(out, "wp-admin") {
		t.Fatalf("skipped or raw paths leaked into labels:\n%s", out)
	}
}
