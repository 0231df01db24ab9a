package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/lifetwin-backend/internal/platform/ctxutil"
	"github.com/yungbote/lifetwin-backend/internal/platform/logger"
)

type stubVerifier struct {
	userID uuid.UUID
	err    error
}

func (s stubVerifier) SetContextFromToken(ctx context.Context, token string) (context.Context, error) {
	if s.err != nil {
		return ctx, s.err
	}
	if token != "good" {
		return ctx, errors.New("bad token")
	}
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{UserID: s.userID}), nil
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()

	cases := []struct {
		name     string
		header   string
		verifier stubVerifier
		status   int
	}{
		{name: "missing header", header: "", verifier: stubVerifier{userID: userID}, status: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", verifier: stubVerifier{userID: userID}, status: http.StatusUnauthorized},
		{name: "rejected token", header: "Bearer nope", verifier: stubVerifier{userID: userID}, status: http.StatusUnauthorized},
		{name: "nil user", header: "Bearer good", verifier: stubVerifier{userID: uuid.Nil}, status: http.StatusForbidden},
		{name: "ok", header: "bearer good", verifier: stubVerifier{userID: userID}, status: http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.Use(NewAuthMiddleware(logger.Nop(), tc.verifier).RequireAuth())
			r.GET("/api/ping", func(c *gin.Context) {
				c.String(http.StatusOK, ctxutil.UserID(c.Request.Context()).String())
			})

			req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tc.status {
				t.Fatalf("status: got=%d want=%d body=%s", rec.Code, tc.status, rec.Body.String())
			}
			if tc.status == http.StatusOK && rec.Body.String() != userID.String() {
				t.Fatalf("handler saw user %q", rec.Body.String())
			}
			if tc.status != http.StatusOK && !strings.Contains(rec.Body.String(), `"code"`) {
				t.Fatalf("expected error envelope, got %s", rec.Body.String())
			}
		})
	}
}
