package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gsep-planner/internal/auth"
	"gsep-planner/internal/metrics"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func newAuth(t *testing.T) (*AuthMiddleware, *auth.JWTManager) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	jwt := auth.NewJWTManagerFromKey(key, "gsep-planner")
	return NewAuthMiddleware(jwt, zap.NewNop()), jwt
}

func TestRequireAdmin(t *testing.T) {
	mw, jwt := newAuth(t)
	var gotSubject string
	h := mw.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSubject = Subject(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tok, err := jwt.IssueAdminToken("planner", "passcode", time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "Token abc", http.StatusUnauthorized},
		{"garbage", "Bearer abc", http.StatusUnauthorized},
		{"valid", "Bearer " + tok.Token, http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
	if gotSubject != "planner" {
		t.Errorf("subject = %q, want planner", gotSubject)
	}
}

func TestMetricsUsesRoutePattern(t *testing.T) {
	rec := metrics.New()
	r := chi.NewRouter()
	r.Use(Metrics(rec))
	r.Get("/streets/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, id := range []string{"1", "2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/streets/"+id, nil))
	}

	families, err := rec.Registry().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != "gsep_http_requests_total" {
			continue
		}
		if len(mf.GetMetric()) != 1 {
			t.Fatalf("series = %d, want 1", len(mf.GetMetric()))
		}
		m := mf.GetMetric()[0]
		if m.GetCounter().GetValue() != 2 {
			t.Errorf("count = %v, want 2", m.GetCounter().GetValue())
		}
		for _, lp := range m.GetLabel() {
			if lp.GetName() == "route" && lp.GetValue() != "/streets/{id}" {
				t.Errorf("route = %q", lp.GetValue())
			}
			if lp.GetName() == "status" && lp.GetValue() != "418" {
				t.Errorf("status = %q", lp.GetValue())
			}
		}
		return
	}
	t.Fatal("request counter not exported")
}
