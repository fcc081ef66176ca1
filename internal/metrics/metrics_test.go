package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func counterValue(t *testing.T, r *Recorder, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := r.Registry().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	next:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if labels[lp.GetName()] != lp.GetValue() {
					continue next
				}
			}
			if m.GetCounter() != nil {
				return m.GetCounter().GetValue()
			}
			return m.GetGauge().GetValue()
		}
	}
	return 0
}

func TestObserve(t *testing.T) {
	r := New()
	r.Observe("add_street", true, time.Millisecond)
	r.Observe("add_street", true, time.Millisecond)
	r.Observe("add_street", false, time.Millisecond)

	if got := counterValue(t, r, "gsep_operations_total", map[string]string{"operation": "add_street", "result": "success"}); got != 2 {
		t.Errorf("success count = %v, want 2", got)
	}
	if got := counterValue(t, r, "gsep_operations_total", map[string]string{"operation": "add_street", "result": "error"}); got != 1 {
		t.Errorf("error count = %v, want 1", got)
	}
}

func TestSetProjectsAndHandler(t *testing.T) {
	r := New()
	r.SetProjects(3)
	r.ObserveRequest("/api/v1/state", "GET", 200, time.Millisecond)

	if got := counterValue(t, r, "gsep_projects", nil); got != 3 {
		t.Errorf("projects gauge = %v, want 3", got)
	}

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `gsep_http_requests_total{method="GET",route="/api/v1/state",status="200"} 1`) {
		t.Errorf("exposition missing request counter:\n%s", body)
	}
}

func TestNilRecorder(t *testing.T) {
	var r *Recorder
	r.Observe("x", true, 0)
	r.SetProjects(1)
	r.ObserveRequest("/", "GET", 200, 0)
}
