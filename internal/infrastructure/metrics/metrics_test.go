package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/civicspath/backend/internal/infrastructure/metrics"
)

func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	return string(body)
}

func TestDomainCounters(t *testing.T) {
	m := metrics.New()
	m.SessionStarted("standard")
	m.SessionStarted("standard")
	m.SessionCompleted()
	m.AnswerSubmitted(true)
	m.AnswerSubmitted(false)

	body := scrape(t, m)
	for _, want := range []string{
		`civics_sessions_started_total{mode="standard"} 2`,
		`civics_sessions_completed_total 1`,
		`civics_answers_total{correct="true"} 1`,
		`civics_answers_total{correct="false"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in scrape output", want)
		}
	}
}

func TestMiddleware_LabelsByPattern(t *testing.T) {
	m := metrics.New()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /results/{resultID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	h := m.Middleware(mux)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/results/abc", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/results/def", nil))

	body := scrape(t, m)
	want := `http_requests_total{endpoint="GET /results/{resultID}",method="GET",status="404"} 2`
	if !strings.Contains(body, want) {
		t.Errorf("expected %q in scrape output:\n%s", want, body)
	}
}
