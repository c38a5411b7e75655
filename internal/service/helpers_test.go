package service_test

import (
	"context"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/civicspath/backend/internal/domain/officials"
	"github.com/civicspath/backend/internal/domain/progress"
	"github.com/civicspath/backend/internal/domain/questionbank"
	"github.com/civicspath/backend/internal/infrastructure/metrics"
	"github.com/civicspath/backend/internal/service"
	"github.com/civicspath/backend/internal/store"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

var start = time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)

func openStore(t *testing.T, opts ...progress.Option) *progress.Store {
	t.Helper()
	s, err := progress.Open(context.Background(), store.NewMemory(), opts...)
	if err != nil {
		t.Fatalf("open progress: %v", err)
	}
	return s
}

func newPractice(t *testing.T, ps *progress.Store, m *metrics.Metrics) *service.PracticeService {
	t.Helper()
	bank, err := questionbank.Load()
	if err != nil {
		t.Fatal(err)
	}
	return service.NewPracticeService(bank, ps, officials.DefaultFederal(), m, zap.NewNop(),
		service.WithRand(rand.New(rand.NewSource(99))))
}

func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	return string(body)
}
