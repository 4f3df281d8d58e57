package metrics_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

func TestHandler_RecordsSuccessfulRequest(t *testing.T) {
	t.Parallel()
	c := newCollector(t)

	h := c.Handler("/v1/users", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/users", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}

	out := export(t, c)
	if !strings.Contains(out, `api_requests_total{endpoint="/v1/users",method="GET",service="test-service",status="200"} 1`) {
		t.Errorf("request not counted:\n%s", out)
	}
	if !strings.Contains(out, `api_request_duration_seconds_count{endpoint="/v1/users",method="GET",service="test-service"} 1`) {
		t.Errorf("latency not observed:\n%s", out)
	}
	if !strings.Contains(out, `api_active_requests{service="test-service"} 0`) {
		t.Errorf("in-flight gauge not released:\n%s", out)
	}
}

func TestHandler_RecordsHandlerWrittenStatus(t *testing.T) {
	t.Parallel()
	c := newCollector(t)

	h := c.Handler("/v1/users/{id}", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/users/42", nil))

	out := export(t, c)
	if !strings.Contains(out, `api_requests_total{endpoint="/v1/users/{id}",method="GET",service="test-service",status="404"} 1`) {
		t.Errorf("handler status not captured:\n%s", out)
	}
	// A 404 written by the handler is its own error handling, not an
	// observability-level failure.
	if strings.Contains(out, "api_errors_total{") {
		t.Errorf("error counter must stay untouched for handled statuses:\n%s", out)
	}
}

func TestHandler_UsesRouteTemplateNotRawPath(t *testing.T) {
	t.Parallel()
	c := newCollector(t)

	h := c.Handler("/v1/users/{id}", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, path := range []string{"/v1/users/1", "/v1/users/2", "/v1/users/3"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	out := export(t, c)
	// All three requests collapse into the one template-labeled series.
	if !strings.Contains(out, `api_requests_total{endpoint="/v1/users/{id}",method="GET",service="test-service",status="200"} 3`) {
		t.Errorf("expected a single series keyed by the route template:\n%s", out)
	}
}

func TestHandler_PanicIsCountedAndRepanicked(t *testing.T) {
	t.Parallel()
	c := newCollector(t)

	h := c.Handler("/v1/users", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	panicked := func() (p interface{}) {
		defer func() { p = recover() }()
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/users", nil))
		return nil
	}()

	if panicked != "boom" {
		t.Fatalf("expected panic to propagate unchanged, got %v", panicked)
	}

	out := export(t, c)
	if !strings.Contains(out, `api_errors_total{error_type="string",service="test-service"} 1`) {
		t.Errorf("panic not counted by type:\n%s", out)
	}
	if !strings.Contains(out, `api_requests_total{endpoint="/v1/users",method="GET",service="test-service",status="500"} 1`) {
		t.Errorf("panicked request not recorded as 500:\n%s", out)
	}
	if !strings.Contains(out, `api_active_requests{service="test-service"} 0`) {
		t.Errorf("in-flight gauge leaked on panic:\n%s", out)
	}
}

func TestHandler_CancelledContextCounted(t *testing.T) {
	t.Parallel()
	c := newCollector(t)

	h := c.Handler("/v1/slow", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/v1/slow", nil).WithContext(ctx)
	h.ServeHTTP(httptest.NewRecorder(), req)

	out := export(t, c)
	if !strings.Contains(out, `api_errors_total{error_type="cancelled",service="test-service"} 1`) {
		t.Errorf("cancellation not counted:\n%s", out)
	}
}

func TestHandler_TimeoutContextCounted(t *testing.T) {
	t.Parallel()
	c := newCollector(t)

	h := c.Handler("/v1/slow", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 0)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/v1/slow", nil).WithContext(ctx)
	h.ServeHTTP(httptest.NewRecorder(), req)

	out := export(t, c)
	if !strings.Contains(out, `api_errors_total{error_type="timeout",service="test-service"} 1`) {
		t.Errorf("timeout not counted:\n%s", out)
	}
}

func TestHandler_ConcurrentRequests(t *testing.T) {
	t.Parallel()
	c := newCollector(t)

	h := c.Handler("/v1/items", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	const requests = 100
	var wg sync.WaitGroup
	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/items", nil))
		}()
	}
	wg.Wait()

	out := export(t, c)
	if !strings.Contains(out, `api_requests_total{endpoint="/v1/items",method="GET",service="test-service",status="200"} 100`) {
		t.Errorf("expected all concurrent requests counted:\n%s", out)
	}
	if !strings.Contains(out, `api_active_requests{service="test-service"} 0`) {
		t.Errorf("in-flight gauge must return to 0:\n%s", out)
	}
}
