package observability

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewMetrics(t *testing.T) {
	t.Run("creates and registers all metrics", func(t *testing.T) {
		registry := prometheus.NewRegistry()
		metrics := NewMetrics(registry)

		if metrics == nil {
			t.Fatal("NewMetrics returned nil")
		}
		if metrics.ToolCallsTotal == nil {
			t.Error("ToolCallsTotal is nil")
		}
		if metrics.ToolCallDuration == nil {
			t.Error("ToolCallDuration is nil")
		}
		if metrics.ToolErrorsTotal == nil {
			t.Error("ToolErrorsTotal is nil")
		}
		if metrics.BackendRequestsTotal == nil {
			t.Error("BackendRequestsTotal is nil")
		}
		if metrics.BackendRequestDuration == nil {
			t.Error("BackendRequestDuration is nil")
		}
		if metrics.SessionOpsTotal == nil {
			t.Error("SessionOpsTotal is nil")
		}
	})

	t.Run("nil registry uses a private one", func(t *testing.T) {
		metrics := NewMetrics(nil)
		if metrics == nil {
			t.Fatal("NewMetrics returned nil")
		}
		// A second call must not panic on duplicate registration.
		if NewMetrics(nil) == nil {
			t.Fatal("second NewMetrics returned nil")
		}
	})
}

func TestObserveToolCall(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())

	metrics.ObserveToolCall("contacts_list", "success", 25*time.Millisecond)
	metrics.ObserveToolCall("contacts_list", "success", 30*time.Millisecond)
	metrics.ObserveToolCall("contacts_list", "error", 5*time.Millisecond)

	got := testutil.ToFloat64(metrics.ToolCallsTotal.WithLabelValues("contacts_list", "success"))
	if got != 2 {
		t.Errorf("success count = %v, want 2", got)
	}
	got = testutil.ToFloat64(metrics.ToolCallsTotal.WithLabelValues("contacts_list", "error"))
	if got != 1 {
		t.Errorf("error count = %v, want 1", got)
	}
}

func TestObserveToolError(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())

	metrics.ObserveToolError("contacts_delete", "forbidden")

	got := testutil.ToFloat64(metrics.ToolErrorsTotal.WithLabelValues("contacts_delete", "forbidden"))
	if got != 1 {
		t.Errorf("error count = %v, want 1", got)
	}
}

func TestObserveBackendRequest(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())

	metrics.ObserveBackendRequest("GET", "200", 10*time.Millisecond)
	metrics.ObserveBackendRequest("GET", "404", 8*time.Millisecond)

	got := testutil.ToFloat64(metrics.BackendRequestsTotal.WithLabelValues("GET", "200"))
	if got != 1 {
		t.Errorf("200 count = %v, want 1", got)
	}
}

func TestMetricsHandler(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())
	metrics.ObserveSessionOp("get", "ok")

	srv := httptest.NewServer(metrics.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("metrics request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), "bridge_session_ops_total") {
		t.Error("exposition output missing bridge_session_ops_total")
	}
}
