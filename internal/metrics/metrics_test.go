package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// RecordSpinResultがタイプ別スピン数とポイント合計を加算することを検証
func TestCollector_RecordSpinResult(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordSpinResult("DIVINE", 20)
	c.RecordSpinResult("DIVINE", 20)
	c.RecordSpinResult("VOID", 1)

	if got := testutil.ToFloat64(c.spins.WithLabelValues("DIVINE")); got != 2 {
		t.Errorf("spins{type=DIVINE} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.spins.WithLabelValues("VOID")); got != 1 {
		t.Errorf("spins{type=VOID} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.points); got != 41 {
		t.Errorf("points = %v, want 41", got)
	}
}

// RecordFirstFindが初回発見数を加算することを検証
func TestCollector_RecordFirstFind(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordFirstFind()

	if got := testutil.ToFloat64(c.firstFinds); got != 1 {
		t.Errorf("firstFinds = %v, want 1", got)
	}
}

// HTTPMiddlewareがステータスコードを記録することを検証
func TestCollector_HTTPMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	handler := c.HTTPMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	req := httptest.NewRequest(http.MethodGet, "/unknown", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if got := testutil.ToFloat64(c.httpStatus.WithLabelValues("404")); got != 1 {
		t.Errorf("httpStatus{404} = %v, want 1", got)
	}
}

// WriteHeaderが呼ばれない場合は200として記録されることを検証
func TestCollector_HTTPMiddleware_DefaultStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	handler := c.HTTPMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if got := testutil.ToFloat64(c.httpStatus.WithLabelValues("200")); got != 1 {
		t.Errorf("httpStatus{200} = %v, want 1", got)
	}
}

// Handlerが登録済みメトリクスを公開することを検証
func TestHandler_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordSpinResult("REALITY", 5)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if len(w.Body.String()) == 0 {
		t.Error("empty metrics body")
	}
}
