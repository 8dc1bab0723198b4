// Package metrics はPrometheusメトリクスの収集と公開を提供します。
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SpinRecorder はスピン記録時のメトリクス収集インターフェースです。
// サービス層から利用します。
type SpinRecorder interface {
	RecordSpinResult(resultType string, points int)
	RecordFirstFind()
}

// Collector はPrometheusメトリクスを収集する実装です。
type Collector struct {
	spins      *prometheus.CounterVec
	points     prometheus.Counter
	firstFinds prometheus.Counter
	httpStatus *prometheus.CounterVec
}

// NewCollector は新しいCollectorを作成し、指定されたレジストリにメトリクスを登録します。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		spins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "unc9_spins_total",
			Help: "記録されたスピンの合計数（結果タイプ別）",
		}, []string{"type"}),
		points: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "unc9_spin_points_total",
			Help: "付与されたポイントの合計",
		}),
		firstFinds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "unc9_first_finds_total",
			Help: "初回発見（新規コレクション作成）の合計数",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "unc9_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.spins,
		c.points,
		c.firstFinds,
		c.httpStatus,
	)

	return c
}

// RecordSpinResult はスピン1回分の記録を加算します。
func (c *Collector) RecordSpinResult(resultType string, points int) {
	c.spins.WithLabelValues(resultType).Inc()
	c.points.Add(float64(points))
}

// RecordFirstFind は初回発見を加算します。
func (c *Collector) RecordFirstFind() {
	c.firstFinds.Inc()
}

// RecordHTTPStatus はHTTPステータスコードを加算します。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Handler は/metricsエンドポイント用のハンドラーを返します。
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// statusRecorder はレスポンスのステータスコードを記録するラッパーです。
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// HTTPMiddleware はレスポンスのステータスコードをメトリクスに記録するミドルウェアを返します。
func (c *Collector) HTTPMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			c.RecordHTTPStatus(rec.status)
		})
	}
}
