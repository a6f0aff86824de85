package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// once 保证指标只注册一次，重复注册同名指标会 panic。
	once sync.Once

	// HTTPRequestsTotal counts finished requests.
	//
	// labels:
	// - method: GET/POST
	// - route: 路由模板（/:tinyId），不要用真实 path，否则会产生无限 label
	// - status: "301"/"422"/"500"
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDurationSeconds 请求耗时分布，用于计算 P95/P99。
	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency distributions.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	HTTPInflightRequests = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Current number of in-flight HTTP requests.",
		},
	)

	// StoreOperations counts mapping store calls.
	//
	// labels:
	// - store: DynamoDB/Redis/Postgres/Memory
	// - op: put/get
	// - outcome: ok/not_found/failure
	StoreOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tinyurl_store_operations_total",
			Help: "Mapping store operations by outcome.",
		},
		[]string{"store", "op", "outcome"},
	)

	// StoreDurationSeconds 存储调用耗时（含超时等待）。
	StoreDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tinyurl_store_duration_seconds",
			Help:    "Mapping store call latency.",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"store", "op"},
	)
)

// Init registers all collectors with the default registry. Safe to call more than once.
func Init() {
	once.Do(func() {
		prometheus.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDurationSeconds,
			HTTPInflightRequests,
			StoreOperations,
			StoreDurationSeconds,
		)
	})
}
