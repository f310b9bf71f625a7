package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics usa un registry propio (no el global) para poder crear varios routers en tests.
type Metrics struct {
	reg *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	eventsDispatched *prometheus.CounterVec
	pushTokens       *prometheus.CounterVec
	tokensPruned     *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		reg: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "guidedog",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "guidedog",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		eventsDispatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "guidedog",
			Name:      "notify_events_total",
			Help:      "Document-created events handled by the notification dispatcher.",
		}, []string{"collection"}),
		pushTokens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "guidedog",
			Name:      "push_tokens_total",
			Help:      "Push deliveries per token, by trigger and result.",
		}, []string{"trigger", "result"}),
		tokensPruned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "guidedog",
			Name:      "push_subscriptions_pruned_total",
			Help:      "Subscriptions deleted after the push provider rejected their token.",
		}, []string{"trigger"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.eventsDispatched,
		m.pushTokens,
		m.tokensPruned,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Middleware registra conteo y latencia usando el route pattern de chi (no el path crudo).
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.httpRequests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) EventDispatched(collection string) {
	if m == nil {
		return
	}
	m.eventsDispatched.WithLabelValues(collection).Inc()
}

func (m *Metrics) PushResult(trigger string, sent, failed int) {
	if m == nil {
		return
	}
	m.pushTokens.WithLabelValues(trigger, "sent").Add(float64(sent))
	m.pushTokens.WithLabelValues(trigger, "failed").Add(float64(failed))
}

func (m *Metrics) TokensPruned(trigger string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.tokensPruned.WithLabelValues(trigger).Add(float64(n))
}
