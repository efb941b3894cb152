package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "dispatch_console"

// Collector собирает метрики консоли. Методы безопасны для nil-получателя,
// чтобы сервисы и тесты могли работать без метрик.
type Collector struct {
	registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	pollTotal    *prometheus.CounterVec
	pollDuration *prometheus.HistogramVec
	staleTotal   *prometheus.CounterVec
	flightsTotal *prometheus.CounterVec
	mountedViews *prometheus.GaugeVec
}

// NewCollector регистрирует все метрики в собственном реестре
func NewCollector() (*Collector, error) {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency distribution for inbound HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of inbound HTTP requests.",
		}, []string{"method", "path", "status"}),
		pollTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "poll",
			Name:      "total",
			Help:      "Incident list refreshes by view role and result.",
		}, []string{"role", "result"}),
		pollDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "poll",
			Name:      "duration_seconds",
			Help:      "Latency of incident list refreshes.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"role"}),
		staleTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "poll",
			Name:      "stale_responses_total",
			Help:      "Refresh responses discarded because a newer one was already applied.",
		}, []string{"role"}),
		flightsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "map",
			Name:      "fly_transitions_total",
			Help:      "Map fly transitions issued by reason.",
		}, []string{"role", "reason"}),
		mountedViews: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "views",
			Name:      "mounted",
			Help:      "Currently mounted views by role.",
		}, []string{"role"}),
	}

	for _, col := range []prometheus.Collector{
		c.requestDuration, c.requestTotal,
		c.pollTotal, c.pollDuration, c.staleTotal,
		c.flightsTotal, c.mountedViews,
	} {
		if err := c.registry.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Handler отдает метрики в формате Prometheus
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// GinMiddleware записывает метрики входящих запросов.
// В метку path идет шаблон маршрута, а не сырой URL.
func (c *Collector) GinMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		path := ctx.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(ctx.Writer.Status())
		method := ctx.Request.Method

		c.requestTotal.WithLabelValues(method, path, status).Inc()
		c.requestDuration.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())
	}
}

func (c *Collector) ObservePoll(role, result string, d time.Duration) {
	if c == nil {
		return
	}
	c.pollTotal.WithLabelValues(role, result).Inc()
	c.pollDuration.WithLabelValues(role).Observe(d.Seconds())
}

func (c *Collector) IncStale(role string) {
	if c == nil {
		return
	}
	c.staleTotal.WithLabelValues(role).Inc()
}

func (c *Collector) IncFlight(role, reason string) {
	if c == nil {
		return
	}
	c.flightsTotal.WithLabelValues(role, reason).Inc()
}

func (c *Collector) ViewMounted(role string) {
	if c == nil {
		return
	}
	c.mountedViews.WithLabelValues(role).Inc()
}

func (c *Collector) ViewUnmounted(role string) {
	if c == nil {
		return
	}
	c.mountedViews.WithLabelValues(role).Dec()
}
