package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Middleware records count, latency and request size per route.
func Middleware(metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method

		reqSize := c.Request.ContentLength
		if reqSize < 0 {
			reqSize = 0
		}

		c.Next()

		// Route templates keep label cardinality bounded.
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		metrics.RecordHTTPRequest(method, path, status, time.Since(start), reqSize)
	}
}

// Handler exposes the private registry in the Prometheus text format.
func Handler(metrics *Metrics) gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
}

// Timer measures the duration of one lifecycle stage.
type Timer struct {
	start   time.Time
	metrics *Metrics
	stage   string
}

func NewTimer(metrics *Metrics, stage string) *Timer {
	return &Timer{start: time.Now(), metrics: metrics, stage: stage}
}

// Stop observes the elapsed time and returns it.
func (t *Timer) Stop() time.Duration {
	d := time.Since(t.start)
	t.metrics.ObserveStage(t.stage, d)
	return d
}
