package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricsOnce sync.Once
	fiberProm   *fiberprometheus.FiberPrometheus

	// RedisErrors counts cache operation failures by operation name.
	RedisErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minix_redis_errors_total",
			Help: "Total number of Redis cache errors",
		},
		[]string{"operation"},
	)

	// UploadsTotal counts processed image uploads by outcome.
	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minix_uploads_total",
			Help: "Total number of image upload attempts",
		},
		[]string{"outcome"},
	)
)

// InitMetrics initializes the Prometheus middleware exactly once. Subsequent
// calls return the same instance, so tests can build multiple servers without
// tripping duplicate collector registration.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	metricsOnce.Do(func() {
		fiberProm = fiberprometheus.New(serviceName)
	})
	return fiberProm
}

// MetricsMiddleware returns the request instrumentation handler for the given
// Prometheus middleware instance.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
