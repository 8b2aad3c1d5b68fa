package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
)

var (
	promOnce sync.Once
	prom     *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus middleware for the given service name.
// The underlying collectors register with the default registry, so the
// instance is created once and shared by every server in the process.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		prom = fiberprometheus.New(serviceName)
	})
	return prom
}

// MetricsMiddleware returns the HTTP handler that records request metrics.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return p.Middleware
}

// RegisterMetricsRoute exposes the Prometheus scrape endpoint on the app.
func RegisterMetricsRoute(p *fiberprometheus.FiberPrometheus, app *fiber.App, path string) {
	p.RegisterAt(app, path)
}
