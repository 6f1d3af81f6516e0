package main

import (
	"net/http"

	"github.com/angeloszaimis/calc-service/internal/handler"
	"github.com/angeloszaimis/calc-service/internal/metrics"
)

func setupRouter(h *handler.Handler, metricsCollector *metrics.Collector) *http.ServeMux {
	mux := http.NewServeMux()

	routes := []struct {
		pattern string
		handle  http.HandlerFunc
	}{
		{"GET /health", h.Health},
		{"GET /api/hello", h.Greet},
		{"POST /api/calculate", h.Calculate},
	}

	for _, route := range routes {
		mux.HandleFunc(route.pattern, h.Instrument(route.pattern, route.handle))
	}

	if metricsCollector != nil {
		mux.HandleFunc("GET /metrics", metricsCollector.Handler())
	}

	return mux
}
