// Package metrics provides in-process request metrics for the service.
//
// Handlers emit MetricEvents onto a buffered channel without blocking; a
// single collector goroutine aggregates them into:
//   - Request counts per route
//   - Response times with percentile calculations (P50, P95, P99)
//   - HTTP status code distribution per route
//   - Calculation counts per arithmetic operation
//
// Example usage:
//
//	collector := metrics.NewCollector(1000, logger)
//	collector.Start(ctx)
//
//	collector.Emit(metrics.MetricEvent{
//		Type:       metrics.EventResponseCompleted,
//		Route:      "POST /api/calculate",
//		Duration:   2 * time.Millisecond,
//		StatusCode: 200,
//	})
//
//	snapshot := collector.Snapshot()
//
// Pending events are drained when the collector's context is cancelled.
package metrics
