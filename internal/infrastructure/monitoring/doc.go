/*
Package monitoring provides metrics collection for the conversion pipeline.

# Overview

This package implements Prometheus-based metrics for model conversion and
the optional HTTP conversion server. Collectors live on a private registry
owned by each Metrics value.

# Features

- Models processed, by outcome
- Instances created, by BDL command type
- Lifecycle stage durations (instantiate, derive, shape, attach, assemble, units, write)
- Validation diagnostics, by level
- HTTP request metrics (latency, throughput, size)

# Usage

	metrics := monitoring.NewMetrics()

	// Observe model lifecycle stages
	cfg := model.Config{StageObserver: metrics.ObserveStage}

	// Time other stages
	timer := monitoring.NewTimer(metrics, "write")
	// ... write document ...
	timer.Stop()

	// Add middleware and the exposition endpoint to a Gin router
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", monitoring.Handler(metrics))
*/
package monitoring
