// Package http serves the conversion pipeline over HTTP with Gin.
//
// Endpoints:
//   - POST /api/v1/convert: BDL text or a multipart form of models, returns RPD JSON
//   - POST /api/v1/inspect: format version and per-command instance counts
//   - GET /api/v1/enumerations[/:name]: schema (or ?source=bdl token) enumerations
//   - GET /health, GET /metrics
//
// Example Usage:
//
//	handlers := http.NewHandlers(p, set, metrics, logger, cfg.Server.MaxBodyBytes, version)
//	router := http.NewRouter(handlers, http.RouterConfig{CORS: middleware.DefaultCORSConfig()})
package http
