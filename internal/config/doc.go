// Package config provides 12-factor configuration for the RPD generator.
//
// Configuration is loaded from environment variables with defaults, then
// optionally overlaid from a JSON, YAML or TOML file. CLI flags override
// both.
//
// Configuration Sections:
//   - Schema: where the ASHRAE 229 schema documents come from
//   - Output: unit system, indent, compression and project metadata
//   - Pipeline: ruleset, model concurrency, strict simulation outputs
//   - Logging: log level and output format
//   - Server: HTTP conversion server settings
//   - RateLimit: per-IP rate limiting for the server
//
// Example Usage:
//
//	cfg, err := config.Load("rpdgen.yaml")
//	if err != nil {
//		return err
//	}
//	fmt.Println(cfg.Output.Units)
//
// Environment Variables (all prefixed RPDGEN_):
//   - SCHEMA_SOURCE, SCHEMA_VERSION
//   - OUTPUT_UNITS, OUTPUT_INDENT, OUTPUT_COMPRESSION
//   - PIPELINE_RULESET, PIPELINE_CONCURRENCY, PIPELINE_STRICT_OUTPUTS
//   - LOGGING_LEVEL, LOGGING_DEV
//   - SERVER_PORT, SERVER_HOST, SERVER_MAX_BODY_BYTES
//   - RATELIMIT_RPS, RATELIMIT_BURST, RATELIMIT_ENABLED
package config
