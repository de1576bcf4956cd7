// Package config provides configuration management for yamlinc.
//
// Configuration is optional: every field has a default, and the CLI runs
// without a configuration file. When a file is used it is YAML, and
// environment variables override it.
//
// # Configuration Loading
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("yamlinc.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("yamlinc.yaml")
//
//  3. The way the CLI does it, falling back to .yamlinc.yaml and then to
//     the defaults:
//     cfg, err := config.Load("")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention YAMLINC_SECTION_FIELD.
// For example:
//
//   - YAMLINC_COMPILE_MAX_DEPTH overrides compile.max_depth
//   - YAMLINC_LOGGING_FORMAT overrides logging.format
//   - YAMLINC_WATCH_EXTENSIONS overrides watch.extensions (comma separated)
//
// # Configuration Precedence
//
// Configuration values are applied in the following order (later overrides earlier):
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Command-line flags (applied by the CLI)
//
// # Example Configuration
//
//	compile:
//	  indent: 2
//	  max_depth: 16
//
//	logging:
//	  level: "info"
//	  format: "console"
//
//	watch:
//	  debounce: "250ms"
//	  schedule: "*/5 * * * *"
//	  exec: ["make", "deploy"]
//
//	metrics:
//	  enabled: true
//	  address: "127.0.0.1:9464"
//
//	history:
//	  enabled: true
//	  driver: "sqlite"
//	  path: ".yamlinc/history.db"
//	  retention: "720h"
//
//	health:
//	  readiness_path: "/readyz"
//
//	tracing:
//	  enabled: true
//	  endpoint: "localhost:4317"
//	  otlp:
//	    insecure: true
package config
