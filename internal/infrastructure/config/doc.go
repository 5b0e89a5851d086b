// Package config provides 12-factor configuration for the launcher.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags override environment variables.
//
// Configuration Sections:
//   - Logging: Log level and output format
//   - Interpreter: Extra search path entries, call timeout, search path dedup
//   - Manifest: Optional file listing the categories to load
//
// A manifest may be YAML, TOML or JSON:
//
//	search_path: [./scripts]
//	categories:
//	  - module: games
//	  - module: tools
//	    alias: dev
//
// Environment Variables:
//   - LOG_LEVEL, LOG_DEV
//   - LAUNCHER_SEARCH_PATH, LAUNCHER_CALL_TIMEOUT, LAUNCHER_DEDUP_SEARCH_PATH
//   - LAUNCHER_MANIFEST, LAUNCHER_METRICS
package config
