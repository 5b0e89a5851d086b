/*
Package monitoring provides Prometheus metrics for script-backed categories.

# Overview

Each Metrics value registers its collectors on a private
prometheus.Registry, so several collectors (one per test, for example) can
coexist in a process without duplicate registration panics.

# Metrics

  - launcher_script_imports_total{outcome}
  - launcher_script_import_duration_seconds
  - launcher_script_calls_total{function, outcome}
  - launcher_script_call_duration_seconds{function}
  - launcher_categories_active

The outcome label is "ok" or the error kind reported by the category.

# Usage

	metrics := monitoring.NewMetrics()

	timer := monitoring.NewTimer(metrics, "get_entries")
	// ... call into the script ...
	timer.Stop("ok")

	metrics.WriteText(os.Stdout)

All recording methods accept a nil *Metrics and do nothing.
*/
package monitoring
