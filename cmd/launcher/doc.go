/*
Launcher loads script categories and drives them from the command line.

Usage:

	launcher demo [module]            print a category name, then launch and print every entry
	launcher demo --native            same loop over the built-in example category
	launcher list [module...]         show name and entries of each category
	launcher launch <module> <entry>  launch one entry

Modules are resolved from the working directory, then --search-path entries,
then the manifest's search_path. Without module arguments, list uses the
categories named in the manifest.

Flags:

	--manifest     YAML, TOML or JSON file listing categories (LAUNCHER_MANIFEST)
	--search-path  extra module directories (LAUNCHER_SEARCH_PATH)
	--timeout      per-call script timeout, 0 for none (LAUNCHER_CALL_TIMEOUT)
	--log-level    debug, info, warn or error (LOG_LEVEL)
	--dev          human readable logs (LOG_DEV)
	--output       text or json
	--metrics      print Prometheus metrics to stderr after the run (LAUNCHER_METRICS)
*/
package main
