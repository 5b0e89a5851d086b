/*
Package interpreter embeds the goja JavaScript engine as the host for script
modules.

# Overview

A single Interpreter owns one goja runtime. The runtime is not safe for
concurrent use, so every interaction happens while holding an Access:

	access, err := interp.Acquire(ctx)
	if err != nil {
		return err
	}
	defer access.Release()

	module, err := access.Import(ctx, "games")

At most one Access is outstanding per Interpreter. Acquire blocks until the
previous holder releases it or ctx is done.

# Module Search Path

The search path lives inside the runtime as the array sys.path, so scripts can
inspect and modify it the same way host code does. Module identifiers are
dotted names: "games" resolves to games.js and "pkg.games" to pkg/games.js or
pkg/games/index.js under each sys.path entry, in order.

# Modules

Module sources are evaluated inside a CommonJS wrapper:

	(function (exports, require, module, __filename, __dirname) { ... })

and the value of module.exports at call time is the module object. Imported
modules are cached per identifier; require() inside a script goes through the
same import machinery. A module that fails to load is evicted from the cache.

# Diagnostics

Script exceptions are printed, with their JavaScript stack, to the configured
diagnostics writer (stderr by default) via Access.PrintError. console.log and
friends inside scripts are forwarded to the zap logger.
*/
package interpreter
