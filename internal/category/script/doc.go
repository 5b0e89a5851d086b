/*
Package script implements category.Category on top of a script module.

A script module is a JavaScript file that exports three functions:

	exports.get_name = function () { return "Games"; };
	exports.get_entries = function () { return ["Chess", "Go"]; };
	exports.launch_entry = function (entry) { ... };

New imports the module through the interpreter after prepending the working
directory to sys.path. Every operation afterwards acquires interpreter access,
makes exactly one call, checks the shape of the returned value and converts it
to Go values. Nothing is cached and nothing is retried.

All failures, construction included, are *Error values. Use errors.Is with
ErrInternal, ErrScript, ErrIncorrectReturnType or ErrMisc to tell them apart:

	entries, err := c.Entries(ctx)
	switch {
	case errors.Is(err, script.ErrIncorrectReturnType):
		// the script broke its contract
	case errors.Is(err, script.ErrScript):
		// the script threw; details were printed to diagnostics
	}
*/
package script
