package interpreter

import (
	"context"

	"github.com/dop251/goja"
)

// Access is the exclusive right to use an Interpreter's runtime. Values
// obtained through an Access must not be used after Release.
type Access struct {
	in       *Interpreter
	released bool
}

// Release gives up access. Calling it more than once is a no-op.
func (a *Access) Release() {
	if a.released {
		return
	}
	a.released = true
	<-a.in.access
}

// Runtime exposes the underlying goja runtime.
func (a *Access) Runtime() *goja.Runtime {
	return a.in.vm
}

// SearchPath returns sys.path as stored in the runtime, whatever its shape.
// A script exception raised while reading it is returned as the error.
func (a *Access) SearchPath(ctx context.Context) (goja.Value, error) {
	return a.in.searchPath(ctx)
}

// PrependSearchPath inserts dir at the front of sys.path.
func (a *Access) PrependSearchPath(ctx context.Context, dir string) error {
	return a.in.prependSearchPath(ctx, dir)
}

// Import loads the module named id, or returns it from the module cache.
func (a *Access) Import(ctx context.Context, id string) (*Module, error) {
	return a.in.importModule(ctx, id)
}

// Check reports ErrInvalidModule unless m is a live module of this
// interpreter.
func (a *Access) Check(m *Module) error {
	if m == nil || m.owner != a.in || m.record == nil {
		return ErrInvalidModule
	}
	return nil
}

// Call invokes the function exported by m under name.
func (a *Access) Call(ctx context.Context, m *Module, name string, args ...interface{}) (goja.Value, error) {
	if err := a.Check(m); err != nil {
		return nil, err
	}
	return a.in.call(ctx, m, name, args...)
}

// Inspect runs fn, which reads values returned by the script, with the same
// interrupt and exception handling as Call. Property reads can run script
// getters; their exceptions come back as *goja.Exception and Go panics as
// *PanicError. Errors returned by fn are passed through unchanged.
func (a *Access) Inspect(ctx context.Context, fn func() error) error {
	return a.in.inspect(ctx, fn)
}

// PrintError writes err to the interpreter's diagnostics writer.
func (a *Access) PrintError(err error) {
	a.in.printError(err)
}
