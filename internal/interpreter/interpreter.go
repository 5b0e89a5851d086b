package interpreter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dop251/goja"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Interpreter wraps a goja runtime together with its module cache and the
// lock that serializes access to it.
type Interpreter struct {
	vm          *goja.Runtime
	config      Config
	logger      *zap.Logger
	diagnostics io.Writer

	// Held by the current Access; capacity one.
	access chan struct{}

	// Guarded by access
	modules map[string]*Module
	running bool
}

var (
	defaultInterpreter *Interpreter
	defaultOnce        sync.Once
)

// Default returns the process-wide interpreter, creating it on first use.
func Default() *Interpreter {
	defaultOnce.Do(func() {
		defaultInterpreter = New(DefaultConfig())
	})
	return defaultInterpreter
}

// New creates an interpreter with its own runtime and search path.
func New(config Config, opts ...Option) *Interpreter {
	in := &Interpreter{
		vm:          goja.New(),
		config:      config,
		logger:      zap.NewNop(),
		diagnostics: os.Stderr,
		access:      make(chan struct{}, 1),
		modules:     make(map[string]*Module),
	}
	for _, opt := range opts {
		opt(in)
	}

	in.setupGlobals()
	return in
}

// Config returns the configuration the interpreter was created with.
func (in *Interpreter) Config() Config {
	return in.config
}

// Acquire blocks until the caller holds exclusive access to the runtime.
func (in *Interpreter) Acquire(ctx context.Context) (*Access, error) {
	select {
	case in.access <- struct{}{}:
		return &Access{in: in}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// setupGlobals installs sys and console
func (in *Interpreter) setupGlobals() {
	path := make([]interface{}, 0, len(in.config.SearchPath))
	for _, dir := range in.config.SearchPath {
		path = append(path, dir)
	}

	sys := in.vm.NewObject()
	sys.Set("path", in.vm.NewArray(path...))
	in.vm.Set("sys", sys)

	in.vm.Set("require", goja.Undefined())
	in.vm.Set("module", goja.Undefined())
	in.vm.Set("exports", goja.Undefined())

	if in.config.EnableConsole {
		console := in.vm.NewObject()
		console.Set("log", in.makeConsoleFunc(zap.InfoLevel))
		console.Set("info", in.makeConsoleFunc(zap.InfoLevel))
		console.Set("warn", in.makeConsoleFunc(zap.WarnLevel))
		console.Set("error", in.makeConsoleFunc(zap.ErrorLevel))
		in.vm.Set("console", console)
	}
}

func (in *Interpreter) makeConsoleFunc(level zapcore.Level) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		parts := make([]string, 0, len(call.Arguments))
		for _, arg := range call.Arguments {
			parts = append(parts, arg.String())
		}
		if ce := in.logger.Check(level, strings.Join(parts, " ")); ce != nil {
			ce.Write(zap.String("source", "console"))
		}
		return goja.Undefined()
	}
}

var errOnSearchPath = errors.New("already on sys.path")

// lookupSearchPath reads sys.path. Both reads can run script getters; callers
// go through inspect.
func (in *Interpreter) lookupSearchPath() goja.Value {
	sys, ok := in.vm.Get("sys").(*goja.Object)
	if !ok {
		return goja.Undefined()
	}
	v := sys.Get("path")
	if v == nil {
		return goja.Undefined()
	}
	return v
}

func (in *Interpreter) searchPath(ctx context.Context) (goja.Value, error) {
	var path goja.Value
	err := in.inspect(ctx, func() error {
		path = in.lookupSearchPath()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return path, nil
}

// searchDirs returns the string entries of sys.path. Non-string entries are
// skipped.
func (in *Interpreter) searchDirs(ctx context.Context) ([]string, error) {
	var dirs []string
	err := in.inspect(ctx, func() error {
		list, ok := AsList(in.lookupSearchPath())
		if !ok {
			return ErrSearchPathNotList
		}
		return Each(list, func(_ int, item goja.Value) error {
			if dir, ok := AsString(item); ok {
				dirs = append(dirs, dir)
			}
			return nil
		})
	})
	return dirs, err
}

func (in *Interpreter) prependSearchPath(ctx context.Context, dir string) error {
	err := in.inspect(ctx, func() error {
		list, ok := AsList(in.lookupSearchPath())
		if !ok {
			return ErrSearchPathNotList
		}

		if in.config.DedupSearchPath {
			err := Each(list, func(_ int, item goja.Value) error {
				if existing, ok := AsString(item); ok && existing == dir {
					return errOnSearchPath
				}
				return nil
			})
			if err != nil {
				return err
			}
		}

		unshift, ok := goja.AssertFunction(list.Get("unshift"))
		if !ok {
			return &AttributeError{Module: "sys", Name: "path.unshift", Reason: "is not a function"}
		}
		_, err := unshift(list, in.vm.ToValue(dir))
		return err
	})
	if errors.Is(err, errOnSearchPath) {
		return nil
	}
	return err
}

// importModule loads id, or returns the cached module. The caller holds
// access.
func (in *Interpreter) importModule(ctx context.Context, id string) (*Module, error) {
	if err := ValidateModuleID(id); err != nil {
		return nil, &ImportError{Module: id, Err: err}
	}
	if m, ok := in.modules[id]; ok {
		return m, nil
	}

	dirs, err := in.searchDirs(ctx)
	if err != nil {
		return nil, &ImportError{Module: id, Err: err}
	}
	file, err := resolve(dirs, id)
	if err != nil {
		return nil, &ImportError{Module: id, Err: fmt.Errorf("%w in %s", err, strings.Join(dirs, string(os.PathListSeparator)))}
	}
	src, err := readSource(file)
	if err != nil {
		return nil, &ImportError{Module: id, Path: file, Err: err}
	}

	start := time.Now()
	m, err := in.evaluate(ctx, id, file, src)
	if err != nil {
		return nil, &ImportError{Module: id, Path: file, Err: err}
	}

	in.logger.Debug("Module imported",
		zap.String("module", id),
		zap.String("path", file),
		zap.Duration("duration", time.Since(start)))
	return m, nil
}

// evaluate runs module source inside the CommonJS wrapper.
func (in *Interpreter) evaluate(ctx context.Context, id, file, src string) (*Module, error) {
	wrapped := "(function (exports, require, module, __filename, __dirname) {" + src + "\n})"
	program, err := goja.Compile(file, wrapped, false)
	if err != nil {
		return nil, err
	}

	stop := in.watch(ctx)
	defer stop()

	wrapper, err := in.guard(func() (goja.Value, error) {
		return in.vm.RunProgram(program)
	})
	if err != nil {
		return nil, err
	}
	fn, ok := goja.AssertFunction(wrapper)
	if !ok {
		return nil, errors.New("module wrapper did not evaluate to a function")
	}

	exports := in.vm.NewObject()
	record := in.vm.NewObject()
	record.Set("id", id)
	record.Set("filename", file)
	record.Set("exports", exports)

	m := &Module{id: id, path: file, record: record, owner: in}
	// Registered before evaluation so require cycles see the partial exports.
	in.modules[id] = m

	_, err = in.guard(func() (goja.Value, error) {
		return fn(goja.Undefined(),
			exports,
			in.vm.ToValue(in.require),
			record,
			in.vm.ToValue(file),
			in.vm.ToValue(filepath.Dir(file)))
	})
	if err != nil {
		delete(in.modules, id)
		return nil, err
	}

	_, err = in.guard(func() (goja.Value, error) {
		if exports := m.Exports(); !isObject(exports) {
			return nil, fmt.Errorf("module.exports must be an object, got %s", TypeOf(exports))
		}
		return nil, nil
	})
	if err != nil {
		delete(in.modules, id)
		return nil, err
	}
	return m, nil
}

// require is the require() seen by module code.
func (in *Interpreter) require(call goja.FunctionCall) goja.Value {
	id := call.Argument(0).String()
	m, err := in.importModule(context.Background(), id)
	if err != nil {
		var exc *goja.Exception
		if errors.As(err, &exc) {
			panic(exc.Value())
		}
		panic(in.vm.NewGoError(err))
	}
	return m.Exports()
}

// call invokes a member of m with positional arguments. The caller holds
// access. Looking the member up can run script getters, so it happens under
// the same watch and guard as the call itself.
func (in *Interpreter) call(ctx context.Context, m *Module, name string, args ...interface{}) (goja.Value, error) {
	stop := in.watch(ctx)
	defer stop()

	return in.guard(func() (goja.Value, error) {
		exports, ok := m.Exports().(*goja.Object)
		if !ok {
			return nil, &AttributeError{Module: m.id, Name: name, Reason: "cannot be looked up: module.exports is not an object"}
		}

		member := exports.Get(name)
		if member == nil || goja.IsUndefined(member) {
			return nil, &AttributeError{Module: m.id, Name: name, Reason: "is not defined"}
		}
		fn, ok := goja.AssertFunction(member)
		if !ok {
			return nil, &AttributeError{Module: m.id, Name: name, Reason: "is not a function, got " + TypeOf(member)}
		}

		argv := make([]goja.Value, 0, len(args))
		for _, arg := range args {
			argv = append(argv, in.vm.ToValue(arg))
		}
		return fn(exports, argv...)
	})
}

// inspect runs fn, which reads script values, under watch and guard.
func (in *Interpreter) inspect(ctx context.Context, fn func() error) error {
	stop := in.watch(ctx)
	defer stop()

	_, err := in.guard(func() (goja.Value, error) {
		return nil, fn()
	})
	return err
}

// watch interrupts the runtime when ctx is done or the call timeout passes.
// The returned function must be called once the runtime is idle again.
func (in *Interpreter) watch(ctx context.Context) func() {
	if in.running {
		// Nested entry through require(); the outermost watch covers it.
		return func() {}
	}
	in.running = true

	if ctx.Done() == nil && in.config.CallTimeout <= 0 {
		return func() { in.running = false }
	}

	var timer *time.Timer
	var expired <-chan time.Time
	if in.config.CallTimeout > 0 {
		timer = time.NewTimer(in.config.CallTimeout)
		expired = timer.C
	}

	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		select {
		case <-expired:
			in.vm.Interrupt(ErrCallTimeout)
		case <-ctx.Done():
			in.vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()

	return func() {
		close(done)
		<-finished
		if timer != nil {
			timer.Stop()
		}
		in.vm.ClearInterrupt()
		in.running = false
	}
}

// guard converts Go panics raised while the runtime runs into errors.
// Script exceptions and interrupts raised outside a running program, for
// example by a getter read from Go, arrive as panics and are returned as is.
func (in *Interpreter) guard(run func() (goja.Value, error)) (value goja.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			value = nil
			switch e := r.(type) {
			case *goja.Exception:
				err = e
			case *goja.InterruptedError:
				err = e
			default:
				err = &PanicError{Value: r}
			}
		}
	}()
	return run()
}

// printError writes err to diagnostics, including the script stack when err
// carries a script exception.
func (in *Interpreter) printError(err error) {
	if err == nil {
		return
	}

	var exc *goja.Exception
	if errors.As(err, &exc) {
		var ie *ImportError
		if errors.As(err, &ie) {
			fmt.Fprintf(in.diagnostics, "while importing module %q:\n", ie.Module)
		}
		fmt.Fprintln(in.diagnostics, strings.TrimRight(exc.String(), "\n"))
		return
	}

	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		fmt.Fprintln(in.diagnostics, strings.TrimRight(interrupted.String(), "\n"))
		return
	}

	fmt.Fprintln(in.diagnostics, err.Error())
}
