package script

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dop251/goja"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/launcher/internal/category"
	"github.com/GriffinCanCode/AgentOS/launcher/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/launcher/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/AgentOS/launcher/internal/interpreter"
	"github.com/GriffinCanCode/AgentOS/launcher/internal/shared/id"
)

// Functions a script module must export.
const (
	FuncGetName     = "get_name"
	FuncGetEntries  = "get_entries"
	FuncLaunchEntry = "launch_entry"
)

var _ category.Category = (*Category)(nil)

// Category is a category whose name, entries and launch behavior come from a
// script module.
type Category struct {
	module   string
	instance id.CategoryID

	interp  *interpreter.Interpreter
	logger  *zap.Logger
	metrics *monitoring.Metrics
	tracer  *tracing.Tracer
	getwd   func() (string, error)

	// Guarded by interpreter access
	handle *interpreter.Module
}

// Option configures a Category.
type Option func(*Category)

// WithInterpreter binds the category to interp instead of the process-wide
// interpreter.
func WithInterpreter(interp *interpreter.Interpreter) Option {
	return func(c *Category) {
		if interp != nil {
			c.interp = interp
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Category) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics records imports and calls on metrics.
func WithMetrics(metrics *monitoring.Metrics) Option {
	return func(c *Category) {
		c.metrics = metrics
	}
}

// WithTracer reports a span for the import and for every call.
func WithTracer(tracer *tracing.Tracer) Option {
	return func(c *Category) {
		c.tracer = tracer
	}
}

// WithWorkingDir replaces os.Getwd as the source of the directory prepended
// to the search path.
func WithWorkingDir(getwd func() (string, error)) Option {
	return func(c *Category) {
		if getwd != nil {
			c.getwd = getwd
		}
	}
}

// New imports the script module named moduleID and returns a category backed
// by it. The working directory is prepended to sys.path first, so modules next
// to the running process resolve by name.
func New(ctx context.Context, moduleID string, opts ...Option) (*Category, error) {
	c := &Category{
		module:   moduleID,
		instance: id.NewCategoryID(),
		logger:   zap.NewNop(),
		getwd:    os.Getwd,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.interp == nil {
		c.interp = interpreter.Default()
	}
	c.logger = c.logger.With(
		zap.String("module", moduleID),
		zap.String("instance", c.instance.String()))

	span, ctx := c.tracer.StartSpan(ctx, "script.import")
	span.SetTag("module", moduleID)

	start := time.Now()
	err := c.load(ctx)
	c.metrics.RecordImport(outcome(err), time.Since(start))
	span.Finish(err)
	if err != nil {
		c.logger.Warn("Failed to load script category", zap.Error(err))
		return nil, err
	}

	c.metrics.IncCategoriesActive()
	c.logger.Debug("Script category loaded", zap.String("path", c.handle.Path()))
	return c, nil
}

func (c *Category) load(ctx context.Context) error {
	access, err := c.interp.Acquire(ctx)
	if err != nil {
		return miscError(c.module, "cannot acquire interpreter access", err)
	}
	defer access.Release()

	path, err := access.SearchPath(ctx)
	if err != nil {
		return c.raise(access, "cannot read module search path", err)
	}
	if !interpreter.IsList(path) {
		return incorrectReturnType(c.module, "module search path must be a list")
	}

	cwd, err := c.getwd()
	if err != nil {
		return miscError(c.module, "cannot resolve working directory", err)
	}

	if err := access.PrependSearchPath(ctx, cwd); err != nil {
		return c.raise(access, "cannot update module search path", err)
	}

	handle, err := access.Import(ctx, c.module)
	if err != nil {
		return c.raise(access, "import failed", err)
	}

	c.handle = handle
	return nil
}

// Module returns the module identifier the category was created from.
func (c *Category) Module() string {
	return c.module
}

// Instance returns the unique ID of this category instance.
func (c *Category) Instance() id.CategoryID {
	return c.instance
}

// Name calls get_name() and returns its string result.
func (c *Category) Name(ctx context.Context) (string, error) {
	var name string
	err := c.invoke(ctx, FuncGetName, nil, func(v goja.Value) error {
		s, ok := interpreter.AsString(v)
		if !ok {
			return incorrectReturnType(c.module, "category name must be a string")
		}
		name = s
		return nil
	})
	if err != nil {
		return "", err
	}
	return name, nil
}

// Entries calls get_entries(). The result must be an array of strings;
// otherwise nothing is returned.
func (c *Category) Entries(ctx context.Context) ([]category.Entry, error) {
	var entries []category.Entry
	err := c.invoke(ctx, FuncGetEntries, nil, func(v goja.Value) error {
		list, ok := interpreter.AsList(v)
		if !ok {
			return incorrectReturnType(c.module,
				fmt.Sprintf("category entries must be a list, got %s", interpreter.TypeOf(v)))
		}

		var converted []category.Entry
		err := interpreter.Each(list, func(i int, item goja.Value) error {
			s, ok := interpreter.AsString(item)
			if !ok {
				return incorrectReturnType(c.module,
					fmt.Sprintf("category entry %d must be a string, got %s", i, interpreter.TypeOf(item)))
			}
			converted = append(converted, s)
			return nil
		})
		if err != nil {
			return err
		}
		if converted == nil {
			converted = []category.Entry{}
		}
		entries = converted
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Launch calls launch_entry(entry). The return value is ignored.
func (c *Category) Launch(ctx context.Context, entry category.Entry) error {
	return c.invoke(ctx, FuncLaunchEntry, []interface{}{entry}, nil)
}

// Close releases the module handle. Operations after Close fail with
// KindInternal.
func (c *Category) Close() error {
	access, err := c.interp.Acquire(context.Background())
	if err != nil {
		return miscError(c.module, "cannot acquire interpreter access", err)
	}
	defer access.Release()

	if c.handle != nil {
		c.handle = nil
		c.metrics.DecCategoriesActive()
	}
	return nil
}

// invoke performs one call into the module while holding interpreter access.
// check runs before access is released and may run script getters, so it goes
// through Access.Inspect; the value must not escape it.
func (c *Category) invoke(ctx context.Context, function string, args []interface{}, check func(goja.Value) error) (err error) {
	span, ctx := c.tracer.StartSpan(ctx, "script."+function)
	span.SetTag("module", c.module)
	timer := monitoring.NewTimer(c.metrics, function)
	defer func() {
		timer.Stop(outcome(err))
		span.Finish(err)
	}()

	access, err := c.interp.Acquire(ctx)
	if err != nil {
		return miscError(c.module, "cannot acquire interpreter access", err)
	}
	defer access.Release()

	if err := access.Check(c.handle); err != nil {
		c.logger.Error("Script category used with unusable module handle",
			zap.String("function", function), zap.Error(err))
		return internalError(c.module, err)
	}

	value, err := access.Call(ctx, c.handle, function, args...)
	if err != nil {
		return c.raise(access, function+" failed", err)
	}

	if check == nil {
		return nil
	}
	err = access.Inspect(ctx, func() error { return check(value) })
	var mismatch *Error
	switch {
	case err == nil:
		return nil
	case errors.As(err, &mismatch):
		c.logger.Warn("Script returned an unexpected value",
			zap.String("function", function), zap.Error(err))
		return err
	default:
		return c.raise(access, "reading "+function+" result failed", err)
	}
}

// raise prints an interpreter failure to diagnostics and converts it. Every
// error coming out of the interpreter goes through here.
func (c *Category) raise(access *interpreter.Access, reason string, err error) error {
	access.PrintError(err)
	c.logger.Warn("Script raised an exception", zap.String("reason", reason), zap.Error(err))
	return scriptError(c.module, reason, err)
}

func outcome(err error) string {
	if err == nil {
		return monitoring.OutcomeOK
	}
	if kind := KindOf(err); kind != 0 {
		return kind.String()
	}
	return "unknown"
}
