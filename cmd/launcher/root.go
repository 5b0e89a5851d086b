package main

import (
	"context"
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/launcher/internal/category"
	"github.com/GriffinCanCode/AgentOS/launcher/internal/category/script"
	"github.com/GriffinCanCode/AgentOS/launcher/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/launcher/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/launcher/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/AgentOS/launcher/internal/interpreter"
	"github.com/GriffinCanCode/AgentOS/launcher/internal/logging"
)

const (
	outputText = "text"
	outputJSON = "json"
)

// app carries the state shared by all subcommands of one invocation.
type app struct {
	cfg    *config.Config
	output string

	logger   *logging.Logger
	interp   *interpreter.Interpreter
	metrics  *monitoring.Metrics
	tracer   *tracing.Tracer
	manifest *config.Manifest
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: config.LoadOrDefault(), output: outputText}

	rootCmd := &cobra.Command{
		Use:           "launcher",
		Short:         "Load script categories and launch their entries",
		Long:          `Launcher loads categories defined by script modules and lists or launches their entries.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfg.Manifest, "manifest", a.cfg.Manifest, "Manifest file listing categories (.yaml, .toml or .json)")
	flags.StringSliceVar(&a.cfg.Interpreter.SearchPath, "search-path", a.cfg.Interpreter.SearchPath, "Additional module directories")
	flags.DurationVar(&a.cfg.Interpreter.CallTimeout, "timeout", a.cfg.Interpreter.CallTimeout, "Per-call script timeout (0 disables)")
	flags.StringVar(&a.cfg.Logging.Level, "log-level", a.cfg.Logging.Level, "Log level (debug, info, warn, error)")
	flags.BoolVar(&a.cfg.Logging.Development, "dev", a.cfg.Logging.Development, "Human readable development logs")
	flags.StringVarP(&a.output, "output", "o", a.output, "Output format (text or json)")
	flags.BoolVar(&a.cfg.Metrics, "metrics", a.cfg.Metrics, "Print metrics to stderr after the run")

	rootCmd.AddCommand(newDemoCmd(a))
	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newLaunchCmd(a))
	return rootCmd
}

// run wraps a subcommand with setup and teardown.
func (a *app) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		if err := a.setup(cmd); err != nil {
			return err
		}
		defer a.finish(cmd)

		span, ctx := a.tracer.StartSpan(cmd.Context(), "launcher."+cmd.Name())
		defer func() { span.Finish(err) }()
		cmd.SetContext(ctx)

		return fn(cmd, args)
	}
}

func (a *app) setup(cmd *cobra.Command) error {
	if a.output != outputText && a.output != outputJSON {
		return fmt.Errorf("unsupported output format %q", a.output)
	}

	logger, err := logging.New(logging.Config{
		Level:       a.cfg.Logging.Level,
		Development: a.cfg.Logging.Development,
		Output:      cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	a.logger = logger

	if a.cfg.Manifest != "" {
		manifest, err := config.LoadManifest(a.cfg.Manifest)
		if err != nil {
			return err
		}
		a.manifest = manifest
	}

	a.tracer = tracing.New("launcher", logger.Named("trace"))

	if a.cfg.Metrics {
		a.metrics = monitoring.NewMetrics()
	}

	a.interp = interpreter.New(a.cfg.InterpreterConfig(a.manifest),
		interpreter.WithLogger(logger.Named("interpreter")),
		interpreter.WithDiagnostics(cmd.ErrOrStderr()))

	a.logger.Debug("Launcher configured",
		zap.String("manifest", a.cfg.Manifest),
		zap.Strings("search_path", a.cfg.Interpreter.SearchPath),
		zap.Duration("call_timeout", a.cfg.Interpreter.CallTimeout))
	return nil
}

func (a *app) finish(cmd *cobra.Command) {
	if err := a.metrics.WriteText(cmd.ErrOrStderr()); err != nil {
		a.logger.Warn("Failed to write metrics", zap.Error(err))
	}
	_ = a.logger.Sync()
}

// open loads a single script category.
func (a *app) open(ctx context.Context, module string) (*script.Category, error) {
	return script.New(ctx, module,
		script.WithInterpreter(a.interp),
		script.WithLogger(a.logger.Named("category")),
		script.WithMetrics(a.metrics),
		script.WithTracer(a.tracer))
}

// load builds a registry from module arguments, or from the manifest when no
// modules are given. Keys preserve argument or manifest order.
func (a *app) load(ctx context.Context, modules []string) (*category.Registry, []string, error) {
	var specs []config.CategorySpec
	for _, module := range modules {
		specs = append(specs, config.CategorySpec{Module: module})
	}
	if len(specs) == 0 && a.manifest != nil {
		specs = a.manifest.Categories
	}
	if len(specs) == 0 {
		return nil, nil, fmt.Errorf("no modules given and no manifest categories")
	}

	registry := category.NewRegistry()
	keys := make([]string, 0, len(specs))
	for _, spec := range specs {
		c, err := a.open(ctx, spec.Module)
		if err == nil {
			err = registry.Register(spec.Key(), c)
			if err != nil {
				c.Close()
			}
		}
		if err != nil {
			if closeErr := registry.Close(); closeErr != nil {
				a.logger.Warn("Failed to close categories", zap.Error(closeErr))
			}
			return nil, nil, err
		}
		keys = append(keys, spec.Key())
	}

	a.logger.Info("Categories loaded", zap.Any("stats", registry.Stats()))
	return registry, keys, nil
}

func (a *app) print(w io.Writer, v interface{}, text func(io.Writer) error) error {
	if a.output == outputText {
		return text(w)
	}

	data, err := sonic.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
