package interpreter

import (
	"io"
	"time"

	"go.uber.org/zap"
)

// Config defines interpreter configuration
type Config struct {
	SearchPath      []string      // Initial sys.path entries
	CallTimeout     time.Duration // Per-call limit, zero means unbounded
	DedupSearchPath bool          // Skip prepending directories already on sys.path
	EnableConsole   bool          // Expose console.log/info/warn/error
}

// DefaultConfig returns the configuration used by Default.
func DefaultConfig() Config {
	return Config{
		SearchPath:      []string{},
		CallTimeout:     0,
		DedupSearchPath: false,
		EnableConsole:   true,
	}
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithLogger sets the logger that receives console output and load events.
func WithLogger(logger *zap.Logger) Option {
	return func(in *Interpreter) {
		if logger != nil {
			in.logger = logger
		}
	}
}

// WithDiagnostics sets the writer that script exceptions are printed to.
func WithDiagnostics(w io.Writer) Option {
	return func(in *Interpreter) {
		if w != nil {
			in.diagnostics = w
		}
	}
}
