package interpreter

import (
	"errors"
	"fmt"
)

var (
	ErrModuleNotFound    = errors.New("module not found")
	ErrInvalidModuleID   = errors.New("invalid module identifier")
	ErrSearchPathNotList = errors.New("sys.path must be a list")
	ErrInvalidModule     = errors.New("module handle is not usable")
	ErrNotText           = errors.New("module source is not text")
	ErrCallTimeout       = errors.New("script call timed out")
)

// ImportError reports a module that could not be resolved, read, compiled or
// evaluated.
type ImportError struct {
	Module string
	Path   string // Resolved file, empty if resolution failed
	Err    error
}

func (e *ImportError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("import %q (%s): %v", e.Module, e.Path, e.Err)
	}
	return fmt.Sprintf("import %q: %v", e.Module, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// AttributeError reports a module member that is missing or not callable.
type AttributeError struct {
	Module string
	Name   string
	Reason string
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf("module %q: %s %s", e.Module, e.Name, e.Reason)
}

// PanicError carries a Go panic recovered while the runtime was executing.
type PanicError struct {
	Value interface{}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic during script execution: %v", e.Value)
}
