package category

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Static is a native Category with a fixed name and entry list. Launching an
// entry prints a line to its writer.
type Static struct {
	name    string
	entries []Entry
	out     io.Writer
}

// NewStatic creates a Static category that prints launches to stdout.
func NewStatic(name string, entries ...Entry) *Static {
	return &Static{
		name:    name,
		entries: append([]Entry(nil), entries...),
		out:     os.Stdout,
	}
}

// Example returns the built-in demonstration category.
func Example() *Static {
	return NewStatic("Example", "An Entry", "Another Entry", "A Third Entry")
}

// WithOutput sets where launch messages are written.
func (s *Static) WithOutput(w io.Writer) *Static {
	if w != nil {
		s.out = w
	}
	return s
}

func (s *Static) Name(ctx context.Context) (string, error) {
	return s.name, nil
}

// Entries returns a copy so callers cannot mutate the category.
func (s *Static) Entries(ctx context.Context) ([]Entry, error) {
	return append([]Entry(nil), s.entries...), nil
}

func (s *Static) Launch(ctx context.Context, entry Entry) error {
	_, err := fmt.Fprintf(s.out, "Launching %q\n", entry)
	return err
}
