package category

import "context"

// Entry identifies one launchable item within a category.
type Entry = string

// Category is implemented by every category provider.
//
// Entries may change between calls; implementations do not cache them and
// callers must not assume two calls agree. Launch only guarantees that the
// provider-defined action was dispatched, not that it succeeded.
type Category interface {
	// Name returns the display name of the category.
	Name(ctx context.Context) (string, error)

	// Entries returns the entries currently available, in provider order.
	Entries(ctx context.Context) ([]Entry, error)

	// Launch dispatches the action for entry. Entries that were not returned
	// by Entries are passed through; the provider decides whether they are
	// valid.
	Launch(ctx context.Context, entry Entry) error
}
