// Package category defines launcher categories: named, ordered groups of
// launchable entries.
//
// A Category can be backed by native Go code (see Static) or by a script
// module (see package category/script). Each provider reports failures with
// its own concrete error type; callers that need to tell failure kinds apart
// inspect the returned error with errors.As.
//
// Components:
//   - Category: the three-operation provider contract
//   - Static: fixed, in-memory provider
//   - Registry: thread-safe catalog of categories by identifier
//
// Example Usage:
//
//	registry := category.NewRegistry()
//	registry.Register("example", category.NewStatic("Example", "An Entry"))
//	c, _ := registry.Get("example")
//	entries, err := c.Entries(ctx)
package category
