// Package logging builds the launcher's uber/zap logger.
//
// Two modes are available:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Both write to stderr unless Config.Output names another writer, leaving
// stdout to command output.
//
// Example Usage:
//
//	logger, err := logging.New(logging.Config{Level: "debug"})
//	logger.Info("Category loaded", zap.String("module", "games"))
package logging
