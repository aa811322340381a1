// Package testutil provides utilities for testing include-source components.
//
// Key components:
//   - TestEnvironment: project root on an afero filesystem
//   - FileTree: declarative file setup relative to the project root
//
// Usage guidelines:
//   - Most tests should use EnvMemoryOnly for speed and isolation
//   - Only file locking and watching tests need EnvIsolated
//   - All test data should be defined inline, not in external files
package testutil
