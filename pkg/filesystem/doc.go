// Package filesystem provides the filesystem seam used by include-source.
//
// Everything that touches disk goes through an afero.Fs: the OS filesystem in
// the CLI and an in-memory filesystem in tests. Glob expansion is layered on
// top with doublestar so `**` patterns work on either backend.
package filesystem
