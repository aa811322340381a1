// Package output writes transformed files and reports on a run.
//
// Writer places each file either back over its input or under an output
// directory, preserving the file's path relative to the root it was matched
// under. Every write goes to a temporary sibling first and is renamed into
// place. When locking is enabled, a batch holds an exclusive lock file in the
// output root so two concurrent runs cannot interleave their writes.
//
// Renderer prints the end-of-run summary with the styles from pkg/output/styles.
package output
