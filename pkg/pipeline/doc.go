// Package pipeline adapts the marker engine to a stream of files.
//
// A Stage receives files one at a time, classifies their content and either
// forwards them untouched, rejects them (streamed content) or transforms their
// buffered text. Failures are reported to the Emitter as *errors.PluginError
// and never stop the run; the unmodified file is still forwarded.
//
// All files of one Stage share a single deduplication registry, so a path
// emitted for one file is not emitted again for a later one.
package pipeline
