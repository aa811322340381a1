// Package registry provides a generic, type-safe name registry that can be
// sealed once start-up wiring is done. The asset type table is built on it.
package registry
