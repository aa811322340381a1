package assets

import (
	"path"
	"strings"
)

// Family groups asset types that share an extension override.
type Family int

const (
	FamilyNone Family = iota
	FamilyScript
	FamilyStyle
)

// FamilyOf reports which extension family an asset type belongs to.
func FamilyOf(assetType string) Family {
	switch assetType {
	case TypeJS:
		return FamilyScript
	case TypeCSS:
		return FamilyStyle
	default:
		return FamilyNone
	}
}

// Extensions carries the configured replacement extensions, without or with a
// leading dot ("min.js" and ".min.js" are equivalent).
type Extensions struct {
	Script string
	Style  string
}

// RewriteExtension replaces the final extension of p with the one configured
// for the asset type's family. Unconfigured families, other asset types and
// empty paths are returned unchanged.
func RewriteExtension(p, assetType string, ext Extensions) string {
	if p == "" {
		return p
	}

	var replacement string
	switch FamilyOf(assetType) {
	case FamilyScript:
		replacement = ext.Script
	case FamilyStyle:
		replacement = ext.Style
	}
	if replacement == "" {
		return p
	}

	return strings.TrimSuffix(p, path.Ext(p)) + "." + strings.TrimPrefix(replacement, ".")
}
