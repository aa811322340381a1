// Package marker finds include/exclude markers in a document and replaces
// them with rendered include statements.
//
// Marker grammar (keywords are case-sensitive):
//
//	<!-- include:TYPE(SPEC) -->    replaced by one statement per new path
//	<!-- !include:TYPE(SPEC) -->   records SPEC as already included, emits nothing
//
// TYPE is `[a-z]+` and SPEC is any run of characters other than `)`. At least
// one whitespace character must follow `<!--` and precede `-->`.
//
// A transform runs in two passes over the working text. The exclude pass
// looks for at most one exclude marker per line, records its specifier and
// deletes it. Lines are split on "\r\n" only, unless LineEndingsAny is
// selected; a document using bare "\n" endings is therefore seen as a single
// line and only its first exclude marker is honoured in the default mode.
// The include pass parses every include marker from a snapshot of the text and
// renders them in document order, so each marker observes the paths recorded
// by the markers before it.
//
// When Options.Region is set, markers are read from the instructions region
// only and the result replaces the content of the statements region; all
// other text is left as it was, apart from exclude markers removed from the
// instructions region.
package marker
