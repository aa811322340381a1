// Package assets holds the asset type table (type tag to include-statement
// template) and the extension rewriting applied to resolved paths before they
// are rendered.
//
// Two types are built in:
//
//	js  -> <script src="%"></script>
//	css -> <link rel="stylesheet" href="%">
//
// `js` belongs to the script family and `css` to the style family; only those
// two families take part in extension rewriting. Further types may be added
// before the table is sealed but the built-in ones cannot be replaced.
package assets
