package cli

import (
	_ "embed"
	"strings"
)

var (
	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)

// Command descriptions
const (
	MsgRootShort = "Inject script and style tags for globbed files into HTML"
	MsgRootLong  = `include-source replaces include markers in HTML documents with one
<script> or <link> tag per file matched by the marker's glob or listed in its
manifest:

  <!-- include:js(scripts/**/*.js) -->
  <!-- include:css(list:styles.txt) -->
  <!-- !include:js(scripts/legacy.js) -->

Each file is emitted at most once per run, and excluded paths never are.`

	MsgInjectShort   = "Transform HTML files and write the results"
	MsgInjectLong    = "Expand every marker in the files matched by the given globs and write them to the output directory, or back over the inputs with --in-place."
	MsgInjectExample = `  include-source inject 'src/**/*.html'
  include-source inject index.html --script-ext min.js --out-dir build
  include-source inject 'pages/*.html' --region --watch`

	MsgGenConfigShort   = "Print a configuration file"
	MsgGenConfigLong    = "Print the effective configuration in TOML or YAML, or the commented defaults with --commented. With --write the result is saved as .include-source.<format> in the working directory."
	MsgGenConfigExample = `  include-source genconfig
  include-source genconfig --format yaml -w
  include-source genconfig --commented > ~/.config/include-source/config.toml`

	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man page"
)

// Flag descriptions
const (
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagNoColor     = "Disable colored output"
	MsgFlagConfig      = "Project config file (default .include-source.toml|.yaml|.yml)"
	MsgFlagCwd         = "Directory globs are evaluated against (default: each file's directory)"
	MsgFlagScriptExt   = "Replacement extension for js includes, e.g. min.js"
	MsgFlagStyleExt    = "Replacement extension for css includes, e.g. min.css"
	MsgFlagRegion      = "Only substitute between the statements region tags"
	MsgFlagLineEndings = "Line splitting for exclude markers: crlf or any"
	MsgFlagOutDir      = "Output directory"
	MsgFlagInPlace     = "Overwrite the input files"
	MsgFlagWatch       = "Re-run whenever inputs or included files change"
	MsgFlagJSON        = "Print the run report as JSON lines"
	MsgFlagFormat      = "Output format: toml or yaml"
	MsgFlagCommented   = "Print the embedded defaults with every value commented out"
	MsgFlagWrite       = "Write to .include-source.<format> instead of stdout"
)

// Status messages
const (
	MsgWatching        = "Watching %d director(ies), press Ctrl+C to stop"
	MsgWatchStopped    = "Stopped watching"
	MsgConfigWritten   = "Wrote %s"
	MsgVersionFormat   = "include-source version %s\n  commit: %s\n  built:  %s\n"
	MsgErrBatchFailed  = "%d file(s) failed"
	MsgErrWatchInPlace = "--watch cannot be combined with in-place output"
	MsgErrNoCommand    = "no command specified"
)
