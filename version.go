package solliq

import _ "embed"

// Version is the release of the library and its command-line tool.
//
//go:embed VERSION
var Version string
