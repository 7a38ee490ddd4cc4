package producerpal

import _ "embed"

// Version is the release version, embedded from the VERSION file at the
// repository root so the CLI and adapters report the same number.
//
//go:embed VERSION
var Version string
