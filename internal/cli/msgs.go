package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort = "Consolidate directories split across mergerfs branches"
	MsgRootUse   = "mergerfs-consolidate [flags] <dir>..."

	MsgRootExample = `  # Show what would be done
  mergerfs-consolidate /mnt/pool/movies/Foo

  # Consolidate every movie directory, with progress comments
  mergerfs-consolidate -v -e /mnt/pool/movies/*/`

	// Flag descriptions
	MsgFlagVerbose     = "Print diagnostics as # comments; repeat for more logging (-vv DEBUG, -vvv TRACE)"
	MsgFlagExecute     = "Run the transfers instead of printing them"
	MsgFlagConfig      = "Configuration file (default $XDG_CONFIG_HOME/mergerfs-tools/consolidate.toml)"
	MsgFlagPrintConfig = "Print the effective configuration as TOML and exit"
	MsgFlagColor       = "Color diagnostics: auto, always or never"

	// Status messages
	MsgRunSummary = "%d processed, %d skipped, %d already consolidated, %d consolidated, %d of %d operations failed"

	// Error messages
	MsgErrPrefix = "Error: "
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)
