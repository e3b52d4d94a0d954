// Package paths provides the on-disk locations used by mergerfs-consolidate.
//
// The tool keeps no state between runs. The only files it touches outside
// the directories being consolidated are an optional user configuration
// file and an append-only log file, both placed according to the XDG Base
// Directory specification.
//
// # Environment Variables
//
//   - MERGERFS_CONSOLIDATE_CONFIG: explicit configuration file
//   - MERGERFS_TOOLS_CONFIG_DIR: override $XDG_CONFIG_HOME/mergerfs-tools
//   - MERGERFS_TOOLS_STATE_DIR: override $XDG_STATE_HOME/mergerfs-tools
package paths
