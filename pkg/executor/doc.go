// Package executor turns consolidation plans into external commands.
//
// Every operation maps to one process: transfers run the configured sync
// tool (rsync by default) and prunes run the configured empty-directory
// cleaner (find by default). Plans can be rendered as shell-quoted lines
// for a dry run, or run in order through a Runner.
//
// Execution is best-effort. A failing operation is logged and recorded in
// its Result and the next operation still runs. Nothing is retried.
package executor
