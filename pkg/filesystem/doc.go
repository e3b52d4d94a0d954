// Package filesystem provides the filesystem access used by
// mergerfs-consolidate.
//
// Components take an afero.Fs so tests can run against an in-memory tree
// or a real temp directory. The helpers here add the lstat-based checks
// the consolidation logic relies on: symbolic links are never followed
// when testing for existence.
package filesystem
