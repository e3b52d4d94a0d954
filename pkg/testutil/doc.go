// Package testutil provides helpers for testing mergerfs-consolidate
// components.
//
// Key components:
//   - file helpers (CreateFile, CreateSizedFile, CreateSymlink) for real temp trees
//   - FakeAttrs: a static extended attribute table implementing xattr.Getter
//   - FakeMergerfs: a pool of real temp-dir branches whose allpaths
//     attribute is computed from what currently exists on disk
//   - SimRunner: a command runner that performs rsync/find moves in-process
//   - MockRunner: a testify mock of the command runner
package testutil
