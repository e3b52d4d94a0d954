package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
)

// FakeMergerfs models a mergerfs pool on a real temp dir. Branches are
// plain directories; the pool directory mirrors their directory structure
// so paths under it can be canonicalised and stat'ed. The allpaths
// attribute is computed from what exists in the branches at query time.
type FakeMergerfs struct {
	Root     string
	Pool     string
	Branches []string
	Version  string

	// Hidden paths report allpaths as absent
	Hidden map[string]bool
}

// NewFakeMergerfs creates root/pool with a control file and one
// directory per branch name.
func NewFakeMergerfs(t *testing.T, branchNames ...string) *FakeMergerfs {
	t.Helper()

	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to resolve temp dir: %v", err)
	}
	m := &FakeMergerfs{
		Root:    root,
		Pool:    CreateDir(t, root, "pool"),
		Version: "2.40.2",
		Hidden:  make(map[string]bool),
	}
	CreateFile(t, m.Pool, ".mergerfs", "")
	for _, name := range branchNames {
		m.Branches = append(m.Branches, CreateDir(t, root, name))
	}
	return m
}

// ControlFile returns the pool's control file path
func (m *FakeMergerfs) ControlFile() string {
	return filepath.Join(m.Pool, ".mergerfs")
}

// Branch returns rel inside branch i
func (m *FakeMergerfs) Branch(i int, rel string) string {
	return filepath.Join(m.Branches[i], rel)
}

// Path returns rel inside the pool
func (m *FakeMergerfs) Path(rel string) string {
	return filepath.Join(m.Pool, rel)
}

// AddFile creates a file of size bytes at rel in branch i and mirrors its
// directory into the pool.
func (m *FakeMergerfs) AddFile(t *testing.T, i int, rel string, size int64) string {
	t.Helper()

	CreateDir(t, m.Pool, filepath.Dir(rel))
	return CreateSizedFile(t, m.Branches[i], rel, size)
}

// AddDir creates directory rel in branch i and in the pool
func (m *FakeMergerfs) AddDir(t *testing.T, i int, rel string) string {
	t.Helper()

	CreateDir(t, m.Pool, rel)
	return CreateDir(t, m.Branches[i], rel)
}

// Get implements xattr.Getter
func (m *FakeMergerfs) Get(path, name string) ([]byte, bool, error) {
	if path == m.ControlFile() {
		switch name {
		case "user.mergerfs.version":
			return []byte(m.Version), m.Version != "", nil
		case "user.mergerfs.srcmounts":
			return []byte(strings.Join(m.Branches, ":")), true, nil
		}
		return nil, false, nil
	}

	rel, err := filepath.Rel(m.Pool, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, false, &os.PathError{Op: "getxattr", Path: path, Err: syscall.ENOTSUP}
	}
	if name != "user.mergerfs.allpaths" || m.Hidden[path] {
		return nil, false, nil
	}

	var found []string
	for _, b := range m.Branches {
		candidate := filepath.Join(b, rel)
		if _, err := os.Lstat(candidate); err == nil {
			found = append(found, candidate)
		}
	}
	if len(found) == 0 {
		return nil, false, &os.PathError{Op: "getxattr", Path: path, Err: syscall.ENOENT}
	}
	return []byte(strings.Join(found, "\x00")), true, nil
}
