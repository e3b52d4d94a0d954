package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/stretchr/testify/mock"
)

// MockRunner is a testify mock of the executor's command runner
type MockRunner struct {
	mock.Mock
}

// Run records the call
func (m *MockRunner) Run(ctx context.Context, name string, args ...string) error {
	ret := m.Called(ctx, name, args)
	return ret.Error(0)
}

// SimRunner performs the effect of the default transfer and prune
// commands in-process: rsync moves SOURCE into DEST/ and find removes
// empty directories under SOURCE. Everything else fails.
type SimRunner struct {
	mu       sync.Mutex
	Commands [][]string
}

// Run implements the executor's command runner
func (s *SimRunner) Run(ctx context.Context, name string, args ...string) error {
	s.mu.Lock()
	s.Commands = append(s.Commands, append([]string{name}, args...))
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	switch name {
	case "rsync":
		if len(args) < 2 {
			return fmt.Errorf("rsync: missing source or destination")
		}
		return moveTree(args[len(args)-2], args[len(args)-1])
	case "find":
		if len(args) < 1 {
			return fmt.Errorf("find: missing root")
		}
		return pruneEmptyDirs(args[0])
	}
	return fmt.Errorf("%s: command not simulated", name)
}

// moveTree moves every non-directory entry under src to dest/base(src),
// leaving the directory skeleton behind like rsync --remove-source-files.
func moveTree(src, dest string) error {
	target := filepath.Join(dest, filepath.Base(src))
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		out := filepath.Join(target, rel)
		if info.IsDir() {
			return os.MkdirAll(out, info.Mode().Perm())
		}
		return os.Rename(path, out)
	})
}

// pruneEmptyDirs removes empty directories under root, deepest first
func pruneEmptyDirs(root string) error {
	var dirs []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return err
	}
	sort.Slice(dirs, func(i, j int) bool { return len(dirs[i]) > len(dirs[j]) })
	for _, d := range dirs {
		entries, err := os.ReadDir(d)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			if err := os.Remove(d); err != nil {
				return err
			}
		}
	}
	return nil
}
