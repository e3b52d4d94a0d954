package testutil

import (
	"os"
	"strings"
	"sync"
	"syscall"
)

// FakeAttrs is an in-memory extended attribute table
type FakeAttrs struct {
	mu     sync.Mutex
	values map[string]map[string][]byte
	errors map[string]error
	calls  []string
}

// NewFakeAttrs creates an empty attribute table
func NewFakeAttrs() *FakeAttrs {
	return &FakeAttrs{
		values: make(map[string]map[string][]byte),
		errors: make(map[string]error),
	}
}

// Set stores value for name on path
func (f *FakeAttrs) Set(path, name, value string) *FakeAttrs {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.values[path] == nil {
		f.values[path] = make(map[string][]byte)
	}
	f.values[path][name] = []byte(value)
	return f
}

// SetList stores entries joined by sep
func (f *FakeAttrs) SetList(path, name string, sep byte, entries ...string) *FakeAttrs {
	return f.Set(path, name, strings.Join(entries, string(sep)))
}

// Fail makes every query on path return err
func (f *FakeAttrs) Fail(path string, err error) *FakeAttrs {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.errors[path] = err
	return f
}

// Calls returns the queried "path name" pairs in order
func (f *FakeAttrs) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.calls...)
}

// Get implements xattr.Getter
func (f *FakeAttrs) Get(path, name string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, path+" "+name)
	if err, ok := f.errors[path]; ok {
		return nil, false, &os.PathError{Op: "getxattr", Path: path, Err: err}
	}
	value, ok := f.values[path][name]
	if !ok {
		return nil, false, nil
	}
	return value, true, nil
}

// EIO is a convenient hard failure for Fail
var EIO error = syscall.EIO
