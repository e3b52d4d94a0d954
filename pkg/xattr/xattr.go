// Package xattr reads extended attributes from the host filesystem.
//
// mergerfs publishes its metadata through extended attributes. The only
// capability needed here is a single read that tells "attribute absent"
// apart from every other failure.
package xattr

import (
	stderrors "errors"
	"strings"
)

// ErrUnsupported is returned on platforms without extended attribute support
var ErrUnsupported = stderrors.New("extended attributes are not supported on this platform")

// Getter reads one extended attribute.
//
// ok is false with a nil error when the attribute does not exist on path.
// Any other failure is returned as an error.
type Getter interface {
	Get(path, name string) (value []byte, ok bool, err error)
}

// System reads attributes with the getxattr syscall. Symlinks are followed.
type System struct{}

// NewSystem returns the host attribute reader
func NewSystem() System {
	return System{}
}

// Get implements Getter
func (System) Get(path, name string) ([]byte, bool, error) {
	return get(path, name)
}

// SplitList splits a delimited attribute value, dropping empty entries.
// mergerfs uses NUL for allpaths and ':' for srcmounts.
func SplitList(value []byte, sep byte) []string {
	parts := strings.Split(string(value), string(sep))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
