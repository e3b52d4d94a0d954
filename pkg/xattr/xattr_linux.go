//go:build linux

package xattr

import (
	stderrors "errors"
	"os"

	"golang.org/x/sys/unix"
)

const (
	initialBufferSize = 256
	maxReadAttempts   = 8
)

// get reads name into a growable buffer. ERANGE means the buffer was too
// small: the size is probed with an empty read and the read is retried,
// since the value can change between the two calls.
func get(path, name string) ([]byte, bool, error) {
	buf := make([]byte, initialBufferSize)
	for attempt := 0; attempt < maxReadAttempts; attempt++ {
		n, err := unix.Getxattr(path, name, buf)
		switch {
		case err == nil:
			return buf[:n], true, nil
		case stderrors.Is(err, unix.ENODATA):
			return nil, false, nil
		case stderrors.Is(err, unix.ERANGE):
			size, serr := unix.Getxattr(path, name, nil)
			if stderrors.Is(serr, unix.ENODATA) {
				return nil, false, nil
			}
			if serr != nil {
				return nil, false, &os.PathError{Op: "getxattr", Path: path, Err: serr}
			}
			if size <= len(buf) {
				size = len(buf) * 2
			}
			buf = make([]byte, size)
		default:
			return nil, false, &os.PathError{Op: "getxattr", Path: path, Err: err}
		}
	}
	return nil, false, &os.PathError{Op: "getxattr", Path: path, Err: unix.ERANGE}
}
