//go:build linux

package xattr_test

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/magma1447/mergerfs-tools/pkg/xattr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// writableFile returns a file that accepts user xattrs, or skips the test
func writableFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "control")
	require.NoError(t, os.WriteFile(path, nil, 0644))
	if err := unix.Setxattr(path, "user.probe", []byte("x"), 0); err != nil {
		if stderrors.Is(err, unix.ENOTSUP) || stderrors.Is(err, unix.EPERM) {
			t.Skip("temp filesystem does not support user xattrs")
		}
		require.NoError(t, err)
	}
	return path
}

func TestSystemGet_Absent(t *testing.T) {
	path := writableFile(t)

	value, ok, err := xattr.NewSystem().Get(path, "user.mergerfs.version")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, value)
}

func TestSystemGet_Small(t *testing.T) {
	path := writableFile(t)
	require.NoError(t, unix.Setxattr(path, "user.mergerfs.version", []byte("2.40.2"), 0))

	value, ok, err := xattr.NewSystem().Get(path, "user.mergerfs.version")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2.40.2", string(value))
}

func TestSystemGet_GrowsBuffer(t *testing.T) {
	path := writableFile(t)
	long := bytes.Repeat([]byte("/mnt/disk1/movies\x00"), 100)
	if err := unix.Setxattr(path, "user.mergerfs.allpaths", long, 0); err != nil {
		t.Skipf("cannot store a large xattr here: %v", err)
	}

	value, ok, err := xattr.NewSystem().Get(path, "user.mergerfs.allpaths")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, long, value)
	assert.Len(t, xattr.SplitList(value, 0), 100)
}
