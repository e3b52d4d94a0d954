package dirsize_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magma1447/mergerfs-tools/pkg/dirsize"
	"github.com/magma1447/mergerfs-tools/pkg/errors"
	"github.com/magma1447/mergerfs-tools/pkg/filesystem"
	"github.com/magma1447/mergerfs-tools/pkg/planner"
	"github.com/magma1447/mergerfs-tools/pkg/testutil"
)

func TestOf_MemFs(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.MemFile(t, fs, "/mnt/disk1/movies/Foo/a.mkv", 1000)
	testutil.MemFile(t, fs, "/mnt/disk1/movies/Foo/sub/b.nfo", 24)
	require.NoError(t, fs.MkdirAll("/mnt/disk1/movies/Foo/empty", 0755))
	testutil.MemFile(t, fs, "/mnt/disk1/movies/Bar/c.mkv", 5000)

	tests := []struct {
		path string
		want uint64
	}{
		{"/mnt/disk1/movies/Foo", 1024},
		{"/mnt/disk1/movies/Foo/empty", 0},
		{"/mnt/disk1/movies", 6024},
		{"/mnt/disk1/movies/Foo/a.mkv", 1000},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := dirsize.Of(fs, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOf_ExcludesSymlinks(t *testing.T) {
	root := t.TempDir()
	branch := testutil.CreateDir(t, root, "disk1/movies/Foo")
	testutil.CreateSizedFile(t, branch, "movie.mkv", 10<<20)
	other := testutil.CreateSizedFile(t, root, "elsewhere/other.mkv", 10<<20)
	testutil.CreateSymlink(t, other, filepath.Join(branch, "link.mkv"))
	testutil.CreateSymlink(t, filepath.Dir(other), filepath.Join(branch, "linkdir"))

	got, err := dirsize.Of(filesystem.NewOS(), branch)
	require.NoError(t, err)
	assert.Equal(t, uint64(10<<20), got)
}

func TestOf_MissingRoot(t *testing.T) {
	_, err := dirsize.Of(afero.NewMemMapFs(), "/mnt/disk9/none")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSizeWalk))
	assert.Equal(t, "/mnt/disk9/none", errors.GetErrorDetails(err)["path"])
}

func TestOf_UnreadableDirectory(t *testing.T) {
	testutil.RequireNonRoot(t)

	root := t.TempDir()
	testutil.CreateSizedFile(t, root, "ok/a.bin", 100)
	locked := testutil.CreateDir(t, root, "locked")
	testutil.CreateSizedFile(t, locked, "hidden.bin", 100)
	require.NoError(t, os.Chmod(locked, 0))
	t.Cleanup(func() { _ = os.Chmod(locked, 0755) })

	_, err := dirsize.Of(filesystem.NewOS(), root)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSizeWalk))
}

func TestMeasure(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.MemFile(t, fs, "/mnt/disk1/movies/Foo/a.mkv", 2048)
	testutil.MemFile(t, fs, "/mnt/disk2/movies/Foo/b.mkv", 5120)

	got, err := dirsize.Measure(fs, []string{"/mnt/disk2/movies/Foo", "/mnt/disk1/movies/Foo"})
	require.NoError(t, err)
	assert.Equal(t, []planner.SizedBranch{
		{Path: "/mnt/disk2/movies/Foo", Size: 5120},
		{Path: "/mnt/disk1/movies/Foo", Size: 2048},
	}, got)

	_, err = dirsize.Measure(fs, []string{"/mnt/disk1/movies/Foo", "/mnt/disk3/movies/Foo"})
	assert.Error(t, err)
}
