package mount_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magma1447/mergerfs-tools/pkg/config"
	"github.com/magma1447/mergerfs-tools/pkg/errors"
	"github.com/magma1447/mergerfs-tools/pkg/mount"
	"github.com/magma1447/mergerfs-tools/pkg/testutil"
)

func memPool(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	testutil.MemFile(t, fs, "/srv/pool/.mergerfs", 0)
	require.NoError(t, fs.MkdirAll("/srv/pool/movies/Foo", 0755))
	require.NoError(t, fs.MkdirAll("/srv/other", 0755))
	return fs
}

func TestFindControlFile(t *testing.T) {
	fs := memPool(t)

	tests := []struct {
		name  string
		start string
		want  string
	}{
		{"from the root itself", "/srv/pool", "/srv/pool/.mergerfs"},
		{"from a nested directory", "/srv/pool/movies/Foo", "/srv/pool/.mergerfs"},
		{"from an unclean path", "/srv/pool/movies/../movies/Foo/", "/srv/pool/.mergerfs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := mount.FindControlFile(fs, tt.start, ".mergerfs")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindControlFile_NotFound(t *testing.T) {
	_, err := mount.FindControlFile(memPool(t), "/srv/other", ".mergerfs")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotMount))
	assert.Equal(t, "/srv/other", errors.GetErrorDetails(err)["path"])
}

func TestFindControlFile_DeepPath(t *testing.T) {
	fs := afero.NewMemMapFs()
	deep := "/"
	for i := 0; i < 500; i++ {
		deep += "d/"
	}
	require.NoError(t, fs.MkdirAll(deep, 0755))

	_, err := mount.FindControlFile(fs, deep, ".mergerfs")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotMount))
}

func TestOpen(t *testing.T) {
	cfg := config.Default()
	attrs := testutil.NewFakeAttrs().
		Set("/srv/pool/.mergerfs", "user.mergerfs.version", "2.40.2").
		SetList("/srv/pool/.mergerfs", "user.mergerfs.srcmounts", ':', "/mnt/disk1", "/mnt/disk2")

	m, err := mount.Open(memPool(t), attrs, "/srv/pool/movies/Foo", cfg)
	require.NoError(t, err)
	assert.Equal(t, &mount.Mount{
		Root:        "/srv/pool",
		ControlFile: "/srv/pool/.mergerfs",
		Version:     "2.40.2",
		SrcMounts:   []string{"/mnt/disk1", "/mnt/disk2"},
	}, m)
}

func TestOpen_WithoutSrcMounts(t *testing.T) {
	attrs := testutil.NewFakeAttrs().Set("/srv/pool/.mergerfs", "user.mergerfs.version", "2.28.1")

	m, err := mount.Open(memPool(t), attrs, "/srv/pool", config.Default())
	require.NoError(t, err)
	assert.Equal(t, "2.28.1", m.Version)
	assert.Empty(t, m.SrcMounts)
}

func TestOpen_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		attrs *testutil.FakeAttrs
		start string
	}{
		{"no control file", testutil.NewFakeAttrs(), "/srv/other"},
		{"control file without version", testutil.NewFakeAttrs(), "/srv/pool/movies"},
		{"version query fails", testutil.NewFakeAttrs().Fail("/srv/pool/.mergerfs", testutil.EIO), "/srv/pool/movies"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := mount.Open(memPool(t), tt.attrs, tt.start, config.Default())
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrNotMount))
		})
	}
}

func TestOpen_CustomControlFile(t *testing.T) {
	cfg := config.Default()
	cfg.Mount.ControlFile = ".pool-ctl"
	fs := afero.NewMemMapFs()
	testutil.MemFile(t, fs, "/data/.pool-ctl", 0)
	attrs := testutil.NewFakeAttrs().Set("/data/.pool-ctl", "user.mergerfs.version", "2.40.2")

	m, err := mount.Open(fs, attrs, "/data", cfg)
	require.NoError(t, err)
	assert.Equal(t, "/data", m.Root)
}
