// Package mount locates and validates mergerfs mounts.
//
// Every mergerfs mount exposes a control file at its root. A path is on a
// supported mount when some ancestor holds that file and the file carries
// the mergerfs version attribute.
package mount

import (
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/magma1447/mergerfs-tools/pkg/config"
	"github.com/magma1447/mergerfs-tools/pkg/errors"
	"github.com/magma1447/mergerfs-tools/pkg/filesystem"
	"github.com/magma1447/mergerfs-tools/pkg/xattr"
)

// Mount describes a validated mergerfs mount
type Mount struct {
	Root        string
	ControlFile string
	Version     string
	// SrcMounts lists the configured branch roots. It may be empty on
	// versions that do not publish it.
	SrcMounts []string
}

// FindControlFile walks up from start until a directory containing name
// is found. start should be absolute.
func FindControlFile(fs afero.Fs, start, name string) (string, error) {
	dir := filepath.Clean(start)
	for {
		candidate := filepath.Join(dir, name)
		ok, err := filesystem.Lexists(fs, candidate)
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrNotMount, "cannot check %s", candidate).
				WithDetail("path", start)
		}
		if ok {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.Newf(errors.ErrNotMount, "no %s found above %s", name, start).
				WithDetail("path", start)
		}
		dir = parent
	}
}

// Open finds the mount containing start and checks it is mergerfs
func Open(fs afero.Fs, attrs xattr.Getter, start string, cfg *config.Config) (*Mount, error) {
	ctrl, err := FindControlFile(fs, start, cfg.Mount.ControlFile)
	if err != nil {
		return nil, err
	}

	version, ok, err := attrs.Get(ctrl, cfg.Xattr.Version)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrNotMount, "cannot read %s from %s", cfg.Xattr.Version, ctrl).
			WithDetail("path", start)
	}
	if !ok {
		return nil, errors.Newf(errors.ErrNotMount, "%s has no %s attribute", ctrl, cfg.Xattr.Version).
			WithDetail("path", start)
	}

	m := &Mount{
		Root:        filepath.Dir(ctrl),
		ControlFile: ctrl,
		Version:     string(version),
	}

	if cfg.Xattr.SrcMounts != "" {
		value, ok, err := attrs.Get(ctrl, cfg.Xattr.SrcMounts)
		switch {
		case err != nil:
			log.Debug().Err(err).Str("control_file", ctrl).Msg("Source mounts unavailable")
		case ok:
			m.SrcMounts = xattr.SplitList(value, ':')
		}
	}

	log.Debug().
		Str("root", m.Root).
		Str("version", m.Version).
		Strs("srcmounts", m.SrcMounts).
		Msg("Found mergerfs mount")

	return m, nil
}
