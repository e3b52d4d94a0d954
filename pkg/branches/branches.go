// Package branches finds the branch paths that back a path on a mergerfs
// mount.
package branches

import (
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/magma1447/mergerfs-tools/pkg/errors"
	"github.com/magma1447/mergerfs-tools/pkg/filesystem"
	"github.com/magma1447/mergerfs-tools/pkg/logging"
	"github.com/magma1447/mergerfs-tools/pkg/xattr"
)

// Resolver reads the allpaths attribute of mergerfs paths
type Resolver struct {
	fs     afero.Fs
	attrs  xattr.Getter
	key    string
	logger zerolog.Logger
}

// NewResolver creates a resolver querying the attribute named key. fs is
// the filesystem holding the branches.
func NewResolver(fs afero.Fs, attrs xattr.Getter, key string) *Resolver {
	return &Resolver{
		fs:     fs,
		attrs:  attrs,
		key:    key,
		logger: logging.GetLogger("branches"),
	}
}

// Resolve returns the branch paths backing path, without trailing
// separators.
//
// When path itself carries no allpaths value, the parent's branches are
// used instead: each parent branch is joined with path's base name and
// kept only if that entry exists on the branch (a dangling symlink
// counts).
func (r *Resolver) Resolve(path string) ([]string, error) {
	list, ok, err := r.query(path)
	if err != nil {
		return nil, err
	}

	if !ok {
		parent := filepath.Dir(path)
		name := filepath.Base(path)
		r.logger.Debug().
			Str("path", path).
			Str("parent", parent).
			Msg("No allpaths on path, falling back to parent")

		parents, _, err := r.query(parent)
		if err != nil {
			return nil, err
		}
		list = nil
		for _, root := range parents {
			candidate := filepath.Join(root, name)
			exists, err := filesystem.Lexists(r.fs, candidate)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrXattrQuery, "cannot check %s", candidate).
					WithDetail("path", path)
			}
			if exists {
				list = append(list, candidate)
			}
		}
	}

	out := make([]string, 0, len(list))
	for _, p := range list {
		out = append(out, trimSeparators(p))
	}

	r.logger.Debug().Str("path", path).Strs("branches", out).Msg("Resolved branches")
	return out, nil
}

func (r *Resolver) query(path string) ([]string, bool, error) {
	value, ok, err := r.attrs.Get(path, r.key)
	if err != nil {
		return nil, false, errors.Wrapf(err, errors.ErrXattrQuery, "cannot read %s", r.key).
			WithDetail("path", path)
	}
	if !ok {
		return nil, false, nil
	}
	return xattr.SplitList(value, 0), true, nil
}

// trimSeparators strips trailing separators, keeping a bare root intact
func trimSeparators(p string) string {
	sep := string(filepath.Separator)
	trimmed := strings.TrimRight(p, sep)
	if trimmed == "" && strings.HasPrefix(p, sep) {
		return sep
	}
	return trimmed
}
