// Package dirsize measures how many bytes a branch copy holds.
package dirsize

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/magma1447/mergerfs-tools/pkg/errors"
	"github.com/magma1447/mergerfs-tools/pkg/planner"
)

// Of returns the apparent size of every regular file under root.
// Symlinks are neither followed nor counted, directories count zero, and
// the first entry that cannot be read fails the whole measurement.
func Of(fs afero.Fs, root string) (uint64, error) {
	var total uint64
	var files int

	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.Mode().IsRegular() {
			total += uint64(info.Size())
			files++
		}
		return nil
	})
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrSizeWalk, "cannot measure %s", root).
			WithDetail("path", root)
	}

	log.Trace().
		Str("path", root).
		Uint64("bytes", total).
		Int("files", files).
		Msg("Measured branch")

	return total, nil
}

// Measure sizes each path, keeping input order
func Measure(fs afero.Fs, paths []string) ([]planner.SizedBranch, error) {
	out := make([]planner.SizedBranch, 0, len(paths))
	for _, p := range paths {
		size, err := Of(fs, p)
		if err != nil {
			return nil, err
		}
		out = append(out, planner.SizedBranch{Path: p, Size: size})
	}
	return out, nil
}
