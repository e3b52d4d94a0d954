package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"syscall"

	"github.com/magma1447/mergerfs-tools/pkg/ui"
	"github.com/magma1447/mergerfs-tools/pkg/ui/output/styles"
)

// ExitCode reports err on w and returns the process exit status.
// Interrupts and a closed output pipe end the run quietly with status 0.
func ExitCode(ctx context.Context, err error, w io.Writer) int {
	if err == nil {
		return 0
	}
	if Interrupted(ctx, err) {
		return 0
	}
	fmt.Fprintln(w, styles.GetStyle("Error").Render(MsgErrPrefix+ui.DisplayText(err.Error())))
	return 1
}

// Interrupted reports whether err comes from a signal or a broken pipe
func Interrupted(ctx context.Context, err error) bool {
	if stderrors.Is(err, syscall.EPIPE) {
		return true
	}
	if stderrors.Is(err, context.Canceled) && ctx.Err() != nil {
		return true
	}
	return false
}
