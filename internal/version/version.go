package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/magma1447/mergerfs-tools/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/magma1447/mergerfs-tools/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/magma1447/mergerfs-tools/internal/version.Date={{.Date}}
)

// String returns the version with its build details
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date)
}
