// Package buildinfo exposes build metadata stamped in via -ldflags.
package buildinfo

var (
	// Version is the semantic version or git describe output.
	Version = "dev"
	// Commit is the short git commit hash.
	Commit = "unknown"
	// BuildDate is the UTC build timestamp.
	BuildDate = "unknown"
)

// String returns a single-line description of the build.
func String() string {
	return Version + " (" + Commit + ", " + BuildDate + ")"
}
