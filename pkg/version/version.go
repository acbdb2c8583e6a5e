// Package version exposes build metadata injected with -ldflags.
package version

//nolint:gochecknoglobals // Set at link time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// GetVersion returns the semantic version of the build.
func GetVersion() string {
	return version
}

// GetCommit returns the git commit the binary was built from.
func GetCommit() string {
	return commit
}

// GetBuildDate returns the build timestamp.
func GetBuildDate() string {
	return date
}

// String renders version, commit and date for --version.
func String() string {
	return version + " (commit " + commit + ", built " + date + ")"
}
