package build

import "fmt"

const (
	// ModeDev is the development release value
	ModeDev = "development"
	// ModeProd is the production release value
	ModeProd = "production"
)

var (
	// Version of the release (see scripts/build.sh script)
	Version string
	// BuildTime is ISO-8601 UTC string representation of the time of
	// the build
	BuildTime string
	// BuildMode is the build mode of the release. Should be either
	// production or development.
	BuildMode = ModeDev
)

// IsDevRelease returns whether or not the binary is a development
// release
func IsDevRelease() bool {
	return BuildMode == ModeDev
}

// Summary returns a one-line description of the binary, as printed by the
// version command.
func Summary() string {
	version := Version
	if version == "" {
		version = "dev"
	}
	if BuildTime == "" {
		return fmt.Sprintf("exavatar %s (%s)", version, BuildMode)
	}
	return fmt.Sprintf("exavatar %s (%s, built at %s)", version, BuildMode, BuildTime)
}
