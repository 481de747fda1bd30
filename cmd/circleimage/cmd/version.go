package cmd

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

func init() {
	RegisterCommand(&Command{
		Name:  "version",
		Short: "Show version information",
		Long:  `Show the CLI version, build time and whether this is a release build.`,
		Usage: "circleimage version",
		Run: func(args []string) error {
			printVersion()
			return nil
		},
	})
}

func printVersion() {
	fmt.Fprintf(stdout, "circleimage version %s (built %s)\n", Version, BuildTime)
	if release := NormalizeVersion(Version); release != "" {
		fmt.Fprintf(stdout, "release: %s\n", release)
	} else {
		fmt.Fprintln(stdout, "release: development build")
	}
}

// NormalizeVersion returns a clean release version, or empty if the version
// is not a valid release (e.g., dev builds, pseudo-versions from go install).
// Explicit prerelease tags (v0.2.0-rc1) are allowed.
//
// Examples:
//
//	"v0.1.0"                          -> "v0.1.0"
//	"0.1.0"                           -> "v0.1.0"
//	"circleimage-v0.1.0"              -> "v0.1.0"
//	"v0.2.0-rc1"                      -> "v0.2.0-rc1" (prerelease allowed)
//	"0.1.0-dev"                       -> "" (dev build)
//	"v0.2.1-0.20260122153045-abc123"  -> "" (pseudo-version)
func NormalizeVersion(version string) string {
	version = strings.TrimSpace(strings.TrimPrefix(version, "circleimage-"))
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	if !semver.IsValid(version) || semver.Canonical(version) != version {
		return ""
	}
	pre := semver.Prerelease(version)
	if pre == "-dev" || strings.HasPrefix(pre, "-0.") {
		return ""
	}
	return version
}
