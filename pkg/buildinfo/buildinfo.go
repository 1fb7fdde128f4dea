// Package buildinfo contains build information.
//
// Build information should be set during compilation by passing
// -ldflags "-X src.kaj.sh/pkg/buildinfo.Var=value" to "go build".
package buildinfo

import (
	"fmt"
	"runtime"
)

// Version identifies the version of kaj. On development commits, it
// identifies the next release.
const Version = "v0.1.0"

// VersionSuffix is appended to Version to build the full version string. It
// can be overridden when building kaj.
var VersionSuffix = "-dev.unknown"

// Reproducible identifies whether the build is reproducible. It can be
// overridden when building kaj.
var Reproducible = "false"

// FullVersion returns Version followed by VersionSuffix.
func FullVersion() string { return Version + VersionSuffix }

// Summary describes the build on one line.
func Summary() string {
	return fmt.Sprintf("kaj %s (%s, reproducible: %s)", FullVersion(), runtime.Version(), Reproducible)
}
