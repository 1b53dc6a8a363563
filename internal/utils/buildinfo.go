package utils

import (
	"runtime/debug"
)

const developmentVersion = "dev"

// Version is injected at build time with -ldflags "-X .../internal/utils.Version=v1.2.3".
var Version = EmptyString

// GetApplicationVersion returns the linker-provided version, then the module version
// recorded in the build info, and finally "dev".
func GetApplicationVersion() string {
	if Version != EmptyString {
		return Version
	}
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if buildInfoAvailable && buildInfo.Main.Version != "" && buildInfo.Main.Version != "(devel)" {
		return buildInfo.Main.Version
	}
	return developmentVersion
}
