// Package version reports the version of the friendsandfoes module compiled into the running binary.
package version

import "runtime/debug"

// ModulePath is the path of the friendsandfoes module.
const ModulePath = "github.com/bedrock-gophers/friendsandfoes"

// Mod returns the version of the friendsandfoes module, or an empty string if the binary carries no build
// information or was not built with the module.
func Mod() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	return fromBuildInfo(info)
}

func fromBuildInfo(info *debug.BuildInfo) string {
	if info.Main.Path == ModulePath {
		return info.Main.Version
	}
	for _, dep := range info.Deps {
		if dep.Path != ModulePath {
			continue
		}
		if dep.Replace != nil && dep.Replace.Version != "" {
			return dep.Replace.Version
		}
		return dep.Version
	}
	return ""
}
