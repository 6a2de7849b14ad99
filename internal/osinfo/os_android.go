//go:build android

package osinfo

import "os"

const buildPropPath = "/system/build.prop"

func family() string { return "Android" }

func version() string {
	if data, err := os.ReadFile(buildPropPath); err == nil {
		if v := ParseBuildProp(string(data), "ro.build.version.release"); v != "" {
			return v
		}
	}
	return kernelRelease()
}
