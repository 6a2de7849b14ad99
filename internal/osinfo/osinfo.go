// Package osinfo reports the platform family and version of the running OS.
package osinfo

import (
	"runtime"
	"strings"
)

// Unknown is reported when the OS does not give up a version string.
const Unknown = "unknown"

// Provider supplies the two halves of a platform version string.
type Provider interface {
	// Family returns the platform family name (e.g., "iOS").
	Family() string

	// Version returns the OS version (e.g., "17.0"). Never empty.
	Version() string
}

// Static is a Provider with fixed values.
type Static struct {
	FamilyName    string
	VersionString string
}

// Family implements Provider.
func (s Static) Family() string { return s.FamilyName }

// Version implements Provider.
func (s Static) Version() string {
	if s.VersionString == "" {
		return Unknown
	}
	return s.VersionString
}

type system struct{}

// System returns the Provider for the running OS. Each call queries the OS
// again; nothing is cached.
func System() Provider {
	return system{}
}

func (system) Family() string { return family() }

func (system) Version() string {
	v := strings.TrimSpace(version())
	if v == "" {
		return Unknown
	}
	return v
}

// Architecture returns the architecture string.
func Architecture() string {
	switch runtime.GOARCH {
	case "amd64":
		return "x86_64"
	case "arm64":
		return "arm64"
	default:
		return runtime.GOARCH
	}
}

// ParseOSRelease extracts NAME and VERSION_ID from os-release(5) content.
func ParseOSRelease(data string) (name, versionID string) {
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "NAME=") {
			name = unquote(strings.TrimPrefix(line, "NAME="))
		} else if strings.HasPrefix(line, "VERSION_ID=") {
			versionID = unquote(strings.TrimPrefix(line, "VERSION_ID="))
		}
	}
	return name, versionID
}

// ParseBuildProp returns the value of key in Android build.prop content.
// Returns "" if the key is absent.
func ParseBuildProp(data, key string) string {
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if ok && strings.TrimSpace(k) == key {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func unquote(s string) string {
	return strings.Trim(strings.TrimSpace(s), "\"'")
}
