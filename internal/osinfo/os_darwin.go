//go:build darwin && !ios

package osinfo

func family() string { return "macOS" }

func version() string { return productVersion() }
