//go:build ios

package osinfo

func family() string { return "iOS" }

func version() string { return productVersion() }
