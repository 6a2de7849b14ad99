package osinfo

import (
	"strings"
	"syscall"
)

// productVersion reads kern.osproductversion (e.g., "17.0" or "14.4.1").
func productVersion() string {
	v, err := syscall.Sysctl("kern.osproductversion")
	if err != nil {
		return ""
	}
	// Trim null terminator if present
	return strings.TrimSpace(strings.TrimRight(v, "\x00"))
}
