//go:build linux && !android

package osinfo

import "os"

const osReleasePath = "/etc/os-release"

func family() string { return "Linux" }

// version prefers VERSION_ID from /etc/os-release and falls back to the
// kernel release on distributions that omit it.
func version() string {
	if data, err := os.ReadFile(osReleasePath); err == nil {
		if _, v := ParseOSRelease(string(data)); v != "" {
			return v
		}
	}
	return kernelRelease()
}
