//go:build windows

package osinfo

import (
	"fmt"

	"golang.org/x/sys/windows"
)

func family() string { return "Windows" }

func version() string {
	v := windows.RtlGetVersion()
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%d.%d.%d", v.MajorVersion, v.MinorVersion, v.BuildNumber)
}
