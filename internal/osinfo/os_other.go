//go:build !darwin && !linux && !windows

package osinfo

import "runtime"

func family() string { return runtime.GOOS }

func version() string { return "" }
