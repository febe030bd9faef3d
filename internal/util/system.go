package util

import (
	"os"
	"runtime"

	"golang.org/x/sys/unix"
)

// SystemInfo contains information about the host system.
type SystemInfo struct {
	Hostname string
	NumCPU   int
	OS       string
	Arch     string
}

// GetSystemInfo collects system information.
func GetSystemInfo() SystemInfo {
	hostname, _ := os.Hostname()
	return SystemInfo{
		Hostname: hostname,
		NumCPU:   runtime.NumCPU(),
		OS:       runtime.GOOS,
		Arch:     runtime.GOARCH,
	}
}

// AvailableDiskBytes returns the free disk space for the filesystem holding
// path. Returns 0 if it cannot be determined.
func AvailableDiskBytes(path string) uint64 {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0
	}
	return st.Bavail * uint64(st.Bsize)
}

// HasDiskHeadroom reports whether the filesystem holding path has at least
// want bytes free. Unknown free space counts as headroom so the check never
// blocks processing on exotic filesystems.
func HasDiskHeadroom(path string, want uint64) bool {
	free := AvailableDiskBytes(path)
	if free == 0 {
		return true
	}
	return free >= want
}
