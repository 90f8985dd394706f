//go:build linux

package topology

import "golang.org/x/sys/unix"

// Hostname returns the kernel node name, or "" if uname fails
func Hostname() string {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return ""
	}
	return unix.ByteSliceToString(uts.Nodename[:])
}
