//go:build !linux

package topology

import "os"

// Hostname returns the host name, or "" if it cannot be determined
func Hostname() string {
	h, _ := os.Hostname()
	return h
}
