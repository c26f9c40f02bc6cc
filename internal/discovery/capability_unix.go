//go:build !windows

package discovery

import (
	"os"
	"syscall"
)

// processElevated reports whether the process can open capture
// sockets: running as root, or raw sockets are otherwise permitted
// (CAP_NET_RAW, ping_group_range).
func processElevated() bool {
	if os.Geteuid() == 0 {
		return true
	}
	return rawSocketUsable()
}

// rawSocketUsable probes for a raw ICMP socket, falling back to the
// unprivileged datagram flavor
func rawSocketUsable() bool {
	fd, err := syscall.Socket(syscall.AF_INET, syscall.SOCK_RAW, syscall.IPPROTO_ICMP)
	if err == nil {
		syscall.Close(fd)
		return true
	}

	fd, err = syscall.Socket(syscall.AF_INET, syscall.SOCK_DGRAM, syscall.IPPROTO_ICMP)
	if err == nil {
		syscall.Close(fd)
		return true
	}

	return false
}
