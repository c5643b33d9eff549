//go:build windows

package pingsweep

// Windows has no unprivileged datagram ICMP sockets
func isPrivileged() bool {
	return true
}
