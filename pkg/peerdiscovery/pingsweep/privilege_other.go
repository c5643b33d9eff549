//go:build !unix && !windows

package pingsweep

// No euid to consult, so unprivileged datagram sockets are used
func isPrivileged() bool {
	return false
}
