//go:build unix

package pingsweep

import "golang.org/x/sys/unix"

func isPrivileged() bool {
	return unix.Geteuid() == 0
}
