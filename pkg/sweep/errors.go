package sweep

import "errors"

var (
	// ErrInvalidSubnet is returned when a subnet specification cannot be parsed
	// or is not an IPv4 network.
	ErrInvalidSubnet = errors.New("invalid subnet")
	// ErrInvalidConfig is returned for malformed ports or non-positive limits.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ErrInvalidHost is returned by the prober for addresses that are not IPv4.
// It indicates a programming error and aborts the enclosing sweep.
var ErrInvalidHost = errors.New("invalid host address")
