package sweep

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultPorts are probed when no candidate list is given
var DefaultPorts = []int{80, 443}

// ParsePorts parses a comma separated port list such as "22,80,8000-8002".
// Order is preserved and duplicates are kept; ranges expand ascending in place.
// An empty string yields an empty list.
func ParsePorts(spec string) ([]int, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return []int{}, nil
	}

	var ports []int
	for _, token := range strings.Split(spec, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			return nil, fmt.Errorf("%w: empty token in port list %q", ErrInvalidConfig, spec)
		}

		if start, end, found := strings.Cut(token, "-"); found {
			first, err := parsePort(start)
			if err != nil {
				return nil, err
			}
			last, err := parsePort(end)
			if err != nil {
				return nil, err
			}
			if first > last {
				return nil, fmt.Errorf("%w: range start greater than end: %s", ErrInvalidConfig, token)
			}
			for port := first; port <= last; port++ {
				ports = append(ports, port)
			}
			continue
		}

		port, err := parsePort(token)
		if err != nil {
			return nil, err
		}
		ports = append(ports, port)
	}

	return ports, nil
}

// ValidatePorts checks that every port is within 1..65535
func ValidatePorts(ports []int) error {
	for _, port := range ports {
		if port < 1 || port > 65535 {
			return fmt.Errorf("%w: port %d out of range 1..65535", ErrInvalidConfig, port)
		}
	}
	return nil
}

func parsePort(value string) (int, error) {
	value = strings.TrimSpace(value)
	port, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed port %q", ErrInvalidConfig, value)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("%w: port %d out of range 1..65535", ErrInvalidConfig, port)
	}
	return port, nil
}
