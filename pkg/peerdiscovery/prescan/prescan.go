package prescan

import (
	"bytes"
	"net"
	"sort"
)

// Prioritize returns a copy of hosts ordered by descending priority, ties
// broken by ascending address.
func Prioritize(hosts []net.IP, network *net.IPNet) []net.IP {
	type scored struct {
		ip       net.IP
		priority int
	}

	prioritized := make([]scored, 0, len(hosts))
	for _, ip := range hosts {
		prioritized = append(prioritized, scored{ip: ip, priority: CalculatePriority(ip, network)})
	}

	sort.SliceStable(prioritized, func(i, j int) bool {
		if prioritized[i].priority != prioritized[j].priority {
			return prioritized[i].priority > prioritized[j].priority
		}
		return bytes.Compare(prioritized[i].ip.To16(), prioritized[j].ip.To16()) < 0
	})

	ordered := make([]net.IP, 0, len(prioritized))
	for _, p := range prioritized {
		ordered = append(ordered, p.ip)
	}
	return ordered
}
