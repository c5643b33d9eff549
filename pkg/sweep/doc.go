// Package sweep discovers live hosts on an IPv4 subnet and reports, for each of
// them, the round-trip time of a single ICMP echo and the candidate TCP ports
// that accepted a full connection.
//
// A sweep is performed by:
//   - Expanding the subnet to its assignable host addresses
//   - Probing every host with a bounded number of probes in flight
//   - Dropping hosts that did not answer the reachability probe
//   - Sorting the surviving results by numeric host address
//
// Example usage:
//
//	results, err := sweep.Sweep(ctx, "192.168.1.0/24", []int{22, 80, 443}, time.Second, 20)
//
// Hosts that filter ICMP are reported as unreachable even when they expose
// open ports: reachability gates port reporting.
package sweep
