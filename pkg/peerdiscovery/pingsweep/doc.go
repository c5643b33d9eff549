// Package pingsweep measures host liveness with a single ICMP echo request.
//
// Each Ping opens its own ICMP socket, sends one echo request and waits for
// the matching reply until the timeout expires. Replies are matched by
// sequence number and source address, and by identifier when a raw socket is
// used.
//
// Privilege Requirements:
//   - Raw ICMP sockets ("ip4:icmp") are used when running as root
//   - Otherwise unprivileged datagram ICMP sockets ("udp4") are used, which on
//     Linux require the group to be allowed by net.ipv4.ping_group_range
//
// Limitations:
//   - Hosts with ICMP disabled or firewalled will not respond
//   - Some networks may rate-limit ICMP traffic
//   - Every failure (including missing privileges) is reported as "no reply"
package pingsweep
