// Package prescan orders the hosts of an IPv4 network by how likely they are
// to be online, based on common address allocation patterns. Sweeps use it to
// probe gateways and early DHCP leases before the long tail.
//
// Priority tiers (0-100), by last octet:
//   - 100: .1, .254 (routers/gateways)
//   - 90:  .2-.5, .250-.253 (reserved infrastructure)
//   - 80:  .6-.10 (early DHCP)
//   - 70:  .50, .100, .150 (DHCP peaks)
//   - 50:  .51-.99, .101-.149, .151-.200 (DHCP pool)
//   - 20:  .11-.49, .201-.249 (long-tail)
//   - 0:   network and broadcast addresses
package prescan
