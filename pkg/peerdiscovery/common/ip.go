package common

import "net"

// Broadcast returns the broadcast address of an IPv4 network, or nil for
// other networks.
func Broadcast(network *net.IPNet) net.IP {
	if network == nil {
		return nil
	}
	base := network.IP.To4()
	if base == nil || len(network.Mask) != net.IPv4len {
		return nil
	}

	broadcast := make(net.IP, net.IPv4len)
	for i := range broadcast {
		broadcast[i] = base[i] | ^network.Mask[i]
	}
	return broadcast
}

// IsNetworkOrBroadcast checks if an IPv4 address is the network or broadcast
// address of network.
func IsNetworkOrBroadcast(ip net.IP, network *net.IPNet) bool {
	if network == nil {
		return false
	}
	if ip.Equal(network.IP) {
		return true
	}
	broadcast := Broadcast(network)
	return broadcast != nil && ip.Equal(broadcast)
}
