package sweep

import (
	"encoding/binary"
	"fmt"
	"net"
	"strings"

	"github.com/projectdiscovery/mapcidr"
	"github.com/projectdiscovery/pd-sweep/pkg/peerdiscovery/common"
)

// ParseSubnet parses an IPv4 CIDR. Host bits are masked off, so
// "192.168.1.7/24" is the same network as "192.168.1.0/24".
func ParseSubnet(subnet string) (*net.IPNet, error) {
	subnet = strings.TrimSpace(subnet)
	if subnet == "" {
		return nil, fmt.Errorf("%w: empty subnet", ErrInvalidSubnet)
	}

	_, network, err := net.ParseCIDR(subnet)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSubnet, subnet)
	}

	if _, bits := network.Mask.Size(); bits != 32 || network.IP.To4() == nil {
		return nil, fmt.Errorf("%w: %s is not an IPv4 network", ErrInvalidSubnet, subnet)
	}

	return network, nil
}

// MinExpandPrefix is the shortest prefix whose host list is built in memory.
// A /16 holds 65534 hosts.
const MinExpandPrefix = 16

// ExpandSubnet returns the assignable host addresses of an IPv4 subnet in
// ascending order. The network and broadcast addresses are excluded for
// prefixes up to /30; a /31 yields both of its addresses and a /32 its only one.
// Subnets shorter than MinExpandPrefix are rejected with ErrInvalidConfig.
func ExpandSubnet(subnet string) ([]net.IP, error) {
	network, err := ParseSubnet(subnet)
	if err != nil {
		return nil, err
	}
	return expandNetwork(network)
}

// HostCount returns the number of assignable addresses of network
func HostCount(network *net.IPNet) uint64 {
	first, last := hostBounds(network)
	return uint64(last-first) + 1
}

// hostBounds returns the first and last assignable address of network
func hostBounds(network *net.IPNet) (first, last uint32) {
	base := binary.BigEndian.Uint32(network.IP.To4())
	broadcast := binary.BigEndian.Uint32(common.Broadcast(network))
	if ones, _ := network.Mask.Size(); ones >= 31 {
		return base, broadcast
	}
	return base + 1, broadcast - 1
}

// walkHosts calls fn with every assignable address of network in ascending
// order until fn returns false. Addresses are generated one at a time.
func walkHosts(network *net.IPNet, fn func(ip net.IP) bool) {
	first, last := hostBounds(network)
	for value := first; ; value++ {
		ip := make(net.IP, net.IPv4len)
		binary.BigEndian.PutUint32(ip, value)
		if !fn(ip) || value == last {
			return
		}
	}
}

func expandNetwork(network *net.IPNet) ([]net.IP, error) {
	cidrStr := network.String()
	if ones, _ := network.Mask.Size(); ones < MinExpandPrefix {
		return nil, fmt.Errorf("%w: %s is larger than /%d and cannot be expanded", ErrInvalidConfig, cidrStr, MinExpandPrefix)
	}
	ips, err := mapcidr.IPAddresses(cidrStr)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to expand %s: %v", ErrInvalidSubnet, cidrStr, err)
	}

	ones, _ := network.Mask.Size()
	pointToPoint := ones >= 31

	hosts := make([]net.IP, 0, len(ips))
	for _, ipStr := range ips {
		ip := net.ParseIP(ipStr).To4()
		if ip == nil {
			continue
		}

		if !pointToPoint && common.IsNetworkOrBroadcast(ip, network) {
			continue
		}

		hosts = append(hosts, ip)
	}

	return hosts, nil
}
