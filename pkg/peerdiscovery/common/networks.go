package common

import "net"

// GetLocalNetworks24 returns the private IPv4 networks of the up, non-loopback
// interfaces, widened to /24 and deduplicated.
func GetLocalNetworks24() ([]*net.IPNet, error) {
	interfaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	var networks []*net.IPNet
	seen := make(map[string]struct{})

	for _, iface := range interfaces {
		if iface.Flags&net.FlagLoopback != 0 || iface.Flags&net.FlagUp == 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			network24 := PrivateNetwork24(addr)
			if network24 == nil {
				continue
			}

			key := network24.String()
			if _, exists := seen[key]; exists {
				continue
			}
			seen[key] = struct{}{}
			networks = append(networks, network24)
		}
	}

	return networks, nil
}

// PrivateNetwork24 returns the /24 containing addr when addr is a private
// IPv4 address, and nil otherwise.
func PrivateNetwork24(addr net.Addr) *net.IPNet {
	var ip net.IP
	switch v := addr.(type) {
	case *net.IPNet:
		ip = v.IP
	case *net.IPAddr:
		ip = v.IP
	default:
		return nil
	}

	ip4 := ip.To4()
	if ip4 == nil || !ip4.IsPrivate() {
		return nil
	}

	mask24 := net.CIDRMask(24, 32)
	return &net.IPNet{
		IP:   ip4.Mask(mask24),
		Mask: mask24,
	}
}
