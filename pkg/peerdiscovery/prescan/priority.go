package prescan

import (
	"net"

	"github.com/projectdiscovery/pd-sweep/pkg/peerdiscovery/common"
)

const (
	PriorityGateway  = 100
	PriorityReserved = 90
	PriorityEarly    = 80
	PriorityPeak     = 70
	PriorityPool     = 50
	PriorityLongTail = 20
	PriorityExcluded = 0
)

// octetRange maps an inclusive range of last octets to a priority
type octetRange struct {
	first, last byte
	priority    int
}

// octetRanges are checked in order, so single-octet peaks precede the pools
// that contain them.
var octetRanges = []octetRange{
	{1, 1, PriorityGateway},
	{254, 254, PriorityGateway},
	{2, 5, PriorityReserved},
	{250, 253, PriorityReserved},
	{6, 10, PriorityEarly},
	{50, 50, PriorityPeak},
	{100, 100, PriorityPeak},
	{150, 150, PriorityPeak},
	{51, 99, PriorityPool},
	{101, 149, PriorityPool},
	{151, 200, PriorityPool},
}

// CalculatePriority scores an address within network. Non-IPv4 addresses get
// the long-tail priority.
func CalculatePriority(ip net.IP, network *net.IPNet) int {
	ip4 := ip.To4()
	if ip4 == nil {
		return PriorityLongTail
	}

	if network != nil {
		if ones, _ := network.Mask.Size(); ones <= 30 && common.IsNetworkOrBroadcast(ip4, network) {
			return PriorityExcluded
		}
	}

	lastOctet := ip4[3]
	for _, r := range octetRanges {
		if lastOctet >= r.first && lastOctet <= r.last {
			return r.priority
		}
	}
	return PriorityLongTail
}
