package sweep

import (
	"encoding/binary"
	"encoding/json"
	"net"
	"time"
)

// Result is the finding for a single reachable host
type Result struct {
	IP        net.IP
	RTT       time.Duration // Round-trip time of the reachability probe
	OpenPorts []int         // Subset of the candidate ports, in candidate order
}

// Host returns the dotted-quad form of the host address
func (r *Result) Host() string {
	return r.IP.String()
}

// LatencyMillis returns the round-trip time as fractional milliseconds
func (r *Result) LatencyMillis() float64 {
	return float64(r.RTT) / float64(time.Millisecond)
}

// MarshalJSON renders the result as {"host":..,"rtt_ms":..,"open_ports":[..]}
func (r *Result) MarshalJSON() ([]byte, error) {
	openPorts := r.OpenPorts
	if openPorts == nil {
		openPorts = []int{}
	}
	return json.Marshal(struct {
		Host      string  `json:"host"`
		RTT       float64 `json:"rtt_ms"`
		OpenPorts []int   `json:"open_ports"`
	}{
		Host:      r.Host(),
		RTT:       r.LatencyMillis(),
		OpenPorts: openPorts,
	})
}

// ipValue returns the numeric value of an IPv4 address
func ipValue(ip net.IP) uint32 {
	ip4 := ip.To4()
	if ip4 == nil {
		return 0
	}
	return binary.BigEndian.Uint32(ip4)
}
