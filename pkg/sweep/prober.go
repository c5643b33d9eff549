package sweep

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/projectdiscovery/pd-sweep/pkg/peerdiscovery/pingsweep"
)

// Pinger performs a single reachability probe against a host.
// ok is false for every failure to confirm liveness.
type Pinger interface {
	Ping(ctx context.Context, ip net.IP, timeout time.Duration) (rtt time.Duration, ok bool)
}

// Dialer opens TCP connections. *net.Dialer satisfies it.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Prober probes a single host. A nil result with a nil error means the host
// is not reachable.
type Prober interface {
	ProbeHost(ctx context.Context, ip net.IP, ports []int, timeout time.Duration) (*Result, error)
}

// HostProber is the default Prober: one ICMP echo followed by sequential
// TCP connect attempts.
type HostProber struct {
	pinger Pinger
	dialer Dialer
}

// NewHostProber creates a prober. Nil arguments fall back to an ICMP pinger
// and a plain net.Dialer.
func NewHostProber(pinger Pinger, dialer Dialer) *HostProber {
	if pinger == nil {
		pinger = pingsweep.NewPinger()
	}
	if dialer == nil {
		dialer = &net.Dialer{}
	}
	return &HostProber{pinger: pinger, dialer: dialer}
}

// ProbeReachability sends one reachability probe and returns its round-trip time
func (p *HostProber) ProbeReachability(ctx context.Context, ip net.IP, timeout time.Duration) (time.Duration, bool) {
	rtt, ok := p.pinger.Ping(ctx, ip, timeout)
	if !ok {
		return 0, false
	}
	if rtt < 0 {
		rtt = 0
	}
	return rtt, true
}

// ProbeOpenPorts attempts a full TCP connection to every candidate port in
// order and returns the ones that accepted within timeout. Refused, timed out
// and errored attempts are all treated as closed.
func (p *HostProber) ProbeOpenPorts(ctx context.Context, ip net.IP, ports []int, timeout time.Duration) []int {
	host := ip.String()
	openPorts := make([]int, 0, len(ports))

	for _, port := range ports {
		if p.connect(ctx, net.JoinHostPort(host, strconv.Itoa(port)), timeout) {
			openPorts = append(openPorts, port)
		}
	}

	return openPorts
}

func (p *HostProber) connect(ctx context.Context, address string, timeout time.Duration) bool {
	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	conn, err := p.dialer.DialContext(dialCtx, "tcp", address)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

// ProbeHost checks reachability and, for live hosts, the candidate ports.
// A live host always yields a result, even with no open ports, unless ctx
// is cancelled before the port checks finish.
func (p *HostProber) ProbeHost(ctx context.Context, ip net.IP, ports []int, timeout time.Duration) (*Result, error) {
	ip4 := ip.To4()
	if ip4 == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidHost, ip.String())
	}

	rtt, ok := p.ProbeReachability(ctx, ip4, timeout)
	if !ok {
		return nil, nil
	}

	openPorts := p.ProbeOpenPorts(ctx, ip4, ports, timeout)
	if ctx.Err() != nil {
		return nil, nil
	}

	return &Result{
		IP:        ip4,
		RTT:       rtt,
		OpenPorts: openPorts,
	}, nil
}
