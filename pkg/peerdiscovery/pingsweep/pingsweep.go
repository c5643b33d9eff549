package pingsweep

import (
	"context"
	"net"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
)

var echoPayload = []byte("HELLO-R-U-THERE")

// Pinger sends single ICMP echo requests. It is safe for concurrent use.
type Pinger struct {
	privileged bool
	id         int
	seq        atomic.Uint32
}

// NewPinger creates a pinger, choosing raw sockets when the process has the
// privileges for them.
func NewPinger() *Pinger {
	return &Pinger{
		privileged: isPrivileged(),
		id:         os.Getpid() & 0xffff,
	}
}

// Ping sends one echo request to ip and returns the round-trip time of the
// matching reply. ok is false on timeout, unreachable hosts, permission
// problems and any other transport error.
func (p *Pinger) Ping(ctx context.Context, ip net.IP, timeout time.Duration) (time.Duration, bool) {
	ip4 := ip.To4()
	if ip4 == nil || ctx.Err() != nil {
		return 0, false
	}

	conn, err := p.listen()
	if err != nil {
		return 0, false
	}
	defer func() {
		_ = conn.Close()
	}()

	// unblock ReadFrom on cancellation
	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer stop()

	deadline := time.Now().Add(timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return 0, false
	}

	seq := int(p.seq.Add(1) & 0xffff)
	msgBytes, err := echoRequest(p.id, seq)
	if err != nil {
		return 0, false
	}

	start := time.Now()
	if _, err := conn.WriteTo(msgBytes, p.destination(ip4)); err != nil {
		return 0, false
	}

	reply := make([]byte, 1500)
	for {
		n, peer, err := conn.ReadFrom(reply)
		if err != nil {
			return 0, false
		}
		if matchReply(reply[:n], peer, ip4, p.id, seq, p.privileged) {
			return time.Since(start), true
		}
	}
}

func (p *Pinger) listen() (*icmp.PacketConn, error) {
	if p.privileged {
		return icmp.ListenPacket("ip4:icmp", "0.0.0.0")
	}
	return icmp.ListenPacket("udp4", "0.0.0.0")
}

func (p *Pinger) destination(ip net.IP) net.Addr {
	if p.privileged {
		return &net.IPAddr{IP: ip}
	}
	return &net.UDPAddr{IP: ip}
}

// echoRequest builds an ICMPv4 echo request
func echoRequest(id, seq int) ([]byte, error) {
	msg := &icmp.Message{
		Type: ipv4.ICMPTypeEcho,
		Code: 0,
		Body: &icmp.Echo{
			ID:   id,
			Seq:  seq,
			Data: echoPayload,
		},
	}
	return msg.Marshal(nil)
}

// matchReply reports whether data is the echo reply for (id, seq) from target.
// Unprivileged sockets get their identifier rewritten by the kernel, so the
// identifier is only compared when checkID is set.
func matchReply(data []byte, peer net.Addr, target net.IP, id, seq int, checkID bool) bool {
	rm, err := icmp.ParseMessage(ipv4.ICMPTypeEchoReply.Protocol(), data)
	if err != nil {
		return false
	}

	if rm.Type != ipv4.ICMPTypeEchoReply {
		return false
	}

	echo, ok := rm.Body.(*icmp.Echo)
	if !ok {
		return false
	}

	if echo.Seq != seq {
		return false
	}
	if checkID && echo.ID != id {
		return false
	}

	return peerIP(peer).Equal(target)
}

func peerIP(peer net.Addr) net.IP {
	switch addr := peer.(type) {
	case *net.IPAddr:
		return addr.IP
	case *net.UDPAddr:
		return addr.IP
	default:
		return nil
	}
}
