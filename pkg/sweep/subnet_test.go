package sweep

import (
	"errors"
	"net"
	"reflect"
	"testing"
)

func TestExpandSubnet(t *testing.T) {
	tests := []struct {
		name      string
		subnet    string
		wantCount int
		wantFirst string
		wantLast  string
		wantErr   bool
	}{
		{name: "/30 yields two hosts", subnet: "10.0.0.0/30", wantCount: 2, wantFirst: "10.0.0.1", wantLast: "10.0.0.2"},
		{name: "/29", subnet: "10.0.0.0/29", wantCount: 6, wantFirst: "10.0.0.1", wantLast: "10.0.0.6"},
		{name: "/24", subnet: "192.168.1.0/24", wantCount: 254, wantFirst: "192.168.1.1", wantLast: "192.168.1.254"},
		{name: "/16", subnet: "172.16.0.0/16", wantCount: 65534, wantFirst: "172.16.0.1", wantLast: "172.16.255.254"},
		{name: "host bits are masked", subnet: "192.168.1.77/24", wantCount: 254, wantFirst: "192.168.1.1", wantLast: "192.168.1.254"},
		{name: "/31 keeps both addresses", subnet: "10.0.0.0/31", wantCount: 2, wantFirst: "10.0.0.0", wantLast: "10.0.0.1"},
		{name: "/32 keeps its address", subnet: "10.0.0.5/32", wantCount: 1, wantFirst: "10.0.0.5", wantLast: "10.0.0.5"},
		{name: "garbage", subnet: "not-a-subnet", wantErr: true},
		{name: "missing prefix", subnet: "10.0.0.1", wantErr: true},
		{name: "bad prefix", subnet: "10.0.0.0/33", wantErr: true},
		{name: "empty", subnet: "  ", wantErr: true},
		{name: "ipv6", subnet: "2001:db8::/126", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hosts, err := ExpandSubnet(tt.subnet)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExpandSubnet() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSubnet) {
					t.Errorf("ExpandSubnet() error = %v, want ErrInvalidSubnet", err)
				}
				return
			}
			if len(hosts) != tt.wantCount {
				t.Fatalf("ExpandSubnet() count = %d, want %d", len(hosts), tt.wantCount)
			}
			if got := hosts[0].String(); got != tt.wantFirst {
				t.Errorf("first host = %s, want %s", got, tt.wantFirst)
			}
			if got := hosts[len(hosts)-1].String(); got != tt.wantLast {
				t.Errorf("last host = %s, want %s", got, tt.wantLast)
			}
		})
	}
}

func TestExpandSubnetCountFormula(t *testing.T) {
	for prefix := 20; prefix <= 30; prefix++ {
		_, network, _ := net.ParseCIDR("10.20.0.0/20")
		network.Mask = net.CIDRMask(prefix, 32)

		hosts, err := ExpandSubnet(network.String())
		if err != nil {
			t.Fatalf("ExpandSubnet(%s) error = %v", network, err)
		}
		want := (1 << (32 - prefix)) - 2
		if len(hosts) != want {
			t.Errorf("ExpandSubnet(%s) count = %d, want %d", network, len(hosts), want)
		}
	}
}

func TestExpandSubnetAscending(t *testing.T) {
	hosts, err := ExpandSubnet("10.0.0.0/23")
	if err != nil {
		t.Fatalf("ExpandSubnet() error = %v", err)
	}
	for i := 1; i < len(hosts); i++ {
		if ipValue(hosts[i-1]) >= ipValue(hosts[i]) {
			t.Fatalf("hosts not ascending at %d: %s >= %s", i, hosts[i-1], hosts[i])
		}
	}
}

func TestExpandSubnetRejectsLargeNetworks(t *testing.T) {
	for _, subnet := range []string{"10.0.0.0/8", "172.16.0.0/15", "0.0.0.0/0"} {
		if _, err := ExpandSubnet(subnet); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("ExpandSubnet(%s) error = %v, want ErrInvalidConfig", subnet, err)
		}
	}
}

func TestWalkHosts(t *testing.T) {
	tests := []struct {
		subnet    string
		wantCount int
		wantFirst string
		wantLast  string
	}{
		{subnet: "10.0.0.0/30", wantCount: 2, wantFirst: "10.0.0.1", wantLast: "10.0.0.2"},
		{subnet: "10.0.0.0/31", wantCount: 2, wantFirst: "10.0.0.0", wantLast: "10.0.0.1"},
		{subnet: "10.0.0.5/32", wantCount: 1, wantFirst: "10.0.0.5", wantLast: "10.0.0.5"},
		{subnet: "192.168.1.0/24", wantCount: 254, wantFirst: "192.168.1.1", wantLast: "192.168.1.254"},
		{subnet: "255.255.255.255/32", wantCount: 1, wantFirst: "255.255.255.255", wantLast: "255.255.255.255"},
		{subnet: "255.255.255.254/31", wantCount: 2, wantFirst: "255.255.255.254", wantLast: "255.255.255.255"},
	}

	for _, tt := range tests {
		t.Run(tt.subnet, func(t *testing.T) {
			network, err := ParseSubnet(tt.subnet)
			if err != nil {
				t.Fatalf("ParseSubnet() error = %v", err)
			}

			var hosts []net.IP
			walkHosts(network, func(ip net.IP) bool {
				hosts = append(hosts, ip)
				return true
			})

			if len(hosts) != tt.wantCount {
				t.Fatalf("walkHosts() count = %d, want %d", len(hosts), tt.wantCount)
			}
			if got := hosts[0].String(); got != tt.wantFirst {
				t.Errorf("first host = %s, want %s", got, tt.wantFirst)
			}
			if got := hosts[len(hosts)-1].String(); got != tt.wantLast {
				t.Errorf("last host = %s, want %s", got, tt.wantLast)
			}
			if got := HostCount(network); got != uint64(tt.wantCount) {
				t.Errorf("HostCount() = %d, want %d", got, tt.wantCount)
			}
		})
	}
}

func TestWalkHostsMatchesExpandSubnet(t *testing.T) {
	network, err := ParseSubnet("10.20.0.0/22")
	if err != nil {
		t.Fatalf("ParseSubnet() error = %v", err)
	}
	expanded, err := expandNetwork(network)
	if err != nil {
		t.Fatalf("expandNetwork() error = %v", err)
	}

	i := 0
	walkHosts(network, func(ip net.IP) bool {
		if i >= len(expanded) || !ip.Equal(expanded[i]) {
			t.Fatalf("walkHosts() host %d = %s, want %v", i, ip, expanded[i:min(i+1, len(expanded))])
		}
		i++
		return true
	})
	if i != len(expanded) {
		t.Errorf("walkHosts() yielded %d hosts, want %d", i, len(expanded))
	}
}

func TestWalkHostsStops(t *testing.T) {
	network, err := ParseSubnet("0.0.0.0/0")
	if err != nil {
		t.Fatalf("ParseSubnet() error = %v", err)
	}
	if got, want := HostCount(network), uint64(1<<32-2); got != want {
		t.Errorf("HostCount() = %d, want %d", got, want)
	}

	var seen []string
	walkHosts(network, func(ip net.IP) bool {
		seen = append(seen, ip.String())
		return len(seen) < 3
	})
	if want := []string{"0.0.0.1", "0.0.0.2", "0.0.0.3"}; !reflect.DeepEqual(seen, want) {
		t.Errorf("walkHosts() = %v, want %v", seen, want)
	}
}
