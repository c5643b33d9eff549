package sweep

import (
	"context"
	"fmt"
	"net"
	"sort"
	"sync"
	"time"

	"github.com/projectdiscovery/pd-sweep/pkg/peerdiscovery/prescan"
	mapsutil "github.com/projectdiscovery/utils/maps"
	syncutil "github.com/projectdiscovery/utils/sync"
)

const (
	// DefaultTimeout applies to the reachability probe and to every port attempt
	DefaultTimeout = time.Second
	// DefaultConcurrency is the maximum number of hosts probed at once
	DefaultConcurrency = 20
)

// Options configures a Sweeper
type Options struct {
	Ports       []int         // Candidate TCP ports, probed in order
	Timeout     time.Duration // Per-probe timeout
	Concurrency int           // Maximum number of in-flight host probes
	Prioritize  bool          // Dispatch likely-alive addresses first
	Prober      Prober        // Defaults to an ICMP + TCP connect HostProber
	// OnResult is called from worker goroutines for each live host as soon as
	// its probe completes.
	OnResult func(*Result)
}

// DefaultOptions returns options with the default ports, timeout and concurrency
func DefaultOptions() *Options {
	ports := make([]int, len(DefaultPorts))
	copy(ports, DefaultPorts)
	return &Options{
		Ports:       ports,
		Timeout:     DefaultTimeout,
		Concurrency: DefaultConcurrency,
	}
}

// Validate reports configuration errors before any probing starts
func (options *Options) Validate() error {
	if options.Concurrency < 1 {
		return fmt.Errorf("%w: concurrency must be positive, got %d", ErrInvalidConfig, options.Concurrency)
	}
	if options.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidConfig, options.Timeout)
	}
	return ValidatePorts(options.Ports)
}

// Sweeper expands subnets and probes their hosts with bounded concurrency
type Sweeper struct {
	options *Options
	prober  Prober
}

// New creates a Sweeper from validated options
func New(options *Options) (*Sweeper, error) {
	if options == nil {
		options = DefaultOptions()
	}
	if err := options.Validate(); err != nil {
		return nil, err
	}

	prober := options.Prober
	if prober == nil {
		prober = NewHostProber(nil, nil)
	}

	return &Sweeper{options: options, prober: prober}, nil
}

// Sweep probes every assignable host of subnet and returns the live ones
// sorted by ascending address. An unparsable subnet fails with
// ErrInvalidSubnet before any probe is sent. If ctx is cancelled, dispatching
// stops and the results collected so far are returned with ctx.Err().
// Prioritized sweeps are limited to subnets of at least MinExpandPrefix.
func (s *Sweeper) Sweep(ctx context.Context, subnet string) ([]*Result, error) {
	network, err := ParseSubnet(subnet)
	if err != nil {
		return nil, err
	}

	if !s.options.Prioritize {
		return s.probeHosts(ctx, func(fn func(net.IP) bool) {
			walkHosts(network, fn)
		})
	}

	hosts, err := expandNetwork(network)
	if err != nil {
		return nil, err
	}
	hosts = prescan.Prioritize(hosts, network)

	return s.probeHosts(ctx, func(fn func(net.IP) bool) {
		for _, ip := range hosts {
			if !fn(ip) {
				return
			}
		}
	})
}

// probeHosts fans out one probe per host yielded by walk, never more than
// Concurrency at once. Hosts are pulled only when a slot is free.
func (s *Sweeper) probeHosts(ctx context.Context, walk func(fn func(net.IP) bool)) ([]*Result, error) {
	results := []*Result{}

	awg, err := syncutil.New(syncutil.WithSize(s.options.Concurrency))
	if err != nil {
		return nil, fmt.Errorf("failed to create adaptive waitgroup: %w", err)
	}

	sweepCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	found := mapsutil.NewSyncLockMap[string, *Result]()

	var (
		probeErr error
		errOnce  sync.Once
	)

	walk(func(ip net.IP) bool {
		awg.Add()
		if sweepCtx.Err() != nil {
			awg.Done()
			return false
		}

		go func(target net.IP) {
			defer awg.Done()

			result, err := s.prober.ProbeHost(sweepCtx, target, s.options.Ports, s.options.Timeout)
			if err != nil {
				errOnce.Do(func() {
					probeErr = err
					cancel()
				})
				return
			}
			// a cancelled probe cannot tell closed ports from aborted connects
			if result == nil || sweepCtx.Err() != nil {
				return
			}

			_ = found.Set(result.Host(), result)
			if s.options.OnResult != nil {
				s.options.OnResult(result)
			}
		}(ip)
		return true
	})

	awg.Wait()

	if probeErr != nil {
		return nil, probeErr
	}

	_ = found.Iterate(func(_ string, result *Result) error {
		if result != nil {
			results = append(results, result)
		}
		return nil
	})
	SortResults(results)

	return results, ctx.Err()
}

// SortResults orders results by ascending numeric host address
func SortResults(results []*Result) {
	sort.Slice(results, func(i, j int) bool {
		return ipValue(results[i].IP) < ipValue(results[j].IP)
	})
}

// Sweep probes subnet with the given ports, per-probe timeout and concurrency
// limit using the default ICMP + TCP connect prober.
func Sweep(ctx context.Context, subnet string, ports []int, timeout time.Duration, concurrency int) ([]*Result, error) {
	sweeper, err := New(&Options{
		Ports:       ports,
		Timeout:     timeout,
		Concurrency: concurrency,
	})
	if err != nil {
		return nil, err
	}
	return sweeper.Sweep(ctx, subnet)
}
