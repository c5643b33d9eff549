package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/pd-sweep/pkg/output"
	"github.com/projectdiscovery/pd-sweep/pkg/peerdiscovery/common"
	"github.com/projectdiscovery/pd-sweep/pkg/sweep"
	"github.com/rs/xid"
)

// Runner contains the internal logic of the program
type Runner struct {
	options *Options
	sweeper *sweep.Sweeper
}

// NewRunner instance
func NewRunner(options *Options) (*Runner, error) {
	ports, err := sweep.ParsePorts(options.Ports)
	if err != nil {
		return nil, err
	}

	sweeper, err := sweep.New(&sweep.Options{
		Ports:       ports,
		Timeout:     options.Timeout,
		Concurrency: options.Concurrency,
		Prioritize:  options.Prioritize,
		Prober:      options.prober,
		OnResult: func(result *sweep.Result) {
			gologger.Verbose().Msgf("%s is alive (%.2f ms, %d open ports)", result.Host(), result.LatencyMillis(), len(result.OpenPorts))
		},
	})
	if err != nil {
		return nil, err
	}

	return &Runner{options: options, sweeper: sweeper}, nil
}

// Run sweeps every target and writes the results in target order
func (r *Runner) Run(ctx context.Context) error {
	targets, err := r.targets()
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		gologger.Warning().Msg("no target subnets to sweep")
		return nil
	}

	writer, err := output.New(&output.Options{
		File:    r.options.Output,
		JSON:    r.options.JSON,
		NoColor: r.options.NoColor,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := writer.Close(); err != nil {
			gologger.Error().Msgf("Could not write results: %s\n", err)
		}
	}()

	if err := r.writeHeader(writer); err != nil {
		return err
	}

	for _, target := range targets {
		if err := r.sweepTarget(ctx, writer, target); err != nil {
			return err
		}
	}

	return nil
}

// writeHeader writes the report header. Files carry the banner, the console
// already showed it, and silent console output has no header at all.
func (r *Runner) writeHeader(writer *output.Writer) error {
	if r.options.Silent && r.options.Output == "" {
		return nil
	}
	header := ""
	if r.options.Output != "" {
		header = banner + "\n"
	}
	return writer.WriteHeader(header)
}

func (r *Runner) sweepTarget(ctx context.Context, writer *output.Writer, target string) error {
	id := xid.New().String()
	start := time.Now()
	gologger.Info().Msgf("[%s] sweeping %s", id, target)

	results, err := r.sweeper.Sweep(ctx, target)
	// partial results of an interrupted sweep are still written
	if writeErr := writer.WriteAll(results); writeErr != nil {
		return fmt.Errorf("could not write results: %w", writeErr)
	}
	if err != nil {
		return fmt.Errorf("sweep of %s failed: %w", target, err)
	}

	gologger.Info().Msgf("[%s] found %d live hosts in %s in %s", id, len(results), target, time.Since(start).Round(time.Millisecond))
	return nil
}

// targets returns the explicit targets followed by auto-discovered networks
func (r *Runner) targets() ([]string, error) {
	seen := make(map[string]struct{})
	var targets []string

	add := func(target string) {
		if _, exists := seen[target]; exists {
			return
		}
		seen[target] = struct{}{}
		targets = append(targets, target)
	}

	for _, target := range r.options.Targets {
		network, err := sweep.ParseSubnet(target)
		if err != nil {
			return nil, err
		}
		add(network.String())
	}

	if r.options.AutoDiscover {
		networks, err := common.GetLocalNetworks24()
		if err != nil {
			return nil, fmt.Errorf("failed to get local networks: %w", err)
		}
		for _, network := range networks {
			gologger.Verbose().Msgf("discovered local network %s", network)
			add(network.String())
		}
	}

	return targets, nil
}
