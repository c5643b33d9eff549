package runner

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/logrusorgru/aurora/v4"
	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/formatter"
	"github.com/projectdiscovery/gologger/levels"
	"github.com/projectdiscovery/pd-sweep/pkg/sweep"
	"github.com/projectdiscovery/pd-sweep/pkg/version"
	envutil "github.com/projectdiscovery/utils/env"
)

var au = aurora.New(aurora.WithColors(true))

var (
	PortsEnv       = envutil.GetEnvOrDefault("PD_SWEEP_PORTS", "80,443")
	TimeoutEnv     = envutil.GetEnvOrDefault("PD_SWEEP_TIMEOUT", "1s")
	ConcurrencyEnv = envutil.GetEnvOrDefault("PD_SWEEP_CONCURRENCY", "20")
)

// Options contains the configuration options for a sweep run
type Options struct {
	Targets      goflags.StringSlice
	AutoDiscover bool

	Ports       string
	Timeout     time.Duration
	Concurrency int
	Prioritize  bool

	Output  string
	JSON    bool
	Silent  bool
	Verbose bool
	NoColor bool
	Version bool

	// prober replaces the ICMP + TCP connect prober, used by tests
	prober sweep.Prober
}

// ParseOptions parses the command line flags provided by a user
func ParseOptions() *Options {
	options := &Options{}
	flagSet := goflags.NewFlagSet()

	flagSet.SetDescription(`pd-sweep discovers live hosts on an IPv4 subnet and reports their latency and open TCP ports`)

	defaultTimeout := sweep.DefaultTimeout
	if val, err := time.ParseDuration(TimeoutEnv); err == nil && val > 0 {
		defaultTimeout = val
	}
	defaultConcurrency := sweep.DefaultConcurrency
	if val, err := strconv.Atoi(ConcurrencyEnv); err == nil && val > 0 {
		defaultConcurrency = val
	}

	flagSet.CreateGroup("input", "Input",
		flagSet.StringSliceVarP(&options.Targets, "target", "t", nil, "subnets to sweep in CIDR notation (e.g. 192.168.1.0/24)", goflags.CommaSeparatedStringSliceOptions),
		flagSet.BoolVarP(&options.AutoDiscover, "auto-discover", "ad", false, "sweep the private /24 networks of local interfaces"),
	)

	flagSet.CreateGroup("probe", "Probe",
		flagSet.StringVarP(&options.Ports, "ports", "p", PortsEnv, "comma separated ports to check on live hosts (e.g. 22,80,443,8000-8100)"),
		flagSet.DurationVar(&options.Timeout, "timeout", defaultTimeout, "timeout for the ping and for every port connection"),
		flagSet.IntVarP(&options.Concurrency, "concurrency", "c", defaultConcurrency, "maximum number of hosts probed in parallel"),
		flagSet.BoolVarP(&options.Prioritize, "prioritize", "pr", false, "probe likely-alive addresses (gateways, early dhcp) first"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.StringVarP(&options.Output, "output", "o", "", "file to write results to"),
		flagSet.BoolVarP(&options.JSON, "json", "j", false, "write results as json lines"),
		flagSet.BoolVar(&options.Silent, "silent", false, "show only results in output"),
		flagSet.BoolVarP(&options.Verbose, "verbose", "v", false, "show verbose output"),
		flagSet.BoolVarP(&options.NoColor, "no-color", "nc", false, "disable output content coloring (ANSI escape codes)"),
		flagSet.BoolVar(&options.Version, "version", false, "show version of the project"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("%s\n", err)
	}

	// positional subnets, as in "pd-sweep 192.168.1.0/24"
	options.Targets = append(options.Targets, flagSet.CommandLine.Args()...)

	options.configureOutput()

	if !options.Silent {
		showBanner()
	}

	if options.Version {
		gologger.Info().Msgf("Current Version: %s\n", version.GetVersion())
		os.Exit(0)
	}

	if err := options.validate(); err != nil {
		gologger.Fatal().Msgf("Program exiting: %s\n", err)
	}

	return options
}

// validate checks the options before any probe is sent
func (options *Options) validate() error {
	if len(options.Targets) == 0 && !options.AutoDiscover {
		return fmt.Errorf("%w: no target subnet specified", sweep.ErrInvalidConfig)
	}
	for _, target := range options.Targets {
		if _, err := sweep.ParseSubnet(target); err != nil {
			return err
		}
	}
	if _, err := sweep.ParsePorts(options.Ports); err != nil {
		return err
	}
	if options.Concurrency < 1 {
		return fmt.Errorf("%w: concurrency must be positive, got %d", sweep.ErrInvalidConfig, options.Concurrency)
	}
	if options.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %s", sweep.ErrInvalidConfig, options.Timeout)
	}
	return nil
}

// configureOutput configures the output on the screen
func (options *Options) configureOutput() {
	if options.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}
	if options.NoColor {
		gologger.DefaultLogger.SetFormatter(formatter.NewCLI(true))
		au = aurora.New(aurora.WithColors(false))
	}
	if options.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	}
}
