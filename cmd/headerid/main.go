// Command headerid computes and checks the identity hashes of block headers.
//
// Usage:
//
//	headerid [flags] <command> [args]
//
// Commands:
//
//	hash     Print number and hash of each header (JSON input)
//	encode   Print the canonical RLP encoding of each header
//	decode   Decode a canonical RLP encoding into header JSON
//	split    Split headers into partial header, ommers hash and tx root
//	verify   Cross-check hashes against go-ethereum
//
// Flags:
//
//	--config      TOML configuration file
//	--cache-size  Header hash cache capacity (default: 100)
//	--log-level   debug, info, warn or error (default: info)
//	--log-format  json or text (default: text)
//	--metrics     Print metrics in Prometheus text format on exit
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/eth2030/headerid/core/types"
	"github.com/eth2030/headerid/log"
	"github.com/eth2030/headerid/metrics"
)

// Build-time version info, overridable with ldflags:
//
//	go build -ldflags "-X main.version=v0.2.0 -X main.commit=abc1234"
var (
	version = "v0.1.0-dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run is the actual entry point, returning an exit code. It takes the
// arguments without the program name and explicit streams so it can be
// tested in isolation.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	root := newRootCmd(a)
	root.SetArgs(args)
	err := root.Execute()
	// Cobra skips post-run hooks after a failed RunE, so the exit report
	// runs here for both outcomes.
	a.finish()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// app carries the resolved configuration and I/O streams shared by every
// subcommand.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configPath string
	cacheSize  int
	logLevel   string
	logFormat  string
	metrics    bool

	cfg   *Config
	cache *types.HashCache
	log   *log.Logger
}

func newRootCmd(a *app) *cobra.Command {
	defaults := DefaultConfig()

	root := &cobra.Command{
		Use:           "headerid",
		Short:         "Block header identity tool",
		Long:          "Computes, encodes and cross-checks the Keccak-256 identities of block headers.",
		Version:       fmt.Sprintf("%s (commit %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "TOML configuration file")
	pf.IntVar(&a.cacheSize, "cache-size", defaults.CacheSize, "header hash cache capacity")
	pf.StringVar(&a.logLevel, "log-level", defaults.Log.Level, "log level: debug, info, warn or error")
	pf.StringVar(&a.logFormat, "log-format", defaults.Log.Format, "log format: json or text")
	pf.BoolVar(&a.metrics, "metrics", defaults.Metrics, "print metrics in Prometheus text format on exit")

	root.AddCommand(
		newHashCmd(a),
		newEncodeCmd(a),
		newDecodeCmd(a),
		newSplitCmd(a),
		newVerifyCmd(a),
	)
	return root
}

// setup resolves configuration, configures logging and installs the hash
// cache. Flags given on the command line override file values.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("cache-size") {
		cfg.CacheSize = a.cacheSize
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}
	if flags.Changed("metrics") {
		cfg.Metrics = a.metrics
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := log.ParseLevel(cfg.Log.Level)
	logger, err := log.NewWithFormat(a.stderr, cfg.Log.Format, level)
	if err != nil {
		return err
	}
	log.SetDefault(logger)

	a.cfg = cfg
	a.log = logger.Module("cmd")
	a.cache = types.NewRegisteredHashCache(cfg.CacheSize, metrics.DefaultRegistry)
	types.SetDefaultHashCache(a.cache)

	a.log.Debug("Configuration loaded",
		"file", cfg.ConfigFile,
		"cacheSize", a.cache.Capacity(),
		"logLevel", cfg.Log.Level,
		"logFormat", cfg.Log.Format,
		"metrics", cfg.Metrics,
	)
	return nil
}

// finish reports cache statistics and, if enabled, the metrics registry.
// It is a no-op when setup did not complete.
func (a *app) finish() {
	if a.cache == nil {
		return
	}
	st := a.cache.Stats()
	a.log.Debug("Header hash cache stats",
		"hits", st.Hits,
		"misses", st.Misses,
		"evictions", st.Evictions,
		"entries", st.Entries,
		"capacity", st.Capacity,
	)
	if a.cfg.Metrics {
		if err := writeMetrics(a.stderr, metrics.DefaultRegistry); err != nil {
			a.log.Warn("Failed to export metrics", "err", err)
		}
	}
}
