package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/metrics"
	"github.com/effective-security/xlog"
	"github.com/effective-security/yelpmcp/callbacks"
	"github.com/effective-security/yelpmcp/config"
	"github.com/effective-security/yelpmcp/tools"
	"github.com/effective-security/yelpmcp/tools/yelp"
	"github.com/spf13/cobra"
)

// Version is set at build time
var Version = "v0.1.0"

var logger = xlog.NewPackageLogger("github.com/effective-security/yelpmcp", "main")

var logLevels = map[string]xlog.LogLevel{
	"TRACE":    xlog.TRACE,
	"DEBUG":    xlog.DEBUG,
	"INFO":     xlog.INFO,
	"NOTICE":   xlog.NOTICE,
	"WARNING":  xlog.WARNING,
	"ERROR":    xlog.ERROR,
	"CRITICAL": xlog.CRITICAL,
}

type cli struct {
	configFile string
	envFile    string
	verbose    bool

	stdout io.Writer
	stderr io.Writer

	cfg *config.Config

	sink       *metrics.InmemSink
	sinkSignal *metrics.InmemSignal
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := &cli{stdout: os.Stdout, stderr: os.Stderr}
	err := c.rootCmd().ExecuteContext(ctx)
	c.close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		stop()
		os.Exit(1)
	}
}

func (c *cli) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "yelp-mcp",
		Short:         "MCP server for the Yelp Fusion and Yelp AI APIs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(c.stdout)
	cmd.SetErr(c.stderr)

	cmd.PersistentFlags().StringVarP(&c.configFile, "config", "c", "", "configuration file: yaml, json or toml")
	cmd.PersistentFlags().StringVar(&c.envFile, "env", ".env", "dotenv file to load")
	cmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "print tool calls to stderr")

	cmd.AddCommand(
		c.serveCmd(),
		c.toolsCmd(),
		c.callCmd(),
		c.configCmd(),
		c.versionCmd(),
	)
	return cmd
}

// setup loads the configuration and the logger,
// logs are written to stderr so the stdio transport stays clean.
func (c *cli) setup() error {
	if err := config.LoadDotEnv(c.envFile); err != nil {
		return err
	}
	cfg, err := config.Load(c.configFile)
	if err != nil {
		return err
	}
	if cfg.Server.Version == "" {
		cfg.Server.Version = Version
	}

	xlog.SetFormatter(xlog.NewStringFormatter(c.stderr))
	if level, ok := logLevels[cfg.LogLevel]; ok {
		xlog.SetGlobalLogLevel(level)
	}

	if err := c.startMetrics(cfg.Server.Name); err != nil {
		return err
	}

	c.cfg = cfg
	return nil
}

// startMetrics installs the in-memory metrics sink,
// the aggregated stats are printed to stderr on SIGUSR1.
func (c *cli) startMetrics(service string) error {
	if c.sink != nil {
		return nil
	}

	sink := metrics.NewInmemSink(10*time.Second, time.Minute)
	mcfg := metrics.DefaultConfig(service)
	mcfg.EnableRuntimeMetrics = false
	if _, err := metrics.NewGlobal(mcfg, sink); err != nil {
		return errors.WithMessage(err, "failed to start metrics")
	}

	c.sink = sink
	c.sinkSignal = metrics.NewInmemSignal(sink, metrics.DefaultSignal, c.stderr)
	return nil
}

func (c *cli) close() {
	if c.sinkSignal != nil {
		c.sinkSignal.Stop()
		c.sinkSignal = nil
	}
}

func (c *cli) newTools() ([]tools.IMCPTool, error) {
	client, err := yelp.NewClient(c.cfg)
	if err != nil {
		return nil, err
	}

	cb := callbacks.NewFanout(callbacks.NewPackageLogger(logger))
	if c.verbose {
		cb.Add(callbacks.NewPrinter(c.stderr, callbacks.ModeVerbose))
	}
	return yelp.NewTools(client, yelp.WithCallback(cb))
}

func parsePort(s string) (string, error) {
	port, err := strconv.Atoi(s)
	if err != nil || port < 1 || port > 65535 {
		return "", errors.Errorf("invalid port: %q", s)
	}
	return ":" + strconv.Itoa(port), nil
}
