package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/ogier/pflag"

	"github.com/pganalyze/session-collector/config"
	"github.com/pganalyze/session-collector/output"
	"github.com/pganalyze/session-collector/runner"
	"github.com/pganalyze/session-collector/util"
)

func main() {
	var configFilename string
	var format string
	var verbose bool
	var quiet bool

	flag.StringVar(&configFilename, "config", config.DefaultConfigFile, "Specify alternative path for config file")
	flag.StringVar(&format, "format", output.FormatText, "Output format for collected sessions (json or text)")
	flag.BoolVarP(&verbose, "verbose", "v", false, "Include verbose logging output")
	flag.BoolVarP(&quiet, "quiet", "q", false, "Only print errors and warnings")
	flag.Parse()

	logger := util.NewLogger(os.Stderr, verbose, quiet)

	if format != output.FormatJSON && format != output.FormatText {
		logger.PrintError("Unsupported output format \"%s\" (expected %s or %s)", format, output.FormatJSON, output.FormatText)
		os.Exit(1)
	}

	conf, err := config.Read(logger, configFilename)
	if err != nil {
		logger.PrintError("Config Error: %s", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigs:
			logger.PrintInfo("Interrupted, cancelling running queries")
			cancel()
		case <-ctx.Done():
		}
	}()

	success := runner.CollectSessionsFromAllServers(ctx, conf.Servers, format, os.Stdout, logger)

	signal.Stop(sigs)
	cancel()

	if !success {
		fmt.Fprintln(os.Stderr, "Could not collect sessions from all servers, see errors above")
		os.Exit(1)
	}
}
