// Healthcheck program
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/oklog/run"
	"github.com/peterbourgon/ff/v3"

	"github.com/libitemsflow/healthcheck"
)

const progName = "gas-healthcheck"

var projectVersion = "dev"

func usageFor(fs *flag.FlagSet) func() {
	return func() {
		fmt.Fprintln(os.Stderr, "USAGE")
		fmt.Fprintf(os.Stderr, "  %s [options]\n", fs.Name())
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "OPTIONS")

		tw := tabwriter.NewWriter(os.Stderr, 0, 2, 2, ' ', 0)
		fmt.Fprintf(tw, "  Flag\tEnv Var\tDescription\n")
		fs.VisitAll(func(f *flag.Flag) {
			var envVar string
			if f.Name != "verbose" && f.Name != "version" {
				envVar = strings.Replace(strings.ToUpper(f.Name), "-", "_", -1)
			}
			var defValue string
			if f.DefValue != "" {
				defValue = fmt.Sprintf(" (default: %s)", f.DefValue)
			}
			fmt.Fprintf(tw, "  -%s\t%s\t%s%s\n", f.Name, envVar, f.Usage, defValue)
		})
		if err := tw.Flush(); err != nil {
			panic(err)
		}
	}
}

func fail(err error) {
	healthcheck.ReportFailure(os.Stderr, err)
	os.Exit(1)
}

func main() {
	// Command-line arguments
	var (
		baseURL       string
		configFile    string
		hintLocale    string
		timeout       time.Duration
		verifyPayload bool
		verbose       bool
		versionFlag   bool
	)

	fs := flag.NewFlagSet(progName, flag.ExitOnError)
	fs.StringVar(&baseURL, "gas-webapp-url", "", "Base URL of the web app to check")
	fs.StringVar(&configFile, "config-file", "", "Path to the optional TOML configuration file")
	fs.StringVar(&hintLocale, "hint-locale", healthcheck.DefaultLocale, "Locale of the login wall hint")
	fs.DurationVar(&timeout, "timeout", 0, "Timeout of each request, zero means none")
	fs.BoolVar(&verifyPayload, "verify-payload", false, "Fail unless the body is a healthy JSON envelope")
	fs.BoolVar(&verbose, "verbose", false, "Be more verbose")
	fs.BoolVar(&versionFlag, "version", false, "Print version information and exit")
	fs.Usage = usageFor(fs)

	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVarNoPrefix()); err != nil {
		fmt.Fprintf(os.Stderr, "error parsing flags: %v\n", err)
		os.Exit(2)
	}

	if versionFlag {
		fmt.Fprintf(os.Stdout, "%s version %s\n", progName, projectVersion)
		os.Exit(0)
	}

	var logger log.Logger
	{
		logger = log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
		var logLevel level.Option
		if verbose {
			logLevel = level.AllowDebug()
		} else {
			logLevel = level.AllowInfo()
		}
		logger = level.NewFilter(logger, logLevel)
	}

	target, err := healthcheck.ResolveTargetURL(baseURL)
	if err != nil {
		fail(err)
	}

	cfg, err := healthcheck.LoadConfig(configFile)
	if err != nil {
		level.Debug(logger).Log("during", "loading configuration", "err", err)
		fail(err)
	}

	matchers, err := healthcheck.NewAuthWallMatchers(cfg)
	if err != nil {
		level.Debug(logger).Log("during", "login path validation", "err", err)
		fail(err)
	}

	var g run.Group

	{
		checkLogger := log.With(logger, "component", "checker")
		checker := healthcheck.NewChecker(
			healthcheck.NewClient(timeout),
			matchers,
			healthcheck.NewPrinter(hintLocale),
			os.Stdout,
			checkLogger,
		)

		ctx, cancel := context.WithCancel(context.Background())
		g.Add(func() error {
			defer level.Debug(checkLogger).Log("status", "check done")
			level.Debug(checkLogger).Log("status", "starting check", "url", target)
			res, err := checker.Check(ctx, target)
			if err != nil {
				return err
			}
			if verifyPayload {
				return healthcheck.VerifyPayload(os.Stdout, res.Body)
			}
			return nil
		}, func(_ error) {
			cancel()
		})
	}

	g.Add(run.SignalHandler(context.Background(), syscall.SIGINT, syscall.SIGTERM))

	runErr := g.Run()

	var se run.SignalError
	switch {
	case runErr == nil:
	case errors.As(runErr, &se):
		level.Info(logger).Log("status", "program end", "msg", runErr)
		os.Exit(1)
	default:
		level.Debug(logger).Log("status", "program end", "err", runErr)
		fail(runErr)
	}
}
