// Command chouten loads a JavaScript extraction plugin, executes it inside
// an embedded runtime with the host's console and request capabilities
// injected, invokes the selected verb, and prints the resolved JSON result
// on a single stdout line.
//
// Usage:
//
//	chouten [-config <path>] [-validate] [-v] <filename> <option> [<url>]
package main

import (
	"context"
	stdErrors "errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/chouten-app/chouten-cli/config"
	cerrors "github.com/chouten-app/chouten-cli/domain/errors"
	"github.com/chouten-app/chouten-cli/host"
	"github.com/chouten-app/chouten-cli/hostfuncs"
	"github.com/chouten-app/chouten-cli/params"
	"github.com/chouten-app/chouten-cli/schema"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("chouten", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a host config file (YAML)")
	validateResult := fs.Bool("validate", false, "validate the result against the verb's schema")
	verbose := fs.Bool("v", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	p, err := params.Parse(fs.Args())
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	level := cfg.SlogLevel()
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// The verb mapping runs before any script interaction; a missing URL
	// never reaches the file read, let alone the runtime.
	inv, err := host.NewInvocation(p.Verb, p.URL)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	source, err := os.ReadFile(p.Filename)
	if err != nil {
		fmt.Fprintln(stderr, &cerrors.FileReadError{Path: p.Filename, Err: err})
		return 1
	}

	registry, err := hostfuncs.NewRegistry(
		hostfuncs.WithMiddleware(hostfuncs.LoggingMiddleware(logger)),
		hostfuncs.WithCapability(hostfuncs.NewConsoleCapability(logger)),
		hostfuncs.WithCapability(hostfuncs.NewRequestCapability(logger, requestOptions(cfg)...)),
	)
	if err != nil {
		logger.Error("failed to build capability registry", slog.Any("error", err))
		return 1
	}

	ctx := context.Background()
	session, err := host.NewSession(ctx, host.WithLogger(logger), host.WithCapabilities(registry))
	if err != nil {
		logger.Error("runtime bootstrap failed", slog.Any("error", err))
		return 1
	}

	if err := session.LoadPlugin(p.Filename, source); err != nil {
		logger.Error("plugin load failed", slog.Any("error", err))
		return 1
	}

	out, err := session.Invoke(ctx, inv)
	if stdErrors.Is(err, cerrors.ErrUnresolved) {
		fmt.Fprintln(stdout, "Promise did not resolve to a value.")
		return 0
	}
	if err != nil {
		logger.Error("invocation failed", slog.Any("error", err))
		return 1
	}

	if *validateResult {
		if err := schema.Validate(p.Verb, []byte(out)); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}

	fmt.Fprintln(stdout, out)
	return 0
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.LoadDefault()
	}
	return config.Load(path)
}

func requestOptions(cfg *config.Config) []hostfuncs.RequestOption {
	opts := []hostfuncs.RequestOption{
		hostfuncs.WithRequestTimeout(time.Duration(cfg.HTTP.TimeoutMS) * time.Millisecond),
		hostfuncs.WithMaxBodySize(cfg.HTTP.MaxBodyBytes),
		hostfuncs.WithFollowRedirects(cfg.HTTP.RedirectsEnabled()),
	}
	if cfg.HTTP.UserAgent != "" {
		opts = append(opts, hostfuncs.WithUserAgent(cfg.HTTP.UserAgent))
	}
	return opts
}
