package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/3issane/PFETRACKCODE212/config"
	"github.com/3issane/PFETRACKCODE212/internal/bootstrap"
	"github.com/spf13/pflag"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	usage       string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx       context.Context
	Logger    *slog.Logger
	Config    config.AppConfig
	Container *bootstrap.Container

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// ReadPassword reads a secret from the terminal without echo.
	ReadPassword func() ([]byte, error)
}

// errUsage marks failures that should exit 2 after printing usage.
var errUsage = errors.New("usage")

func main() {
	os.Exit(run(os.Args[1:])) //nolint:forbidigo // CLI exit status carries the command result
}

func run(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		if err := printUsage(os.Stdout); err != nil {
			return 1
		}
		if len(args) == 0 {
			return 2
		}
		return 0
	}

	cmdName := args[0]
	cmd, ok := commands()[cmdName]
	if !ok {
		_ = writef(os.Stderr, "unknown command %q\n\n", cmdName)
		_ = printUsage(os.Stderr)
		return 2
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		_ = writef(os.Stderr, "pfetrack: load config: %v\n", err)
		return 1
	}
	logger := bootstrap.InitLogger(&cfg)

	container, err := bootstrap.NewContainer(bootstrap.ContainerDeps{Config: &cfg, Logger: logger})
	if err != nil {
		_ = writef(os.Stderr, "pfetrack: %v\n", err)
		return 1
	}
	defer func() {
		if closeErr := container.Close(); closeErr != nil {
			logger.Warn("close credential store", "error", closeErr)
		}
	}()

	cmdCtx := &commandContext{
		Ctx:          context.Background(),
		Logger:       logger,
		Config:       cfg,
		Container:    container,
		Stdin:        os.Stdin,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		ReadPassword: readTerminalPassword,
	}
	return execute(cmdCtx, cmd, args[1:])
}

// execute initializes the session and runs cmd, mapping the outcome to an exit code.
func execute(cmdCtx *commandContext, cmd command, args []string) int {
	cmdCtx.Container.Sessions.Initialize(cmdCtx.Ctx)

	err := cmd.run(cmdCtx, args)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, pflag.ErrHelp):
		return 0
	case errors.Is(err, errUsage):
		_ = writef(cmdCtx.Stderr, "%v\nusage: pfetrack %s %s\n", err, cmd.name, cmd.usage)
		return 2
	default:
		cmdCtx.Logger.DebugContext(cmdCtx.Ctx, "command failed", "command", cmd.name, "error", err)
		_ = writef(cmdCtx.Stderr, "pfetrack: %v\n", err)
		return 1
	}
}

func commands() map[string]command {
	return map[string]command{
		"login": {
			name:        "login",
			usage:       "[-u username] [--password-stdin]",
			description: "Sign in and store the session",
			run:         runLogin,
		},
		"register": {
			name:        "register",
			usage:       "--first-name F --last-name L --username U --email E [--password-stdin]",
			description: "Create an account (does not sign in)",
			run:         runRegister,
		},
		"logout": {
			name:        "logout",
			description: "Sign out and clear the stored session",
			run:         runLogout,
		},
		"whoami": {
			name:        "whoami",
			usage:       "[--query expr]",
			description: "Print the current session as JSON",
			run:         runWhoami,
		},
		"open": {
			name:        "open",
			usage:       "<path>",
			description: "Print the route guard decision for a location",
			run:         runOpen,
		},
		"api": {
			name:        "api",
			usage:       "<method> <path> [--data json] [--public] [--query expr]",
			description: "Call a backend endpoint with the stored session",
			run:         runAPI,
		},
		"topics": {
			name:        "topics",
			usage:       "[list|available|get ID|apply ID|applications] [--query expr]",
			description: "Browse and apply to project topics",
			run:         runTopics,
		},
		"reports": {
			name:        "reports",
			usage:       "[mine|all|get ID|submit ID|upload ID FILE|download ID] [--query expr]",
			description: "Manage reports",
			run:         runReports,
		},
		"grades": {
			name:        "grades",
			usage:       "[list|stats|transcript|upcoming] [--query expr]",
			description: "Show grades",
			run:         runGrades,
		},
		"events": {
			name:        "events",
			usage:       "[list|upcoming|date YYYY-MM-DD|get ID|stats] [--query expr]",
			description: "Show calendar events",
			run:         runEvents,
		},
		"dashboard": {
			name:        "dashboard",
			usage:       "[student|admin] [--query expr]",
			description: "Print the role dashboard",
			run:         runDashboard,
		},
		"serve": {
			name:        "serve",
			usage:       "[--addr host:port]",
			description: "Serve the local web front until interrupted",
			run:         runServe,
		},
	}
}

func printUsage(w io.Writer) error {
	if err := writef(w, "Usage: pfetrack <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(w, "Available commands:\n"); err != nil {
		return err
	}
	all := commands()
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := writef(w, "  %-12s %s\n", name, all[name].description); err != nil {
			return err
		}
	}
	return nil
}

func newFlagSet(ctx *commandContext, name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(ctx.Stderr)
	return fs
}

func usageError(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{errUsage}, args...)...)
}
