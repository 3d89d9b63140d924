package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

// ErrUsage indicates missing or malformed command line arguments.
var ErrUsage = errors.New("invalid usage")

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches to a command and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	warnUnknownEnvVars(env)

	cmd, rest := args[1], args[2:]
	var err error
	switch cmd {
	case "create":
		err = runCreate(ctx, rest, env)
	case "update":
		err = runUpdate(ctx, rest, env)
	case "compile":
		err = runCompile(ctx, rest, env)
	case "inspect":
		err = runInspect(ctx, rest, env)
	case "doctor":
		err = runDoctor(ctx, rest, env)
	case "config":
		err = runConfig(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "newman %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		return runHelp(rest, env)
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		printError(env.Stderr, err)
	}
	return exitCodeFor(err)
}

// isCommand reports whether name is a known command.
func isCommand(name string) bool {
	switch name {
	case "create", "update", "compile", "inspect", "doctor", "config", "version", "help":
		return true
	}
	return false
}
