package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain parses arguments, narrates one article and returns the exit code.
func runMain(args []string, env *Environment) int {
	flags, positional, err := parseFlags(args[1:])
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n\n", err)
		printUsage(env.Stderr)
		return exitCodeFor(err)
	}

	if flags.help {
		printUsage(env.Stdout)
		return ExitSuccess
	}
	if flags.version {
		fmt.Fprintf(env.Stdout, "tex2speech %s\n", Version)
		return ExitSuccess
	}

	if len(positional) != 1 {
		err := fmt.Errorf("%w: expected exactly one arXiv id, got %d arguments", ErrUsage, len(positional))
		fmt.Fprintf(env.Stderr, "error: %v\n\n", err)
		printUsage(env.Stderr)
		return exitCodeFor(err)
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	err = run(ctx, positional[0], flags, env)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(env.Stderr, "interrupted")
		} else {
			fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		}
	}
	return exitCodeFor(err)
}
