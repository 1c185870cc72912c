package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	md2docx "github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/hints"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args, DefaultEnv())
	stop()
	os.Exit(code)
}

// runMain dispatches the command in args and returns the exit code.
// Without a command, or when the first argument is a flag, generate runs.
func runMain(ctx context.Context, args []string, env *Environment) int {
	cmd, rest := "generate", []string(nil)
	if len(args) > 1 {
		rest = args[1:]
		if !strings.HasPrefix(rest[0], "-") {
			cmd, rest = rest[0], rest[1:]
		}
	}

	var err error
	switch cmd {
	case "generate":
		err = runGenerate(ctx, rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "version":
		fmt.Fprintf(env.Stdout, "md2docx %s\n", Version)
		return ExitSuccess
	case "help":
		runHelp(rest, env)
		return ExitSuccess
	case "completion":
		err = runCompletion(rest, env)
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// hintFor returns an actionable hint for fatal errors, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, md2docx.ErrBrowserConnect):
		inContainer, _ := isContainer()
		return hints.ForBrowserConnect(hints.Runtime{Getenv: os.Getenv, InContainer: inContainer})
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, md2docx.ErrPageLoad):
		return hints.ForTimeout()
	case errors.Is(err, md2docx.ErrThemeNotFound):
		return hints.ForThemeNotFound(md2docx.ThemeNames())
	default:
		return ""
	}
}
