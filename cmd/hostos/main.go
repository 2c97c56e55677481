// Package main provides a command-line front end for the hostos bindings.
// It runs the same env, readFile and writeFile code paths a script engine
// uses, which makes it handy for checking host behaviour from a shell.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"

	"github.com/Cyclone1070/hostos/internal/binding"
	"github.com/Cyclone1070/hostos/internal/config"
	"github.com/Cyclone1070/hostos/internal/host/env"
	"github.com/Cyclone1070/hostos/internal/host/file"
	"github.com/Cyclone1070/hostos/internal/host/service/fs"
)

var errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

// Dependencies holds the components a subcommand runs against.
type Dependencies struct {
	Config *config.Config
	Logger *slog.Logger
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// usageError marks command-line mistakes, which exit with status 2.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("error:"), err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	var ue *usageError
	if errors.As(err, &ue) {
		return 2
	}
	return 1
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var configPath string
	var logLevel string

	flagSet := pflag.NewFlagSet("hostos", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.SetInterspersed(false)
	flagSet.StringVar(&configPath, "config", "", "config file (default: ~/.config/hostos/config.jsonc)")
	flagSet.StringVar(&logLevel, "log-level", "", "override log.level (debug, info, warn, error)")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(stderr, flagSet)
			return nil
		}
		return usagef("%v", err)
	}
	if help, _ := flagSet.GetBool("help"); help || flagSet.NArg() == 0 {
		printHelp(stderr, flagSet)
		return nil
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
		if err := cfg.Validate(); err != nil {
			return usagef("%v", err)
		}
	}

	deps := Dependencies{
		Config: cfg,
		Logger: cfg.Log.NewLogger(stderr),
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	command, rest := flagSet.Arg(0), flagSet.Args()[1:]
	switch command {
	case "env":
		return runEnv(deps, rest)
	case "read":
		return runRead(deps, rest)
	case "write":
		return runWrite(deps, rest)
	case "digest":
		return runDigest(deps, rest)
	default:
		return usagef("unknown command %q", command)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.NewLoader().LoadFrom(path)
	}
	return config.Load()
}

// createOS wires the bindings against the host filesystem. A non-empty
// envFile replaces the process environment with the variables it defines.
func createOS(deps Dependencies, envFile string) (*binding.OS, error) {
	gateway := file.NewGateway(fs.NewOSFileSystem(), deps.Config, deps.Logger)

	var source env.Source = env.OSSource{}
	if envFile != "" {
		dotenv, err := env.NewDotenvSource(gateway, envFile)
		if err != nil {
			return nil, err
		}
		source = dotenv
	}

	return binding.NewOS(env.NewAccessor(source), gateway), nil
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `hostos exercises the host bindings exposed to embedded scripts.

Usage:
  hostos [global flags] <command> [flags] [args]

Commands:
  env [NAME]        print the environment (or one variable)
  read PATH         write the file's bytes to stdout (--force for binary on a terminal)
  write PATH        replace the file with stdin (or --text)
  digest PATH       print the BLAKE3 digest and size of a file

Global flags:
%s`, flagSet.FlagUsages())
}
