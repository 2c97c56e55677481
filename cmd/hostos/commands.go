package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/Cyclone1070/hostos/internal/host/buffer"
	"github.com/Cyclone1070/hostos/internal/host/file"
)

// isTerminal reports whether w is an interactive terminal.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func newFlagSet(deps Dependencies, name string) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("hostos "+name, pflag.ContinueOnError)
	flagSet.SetOutput(deps.Stderr)
	return flagSet
}

func parse(flagSet *pflag.FlagSet, args []string, minArgs, maxArgs int) error {
	if err := flagSet.Parse(args); err != nil {
		return usagef("%v", err)
	}
	if n := flagSet.NArg(); n < minArgs || n > maxArgs {
		return usagef("%s: expected %d to %d arguments, got %d", flagSet.Name(), minArgs, maxArgs, n)
	}
	return nil
}

func runEnv(deps Dependencies, args []string) error {
	var output string
	var envFile string

	flagSet := newFlagSet(deps, "env")
	flagSet.StringVarP(&output, "output", "o", "text", "output format: text, json or yaml")
	flagSet.StringVar(&envFile, "env-file", "", "read variables from a dotenv file instead of the process")
	if err := parse(flagSet, args, 0, 1); err != nil {
		return err
	}

	host, err := createOS(deps, envFile)
	if err != nil {
		return err
	}
	snapshot := host.Env()

	if flagSet.NArg() == 1 {
		value, ok := snapshot.Get(flagSet.Arg(0))
		if !ok {
			return fmt.Errorf("%s is not set", flagSet.Arg(0))
		}
		_, err := fmt.Fprintln(deps.Stdout, value)
		return err
	}

	switch output {
	case "text":
		for _, name := range snapshot.Names() {
			fmt.Fprintf(deps.Stdout, "%s=%s\n", name, snapshot.Value(name))
		}
		return nil
	case "json":
		encoder := json.NewEncoder(deps.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(snapshot.Map())
	case "yaml":
		encoder := yaml.NewEncoder(deps.Stdout)
		if err := encoder.Encode(snapshot.Map()); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return usagef("unknown output format %q", output)
	}
}

// BinaryFileError reports content that read refuses to print.
type BinaryFileError struct {
	Path   string
	Size   int
	Digest string
}

func (e *BinaryFileError) Error() string {
	return fmt.Sprintf("%s is binary (%d bytes, blake3 %s); use --force to print it", e.Path, e.Size, e.Digest)
}

func runRead(deps Dependencies, args []string) error {
	var asText bool
	var force bool

	flagSet := newFlagSet(deps, "read")
	flagSet.BoolVar(&asText, "text", false, "decode the content as UTF-8 using the configured policy")
	flagSet.BoolVarP(&force, "force", "f", false, "print binary content anyway")
	if err := parse(flagSet, args, 1, 1); err != nil {
		return err
	}
	path := flagSet.Arg(0)

	host, err := createOS(deps, "")
	if err != nil {
		return err
	}

	buf, err := host.ReadFile(path)
	if err != nil {
		return err
	}

	// Unless forced, binary content is not decoded as text and its raw bytes
	// are not sent to a terminal. Pipes and files always get the raw bytes.
	if !force && buf.LooksBinary(deps.Config.Host.BinarySampleSize) && (asText || isTerminal(deps.Stdout)) {
		return &BinaryFileError{Path: path, Size: buf.Len(), Digest: buf.Digest()}
	}

	if asText {
		text, err := buf.Text(deps.Config.Host.Policy())
		if err != nil {
			return err
		}
		_, err = io.WriteString(deps.Stdout, text)
		return err
	}

	_, err = deps.Stdout.Write(buf.Bytes())
	return err
}

func runWrite(deps Dependencies, args []string) error {
	var text string

	flagSet := newFlagSet(deps, "write")
	flagSet.StringVar(&text, "text", "", "write this text instead of stdin")
	if err := parse(flagSet, args, 1, 1); err != nil {
		return err
	}

	var content file.Content
	if flagSet.Changed("text") {
		content = file.Text(text)
	} else {
		data, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		content = file.Bytes(buffer.New(data))
	}

	host, err := createOS(deps, "")
	if err != nil {
		return err
	}
	return host.WriteFile(flagSet.Arg(0), content)
}

func runDigest(deps Dependencies, args []string) error {
	flagSet := newFlagSet(deps, "digest")
	if err := parse(flagSet, args, 1, 1); err != nil {
		return err
	}

	host, err := createOS(deps, "")
	if err != nil {
		return err
	}

	buf, err := host.ReadFile(flagSet.Arg(0))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(deps.Stdout, "%s  %d  %s\n", buf.Digest(), buf.Len(), flagSet.Arg(0))
	return err
}
