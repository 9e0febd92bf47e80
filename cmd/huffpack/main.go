// Command huffpack compresses and decompresses files with static Huffman
// coding.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/op/go-logging"
)

const progName = "huffpack"

var log = logging.MustGetLogger("huffpack/cli")

var leveledLogBackend logging.LeveledBackend

type command func(args []string, stdout io.Writer) error

var commands = map[string]command{
	"compress":   runCompress,
	"decompress": runDecompress,
	"stat":       runStat,
}

func usageMessage() string {
	return `Usage: huffpack [-debug] COMMAND [OPTIONS] FILE...

Commands:
  compress [-o OUT | -dir DIR] [-legacy] FILE...
      Compress each FILE into DIR/FILE.huf (DIR defaults to "compress").
  decompress [-o OUT | -dir DIR] [-strict] FILE...
      Restore each artifact into DIR (defaults to "decompress"), dropping
      the .huf suffix.
  stat FILE...
      Report Huffman statistics and a zstd baseline for each FILE.

Global options:
  -debug, -d   Log at debug level.
`
}

type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usageErrorf(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

func startLogging(w io.Writer) {
	backend := logging.NewLogBackend(w, progName+": ", 0)
	formatSpec := "%{level:8s} %{module:-14s} | %{message}"
	formatter := logging.MustStringFormatter(formatSpec)
	formatted := logging.NewBackendFormatter(backend, formatter)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(logging.INFO, "")
	logging.SetBackend(leveled)
	leveledLogBackend = leveled
}

// wrapFlagError keeps flag.ErrHelp recognizable and marks everything else
// as a usage error.
func wrapFlagError(err error) error {
	if err == flag.ErrHelp {
		return err
	}
	return usageErrorf("%v", err)
}

func newFlagSet(name string) *flag.FlagSet {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.Usage = func() {}
	flags.SetOutput(io.Discard)
	return flags
}

// run executes one invocation and returns the process exit code.
func run(args []string, stdout io.Writer) int {
	flags := newFlagSet(progName)
	var debugLogging bool
	flags.BoolVar(&debugLogging, "debug", false, "")
	flags.BoolVar(&debugLogging, "d", false, "")

	argErr := flags.Parse(args)
	if argErr == flag.ErrHelp {
		io.WriteString(stdout, usageMessage())
		return 0
	} else if argErr != nil {
		log.Errorf("%v", argErr)
		return 2
	}

	if debugLogging && leveledLogBackend != nil {
		leveledLogBackend.SetLevel(logging.DEBUG, "")
	}

	rest := flags.Args()
	if len(rest) == 0 {
		log.Errorf("no command given; expected one of %s", commandNames())
		return 2
	}
	name := rest[0]
	cmd, ok := commands[name]
	if !ok {
		log.Errorf("unknown command %q; expected one of %s", name, commandNames())
		return 2
	}

	if err := cmd(rest[1:], stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			io.WriteString(stdout, usageMessage())
			return 0
		}
		log.Errorf("%s: %v", name, err)
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			return 2
		}
		return 1
	}
	return 0
}

func commandNames() string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func main() {
	startLogging(os.Stderr)
	os.Exit(run(os.Args[1:], os.Stdout))
}
