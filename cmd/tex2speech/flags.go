package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage is returned for invalid command-line usage.
var ErrUsage = errors.New("invalid usage")

// cliFlags holds the parsed command-line flags.
type cliFlags struct {
	debug   bool
	keyword string
	help    bool
	version bool
}

// parseFlags parses args (program name excluded) and returns positional args.
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("tex2speech", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &cliFlags{}

	fs.BoolVarP(&f.debug, "debug", "d", false, "keep the work directory and skip narration")
	fs.StringVarP(&f.keyword, "keyword", "k", "", "keyword appended to output file names")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")
	fs.BoolVar(&f.version, "version", false, "show version")

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	return f, fs.Args(), nil
}
