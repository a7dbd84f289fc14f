// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Program ontree reads, checks, and queries JSON documents using the
// arena-backed tree representation.
//
// Usage:
//
//	ontree fmt [file ...]          # write compact canonical JSON
//	ontree get <path> [file]       # print the value at a path
//	ontree check file ...          # validate files and report statistics
//
// Input files whose names end in ".zst" are decompressed on the fly.
// A file name of "-" reads standard input.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/c2h5oh/datasize"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Globals are the settings shared by all subcommands.
type Globals struct {
	LogLevel        string            `kong:"short='l',default='warn',enum='debug,info,warn,error,silent',help='Log level',env='ONTREE_LOG_LEVEL'"`
	JWCC            bool              `kong:"name='jwcc',help='Accept JSON with commas and comments'"`
	PageSize        datasize.ByteSize `kong:"default='1KB',help='Text arena page size',env='ONTREE_PAGE_SIZE'"`
	InitialCapacity datasize.ByteSize `kong:"default='4KB',help='Initial output buffer capacity'"`

	out    io.Writer
	logger log.Logger
}

type options struct {
	Globals

	Fmt   fmtCmd   `kong:"cmd,help='Write documents as compact JSON.'"`
	Get   getCmd   `kong:"cmd,help='Print the value at a path.'"`
	Check checkCmd `kong:"cmd,help='Validate documents.'"`
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "ontree: %v\n", err)
		os.Exit(1)
	}
}

// run parses args and executes the selected command. Output goes to stdout
// and logs to stderr. A failure is returned to the caller for reporting.
func run(args []string, stdout, stderr io.Writer) error {
	var opts options
	parser, err := kong.New(&opts,
		kong.Name("ontree"),
		kong.Description("Read, check, and query JSON documents."),
		kong.Writers(stdout, stderr),
		kong.UsageOnError(),
	)
	if err != nil {
		return err
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		return fmt.Errorf("failed to parse arguments: %w", err)
	}
	opts.out = stdout
	opts.logger = newLogger(stderr, opts.LogLevel)
	return ctx.Run(&opts.Globals)
}

func newLogger(w io.Writer, lvl string) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	var opt level.Option
	switch lvl {
	case "debug":
		opt = level.AllowDebug()
	case "info":
		opt = level.AllowInfo()
	case "warn":
		opt = level.AllowWarn()
	case "error":
		opt = level.AllowError()
	default:
		opt = level.AllowNone()
	}
	return log.With(level.NewFilter(logger, opt), "ts", log.DefaultTimestampUTC)
}
