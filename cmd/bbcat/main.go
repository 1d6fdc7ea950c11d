// Command bbcat inspects and exports Cleanflight/Betaflight blackbox
// flight-recorder logs.
//
// Usage:
//
//	bbcat info [options] <input.bbl>           Print headers, fields, stats
//	bbcat csv [options] <input.bbl> [more...]   Export frames as CSV
//	bbcat gpx [options] <input.bbl> [more...]   Export the GPS track as GPX
//	bbcat serve [options] <input.bbl>           Serve a read-only HTTP query API
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/flightlog/blackbox"
	"github.com/flightlog/blackbox/internal/cache"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "info":
		err = runInfo(os.Args[2:])
	case "csv":
		err = runCSV(os.Args[2:])
	case "gpx":
		err = runGPX(os.Args[2:])
	case "serve":
		err = runServe(os.Args[2:])
	case "-h", "-help", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "bbcat: unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "bbcat: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage:
  bbcat info [options] <input.bbl>
  bbcat csv  [options] <input.bbl> [more...]
  bbcat gpx  [options] <input.bbl> [more...]
  bbcat serve [options] <input.bbl>

Run "bbcat <command> -h" for command-specific options.
`)
}

// commonFlags are accepted by every subcommand that opens a log file.
type commonFlags struct {
	index      int
	configPath string
	cachePath  string
	verbose    bool
}

func addCommonFlags(fs *flag.FlagSet) *commonFlags {
	cf := &commonFlags{}
	fs.IntVar(&cf.index, "index", 1, "session index (1-based)")
	fs.StringVar(&cf.configPath, "config", "", "YAML config file")
	fs.StringVar(&cf.cachePath, "cache", "", "bbolt session-range cache path")
	fs.BoolVar(&cf.verbose, "v", false, "verbose (debug-level) logging")
	return cf
}

// resolve merges loaded YAML config with explicit CLI flags, with flags
// always winning, then installs the resulting log level as the process
// default.
func (cf *commonFlags) resolve() (*config, error) {
	cfg, err := loadConfig(cf.configPath)
	if err != nil {
		return nil, err
	}
	if cf.cachePath != "" {
		cfg.CachePath = cf.cachePath
	}
	if cf.verbose {
		cfg.Verbose = true
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	slog.SetLogLoggerLevel(level)

	return cfg, nil
}

// openSession opens path (through the bbolt cache if cfg names one) and
// binds the requested session index.
func openSession(path string, cfg *config, index int) (*blackbox.Session, error) {
	var log *blackbox.Log
	var err error

	if cfg.CachePath != "" {
		db, cerr := cache.Open(cfg.CachePath)
		if cerr != nil {
			return nil, cerr
		}
		defer db.Close()
		log, err = blackbox.OpenCached(path, db)
	} else {
		log, err = blackbox.Open(path)
	}
	if err != nil {
		return nil, err
	}

	return log.SetIndex(index)
}

// openOutput returns a writer for path, creating it if needed, or stdout
// when path is "" or "-".
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
