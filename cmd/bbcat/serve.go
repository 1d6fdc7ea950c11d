package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/flightlog/blackbox/internal/httpapi"
)

// runServe binds one session and serves it over the read-only HTTP query
// layer until interrupted.
func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	cf := addCommonFlags(fs)
	addr := fs.String("addr", "127.0.0.1:8080", "listen address")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("serve: missing input file\nUsage: bbcat serve [options] <input.bbl>")
	}

	cfg, err := cf.resolve()
	if err != nil {
		return err
	}
	sess, err := openSession(fs.Arg(0), cfg, cf.index)
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}

	slog.Info("serving", "addr", *addr, "file", fs.Arg(0))
	return http.ListenAndServe(*addr, httpapi.NewRouter(sess))
}
