package main

import (
	"flag"
	"fmt"
	"sort"
)

// runInfo prints a session's headers, bound field names, and running
// decode stats, grounded on the header/field/stats dump a blackbox log
// inspector traditionally prints before doing anything else with a file.
func runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	cf := addCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("info: missing input file\nUsage: bbcat info [options] <input.bbl>")
	}

	cfg, err := cf.resolve()
	if err != nil {
		return err
	}
	sess, err := openSession(fs.Arg(0), cfg, cf.index)
	if err != nil {
		return fmt.Errorf("info: %w", err)
	}

	headers := sess.Headers()
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Printf("File:    %s\n", fs.Arg(0))
	fmt.Printf("Headers:\n")
	for _, k := range keys {
		fmt.Printf("  %s: %s\n", k, headers[k])
	}

	fmt.Printf("Fields (I/P):  %v\n", sess.FieldNames('I'))
	fmt.Printf("Fields (S):    %v\n", sess.FieldNames('S'))
	fmt.Printf("Fields (G):    %v\n", sess.FieldNames('G'))

	it := sess.Frames()
	for it.Next() {
	}

	stats := sess.Stats()
	fmt.Printf("Frames parsed:   %d\n", stats.Parsed)
	fmt.Printf("Frames skipped:  %d\n", stats.Skipped)
	fmt.Printf("Frames invalid:  %d (%.2f%%)\n", stats.Invalid, stats.InvalidPercent)
	fmt.Printf("Events:          %d\n", len(sess.Events()))

	return nil
}
