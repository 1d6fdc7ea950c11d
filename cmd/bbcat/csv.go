package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
)

// runCSV exports one or more logs' main (INTRA/INTER) frames as CSV or
// JSON (per --format, or the config file's format, csv by default), one
// file per input. Multiple inputs are decoded concurrently: each gets its
// own Log/Session pair and shares no state with the others, so there is
// nothing to serialize between them.
func runCSV(args []string) error {
	fs := flag.NewFlagSet("csv", flag.ContinueOnError)
	cf := addCommonFlags(fs)
	format := fs.String("format", "", "output format: csv or json (default: config file's format, else csv)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("csv: missing input file(s)\nUsage: bbcat csv [options] <input.bbl> [more...]")
	}

	cfg, err := cf.resolve()
	if err != nil {
		return err
	}
	if *format != "" {
		if !validFormats[*format] {
			return fmt.Errorf("csv: format %q must be one of: csv, json", *format)
		}
		cfg.Format = *format
	}

	var g errgroup.Group
	for _, path := range fs.Args() {
		path := path
		g.Go(func() error {
			if cfg.Format == "json" {
				return writeFrameJSON(path, cfg, cf.index)
			}
			return writeFrameCSV(path, cfg, cf.index)
		})
	}
	return g.Wait()
}

func writeFrameCSV(path string, cfg *config, index int) error {
	sess, err := openSession(path, cfg, index)
	if err != nil {
		return fmt.Errorf("csv: %s: %w", path, err)
	}

	out, err := openOutput(outputNameFor(path, "csv"))
	if err != nil {
		return fmt.Errorf("csv: %s: %w", path, err)
	}
	defer out.Close()

	w := csv.NewWriter(out)
	defer w.Flush()

	header := append([]string{"type"}, sess.FieldNames('I')...)
	header = append(header, sess.FieldNames('S')...)
	if gps := sess.FieldNames('G'); len(gps) > 0 {
		header = append(header, gps[1:]...)
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("csv: %s: %w", path, err)
	}

	it := sess.Frames()
	row := make([]string, 0, len(header))
	for it.Next() {
		ft, data := it.Frame()
		row = row[:0]
		row = append(row, ft.String())
		for _, v := range data {
			row = append(row, strconv.FormatInt(int64(v), 10))
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("csv: %s: %w", path, err)
		}
	}
	w.Flush()
	return w.Error()
}

// jsonFrameRow is one emitted frame in bbcat csv --format json's output:
// a stream of newline-delimited JSON objects, one per frame.
type jsonFrameRow struct {
	Type string  `json:"type"`
	Data []int32 `json:"data"`
}

func writeFrameJSON(path string, cfg *config, index int) error {
	sess, err := openSession(path, cfg, index)
	if err != nil {
		return fmt.Errorf("csv: %s: %w", path, err)
	}

	out, err := openOutput(outputNameFor(path, "json"))
	if err != nil {
		return fmt.Errorf("csv: %s: %w", path, err)
	}
	defer out.Close()

	enc := json.NewEncoder(out)
	it := sess.Frames()
	for it.Next() {
		ft, data := it.Frame()
		if err := enc.Encode(jsonFrameRow{Type: ft.String(), Data: data}); err != nil {
			return fmt.Errorf("csv: %s: %w", path, err)
		}
	}
	return nil
}

// outputNameFor derives "<path minus its extension>.<ext>", or "-" when
// path is itself stdin.
func outputNameFor(path, ext string) string {
	if path == "-" {
		return "-"
	}
	if i := strings.LastIndexByte(path, '.'); i > 0 {
		path = path[:i]
	}
	return path + "." + ext
}
