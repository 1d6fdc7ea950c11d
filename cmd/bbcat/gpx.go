package main

import (
	"encoding/xml"
	"flag"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// gpxDocument mirrors the minimal subset of the GPX 1.1 schema a track
// export needs: one track, one segment, a list of points.
type gpxDocument struct {
	XMLName xml.Name `xml:"gpx"`
	Version string   `xml:"version,attr"`
	Creator string   `xml:"creator,attr"`
	Track   gpxTrack `xml:"trk"`
}

type gpxTrack struct {
	Name    string     `xml:"name"`
	Segment gpxSegment `xml:"trkseg"`
}

type gpxSegment struct {
	Points []gpxPoint `xml:"trkpt"`
}

type gpxPoint struct {
	Lat float64 `xml:"lat,attr"`
	Lon float64 `xml:"lon,attr"`
}

// gpsScale converts a blackbox GPS_coord fixed-point integer (degrees *
// 10,000,000) to a floating-point degree value for GPX output.
const gpsScale = 1e7

// runGPX exports one or more logs' GPS tracks as GPX. Inputs are
// decoded concurrently, same as csv.
func runGPX(args []string) error {
	fs := flag.NewFlagSet("gpx", flag.ContinueOnError)
	cf := addCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("gpx: missing input file(s)\nUsage: bbcat gpx [options] <input.bbl> [more...]")
	}

	cfg, err := cf.resolve()
	if err != nil {
		return err
	}

	var g errgroup.Group
	for _, path := range fs.Args() {
		path := path
		g.Go(func() error {
			return writeGPXTrack(path, cfg, cf.index)
		})
	}
	return g.Wait()
}

func writeGPXTrack(path string, cfg *config, index int) error {
	sess, err := openSession(path, cfg, index)
	if err != nil {
		return fmt.Errorf("gpx: %s: %w", path, err)
	}

	fields, rows, _, _ := sess.GPSTrack()
	latIdx, lonIdx := -1, -1
	for i, name := range fields {
		switch name {
		case "GPS_coord[0]":
			latIdx = i
		case "GPS_coord[1]":
			lonIdx = i
		}
	}

	doc := gpxDocument{Version: "1.1", Creator: "bbcat"}
	doc.Track.Name = path
	if latIdx >= 0 && lonIdx >= 0 {
		for _, row := range rows {
			if latIdx >= len(row) || lonIdx >= len(row) {
				continue
			}
			doc.Track.Segment.Points = append(doc.Track.Segment.Points, gpxPoint{
				Lat: float64(row[latIdx]) / gpsScale,
				Lon: float64(row[lonIdx]) / gpsScale,
			})
		}
	}

	out, err := openOutput(outputNameFor(path, "gpx"))
	if err != nil {
		return fmt.Errorf("gpx: %s: %w", path, err)
	}
	defer out.Close()

	if _, err := out.Write([]byte(xml.Header)); err != nil {
		return fmt.Errorf("gpx: %s: %w", path, err)
	}
	enc := xml.NewEncoder(out)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("gpx: %s: %w", path, err)
	}
	return nil
}
