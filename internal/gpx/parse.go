package gpx

import (
	"encoding/xml"
	"errors"
	"strconv"
	"strings"
	"time"

	"backend-trailjournal/internal/shared/geo"
)

type gpxFile struct {
	XMLName   xml.Name   `xml:"gpx"`
	Waypoints []gpxPoint `xml:"wpt"`
	Tracks    []gpxTrack `xml:"trk"`
}

type gpxTrack struct {
	Segments []gpxSegment `xml:"trkseg"`
}

type gpxSegment struct {
	Points []gpxPoint `xml:"trkpt"`
}

type gpxPoint struct {
	Lat  float64 `xml:"lat,attr"`
	Lon  float64 `xml:"lon,attr"`
	Ele  *string `xml:"ele"`
	Time string  `xml:"time"`
	Name string  `xml:"name"`
	Desc string  `xml:"desc"`
}

var ErrNotGPX = errors.New("file is not a gpx document")

// Parse reads a GPX document and produces a Preview without a temp file key.
// A waypoint with a broken <time> or <ele> keeps its coordinates and loses
// only the broken field; only a non-GPX document is a hard error.
func Parse(data []byte) (Preview, error) {
	var doc gpxFile
	if err := xml.Unmarshal(data, &doc); err != nil {
		return Preview{}, ErrNotGPX
	}
	if doc.XMLName.Local != "gpx" {
		return Preview{}, ErrNotGPX
	}

	var preview Preview
	for _, wpt := range doc.Waypoints {
		preview.DetectedWaypoints = append(preview.DetectedWaypoints, Waypoint{
			Lat:       wpt.Lat,
			Lon:       wpt.Lon,
			Elevation: parseElevation(wpt.Ele),
			Time:      parseTime(wpt.Time),
			Name:      wpt.Name,
			Note:      wpt.Desc,
		})
	}

	trackPoints := flattenTracks(doc.Tracks)
	preview.GPXStartTime, preview.GPXEndTime = timeBounds(trackPoints, preview.DetectedWaypoints)
	preview.TotalDistanceM, preview.ElevationGainM = trackStats(trackPoints)
	return preview, nil
}

func flattenTracks(tracks []gpxTrack) []gpxPoint {
	var points []gpxPoint
	for _, trk := range tracks {
		for _, seg := range trk.Segments {
			points = append(points, seg.Points...)
		}
	}
	return points
}

// timeBounds finds the earliest and latest usable timestamps, preferring
// track points and falling back to waypoint times for track-less files.
func timeBounds(points []gpxPoint, waypoints []Waypoint) (*time.Time, *time.Time) {
	var start, end *time.Time
	consider := func(t *time.Time) {
		if t == nil {
			return
		}
		if start == nil || t.Before(*start) {
			start = t
		}
		if end == nil || t.After(*end) {
			end = t
		}
	}

	for _, p := range points {
		consider(parseTime(p.Time))
	}
	if start == nil {
		for _, w := range waypoints {
			consider(w.Time)
		}
	}
	return start, end
}

func trackStats(points []gpxPoint) (distanceM, elevationGainM float64) {
	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], points[i]
		distanceM += geo.HaversineKm(prev.Lat, prev.Lon, cur.Lat, cur.Lon) * 1000

		prevEle := parseElevation(prev.Ele)
		curEle := parseElevation(cur.Ele)
		if prevEle != nil && curEle != nil && *curEle > *prevEle {
			elevationGainM += *curEle - *prevEle
		}
	}
	return distanceM, elevationGainM
}

func parseTime(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}

func parseElevation(raw *string) *float64 {
	if raw == nil || *raw == "" {
		return nil
	}
	ele, err := strconv.ParseFloat(strings.TrimSpace(*raw), 64)
	if err != nil {
		return nil
	}
	return &ele
}
