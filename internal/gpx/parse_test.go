package gpx

import (
	"testing"
	"time"
)

const sampleGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test">
  <wpt lat="47.10" lon="8.20">
    <ele>1200.5</ele>
    <time>2024-06-01T06:00:00Z</time>
    <name>Trailhead</name>
    <desc>Parking below the hut</desc>
  </wpt>
  <wpt lat="47.20" lon="8.30">
    <time>not-a-timestamp</time>
    <name>Broken clock</name>
  </wpt>
  <trk>
    <trkseg>
      <trkpt lat="47.10" lon="8.20"><ele>1200</ele><time>2024-06-01T06:00:00Z</time></trkpt>
      <trkpt lat="47.15" lon="8.25"><ele>1450</ele><time>2024-06-01T07:10:00Z</time></trkpt>
      <trkpt lat="47.20" lon="8.30"><ele>1400</ele><time>2024-06-01T08:30:00Z</time></trkpt>
    </trkseg>
  </trk>
</gpx>`

func TestParseWaypointsAndBounds(t *testing.T) {
	preview, err := Parse([]byte(sampleGPX))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if len(preview.DetectedWaypoints) != 2 {
		t.Fatalf("expected 2 waypoints, got %d", len(preview.DetectedWaypoints))
	}

	first := preview.DetectedWaypoints[0]
	if first.Name != "Trailhead" || first.Note != "Parking below the hut" {
		t.Fatalf("unexpected first waypoint: %+v", first)
	}
	if first.Time == nil || first.Time.Format(time.RFC3339) != "2024-06-01T06:00:00Z" {
		t.Fatalf("unexpected first waypoint time")
	}
	if first.Elevation == nil || *first.Elevation != 1200.5 {
		t.Fatalf("unexpected elevation")
	}

	// corrupt <time> degrades to nil, never an error
	if preview.DetectedWaypoints[1].Time != nil {
		t.Fatalf("expected nil time for unparsable timestamp")
	}

	if preview.GPXStartTime == nil || preview.GPXStartTime.Format(time.RFC3339) != "2024-06-01T06:00:00Z" {
		t.Fatalf("unexpected start time")
	}
	if preview.GPXEndTime == nil || preview.GPXEndTime.Format(time.RFC3339) != "2024-06-01T08:30:00Z" {
		t.Fatalf("unexpected end time")
	}

	if preview.TotalDistanceM < 10000 || preview.TotalDistanceM > 20000 {
		t.Fatalf("unexpected distance: %v", preview.TotalDistanceM)
	}
	// only the climbing segment counts
	if preview.ElevationGainM != 250 {
		t.Fatalf("unexpected elevation gain: %v", preview.ElevationGainM)
	}
}

func TestParseTracklessFileUsesWaypointBounds(t *testing.T) {
	const wptOnly = `<gpx version="1.1"><wpt lat="1" lon="2"><time>2024-06-01T09:00:00Z</time></wpt></gpx>`
	preview, err := Parse([]byte(wptOnly))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if preview.GPXStartTime == nil || preview.GPXEndTime == nil {
		t.Fatalf("expected waypoint-derived bounds")
	}
}

func TestParseRejectsNonGPX(t *testing.T) {
	if _, err := Parse([]byte(`{"not":"xml"}`)); err != ErrNotGPX {
		t.Fatalf("expected ErrNotGPX, got %v", err)
	}
	if _, err := Parse([]byte(`<kml></kml>`)); err != ErrNotGPX {
		t.Fatalf("expected ErrNotGPX for wrong root, got %v", err)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	key, err := store.SaveTemp([]byte(sampleGPX))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := store.LoadTemp(key)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(data) != sampleGPX {
		t.Fatalf("round trip mismatch")
	}

	if _, err := store.LoadTemp("../escape"); err == nil {
		t.Fatalf("expected error for traversal key")
	}

	store.DeleteTemp(key)
	if _, err := store.LoadTemp(key); err == nil {
		t.Fatalf("expected error after delete")
	}
}
