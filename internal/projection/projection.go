package projection

import (
	"fmt"
	"math"
	"time"

	"backend-trailjournal/internal/gpx"
)

// Strategy governs how GPX timestamps become planned-trip timestamps.
type Strategy string

const (
	// Relative shifts every waypoint time by the gap between the GPX track
	// start and the user-chosen planned start.
	Relative Strategy = "relative"
	// Absolute keeps the original waypoint timestamps verbatim.
	Absolute Strategy = "absolute"
	// NoTimes discards all temporal information from the import.
	NoTimes Strategy = "no_times"
)

func ParseStrategy(raw string) (Strategy, error) {
	switch Strategy(raw) {
	case Relative, Absolute, NoTimes:
		return Strategy(raw), nil
	}
	return "", fmt.Errorf("unknown import strategy %q", raw)
}

// Checkpoint is a waypoint carrying a projected schedule, the unit persisted
// into a plan.
type Checkpoint struct {
	Lat              float64    `json:"lat"`
	Lon              float64    `json:"lon"`
	Elevation        *float64   `json:"ele"`
	Name             string     `json:"name"`
	Note             string     `json:"note"`
	EstimatedArrival *time.Time `json:"estimated_arrival"`
	OffsetSeconds    *int       `json:"time_offset_seconds"`
	OrderIndex       int        `json:"order_index"`
}

// ProjectTime maps a waypoint timestamp onto the planned schedule, preserving
// the exact offset from the track start. A waypoint recorded before the track
// start yields a target before targetStart; that passes through unchanged.
// Returns nil when any input is missing.
func ProjectTime(waypointTime, gpxStart, targetStart *time.Time) *time.Time {
	if waypointTime == nil || gpxStart == nil || targetStart == nil {
		return nil
	}
	delta := waypointTime.Sub(*gpxStart)
	projected := targetStart.Add(delta)
	return &projected
}

// OffsetSeconds reports the waypoint's distance from the track start in whole
// seconds, rounded to nearest; nil when either input is missing.
func OffsetSeconds(waypointTime, gpxStart *time.Time) *int {
	if waypointTime == nil || gpxStart == nil {
		return nil
	}
	secs := int(math.Round(waypointTime.Sub(*gpxStart).Seconds()))
	return &secs
}

// Schedule projects a batch of waypoints under one strategy. Records without
// usable times keep nil schedule fields instead of failing the batch.
func Schedule(waypoints []gpx.Waypoint, strategy Strategy, gpxStart, targetStart *time.Time) []Checkpoint {
	checkpoints := make([]Checkpoint, 0, len(waypoints))
	for i, wp := range waypoints {
		cp := Checkpoint{
			Lat:        wp.Lat,
			Lon:        wp.Lon,
			Elevation:  wp.Elevation,
			Name:       wp.Name,
			Note:       wp.Note,
			OrderIndex: i,
		}

		switch strategy {
		case Relative:
			cp.EstimatedArrival = ProjectTime(wp.Time, gpxStart, targetStart)
			cp.OffsetSeconds = OffsetSeconds(wp.Time, gpxStart)
		case Absolute:
			cp.EstimatedArrival = wp.Time
			// offset relative to track start is still reported for display
			cp.OffsetSeconds = OffsetSeconds(wp.Time, gpxStart)
		case NoTimes:
			// both fields stay nil regardless of source data
		}

		checkpoints = append(checkpoints, cp)
	}
	return checkpoints
}

// Select returns the waypoints at the given indices, in index order, skipping
// indices that fall outside the slice.
func Select(waypoints []gpx.Waypoint, indices []int) []gpx.Waypoint {
	if indices == nil {
		return waypoints
	}
	selected := make([]gpx.Waypoint, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(waypoints) {
			continue
		}
		selected = append(selected, waypoints[idx])
	}
	return selected
}
