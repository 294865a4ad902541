package gpx

import "time"

// Waypoint is a single point lifted out of an uploaded GPX file.
// Time and Elevation stay nil when the source element is absent or unparsable.
type Waypoint struct {
	Lat       float64    `json:"lat"`
	Lon       float64    `json:"lon"`
	Elevation *float64   `json:"ele"`
	Time      *time.Time `json:"time"`
	Name      string     `json:"name"`
	Note      string     `json:"note"`
}

// Preview is the ingestion result returned to the client before import.
type Preview struct {
	GPXStartTime      *time.Time `json:"gpx_start_time"`
	GPXEndTime        *time.Time `json:"gpx_end_time"`
	DetectedWaypoints []Waypoint `json:"detected_waypoints"`
	TotalDistanceM    float64    `json:"total_distance_m"`
	ElevationGainM    float64    `json:"total_elevation_gain_m"`
	TempFileKey       string     `json:"temp_file_key"`
}
