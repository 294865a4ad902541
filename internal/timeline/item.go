package timeline

import "time"

type Kind string

const (
	KindPhoto    Kind = "photo"
	KindWaypoint Kind = "waypoint"
)

// Item is one entry of the merged trip timeline. CapturedAt is nil when the
// capture time is unknown; such items sort after everything with a known time.
type Item struct {
	Kind       Kind       `json:"type"`
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	CapturedAt *time.Time `json:"captured_at"`
	Lat        *float64   `json:"lat"`
	Lon        *float64   `json:"lon"`
	ThumbURL   string     `json:"thumb_url,omitempty"`
}

// ParseCaptureTime normalizes a raw timestamp into the merged-timeline shape.
// An unparsable value (e.g. a corrupt EXIF field) lands in the nil-time
// bucket rather than failing the record.
func ParseCaptureTime(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006:01:02 15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			utc := t.UTC()
			return &utc
		}
	}
	return nil
}
