package photo

import "time"

// Image is one geotagged photo record of a trip. Lat/Lng and CapturedAt stay
// nil when the file carried no usable EXIF data; such records still render,
// they only skip the map and sort into the timeline's no-time bucket.
type Image struct {
	ObjectKey        string     `json:"object_key"`
	MetadataID       string     `json:"metadata_id"`
	TripID           string     `json:"trip_id"`
	UploadedBy       string     `json:"uploaded_by"`
	OriginalFilename string     `json:"original_filename"`
	ThumbURL         string     `json:"thumb_url"`
	Lat              *float64   `json:"lat"`
	Lng              *float64   `json:"lng"`
	CapturedAt       *time.Time `json:"captured_at"`
	Note             string     `json:"note"`
	NoteTitle        string     `json:"note_title"`
	CreatedAt        time.Time  `json:"created_at"`
}
