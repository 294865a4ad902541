package signal

import "time"

// Kind names the closed set of synchronization signals exchanged between the
// map, gallery and timeline surfaces of one trip.
type Kind string

const (
	KindImageUploaded    Kind = "imageUploadedWithGPS"
	KindImageDeleted     Kind = "imageDeleted"
	KindMapImageSelected Kind = "mapImageSelected"
	KindViewImageDetails Kind = "viewImageDetails"
	KindCenterMapOn      Kind = "centerMapOnLocation"
	KindPhotoNoteUpdated Kind = "photoNoteUpdated"
)

// Signal is an out-of-band notification: created by the surface where a user
// action originates, broadcast once, consumed by zero or more other
// surfaces, never persisted.
type Signal interface {
	Kind() Kind
	Subject() string
}

type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ImageRecord is the denormalized image payload carried by ViewImageDetails.
type ImageRecord struct {
	ObjectKey        string     `json:"object_key"`
	MetadataID       string     `json:"metadata_id"`
	OriginalFilename string     `json:"original_filename"`
	ThumbURL         string     `json:"thumb_url"`
	Lat              *float64   `json:"lat"`
	Lng              *float64   `json:"lng"`
	CapturedAt       *time.Time `json:"captured_at"`
	Note             string     `json:"note"`
	NoteTitle        string     `json:"note_title"`
}

// ImageUploaded announces a finished upload. GPS is nil when the file had no
// usable location; map-side propagation is simply skipped then.
type ImageUploaded struct {
	ObjectKey        string  `json:"object_key"`
	OriginalFilename string  `json:"original_filename"`
	GPS              *LatLng `json:"gps"`
	ThumbURL         string  `json:"thumb_url"`
	MetadataID       string  `json:"metadata_id"`
}

func (s ImageUploaded) Kind() Kind      { return KindImageUploaded }
func (s ImageUploaded) Subject() string { return s.ObjectKey }

type ImageDeleted struct {
	ObjectKey string `json:"object_key"`
}

func (s ImageDeleted) Kind() Kind      { return KindImageDeleted }
func (s ImageDeleted) Subject() string { return s.ObjectKey }

// MapImageSelected is published by the map when a marker is clicked.
type MapImageSelected struct {
	ObjectKey string `json:"object_key"`
}

func (s MapImageSelected) Kind() Kind      { return KindMapImageSelected }
func (s MapImageSelected) Subject() string { return s.ObjectKey }

// ViewImageDetails is published by the gallery viewer when a photo is opened
// full screen.
type ViewImageDetails struct {
	Image ImageRecord `json:"image"`
}

func (s ViewImageDetails) Kind() Kind      { return KindViewImageDetails }
func (s ViewImageDetails) Subject() string { return s.Image.ObjectKey }

// CenterMapOn asks the map to re-center. Selection-for-map-centering is
// distinct from selection-for-viewing, so the viewer never re-opens on it.
// Lat/Lng may be nil; the map falls back to its own marker coordinates.
type CenterMapOn struct {
	ObjectKey string   `json:"object_key"`
	Lat       *float64 `json:"lat"`
	Lng       *float64 `json:"lng"`
	Source    string   `json:"source"`
}

func (s CenterMapOn) Kind() Kind      { return KindCenterMapOn }
func (s CenterMapOn) Subject() string { return s.ObjectKey }

type PhotoNoteUpdated struct {
	ObjectKey  string `json:"object_key"`
	MetadataID string `json:"metadata_id"`
	Note       string `json:"note"`
	NoteTitle  string `json:"note_title"`
}

func (s PhotoNoteUpdated) Kind() Kind      { return KindPhotoNoteUpdated }
func (s PhotoNoteUpdated) Subject() string { return s.ObjectKey }
