package photo

import (
	"context"

	"backend-trailjournal/internal/db"
	"backend-trailjournal/internal/signal"
	"backend-trailjournal/internal/stream"
	"backend-trailjournal/internal/timeline"

	"github.com/google/uuid"
)

type Service struct {
	db  db.Querier
	hub *stream.Hub
}

func NewService(db db.Querier, hub *stream.Hub) *Service {
	return &Service{db: db, hub: hub}
}

// RegisterUpload records a stored photo and announces it to the trip's
// surfaces. A record without GPS is fine; the map side is simply skipped.
func (s *Service) RegisterUpload(ctx context.Context, input Image) (Image, error) {
	if input.ObjectKey == "" {
		input.ObjectKey = uuid.NewString()
	}
	input.MetadataID = uuid.NewString()

	row := s.db.QueryRow(ctx, `
		INSERT INTO trip_photos (object_key, metadata_id, trip_id, uploaded_by, original_filename, thumb_url, location, captured_at, note, note_title)
		VALUES ($1,$2,$3,$4,$5,$6,
		        CASE WHEN $7::float8 IS NULL OR $8::float8 IS NULL THEN NULL
		             ELSE ST_SetSRID(ST_MakePoint($7,$8), 4326)::geography END,
		        $9,$10,$11)
		RETURNING created_at
	`, input.ObjectKey, input.MetadataID, input.TripID, input.UploadedBy, input.OriginalFilename,
		input.ThumbURL, input.Lng, input.Lat, input.CapturedAt, input.Note, input.NoteTitle)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Image{}, err
	}

	if s.hub != nil {
		s.hub.Publish(input.TripID, signal.ImageUploaded{
			ObjectKey:        input.ObjectKey,
			OriginalFilename: input.OriginalFilename,
			GPS:              gpsOf(input),
			ThumbURL:         input.ThumbURL,
			MetadataID:       input.MetadataID,
		})
	}
	return input, nil
}

func (s *Service) List(ctx context.Context, tripID string) ([]Image, error) {
	rows, err := s.db.Query(ctx, `
		SELECT object_key, metadata_id, trip_id, uploaded_by, original_filename, thumb_url,
		       ST_Y(location::geometry), ST_X(location::geometry), captured_at,
		       COALESCE(note,''), COALESCE(note_title,''), created_at
		FROM trip_photos WHERE trip_id=$1
		ORDER BY created_at
	`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []Image
	for rows.Next() {
		var p Image
		if err := rows.Scan(&p.ObjectKey, &p.MetadataID, &p.TripID, &p.UploadedBy, &p.OriginalFilename,
			&p.ThumbURL, &p.Lat, &p.Lng, &p.CapturedAt, &p.Note, &p.NoteTitle, &p.CreatedAt); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, nil
}

func (s *Service) Get(ctx context.Context, objectKey string) (Image, error) {
	row := s.db.QueryRow(ctx, `
		SELECT object_key, metadata_id, trip_id, uploaded_by, original_filename, thumb_url,
		       ST_Y(location::geometry), ST_X(location::geometry), captured_at,
		       COALESCE(note,''), COALESCE(note_title,''), created_at
		FROM trip_photos WHERE object_key=$1
	`, objectKey)
	var p Image
	if err := row.Scan(&p.ObjectKey, &p.MetadataID, &p.TripID, &p.UploadedBy, &p.OriginalFilename,
		&p.ThumbURL, &p.Lat, &p.Lng, &p.CapturedAt, &p.Note, &p.NoteTitle, &p.CreatedAt); err != nil {
		return Image{}, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, tripID, objectKey string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM trip_photos WHERE trip_id=$1 AND object_key=$2`, tripID, objectKey)
	if err != nil {
		return err
	}
	if s.hub != nil {
		s.hub.Publish(tripID, signal.ImageDeleted{ObjectKey: objectKey})
	}
	return nil
}

func (s *Service) UpdateNote(ctx context.Context, tripID, objectKey, note, noteTitle string) (Image, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE trip_photos
		SET note=$3, note_title=$4
		WHERE trip_id=$1 AND object_key=$2
		RETURNING metadata_id
	`, tripID, objectKey, note, noteTitle)
	var metadataID string
	if err := row.Scan(&metadataID); err != nil {
		return Image{}, err
	}

	if s.hub != nil {
		s.hub.Publish(tripID, signal.PhotoNoteUpdated{
			ObjectKey:  objectKey,
			MetadataID: metadataID,
			Note:       note,
			NoteTitle:  noteTitle,
		})
	}
	return s.Get(ctx, objectKey)
}

// TimelineItems converts photo records into merged-timeline entries.
func TimelineItems(photos []Image) []timeline.Item {
	items := make([]timeline.Item, 0, len(photos))
	for _, p := range photos {
		name := p.OriginalFilename
		if p.NoteTitle != "" {
			name = p.NoteTitle
		}
		items = append(items, timeline.Item{
			Kind:       timeline.KindPhoto,
			ID:         p.ObjectKey,
			Name:       name,
			CapturedAt: p.CapturedAt,
			Lat:        p.Lat,
			Lon:        p.Lng,
			ThumbURL:   p.ThumbURL,
		})
	}
	return items
}

// Records converts photo rows into the denormalized signal payload shape.
func Records(photos []Image) []signal.ImageRecord {
	records := make([]signal.ImageRecord, 0, len(photos))
	for _, p := range photos {
		records = append(records, signal.ImageRecord{
			ObjectKey:        p.ObjectKey,
			MetadataID:       p.MetadataID,
			OriginalFilename: p.OriginalFilename,
			ThumbURL:         p.ThumbURL,
			Lat:              p.Lat,
			Lng:              p.Lng,
			CapturedAt:       p.CapturedAt,
			Note:             p.Note,
			NoteTitle:        p.NoteTitle,
		})
	}
	return records
}

func gpsOf(p Image) *signal.LatLng {
	if p.Lat == nil || p.Lng == nil {
		return nil
	}
	return &signal.LatLng{Latitude: *p.Lat, Longitude: *p.Lng}
}
