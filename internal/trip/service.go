package trip

import (
	"context"
	"time"

	"backend-trailjournal/internal/db"
	"backend-trailjournal/internal/gpx"
	"backend-trailjournal/internal/projection"
	"backend-trailjournal/internal/timeline"

	"github.com/google/uuid"
)

// NoticeNoDates is returned when an import could not derive any schedule
// times; the import still succeeds without them.
const NoticeNoDates = "could not read dates from this file; continuing without them"

type Service struct {
	db    db.Querier
	files *gpx.Store
}

func NewService(db db.Querier, files *gpx.Store) *Service {
	return &Service{db: db, files: files}
}

func (s *Service) CreateTrip(ctx context.Context, input Trip) (Trip, error) {
	input.ID = uuid.NewString()
	if input.Kind == "" {
		input.Kind = KindTrip
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO trips (id, name, area, kind, start_date, end_date, planned_start_date, description, created_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING created_at
	`, input.ID, input.Name, input.Area, input.Kind, timePtr(input.StartDate), timePtr(input.EndDate),
		input.PlannedStartDate, input.Description, input.CreatedBy)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Trip{}, err
	}
	return input, nil
}

func (s *Service) UpdateTrip(ctx context.Context, id string, patch Trip) (Trip, error) {
	trip, err := s.GetTrip(ctx, id)
	if err != nil {
		return Trip{}, err
	}
	if patch.Name != "" {
		trip.Name = patch.Name
	}
	if patch.Area != "" {
		trip.Area = patch.Area
	}
	if !patch.StartDate.IsZero() {
		trip.StartDate = patch.StartDate
	}
	if !patch.EndDate.IsZero() {
		trip.EndDate = patch.EndDate
	}
	if patch.PlannedStartDate != nil {
		trip.PlannedStartDate = patch.PlannedStartDate
	}
	if patch.Description != "" {
		trip.Description = patch.Description
	}

	_, err = s.db.Exec(ctx, `
		UPDATE trips
		SET name=$2, area=$3, start_date=$4, end_date=$5, planned_start_date=$6, description=$7
		WHERE id=$1
	`, trip.ID, trip.Name, trip.Area, timePtr(trip.StartDate), timePtr(trip.EndDate),
		trip.PlannedStartDate, trip.Description)
	if err != nil {
		return Trip{}, err
	}
	return trip, nil
}

func (s *Service) GetTrip(ctx context.Context, id string) (Trip, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, area, kind, start_date, end_date, planned_start_date, description, created_by, created_at
		FROM trips WHERE id=$1
	`, id)
	var trip Trip
	if err := row.Scan(&trip.ID, &trip.Name, &trip.Area, &trip.Kind, &trip.StartDate, &trip.EndDate,
		&trip.PlannedStartDate, &trip.Description, &trip.CreatedBy, &trip.CreatedAt); err != nil {
		return Trip{}, err
	}
	return trip, nil
}

func (s *Service) DeleteTrip(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM trips WHERE id=$1`, id)
	return err
}

// ImportPlan turns a previously previewed GPX upload into persisted plan
// checkpoints. Waypoints with unusable times get nil schedules; the batch
// never fails over a single bad record.
func (s *Service) ImportPlan(ctx context.Context, tripID string, req ImportRequest) (ImportResult, error) {
	strategy, err := projection.ParseStrategy(req.Strategy)
	if err != nil {
		return ImportResult{}, err
	}

	data, err := s.files.LoadTemp(req.TempFileKey)
	if err != nil {
		return ImportResult{}, err
	}
	preview, err := gpx.Parse(data)
	if err != nil {
		return ImportResult{}, err
	}

	selected := projection.Select(preview.DetectedWaypoints, req.SelectedWaypointIndices)
	checkpoints := projection.Schedule(selected, strategy, preview.GPXStartTime, req.PlannedStartDate)

	for _, cp := range checkpoints {
		_, err := s.db.Exec(ctx, `
			INSERT INTO plan_checkpoints (id, trip_id, name, note, location, elevation_m, estimated_arrival, time_offset_seconds, order_index)
			VALUES ($1,$2,$3,$4, ST_SetSRID(ST_MakePoint($5,$6), 4326)::geography, $7,$8,$9,$10)
		`, uuid.NewString(), tripID, cp.Name, cp.Note, cp.Lon, cp.Lat, cp.Elevation,
			cp.EstimatedArrival, cp.OffsetSeconds, cp.OrderIndex)
		if err != nil {
			return ImportResult{}, err
		}
	}

	result := ImportResult{Checkpoints: projection.Features(checkpoints)}
	// an empty selection has no dates to miss; the notice is about waypoints
	// whose times could not be read
	if len(checkpoints) > 0 && strategy != projection.NoTimes && !anyScheduled(checkpoints) {
		result.Notice = NoticeNoDates
	}

	s.files.DeleteTemp(req.TempFileKey)
	return result, nil
}

func (s *Service) Checkpoints(ctx context.Context, tripID string) ([]Checkpoint, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, trip_id, name, note, ST_Y(location::geometry), ST_X(location::geometry),
		       elevation_m, estimated_arrival, time_offset_seconds, order_index
		FROM plan_checkpoints WHERE trip_id=$1
		ORDER BY order_index
	`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checkpoints []Checkpoint
	for rows.Next() {
		var cp Checkpoint
		if err := rows.Scan(&cp.ID, &cp.TripID, &cp.Name, &cp.Note, &cp.Lat, &cp.Lng,
			&cp.ElevationM, &cp.EstimatedArrival, &cp.OffsetSeconds, &cp.OrderIndex); err != nil {
			return nil, err
		}
		checkpoints = append(checkpoints, cp)
	}
	return checkpoints, nil
}

// TimelineItems converts checkpoints into merged-timeline entries; the
// estimated arrival is the chronological key, absent schedules land in the
// no-time bucket.
func TimelineItems(checkpoints []Checkpoint) []timeline.Item {
	items := make([]timeline.Item, 0, len(checkpoints))
	for _, cp := range checkpoints {
		lat, lng := cp.Lat, cp.Lng
		items = append(items, timeline.Item{
			Kind:       timeline.KindWaypoint,
			ID:         cp.ID,
			Name:       cp.Name,
			CapturedAt: cp.EstimatedArrival,
			Lat:        &lat,
			Lon:        &lng,
		})
	}
	return items
}

func anyScheduled(checkpoints []projection.Checkpoint) bool {
	for _, cp := range checkpoints {
		if cp.EstimatedArrival != nil || cp.OffsetSeconds != nil {
			return true
		}
	}
	return false
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
