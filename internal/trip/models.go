package trip

import (
	"time"

	"backend-trailjournal/internal/projection"
)

const (
	// KindTrip is a completed outing with photos and a recorded track.
	KindTrip = "trip"
	// KindPlan is a future outing carrying a projected schedule.
	KindPlan = "plan"
)

type Trip struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Area             string     `json:"area"`
	Kind             string     `json:"kind"`
	StartDate        time.Time  `json:"start_date"`
	EndDate          time.Time  `json:"end_date"`
	PlannedStartDate *time.Time `json:"planned_start_date"`
	Description      string     `json:"description"`
	CreatedBy        string     `json:"created_by"`
	CreatedAt        time.Time  `json:"created_at"`
}

// Checkpoint is a persisted plan feature: a GPX waypoint carrying its
// projected schedule.
type Checkpoint struct {
	ID               string     `json:"id"`
	TripID           string     `json:"trip_id"`
	Name             string     `json:"name"`
	Note             string     `json:"note"`
	Lat              float64    `json:"lat"`
	Lng              float64    `json:"lng"`
	ElevationM       *float64   `json:"elevation_m"`
	EstimatedArrival *time.Time `json:"estimated_arrival"`
	OffsetSeconds    *int       `json:"time_offset_seconds"`
	OrderIndex       int        `json:"order_index"`
}

// ImportRequest is the plan-import payload: which uploaded file, which
// waypoints, and how their timestamps become the planned schedule.
type ImportRequest struct {
	Strategy                string     `json:"strategy"`
	PlannedStartDate        *time.Time `json:"planned_start_date"`
	SelectedWaypointIndices []int      `json:"selected_waypoint_indices"`
	TempFileKey             string     `json:"temp_file_key"`
}

type ImportResult struct {
	Checkpoints []projection.CheckpointFeature `json:"checkpoints"`
	Notice      string                         `json:"notice,omitempty"`
}
