package trip

import (
	"context"
	"testing"
	"time"

	"backend-trailjournal/internal/gpx"

	"github.com/pashagolub/pgxmock/v3"
)

const planGPX = `<?xml version="1.0"?>
<gpx version="1.1">
  <wpt lat="47.10" lon="8.20"><time>2024-06-01T06:00:00Z</time><name>Trailhead</name></wpt>
  <wpt lat="47.20" lon="8.30"><time>2024-06-01T08:30:00Z</time><name>Summit</name></wpt>
  <wpt lat="47.25" lon="8.35"><name>Spring</name></wpt>
</gpx>`

const datelessGPX = `<?xml version="1.0"?>
<gpx version="1.1">
  <wpt lat="47.10" lon="8.20"><name>Trailhead</name></wpt>
</gpx>`

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func TestCreateAndGetTrip(t *testing.T) {
	mock := newMock(t)
	createdAt := time.Now()

	mock.ExpectQuery(`INSERT INTO trips`).
		WithArgs(pgxmock.AnyArg(), "Clariden Traverse", "Glarus Alps", KindTrip,
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), "two day traverse", "user-1").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(createdAt))

	svc := NewService(mock, gpx.NewStore(t.TempDir()))
	trip, err := svc.CreateTrip(context.Background(), Trip{
		Name:        "Clariden Traverse",
		Area:        "Glarus Alps",
		StartDate:   time.Now(),
		EndDate:     time.Now().Add(48 * time.Hour),
		Description: "two day traverse",
		CreatedBy:   "user-1",
	})
	if err != nil {
		t.Fatalf("create trip: %v", err)
	}

	mock.ExpectQuery(`SELECT id, name, area, kind`).
		WithArgs(trip.ID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "area", "kind", "start_date", "end_date", "planned_start_date",
			"description", "created_by", "created_at",
		}).AddRow(trip.ID, trip.Name, trip.Area, trip.Kind, trip.StartDate, trip.EndDate,
			nil, trip.Description, trip.CreatedBy, trip.CreatedAt))

	loaded, err := svc.GetTrip(context.Background(), trip.ID)
	if err != nil {
		t.Fatalf("get trip: %v", err)
	}
	if loaded.ID != trip.ID || loaded.Kind != KindTrip {
		t.Fatalf("unexpected trip loaded")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateAndDeleteTrip(t *testing.T) {
	mock := newMock(t)
	svc := NewService(mock, gpx.NewStore(t.TempDir()))

	mock.ExpectQuery(`SELECT id, name, area, kind`).
		WithArgs("trip-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "area", "kind", "start_date", "end_date", "planned_start_date",
			"description", "created_by", "created_at",
		}).AddRow("trip-1", "Old", "Uri Alps", KindPlan, time.Now(), time.Now(), nil, "d", "user-1", time.Now()))

	mock.ExpectExec(`UPDATE trips`).
		WithArgs("trip-1", "New name", "Uri Alps", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), "d").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	updated, err := svc.UpdateTrip(context.Background(), "trip-1", Trip{Name: "New name"})
	if err != nil {
		t.Fatalf("update trip: %v", err)
	}
	if updated.Name != "New name" {
		t.Fatalf("unexpected update")
	}

	mock.ExpectExec(`DELETE FROM trips`).WithArgs("trip-1").WillReturnResult(pgxmock.NewResult("DELETE", 1))
	if err := svc.DeleteTrip(context.Background(), "trip-1"); err != nil {
		t.Fatalf("delete trip: %v", err)
	}
}

func TestImportPlanRelative(t *testing.T) {
	mock := newMock(t)
	files := gpx.NewStore(t.TempDir())
	key, err := files.SaveTemp([]byte(planGPX))
	if err != nil {
		t.Fatalf("save temp: %v", err)
	}

	// three waypoints, three inserts
	for i := 0; i < 3; i++ {
		mock.ExpectExec(`INSERT INTO plan_checkpoints`).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}

	planned := time.Date(2024, 7, 1, 5, 0, 0, 0, time.UTC)
	svc := NewService(mock, files)
	result, err := svc.ImportPlan(context.Background(), "trip-1", ImportRequest{
		Strategy:         "relative",
		PlannedStartDate: &planned,
		TempFileKey:      key,
	})
	if err != nil {
		t.Fatalf("import plan: %v", err)
	}
	if len(result.Checkpoints) != 3 {
		t.Fatalf("expected 3 checkpoints, got %d", len(result.Checkpoints))
	}
	if result.Notice != "" {
		t.Fatalf("unexpected notice %q", result.Notice)
	}

	summit := result.Checkpoints[1]
	if summit.Properties.EstimatedArrival == nil ||
		summit.Properties.EstimatedArrival.Format(time.RFC3339) != "2024-07-01T07:30:00Z" {
		t.Fatalf("unexpected projected arrival")
	}
	if summit.Properties.OffsetSeconds == nil || *summit.Properties.OffsetSeconds != 9000 {
		t.Fatalf("unexpected offset")
	}
	// geometry is [lon, lat]
	if summit.Geometry.Coordinates != [2]float64{8.30, 47.20} {
		t.Fatalf("coordinates transposed: %v", summit.Geometry.Coordinates)
	}

	// the dateless spring degrades instead of failing the batch
	spring := result.Checkpoints[2]
	if spring.Properties.EstimatedArrival != nil || spring.Properties.OffsetSeconds != nil {
		t.Fatalf("expected nil schedule for dateless waypoint")
	}

	// the temp file is consumed
	if _, err := files.LoadTemp(key); err == nil {
		t.Fatalf("expected temp file gone after import")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestImportPlanSelectedIndices(t *testing.T) {
	mock := newMock(t)
	files := gpx.NewStore(t.TempDir())
	key, _ := files.SaveTemp([]byte(planGPX))

	mock.ExpectExec(`INSERT INTO plan_checkpoints`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	planned := time.Date(2024, 7, 1, 5, 0, 0, 0, time.UTC)
	svc := NewService(mock, files)
	result, err := svc.ImportPlan(context.Background(), "trip-1", ImportRequest{
		Strategy:                "relative",
		PlannedStartDate:        &planned,
		SelectedWaypointIndices: []int{1},
		TempFileKey:             key,
	})
	if err != nil {
		t.Fatalf("import plan: %v", err)
	}
	if len(result.Checkpoints) != 1 || result.Checkpoints[0].Properties.Name != "Summit" {
		t.Fatalf("unexpected selection result")
	}
	if result.Checkpoints[0].Properties.OrderIndex != 0 {
		t.Fatalf("order index must follow the filtered slice")
	}
}

func TestImportPlanDatelessFileNotice(t *testing.T) {
	mock := newMock(t)
	files := gpx.NewStore(t.TempDir())
	key, _ := files.SaveTemp([]byte(datelessGPX))

	mock.ExpectExec(`INSERT INTO plan_checkpoints`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	planned := time.Date(2024, 7, 1, 5, 0, 0, 0, time.UTC)
	svc := NewService(mock, files)
	result, err := svc.ImportPlan(context.Background(), "trip-1", ImportRequest{
		Strategy:         "relative",
		PlannedStartDate: &planned,
		TempFileKey:      key,
	})
	if err != nil {
		t.Fatalf("import must partially succeed: %v", err)
	}
	if result.Notice != NoticeNoDates {
		t.Fatalf("expected no-dates notice, got %q", result.Notice)
	}
}

func TestImportPlanNoTimesStrategy(t *testing.T) {
	mock := newMock(t)
	files := gpx.NewStore(t.TempDir())
	key, _ := files.SaveTemp([]byte(planGPX))

	for i := 0; i < 3; i++ {
		mock.ExpectExec(`INSERT INTO plan_checkpoints`).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}

	svc := NewService(mock, files)
	result, err := svc.ImportPlan(context.Background(), "trip-1", ImportRequest{
		Strategy:    "no_times",
		TempFileKey: key,
	})
	if err != nil {
		t.Fatalf("import plan: %v", err)
	}
	for _, cp := range result.Checkpoints {
		if cp.Properties.EstimatedArrival != nil || cp.Properties.OffsetSeconds != nil {
			t.Fatalf("no_times must null all schedule fields")
		}
	}
	if result.Notice != "" {
		t.Fatalf("no notice expected when times were discarded on purpose")
	}
}

func TestImportPlanEmptySelectionHasNoNotice(t *testing.T) {
	mock := newMock(t)
	files := gpx.NewStore(t.TempDir())
	key, _ := files.SaveTemp([]byte(planGPX))

	planned := time.Date(2024, 7, 1, 5, 0, 0, 0, time.UTC)
	svc := NewService(mock, files)
	result, err := svc.ImportPlan(context.Background(), "trip-1", ImportRequest{
		Strategy:                "relative",
		PlannedStartDate:        &planned,
		SelectedWaypointIndices: []int{},
		TempFileKey:             key,
	})
	if err != nil {
		t.Fatalf("import plan: %v", err)
	}
	if len(result.Checkpoints) != 0 {
		t.Fatalf("expected no checkpoints")
	}
	if result.Notice != "" {
		t.Fatalf("a file with nothing selected has no unreadable dates, got %q", result.Notice)
	}
}

func TestImportPlanRejectsUnknownStrategy(t *testing.T) {
	svc := NewService(newMock(t), gpx.NewStore(t.TempDir()))
	_, err := svc.ImportPlan(context.Background(), "trip-1", ImportRequest{Strategy: "clamp", TempFileKey: "k"})
	if err == nil {
		t.Fatalf("expected strategy error")
	}
}

func TestCheckpointsAndTimelineItems(t *testing.T) {
	mock := newMock(t)

	arrival := time.Date(2024, 7, 1, 7, 30, 0, 0, time.UTC)
	offset := 9000
	mock.ExpectQuery(`SELECT id, trip_id, name, note`).
		WithArgs("trip-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "trip_id", "name", "note", "lat", "lng", "elevation_m",
			"estimated_arrival", "time_offset_seconds", "order_index",
		}).
			AddRow("cp-1", "trip-1", "Summit", "", 47.2, 8.3, nil, &arrival, &offset, 0).
			AddRow("cp-2", "trip-1", "Spring", "", 47.25, 8.35, nil, nil, nil, 1))

	svc := NewService(mock, gpx.NewStore(t.TempDir()))
	checkpoints, err := svc.Checkpoints(context.Background(), "trip-1")
	if err != nil {
		t.Fatalf("checkpoints: %v", err)
	}
	if len(checkpoints) != 2 {
		t.Fatalf("expected 2 checkpoints")
	}

	items := TimelineItems(checkpoints)
	if items[0].CapturedAt == nil || items[1].CapturedAt != nil {
		t.Fatalf("unexpected timeline conversion")
	}
	if *items[0].Lat != 47.2 || *items[0].Lon != 8.3 {
		t.Fatalf("unexpected coordinates")
	}
}
