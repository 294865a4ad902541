package session

import (
	"sync"

	"backend-trailjournal/internal/signal"
	"backend-trailjournal/internal/timeline"
	"backend-trailjournal/internal/viewport"
)

// Session is the composition root for one open trip: it owns the bus the
// surfaces communicate over, the derived timeline store, and the viewport
// coordinator, giving every subscription a clear lifecycle.
type Session struct {
	mu sync.Mutex

	tripID     string
	generation uint64

	Bus      *signal.Bus
	Store    *timeline.Store
	Map      *MapSurface
	Gallery  *GallerySurface
	Timeline *TimelineSurface
	Viewport *viewport.Coordinator

	filter   func(string)
	debounce *timeline.Debouncer

	unsubscribeStore func()
}

type Options struct {
	Width    int
	Reload   func()
	ScrollTo func(objectKey string)
	Camera   func(viewport.Command)
	// Filter receives the settled search query after typing pauses.
	Filter func(query string)
}

func New(tripID string, opts Options) *Session {
	bus := signal.NewBus()
	store := timeline.NewStore()

	s := &Session{
		tripID:   tripID,
		Bus:      bus,
		Store:    store,
		filter:   opts.Filter,
		debounce: timeline.NewDebouncer(timeline.DefaultDebounce),
	}
	s.Map = NewMapSurface(bus)
	s.Gallery = NewGallerySurface(bus, opts.Reload)
	s.Timeline = NewTimelineSurface(bus, store.Contains, opts.Reload, opts.ScrollTo)
	s.Viewport = viewport.NewCoordinator(bus, opts.Width, opts.Camera)

	// the store is itself a subscriber: deletes drop out of the merged
	// sequence, uploads append without a reload
	s.unsubscribeStore = bus.Subscribe(s.applyToStore)
	return s
}

func (s *Session) TripID() string { return s.tripID }

// SetQuery debounces rapid typing in the search box; only the last query in
// a burst reaches the filter.
func (s *Session) SetQuery(query string) {
	if s.filter == nil {
		return
	}
	s.debounce.Trigger(func() { s.filter(query) })
}

// Close detaches every subscriber. Signals published afterwards are lost by
// design; a reopened session re-fetches instead of replaying.
func (s *Session) Close() {
	s.debounce.Stop()
	s.Map.Close()
	s.Gallery.Close()
	s.Timeline.Close()
	s.Viewport.Close()
	s.unsubscribeStore()
}

func (s *Session) applyToStore(sig signal.Signal) {
	switch v := sig.(type) {
	case signal.ImageDeleted:
		s.Store.RemoveByID(v.ObjectKey)
	case signal.ImageUploaded:
		s.Store.AppendPhoto(timeline.Item{
			Kind:     timeline.KindPhoto,
			ID:       v.ObjectKey,
			Name:     v.OriginalFilename,
			ThumbURL: v.ThumbURL,
			Lat:      gpsLat(v.GPS),
			Lon:      gpsLng(v.GPS),
		})
	}
}

// Begin marks a navigation to a trip and returns the fetch generation to
// capture before starting loads for it.
func (s *Session) Begin(tripID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tripID = tripID
	s.generation++
	return s.generation
}

// Current reports whether results captured under gen are still wanted.
// Responses for a trip the user has navigated away from are discarded.
func (s *Session) Current(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gen == s.generation
}

// DeliverPhotos installs a fetched photo list unless it is stale.
func (s *Session) DeliverPhotos(gen uint64, records []signal.ImageRecord, items []timeline.Item) bool {
	if !s.Current(gen) {
		return false
	}
	s.Gallery.SetItems(records)
	s.Store.SetPhotos(items)
	return true
}

// DeliverWaypoints installs a fetched waypoint list unless it is stale.
func (s *Session) DeliverWaypoints(gen uint64, items []timeline.Item) bool {
	if !s.Current(gen) {
		return false
	}
	s.Store.SetWaypoints(items)
	return true
}
