package timeline

import "sync"

// Store holds the derived merged sequence for one trip. The photo and
// waypoint lists are the authoritative inputs; the merged slice is memoized
// and recomputed only when one of the source versions moves, never mutated
// in place.
type Store struct {
	mu sync.Mutex

	photos    []Item
	waypoints []Item

	photoVersion    uint64
	waypointVersion uint64

	mergedPhotoV    uint64
	mergedWaypointV uint64
	merged          []Item
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) SetPhotos(photos []Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.photos = photos
	s.photoVersion++
}

func (s *Store) SetWaypoints(waypoints []Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.waypoints = waypoints
	s.waypointVersion++
}

// RemoveByID drops an item from whichever source list holds it.
func (s *Store) RemoveByID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if filtered, changed := without(s.photos, id); changed {
		s.photos = filtered
		s.photoVersion++
	}
	if filtered, changed := without(s.waypoints, id); changed {
		s.waypoints = filtered
		s.waypointVersion++
	}
}

// AppendPhoto adds a single freshly-uploaded item without a full reload.
func (s *Store) AppendPhoto(item Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.photos = append(s.photos, item)
	s.photoVersion++
}

// Items returns a copy of the merged sequence, recomputing only when a
// source changed. Callers may reorder or truncate the result freely.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	merged := s.items()
	out := make([]Item, len(merged))
	copy(out, merged)
	return out
}

// items returns the memoized slice; callers must hold s.mu and not mutate it.
func (s *Store) items() []Item {
	if s.merged == nil || s.mergedPhotoV != s.photoVersion || s.mergedWaypointV != s.waypointVersion {
		s.merged = Merge(s.photos, s.waypoints)
		s.mergedPhotoV = s.photoVersion
		s.mergedWaypointV = s.waypointVersion
	}
	return s.merged
}

// Contains reports whether an item with the given id is currently loaded.
func (s *Store) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items() {
		if item.ID == id {
			return true
		}
	}
	return false
}

func without(items []Item, id string) ([]Item, bool) {
	for i, item := range items {
		if item.ID == id {
			filtered := make([]Item, 0, len(items)-1)
			filtered = append(filtered, items[:i]...)
			filtered = append(filtered, items[i+1:]...)
			return filtered, true
		}
	}
	return items, false
}
