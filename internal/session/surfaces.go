package session

import (
	"backend-trailjournal/internal/signal"
)

// The map, gallery and timeline surfaces mirror the three independently
// rendered views of one trip. None of them holds a reference to another;
// the trip bus is the only channel between them. Each keeps its own
// highlighted id and clears it the moment the subject disappears, so no
// surface is ever left pointing at removed data.

// MapSurface tracks the marker set and the highlighted marker.
type MapSurface struct {
	bus         *signal.Bus
	markers     map[string]signal.LatLng
	highlighted string

	unsubscribe func()
}

func NewMapSurface(bus *signal.Bus) *MapSurface {
	m := &MapSurface{bus: bus, markers: map[string]signal.LatLng{}}
	m.unsubscribe = bus.Subscribe(m.handle)
	return m
}

func (m *MapSurface) Close()              { m.unsubscribe() }
func (m *MapSurface) Highlighted() string { return m.highlighted }

func (m *MapSurface) HasMarker(objectKey string) bool {
	_, ok := m.markers[objectKey]
	return ok
}

// ClickMarker is the user acting on the map: highlight locally and tell the
// other surfaces.
func (m *MapSurface) ClickMarker(objectKey string) {
	m.highlighted = objectKey
	m.bus.Publish(signal.MapImageSelected{ObjectKey: objectKey})
}

func (m *MapSurface) handle(sig signal.Signal) {
	switch s := sig.(type) {
	case signal.ImageUploaded:
		// a new marker appears without a full reload; no GPS, no marker
		if s.GPS != nil {
			m.markers[s.ObjectKey] = *s.GPS
		}
	case signal.ImageDeleted:
		delete(m.markers, s.ObjectKey)
		if m.highlighted == s.ObjectKey {
			m.highlighted = ""
		}
	case signal.CenterMapOn:
		if _, ok := m.markers[s.ObjectKey]; ok {
			m.highlighted = s.ObjectKey
		}
	}
}

// GallerySurface tracks the loaded photo records, the highlighted thumbnail
// and the full-screen viewer.
type GallerySurface struct {
	bus         *signal.Bus
	items       []signal.ImageRecord
	highlighted string
	viewerOpen  string

	// reload re-fetches the photo list when a selection arrives for an item
	// that is not currently loaded (panel was collapsed, upload still in
	// flight). May be nil.
	reload func()

	unsubscribe func()
}

func NewGallerySurface(bus *signal.Bus, reload func()) *GallerySurface {
	g := &GallerySurface{bus: bus, reload: reload}
	g.unsubscribe = bus.Subscribe(g.handle)
	return g
}

func (g *GallerySurface) Close()              { g.unsubscribe() }
func (g *GallerySurface) Highlighted() string { return g.highlighted }
func (g *GallerySurface) ViewerOpen() string  { return g.viewerOpen }

func (g *GallerySurface) SetItems(items []signal.ImageRecord) { g.items = items }

func (g *GallerySurface) Items() []signal.ImageRecord { return g.items }

func (g *GallerySurface) contains(objectKey string) bool {
	for _, item := range g.items {
		if item.ObjectKey == objectKey {
			return true
		}
	}
	return false
}

// SelectThumbnail is the user clicking a thumbnail: highlight and ask the
// map to re-center. It never opens the viewer; centering must not fight an
// already-open full-screen viewer.
func (g *GallerySurface) SelectThumbnail(objectKey string) {
	g.highlighted = objectKey
	g.bus.Publish(g.centerSignal(objectKey, "gallery"))
}

// OpenViewer opens the full-screen viewer on a record.
func (g *GallerySurface) OpenViewer(record signal.ImageRecord) {
	g.viewerOpen = record.ObjectKey
	g.bus.Publish(signal.ViewImageDetails{Image: record})
}

// SelectInViewer is the user clicking a photo inside the viewer: the map
// re-centers while the viewer stays open.
func (g *GallerySurface) SelectInViewer(objectKey string) {
	g.highlighted = objectKey
	g.bus.Publish(g.centerSignal(objectKey, "viewer"))
}

func (g *GallerySurface) centerSignal(objectKey, source string) signal.CenterMapOn {
	sig := signal.CenterMapOn{ObjectKey: objectKey, Source: source}
	for _, item := range g.items {
		if item.ObjectKey == objectKey {
			sig.Lat, sig.Lng = item.Lat, item.Lng
			break
		}
	}
	return sig
}

func (g *GallerySurface) handle(sig signal.Signal) {
	switch s := sig.(type) {
	case signal.MapImageSelected:
		if !g.contains(s.ObjectKey) && g.reload != nil {
			g.reload()
		}
		g.highlighted = s.ObjectKey
	case signal.ImageUploaded:
		// append without a full reload
		g.items = append(g.items, signal.ImageRecord{
			ObjectKey:        s.ObjectKey,
			MetadataID:       s.MetadataID,
			OriginalFilename: s.OriginalFilename,
			ThumbURL:         s.ThumbURL,
			Lat:              gpsLat(s.GPS),
			Lng:              gpsLng(s.GPS),
		})
	case signal.ImageDeleted:
		g.remove(s.ObjectKey)
	case signal.PhotoNoteUpdated:
		for i := range g.items {
			if g.items[i].ObjectKey == s.ObjectKey {
				g.items[i].Note = s.Note
				g.items[i].NoteTitle = s.NoteTitle
			}
		}
	}
}

func (g *GallerySurface) remove(objectKey string) {
	for i, item := range g.items {
		if item.ObjectKey == objectKey {
			g.items = append(g.items[:i:i], g.items[i+1:]...)
			break
		}
	}
	if g.highlighted == objectKey {
		g.highlighted = ""
	}
	if g.viewerOpen == objectKey {
		g.viewerOpen = ""
	}
}

// TimelineSurface tracks the highlighted entry of the merged chronological
// view and scrolls it into view on remote selections.
type TimelineSurface struct {
	bus         *signal.Bus
	highlighted string

	// scrollTo brings the highlighted entry into view. May be nil.
	scrollTo func(objectKey string)
	// loaded reports whether an id is present in the merged sequence;
	// reload re-derives it when a selection references an unloaded id.
	loaded func(objectKey string) bool
	reload func()

	unsubscribe func()
}

func NewTimelineSurface(bus *signal.Bus, loaded func(string) bool, reload func(), scrollTo func(string)) *TimelineSurface {
	t := &TimelineSurface{bus: bus, loaded: loaded, reload: reload, scrollTo: scrollTo}
	t.unsubscribe = bus.Subscribe(t.handle)
	return t
}

func (t *TimelineSurface) Close()              { t.unsubscribe() }
func (t *TimelineSurface) Highlighted() string { return t.highlighted }

// SelectEntry is the user clicking a timeline entry: the map re-centers,
// nothing else opens.
func (t *TimelineSurface) SelectEntry(objectKey string) {
	t.highlighted = objectKey
	t.bus.Publish(signal.CenterMapOn{ObjectKey: objectKey, Source: "timeline"})
}

func (t *TimelineSurface) handle(sig signal.Signal) {
	switch s := sig.(type) {
	case signal.MapImageSelected:
		if t.loaded != nil && !t.loaded(s.ObjectKey) && t.reload != nil {
			t.reload()
		}
		t.highlighted = s.ObjectKey
		if t.scrollTo != nil {
			t.scrollTo(s.ObjectKey)
		}
	case signal.ImageDeleted:
		if t.highlighted == s.ObjectKey {
			t.highlighted = ""
		}
	}
}

func gpsLat(gps *signal.LatLng) *float64 {
	if gps == nil {
		return nil
	}
	return &gps.Latitude
}

func gpsLng(gps *signal.LatLng) *float64 {
	if gps == nil {
		return nil
	}
	return &gps.Longitude
}
