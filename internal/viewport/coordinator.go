package viewport

import "backend-trailjournal/internal/signal"

// CommandKind is the camera instruction sent to the map client.
type CommandKind string

const (
	// CmdCenter moves the camera to a coordinate.
	CmdCenter CommandKind = "center"
	// CmdInvalidateSize tells the map to re-measure its pixel dimensions
	// after a layout change.
	CmdInvalidateSize CommandKind = "invalidate_size"
)

type Command struct {
	Kind      CommandKind `json:"kind"`
	ObjectKey string      `json:"object_key,omitempty"`
	Lat       float64     `json:"lat,omitempty"`
	Lng       float64     `json:"lng,omitempty"`
	Source    string      `json:"source,omitempty"`
}

// Coordinator translates synchronization signals and layout changes into
// camera commands. It never throws and never moves the camera to an
// undefined location: a re-center request for a subject without coordinates
// is a no-op.
type Coordinator struct {
	layout Layout
	coords map[string]signal.LatLng
	sink   func(Command)

	unsubscribe func()
}

// NewCoordinator attaches to the trip bus. sink receives the resulting
// camera commands; a nil sink discards them.
func NewCoordinator(bus *signal.Bus, width int, sink func(Command)) *Coordinator {
	c := &Coordinator{
		layout: NewLayout(width),
		coords: map[string]signal.LatLng{},
		sink:   sink,
	}
	if bus != nil {
		c.unsubscribe = bus.Subscribe(c.handle)
	}
	return c
}

func (c *Coordinator) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}

func (c *Coordinator) Layout() Layout { return c.layout }

// Resize applies a new viewport width; a mode transition invalidates the map
// rendering size.
func (c *Coordinator) Resize(width int) {
	if c.layout.Apply(width) {
		c.emit(Command{Kind: CmdInvalidateSize})
	}
}

// ToggleTimeline flips the panel where allowed; an overlay resize changes
// the map's pixel dimensions.
func (c *Coordinator) ToggleTimeline() {
	if c.layout.Toggle() {
		c.emit(Command{Kind: CmdInvalidateSize})
	}
}

func (c *Coordinator) handle(sig signal.Signal) {
	switch s := sig.(type) {
	case signal.ImageUploaded:
		if s.GPS != nil {
			c.coords[s.ObjectKey] = *s.GPS
		}
	case signal.ImageDeleted:
		delete(c.coords, s.ObjectKey)
	case signal.CenterMapOn:
		c.center(s)
	}
}

func (c *Coordinator) center(s signal.CenterMapOn) {
	lat, lng := s.Lat, s.Lng
	if lat == nil || lng == nil {
		known, ok := c.coords[s.ObjectKey]
		if !ok {
			return
		}
		lat, lng = &known.Latitude, &known.Longitude
	}
	c.emit(Command{Kind: CmdCenter, ObjectKey: s.ObjectKey, Lat: *lat, Lng: *lng, Source: s.Source})
}

func (c *Coordinator) emit(cmd Command) {
	if c.sink != nil {
		c.sink(cmd)
	}
}
