package viewport

// LayoutMode is how the timeline panel is presented at the current viewport
// width.
type LayoutMode string

const (
	// Side docks the timeline next to the map.
	Side LayoutMode = "side"
	// Overlay floats the timeline over the map.
	Overlay LayoutMode = "overlay"
	// Sheet slides the timeline up from the bottom on narrow screens.
	Sheet LayoutMode = "sheet"
)

const (
	sideMinWidth    = 1100
	overlayMinWidth = 640
)

func modeForWidth(width int) LayoutMode {
	switch {
	case width >= sideMinWidth:
		return Side
	case width >= overlayMinWidth:
		return Overlay
	default:
		return Sheet
	}
}

// Layout tracks the panel mode and the timeline-open flag. Mode transitions
// reconcile the flag: entering Side forces the timeline open, leaving Side
// for a narrower mode forces it closed. A wide layout can never show a
// hidden side panel and a narrow one can never keep half the screen occupied.
type Layout struct {
	Mode         LayoutMode
	TimelineOpen bool
}

func NewLayout(width int) Layout {
	mode := modeForWidth(width)
	return Layout{Mode: mode, TimelineOpen: mode == Side}
}

// Apply moves the layout to the mode for the given width and reports whether
// the map canvas dimensions changed, i.e. whether its rendering size must be
// invalidated.
func (l *Layout) Apply(width int) (sizeChanged bool) {
	next := modeForWidth(width)
	if next == l.Mode {
		return false
	}

	switch {
	case next == Side:
		l.TimelineOpen = true
	case l.Mode == Side:
		l.TimelineOpen = false
	}
	l.Mode = next
	return true
}

// Toggle flips the timeline-open flag in the modes where the user controls
// it; in Side mode the panel stays open. Reports whether the map size
// changed as a result.
func (l *Layout) Toggle() (sizeChanged bool) {
	if l.Mode == Side {
		return false
	}
	l.TimelineOpen = !l.TimelineOpen
	return l.Mode == Overlay
}
