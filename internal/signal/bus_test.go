package signal

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	bus := NewBus()

	var got []Kind
	bus.Subscribe(func(s Signal) { got = append(got, s.Kind()) })
	bus.Subscribe(func(s Signal) { got = append(got, s.Kind()) })

	bus.Publish(ImageDeleted{ObjectKey: "x"})
	assert.Equal(t, []Kind{KindImageDeleted, KindImageDeleted}, got)
}

func TestDeliveryPreservesPublishOrder(t *testing.T) {
	bus := NewBus()

	var seen []string
	bus.Subscribe(func(s Signal) {
		seen = append(seen, string(s.Kind())+":"+s.Subject())
	})

	bus.Publish(MapImageSelected{ObjectKey: "a"})
	bus.Publish(ImageDeleted{ObjectKey: "a"})

	// the selection published first is observed first
	require.Equal(t, []string{"mapImageSelected:a", "imageDeleted:a"}, seen)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus()

	var calls int
	unsubscribe := bus.Subscribe(func(Signal) { calls++ })

	bus.Publish(ImageDeleted{ObjectKey: "x"})
	unsubscribe()
	bus.Publish(ImageDeleted{ObjectKey: "y"})

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, bus.SubscriberCount())

	// double unsubscribe is harmless
	unsubscribe()
}

func TestUnmountedSubscriberMissesSignals(t *testing.T) {
	bus := NewBus()

	bus.Publish(ImageUploaded{ObjectKey: "early"})

	var got []string
	bus.Subscribe(func(s Signal) { got = append(got, s.Subject()) })
	bus.Publish(ImageUploaded{ObjectKey: "late"})

	// no replay of signals published before subscribing
	assert.Equal(t, []string{"late"}, got)
}

func TestConcurrentPublishesDoNotInterleave(t *testing.T) {
	bus := NewBus()

	depth := 0
	maxDepth := 0
	bus.Subscribe(func(Signal) {
		depth++
		if depth > maxDepth {
			maxDepth = depth
		}
		depth--
	})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Publish(MapImageSelected{ObjectKey: "x"})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxDepth)
}

func TestSignalSubjects(t *testing.T) {
	lat, lng := 46.5, 8.0
	cases := []struct {
		sig  Signal
		kind Kind
		id   string
	}{
		{ImageUploaded{ObjectKey: "k1", GPS: &LatLng{Latitude: lat, Longitude: lng}}, KindImageUploaded, "k1"},
		{ImageDeleted{ObjectKey: "k2"}, KindImageDeleted, "k2"},
		{MapImageSelected{ObjectKey: "k3"}, KindMapImageSelected, "k3"},
		{ViewImageDetails{Image: ImageRecord{ObjectKey: "k4"}}, KindViewImageDetails, "k4"},
		{CenterMapOn{ObjectKey: "k5", Lat: &lat, Lng: &lng, Source: "gallery"}, KindCenterMapOn, "k5"},
		{PhotoNoteUpdated{ObjectKey: "k6", Note: "n"}, KindPhotoNoteUpdated, "k6"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.kind, tc.sig.Kind())
		assert.Equal(t, tc.id, tc.sig.Subject())
	}
}
