package stream

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"backend-trailjournal/internal/signal"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Envelope is the wire form of a signal sent to websocket clients.
type Envelope struct {
	Kind    signal.Kind     `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// redisFrame wraps an envelope on the redis channel. Origin lets an instance
// drop its own publishes, which it has already fanned out locally.
type redisFrame struct {
	Origin   string          `json:"origin"`
	Envelope json.RawMessage `json:"envelope"`
}

// Hub routes synchronization signals: each trip has a bus for in-process
// subscribers, and every signal is fanned out to that trip's websocket
// clients, with redis bridging other instances. A client that is not
// connected simply misses the signal; there is no replay.
type Hub struct {
	id      string
	redis   *redis.Client
	buses   map[string]*signal.Bus
	clients map[string]map[*Client]struct{}
	mu      sync.RWMutex
}

type Client struct {
	TripID string
	Send   chan []byte
}

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		id:      uuid.NewString(),
		redis:   redisClient,
		buses:   map[string]*signal.Bus{},
		clients: map[string]map[*Client]struct{}{},
	}

	if redisClient != nil {
		go h.subscribeRedis()
	}
	return h
}

// Bus returns the signal bus for a trip, creating it on first use.
func (h *Hub) Bus(tripID string) *signal.Bus {
	h.mu.Lock()
	defer h.mu.Unlock()
	bus, ok := h.buses[tripID]
	if !ok {
		bus = signal.NewBus()
		h.buses[tripID] = bus
	}
	return bus
}

func (h *Hub) Register(tripID string) *Client {
	client := &Client{
		TripID: tripID,
		Send:   make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[tripID] == nil {
		h.clients[tripID] = map[*Client]struct{}{}
	}
	h.clients[tripID][client] = struct{}{}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if tripClients, ok := h.clients[client.TripID]; ok {
		delete(tripClients, client)
		if len(tripClients) == 0 {
			delete(h.clients, client.TripID)
		}
	}
	close(client.Send)
}

// Publish dispatches a signal on the trip bus, then fans the envelope out to
// websocket clients and other instances via redis.
func (h *Hub) Publish(tripID string, sig signal.Signal) {
	h.Bus(tripID).Publish(sig)

	data, err := marshalEnvelope(sig)
	if err != nil {
		log.Printf("signal marshal error: %v", err)
		return
	}
	h.fanOut(tripID, data)

	if h.redis != nil {
		frame, err := json.Marshal(redisFrame{Origin: h.id, Envelope: data})
		if err != nil {
			log.Printf("redis frame marshal error: %v", err)
			return
		}
		if err := h.redis.Publish(context.Background(), redisChannel(tripID), frame).Err(); err != nil {
			log.Printf("redis publish error: %v", err)
		}
	}
}

// fanOut delivers to every connected client of the trip. Sends are
// non-blocking, so the read lock is held across them; Unregister needs the
// write lock and therefore cannot close a channel mid-send.
func (h *Hub) fanOut(tripID string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[tripID] {
		select {
		case client.Send <- payload:
		default:
		}
	}
}

func (h *Hub) subscribeRedis() {
	ctx := context.Background()
	pubsub := h.redis.PSubscribe(ctx, "sync:*:signals")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var frame redisFrame
		if err := json.Unmarshal([]byte(msg.Payload), &frame); err != nil {
			log.Printf("redis frame unmarshal error: %v", err)
			continue
		}
		if frame.Origin == h.id {
			continue
		}
		h.fanOut(tripIDFromChannel(msg.Channel), frame.Envelope)
	}
}

func marshalEnvelope(sig signal.Signal) ([]byte, error) {
	payload, err := json.Marshal(sig)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Kind: sig.Kind(), Payload: payload})
}

func redisChannel(tripID string) string {
	return "sync:" + tripID + ":signals"
}

func tripIDFromChannel(ch string) string {
	// sync:{trip}:signals
	const prefix = "sync:"
	const suffix = ":signals"
	if len(ch) <= len(prefix)+len(suffix) {
		return ""
	}
	return ch[len(prefix) : len(ch)-len(suffix)]
}
