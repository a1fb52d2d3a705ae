package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"nhooyr.io/websocket"

	"github.com/ha1tch/qubit-toolkit/pkg/qubit"
)

// EventType names a registry mutation.
type EventType string

const (
	EventQubitCreated EventType = "qubit_created"
	EventGateApplied  EventType = "gate_applied"
	EventColorChanged EventType = "color_changed"
)

// Event is sent to websocket clients after every mutation.
type Event struct {
	Type      EventType   `json:"type"`
	Qubit     qubit.Qubit `json:"qubit"`
	Timestamp time.Time   `json:"timestamp"`
}

// subscriberBuffer bounds how far a slow client may fall behind before
// events are dropped for it.
const subscriberBuffer = 64

// Hub fans events out to subscribers without blocking publishers.
type Hub struct {
	mu     sync.Mutex
	subs   map[chan Event]struct{}
	closed bool
	log    zerolog.Logger
}

// NewHub creates an empty hub.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		subs: make(map[chan Event]struct{}),
		log:  log,
	}
}

// Subscribe registers a new subscriber channel. The channel is closed by
// Unsubscribe or Close.
func (h *Hub) Subscribe() chan Event {
	ch := make(chan Event, subscriberBuffer)
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(ch)
		return ch
	}
	h.subs[ch] = struct{}{}
	return ch
}

// Unsubscribe removes and closes a subscriber channel.
func (h *Hub) Unsubscribe(ch chan Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
}

// Publish sends an event to every subscriber, dropping it for any whose
// buffer is full.
func (h *Hub) Publish(t EventType, q qubit.Qubit) {
	e := Event{Type: t, Qubit: q, Timestamp: time.Now()}

	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- e:
		default:
			h.log.Warn().Str("event_type", string(t)).Msg("Event channel full, dropping event")
		}
	}
}

// Close closes every subscriber channel. Later subscribers get a closed
// channel.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		close(ch)
	}
	h.subs = make(map[chan Event]struct{})
	h.closed = true
}

// handleEvents streams registry events as JSON text messages.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	// Subscribe before the handshake completes so a client never misses an
	// event sent right after it connects.
	events := s.hub.Subscribe()

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		s.hub.Unsubscribe(events)
		s.log.Warn().Err(err).Msg("WebSocket accept failed")
		return
	}
	defer s.hub.Unsubscribe(events)

	s.log.Info().Str("remote", r.RemoteAddr).Msg("Client connected to event stream")

	// Client messages are ignored; CloseRead handles control frames and
	// cancels ctx when the client goes away.
	ctx := conn.CloseRead(context.Background())

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("Client disconnected from event stream")
			return
		case e, ok := <-events:
			if !ok {
				conn.Close(websocket.StatusGoingAway, "server shutting down")
				return
			}
			data, err := json.Marshal(e)
			if err != nil {
				s.log.Error().Err(err).Msg("Failed to encode event")
				continue
			}
			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err = conn.Write(writeCtx, websocket.MessageText, data)
			cancel()
			if err != nil {
				s.log.Warn().Err(err).Msg("Failed to send event")
				return
			}
		}
	}
}
