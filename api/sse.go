package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// sseClient represents a connected SSE client
type sseClient struct {
	id       string
	messages chan sseMessage
}

type sseMessage struct {
	event string
	data  []byte
}

// sseHub manages all connected SSE clients
type sseHub struct {
	clients    map[string]*sseClient
	register   chan *sseClient
	unregister chan *sseClient
	broadcast  chan sseMessage
	mu         sync.RWMutex
}

func newSSEHub() *sseHub {
	return &sseHub{
		clients:    make(map[string]*sseClient),
		register:   make(chan *sseClient),
		unregister: make(chan *sseClient),
		broadcast:  make(chan sseMessage, 256),
	}
}

func (h *sseHub) run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.id] = client
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.id]; ok {
				delete(h.clients, client.id)
				close(client.messages)
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.RLock()
			for _, client := range h.clients {
				select {
				case client.messages <- message:
				default:
					// Client's channel is full, skip this message
				}
			}
			h.mu.RUnlock()
		}
	}
}

func writeSSEMessage(w io.Writer, msg sseMessage) error {
	if msg.event != "" {
		if _, err := fmt.Fprintf(w, "event: %s\n", msg.event); err != nil {
			return err
		}
	}

	// SSE allows multiple `data:` lines; split to be safe.
	data := strings.TrimRight(string(msg.data), "\n")
	if data == "" {
		if _, err := io.WriteString(w, "data: \n\n"); err != nil {
			return err
		}
		return nil
	}

	for _, line := range strings.Split(data, "\n") {
		if _, err := fmt.Fprintf(w, "data: %s\n", line); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

type searchStateEvent struct {
	SessionID       string `json:"session_id,omitempty"`
	IsReturnPending bool   `json:"is_return_pending"`
	Legs            any    `json:"legs"`
}

// SearchEvents returns a handler that streams per-leg search state over
// Server-Sent Events. One hub and one poller serve all connected clients.
func SearchEvents(s Searcher) gin.HandlerFunc {
	h := newSSEHub()
	go h.run()

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()

		var last []byte
		for range ticker.C {
			event := searchStateEvent{
				IsReturnPending: s.IsReturnPending(),
				Legs:            s.Snapshot(),
			}
			if id, ok := s.SessionID(); ok {
				event.SessionID = id.String()
			}

			data, err := json.Marshal(event)
			if err != nil {
				continue
			}
			// Only broadcast when something changed.
			if string(data) == string(last) {
				continue
			}
			last = data
			h.broadcast <- sseMessage{event: "search-state", data: data}
		}
	}()

	return func(c *gin.Context) {
		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")
		c.Header("X-Accel-Buffering", "no") // Disable nginx buffering

		client := &sseClient{
			id:       fmt.Sprintf("client-%d", time.Now().UnixNano()),
			messages: make(chan sseMessage, 10),
		}

		h.register <- client
		defer func() {
			h.unregister <- client
		}()

		ctx, cancel := context.WithCancel(c.Request.Context())
		defer cancel()

		c.Stream(func(w io.Writer) bool {
			select {
			case <-ctx.Done():
				return false
			case msg, ok := <-client.messages:
				if !ok {
					return false
				}
				if err := writeSSEMessage(w, msg); err != nil {
					return false
				}
				c.Writer.Flush()
				return true
			}
		})
	}
}
