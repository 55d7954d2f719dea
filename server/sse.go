package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/tdmcp/tdbridge/internal/collection"
)

// SSE serves the push transport: envelopes are submitted over POST /message
// and acknowledged immediately; the eventual responses are delivered over
// GET /sse to every attached channel. Delivery is broadcast, not routed per
// subscriber — a known scoping limitation.
type SSE struct {
	server      *Server
	subscribers *collection.SyncMap[string, chan []byte]
}

// SSE returns the push transport for this server.
func (s *Server) SSE() *SSE {
	return &SSE{server: s, subscribers: collection.NewSyncMap[string, chan []byte]()}
}

// Handler returns the HTTP handler exposing the probe, subscription and
// submission endpoints.
func (t *SSE) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/status", t.handleStatus)
	mux.HandleFunc("/sse", t.handleSubscribe)
	mux.HandleFunc("/message", t.handleMessage)
	return mux
}

// HTTPServer returns an HTTP server for the push transport bound to addr.
func (t *SSE) HTTPServer(addr string) *http.Server {
	return &http.Server{Addr: addr, Handler: t.Handler()}
}

func (t *SSE) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":      "running",
		"server":      t.server.info.Name,
		"version":     t.server.info.Version,
		"initialized": t.server.session.Initialized(),
	})
}

func (t *SSE) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	// initial keep-alive comment establishes the channel
	_, _ = io.WriteString(w, ": connected\n\n")
	flusher.Flush()

	id := uuid.New().String()
	channel := make(chan []byte, 16)
	t.subscribers.Put(id, channel)
	defer t.subscribers.Delete(id)
	t.server.logger.Info().Str("subscriber", id).Msg("push channel attached")

	for {
		select {
		case <-r.Context().Done():
			t.server.logger.Info().Str("subscriber", id).Msg("push channel detached")
			return
		case message := <-channel:
			if _, err := fmt.Fprintf(w, "data: %s\n\n", message); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

// handleMessage accepts one envelope per call, acknowledges receipt with no
// payload, and delivers the eventual response asynchronously to all attached
// channels.
func (t *SSE) handleMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusAccepted)

	handler := t.server.NewHandler()
	go func() {
		// the request context ends with the ack; dispatch outlives it
		if response := handleLine(context.Background(), handler, body); response != nil {
			t.broadcast(response)
		}
	}()
}

func (t *SSE) broadcast(message []byte) {
	t.subscribers.Range(func(id string, channel chan []byte) bool {
		select {
		case channel <- message:
		default:
			t.server.logger.Warn().Str("subscriber", id).Msg("push channel full, dropping response")
		}
		return true
	})
}
