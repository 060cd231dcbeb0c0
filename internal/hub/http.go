package hub

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// HTTPServer serves the hub's event stream over HTTP
type HTTPServer struct {
	hub    *Hub
	mux    *http.ServeMux
	server *http.Server
	logger *log.Logger
}

// NewHTTPServer creates an HTTP server exposing /events and /health
func NewHTTPServer(hub *Hub, port int, logger *log.Logger) *HTTPServer {
	mux := http.NewServeMux()
	h := &HTTPServer{
		hub:    hub,
		mux:    mux,
		logger: logger,
		server: &http.Server{
			Addr:        fmt.Sprintf(":%d", port),
			Handler:     mux,
			ReadTimeout: 30 * time.Second,
			IdleTimeout: 120 * time.Second,
		},
	}

	mux.HandleFunc("/events", h.handleEvents)
	mux.HandleFunc("/health", h.handleHealth)

	return h
}

// ListenAndServe blocks serving HTTP until the server is shut down
func (h *HTTPServer) ListenAndServe() error {
	return h.server.ListenAndServe()
}

// Shutdown stops the HTTP server
func (h *HTTPServer) Shutdown() error {
	return h.server.Close()
}

// handleEvents handles a Server-Sent Events connection. Clients may narrow
// the stream with repeated ?kind= query parameters.
func (h *HTTPServer) handleEvents(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	client := h.hub.NewClient()
	for _, kind := range r.URL.Query()["kind"] {
		client.Subscribe(kind)
	}

	h.hub.Register(client)
	defer h.hub.Unregister(client)

	if h.logger != nil {
		h.logger.Printf("SSE client connected: %s", client.ID)
	}

	fmt.Fprintf(w, "event: connected\ndata: %s\n\n", client.ID)
	flusher.Flush()

	pingTicker := time.NewTicker(30 * time.Second)
	defer pingTicker.Stop()

	for {
		select {
		case msg, ok := <-client.Send:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Event, msg.Data)
			flusher.Flush()

		case <-pingTicker.C:
			fmt.Fprintf(w, "event: ping\ndata: %s\n\n", time.Now().Format(time.RFC3339))
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

// handleHealth provides a health check endpoint
func (h *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"clients":   h.hub.ClientCount(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
