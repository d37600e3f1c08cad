package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const sseKeepalive = 30 * time.Second

// sseWriter writes Server-Sent Events frames and flushes after each one.
type sseWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// startSSE sets the event-stream headers. It reports false, after writing an
// error, when the ResponseWriter cannot stream.
func startSSE(w http.ResponseWriter) (*sseWriter, bool) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return nil, false
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return &sseWriter{w: w, flusher: flusher}, true
}

func (s *sseWriter) send(event string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

func (s *sseWriter) ping() {
	fmt.Fprintf(s.w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
	s.flusher.Flush()
}
