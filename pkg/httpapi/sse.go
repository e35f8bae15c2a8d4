package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mwessel/phigrid/pkg/graphio"
)

// complexEvent is the SSE payload for an architecture change.
type complexEvent struct {
	Version  uint64           `json:"version"`
	Snapshot graphio.Snapshot `json:"snapshot"`
}

// handleEvents streams complex changes as server-sent events.
//
// Each published complex becomes one "complex" event carrying its version
// and full snapshot. Subscribers joining late immediately receive the
// current complex. Delivery is latest-wins (see watch.Holder), so a slow
// client may skip intermediate versions, visible as a version gap.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	sub := s.holder.Subscribe()
	defer sub.Close()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, open := <-sub.Events():
			if !open {
				return
			}
			payload, err := json.Marshal(complexEvent{
				Version:  ev.Version,
				Snapshot: graphio.FromComplex(ev.Complex),
			})
			if err != nil {
				s.logger.Error("encode event", "err", err)
				continue
			}
			fmt.Fprintf(w, "event: complex\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
