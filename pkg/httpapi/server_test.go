package httpapi

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mwessel/phigrid/pkg/config"
	"github.com/mwessel/phigrid/pkg/graphio"
	"github.com/mwessel/phigrid/pkg/store"
	"github.com/mwessel/phigrid/pkg/store/memory"
	"github.com/mwessel/phigrid/pkg/system"
	"github.com/mwessel/phigrid/pkg/topology"
	"github.com/mwessel/phigrid/pkg/watch"
)

func newTestServer(t *testing.T, snaps store.Store) (*Server, *watch.Holder) {
	t.Helper()
	holder := watch.New()
	t.Cleanup(holder.Close)
	logger := log.New(io.Discard)
	return New(config.Default(), holder, snaps, logger), holder
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, rd)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var e errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &e); err != nil {
		t.Fatalf("decode error response: %v (body %q)", err, rec.Body.String())
	}
	return e
}

func TestGetComplexBeforeGenerate(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	h := srv.Handler()

	rec := doJSON(t, h, http.MethodGet, "/api/v1/complex", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if e := decodeError(t, rec); e.Code != "NOT_FOUND" {
		t.Errorf("error code = %s, want NOT_FOUND", e.Code)
	}
}

func TestGenerate(t *testing.T) {
	srv, holder := newTestServer(t, nil)
	h := srv.Handler()

	rec := doJSON(t, h, http.MethodPost, "/api/v1/complex", generateRequest{Architecture: "modular"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var snap graphio.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.Architecture != "modular" || len(snap.Nodes) != 16 || snap.Phi != 3.2 {
		t.Errorf("snapshot = arch %s, %d nodes, phi %v", snap.Architecture, len(snap.Nodes), snap.Phi)
	}

	// The holder now serves the same complex on GET.
	c, v := holder.Current()
	if c == nil || v != 1 {
		t.Fatalf("holder current = %v, version %d", c, v)
	}
	rec = doJSON(t, h, http.MethodGet, "/api/v1/complex", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("GET after generate: status = %d", rec.Code)
	}
}

func TestGenerateRejectsBadInput(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	h := srv.Handler()

	tests := []struct {
		name     string
		req      generateRequest
		wantCode string
	}{
		{"UnknownArchitecture", generateRequest{Architecture: "spiral"}, "INVALID_ARCHITECTURE"},
		{"NegativeElements", generateRequest{Architecture: "random", Elements: -4}, "INVALID_COUNT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, h, http.MethodPost, "/api/v1/complex", tt.req)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if e := decodeError(t, rec); e.Code != tt.wantCode {
				t.Errorf("error code = %s, want %s", e.Code, tt.wantCode)
			}
		})
	}
}

func TestArchitectures(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	h := srv.Handler()

	rec := doJSON(t, h, http.MethodGet, "/api/v1/architectures", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var infos []architectureInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &infos); err != nil {
		t.Fatal(err)
	}
	want := map[string]struct {
		phi  float64
		band string
	}{
		"integrated": {74.5, "high"},
		"modular":    {3.2, "low"},
		"random":     {12.8, "medium"},
	}
	if len(infos) != len(want) {
		t.Fatalf("got %d architectures, want %d", len(infos), len(want))
	}
	for _, info := range infos {
		w, ok := want[info.Label]
		if !ok {
			t.Errorf("unexpected architecture %q", info.Label)
			continue
		}
		if info.Phi != w.phi || info.Band != w.band {
			t.Errorf("%s: phi %v band %s, want phi %v band %s", info.Label, info.Phi, info.Band, w.phi, w.band)
		}
	}
}

func TestSnapshotLifecycle(t *testing.T) {
	srv, holder := newTestServer(t, memory.NewStore())
	h := srv.Handler()

	// No complex yet, nothing to snapshot.
	rec := doJSON(t, h, http.MethodPost, "/api/v1/snapshots", saveSnapshotRequest{Name: "baseline"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("save without complex: status = %d, want 404", rec.Code)
	}

	c, err := topology.Generate(system.ArchIntegrated, 16)
	if err != nil {
		t.Fatal(err)
	}
	holder.Set(c)

	rec = doJSON(t, h, http.MethodPost, "/api/v1/snapshots", saveSnapshotRequest{Name: "baseline"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("save: status = %d, body %s", rec.Code, rec.Body)
	}
	var info store.Info
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatal(err)
	}
	if info.Name != "baseline" || info.Architecture != "integrated" || info.Elements != 16 {
		t.Errorf("saved info = %+v", info)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/snapshots", nil)
	var infos []store.Info
	if err := json.Unmarshal(rec.Body.Bytes(), &infos); err != nil {
		t.Fatal(err)
	}
	if len(infos) != 1 || infos[0].Name != "baseline" {
		t.Errorf("list = %+v", infos)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/snapshots/baseline", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get snapshot: status = %d", rec.Code)
	}
	var snap graphio.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatal(err)
	}
	if len(snap.Nodes) != 16 {
		t.Errorf("snapshot has %d nodes, want 16", len(snap.Nodes))
	}

	rec = doJSON(t, h, http.MethodDelete, "/api/v1/snapshots/baseline", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: status = %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/snapshots/baseline", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get deleted: status = %d, want 404", rec.Code)
	}
	if e := decodeError(t, rec); e.Code != "NOT_FOUND_SNAPSHOT" {
		t.Errorf("error code = %s, want NOT_FOUND_SNAPSHOT", e.Code)
	}
}

func TestSnapshotRejectsBadName(t *testing.T) {
	srv, holder := newTestServer(t, memory.NewStore())
	h := srv.Handler()

	c, err := topology.Generate(system.ArchRandom, 16)
	if err != nil {
		t.Fatal(err)
	}
	holder.Set(c)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/snapshots", saveSnapshotRequest{Name: "../escape"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if e := decodeError(t, rec); e.Code != "INVALID_NAME" {
		t.Errorf("error code = %s, want INVALID_NAME", e.Code)
	}
}

func TestSnapshotRoutesDisabledWithoutStore(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	h := srv.Handler()

	rec := doJSON(t, h, http.MethodGet, "/api/v1/snapshots", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 when store is disabled", rec.Code)
	}
}

func TestEventsStream(t *testing.T) {
	srv, holder := newTestServer(t, nil)

	c, err := topology.Generate(system.ArchIntegrated, 16)
	if err != nil {
		t.Fatal(err)
	}
	holder.Set(c)

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/api/v1/events", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("Content-Type = %q", ct)
	}

	// A late subscriber receives the current complex immediately.
	sc := bufio.NewScanner(resp.Body)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var event, data string
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = strings.TrimPrefix(line, "data: ")
		}
		if event != "" && data != "" {
			break
		}
	}
	if event != "complex" {
		t.Fatalf("event = %q, want complex", event)
	}

	var ev complexEvent
	if err := json.Unmarshal([]byte(data), &ev); err != nil {
		t.Fatalf("decode event data: %v", err)
	}
	if ev.Version != 1 || len(ev.Snapshot.Nodes) != 16 {
		t.Errorf("event = version %d, %d nodes", ev.Version, len(ev.Snapshot.Nodes))
	}
}
