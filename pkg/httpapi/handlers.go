package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/mwessel/phigrid/pkg/errors"
	"github.com/mwessel/phigrid/pkg/graphio"
	"github.com/mwessel/phigrid/pkg/store"
	"github.com/mwessel/phigrid/pkg/system"
	"github.com/mwessel/phigrid/pkg/topology"
)

// generateRequest is the POST /complex body. Elements falls back to the
// configured default when zero.
type generateRequest struct {
	Architecture string `json:"architecture"`
	Elements     int    `json:"elements,omitempty"`
}

// saveSnapshotRequest is the POST /snapshots body.
type saveSnapshotRequest struct {
	Name string `json:"name"`
}

// architectureInfo describes one selectable architecture.
type architectureInfo struct {
	Label string  `json:"label"`
	Phi   float64 `json:"phi"`
	Band  string  `json:"band"`
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleGetComplex(w http.ResponseWriter, r *http.Request) {
	c, _ := s.holder.Current()
	if c == nil {
		s.writeError(w, apperrors.New(apperrors.ErrCodeNotFound, "no complex generated yet"))
		return
	}
	s.writeJSON(w, http.StatusOK, graphio.FromComplex(c))
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}

	arch, err := system.ParseArchitecture(req.Architecture)
	if err != nil {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidArchitecture, err, "architecture"))
		return
	}
	n := req.Elements
	if n == 0 {
		n = s.cfg.Generation.Elements
	}

	c, err := topology.Generate(arch, n,
		topology.WithGridWidth(s.cfg.Generation.GridWidth),
		topology.WithEvaluator(s.cfg.Scale()),
	)
	if err != nil {
		if errors.Is(err, topology.ErrInvalidCount) {
			s.writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidCount, err, "elements"))
			return
		}
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeInternal, err, "generate"))
		return
	}

	s.holder.Set(c)
	s.logger.Info("generated complex", "architecture", arch, "elements", n, "phi", c.Phi)
	s.writeJSON(w, http.StatusOK, graphio.FromComplex(c))
}

func (s *Server) handleArchitectures(w http.ResponseWriter, r *http.Request) {
	scale := s.cfg.Scale()
	th := s.cfg.Thresholds()
	infos := make([]architectureInfo, 0, 3)
	for _, arch := range system.Architectures() {
		phi, err := scale.Phi(arch)
		if err != nil {
			s.writeError(w, apperrors.Wrap(apperrors.ErrCodeInternal, err, "scale"))
			return
		}
		infos = append(infos, architectureInfo{
			Label: arch.String(),
			Phi:   phi,
			Band:  th.Classify(phi).String(),
		})
	}
	s.writeJSON(w, http.StatusOK, infos)
}

func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	infos, err := s.snaps.List(r.Context())
	if err != nil {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeStore, err, "list snapshots"))
		return
	}
	if infos == nil {
		infos = []store.Info{}
	}
	s.writeJSON(w, http.StatusOK, infos)
}

func (s *Server) handleSaveSnapshot(w http.ResponseWriter, r *http.Request) {
	var req saveSnapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}

	c, _ := s.holder.Current()
	if c == nil {
		s.writeError(w, apperrors.New(apperrors.ErrCodeNotFound, "no complex to snapshot"))
		return
	}

	rec, err := store.NewRecord(req.Name, c)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.snaps.Save(r.Context(), req.Name, rec); err != nil {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeStore, err, "save snapshot %s", req.Name))
		return
	}
	s.logger.Info("saved snapshot", "name", req.Name, "architecture", rec.Info.Architecture)
	s.writeJSON(w, http.StatusCreated, rec.Info)
}

func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	rec, err := s.snaps.Get(r.Context(), name)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, apperrors.New(apperrors.ErrCodeSnapshotNotFound, "snapshot %s not found", name))
		return
	}
	if err != nil {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeStore, err, "get snapshot %s", name))
		return
	}

	var snap graphio.Snapshot
	if err := json.Unmarshal(rec.Data, &snap); err != nil {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeInternal, err, "decode snapshot %s", name))
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleDeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	err := s.snaps.Delete(r.Context(), name)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, apperrors.New(apperrors.ErrCodeSnapshotNotFound, "snapshot %s not found", name))
		return
	}
	if err != nil {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeStore, err, "delete snapshot %s", name))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

// writeError maps structured error codes to HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidArchitecture,
		apperrors.ErrCodeInvalidCount, apperrors.ErrCodeInvalidName,
		apperrors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	case apperrors.ErrCodeNotFound, apperrors.ErrCodeSnapshotNotFound,
		apperrors.ErrCodeElementNotFound:
		status = http.StatusNotFound
	case apperrors.ErrCodeStoreUnavailable:
		status = http.StatusServiceUnavailable
	}

	code := apperrors.GetCode(err)
	if code == "" {
		code = apperrors.ErrCodeInternal
	}
	s.writeJSON(w, status, errorResponse{Code: string(code), Message: apperrors.UserMessage(err)})
}
