package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ha1tch/qubit-toolkit/pkg/qcfile"
	"github.com/ha1tch/qubit-toolkit/pkg/qubit"
)

type gateRequest struct {
	Gate string `json:"gate"`
}

type colorRequest struct {
	Color string `json:"color"`
}

type collocatedResponse struct {
	IDs   []int  `json:"ids"`
	Label string `json:"label"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	n := s.reg.Len()
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"qubits": n,
	})
}

func (s *Server) handleListQubits(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Snapshot())
}

func (s *Server) handleCreateQubit(w http.ResponseWriter, r *http.Request) {
	// Events go out under the lock so subscribers see commit order.
	s.mu.Lock()
	q := s.reg.Create()
	s.hub.Publish(EventQubitCreated, q)
	s.mu.Unlock()

	s.writeJSON(w, http.StatusCreated, q)
}

func (s *Server) handleGetQubit(w http.ResponseWriter, r *http.Request) {
	id, ok := s.qubitID(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	q, err := s.reg.Get(id)
	s.mu.Unlock()

	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, q)
}

func (s *Server) handleApplyGate(w http.ResponseWriter, r *http.Request) {
	id, ok := s.qubitID(w, r)
	if !ok {
		return
	}

	var req gateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	q, err := s.reg.ApplyGateNamed(id, req.Gate)
	if err == nil {
		s.hub.Publish(EventGateApplied, q)
	}
	s.mu.Unlock()

	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, q)
}

func (s *Server) handleSetColor(w http.ResponseWriter, r *http.Request) {
	id, ok := s.qubitID(w, r)
	if !ok {
		return
	}

	var req colorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	c, err := colorful.Hex(req.Color)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "color must be #rrggbb")
		return
	}

	s.mu.Lock()
	err = s.reg.SetColor(id, c.Hex())
	var q qubit.Qubit
	if err == nil {
		q, err = s.reg.Get(id)
	}
	if err == nil {
		s.hub.Publish(EventColorChanged, q)
	}
	s.mu.Unlock()

	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, q)
}

func (s *Server) handleCollocated(w http.ResponseWriter, r *http.Request) {
	x, errX := strconv.ParseFloat(r.URL.Query().Get("x"), 64)
	y, errY := strconv.ParseFloat(r.URL.Query().Get("y"), 64)
	if errX != nil || errY != nil {
		s.writeError(w, http.StatusBadRequest, "x and y must be numbers")
		return
	}

	// tol overrides the registry tolerance for this lookup.
	var tol float64
	if v := r.URL.Query().Get("tol"); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil || t <= 0 {
			s.writeError(w, http.StatusBadRequest, "tol must be a positive number")
			return
		}
		tol = t
	}

	s.mu.Lock()
	ids := s.reg.Index().GroupsAt(qubit.Point{X: x, Y: y}, tol)
	s.mu.Unlock()

	if ids == nil {
		ids = []int{}
	}
	s.writeJSON(w, http.StatusOK, collocatedResponse{IDs: ids, Label: qubit.CombinedLabel(ids)})
}

func (s *Server) handleDiagram(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, qubit.Diagram())
}

func (s *Server) handleDiagramSVG(w http.ResponseWriter, r *http.Request) {
	opts := s.render
	opts.ShowPaths = r.URL.Query().Get("paths") != ""

	svg := qcfile.RenderSVG(s.Snapshot(), opts)
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(svg)); err != nil {
		s.log.Error().Err(err).Msg("Failed to write SVG response")
	}
}

func (s *Server) qubitID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "qubit id must be an integer")
		return 0, false
	}
	return id, true
}

// writeServiceError maps registry errors onto status codes.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, qubit.ErrUnknownQubit):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, qubit.ErrUnknownGate):
		s.writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.log.Error().Err(err).Msg("Request failed")
		s.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{
		"error": message,
	})
}
