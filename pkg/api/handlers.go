package api

import (
	stderrors "errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/hubrank/pkg/buildinfo"
	"github.com/matzehuels/hubrank/pkg/errors"
	"github.com/matzehuels/hubrank/pkg/pipeline"
	"github.com/matzehuels/hubrank/pkg/report"
)

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status    string         `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	Build     buildinfo.Info `json:"build"`
}

// AirportResponse is the body of GET /v1/airports/{code}.
type AirportResponse struct {
	Code      string   `json:"code"`
	ID        int      `json:"id"`
	Name      string   `json:"name,omitempty"`
	Degree    int      `json:"degree"`
	Mode      string   `json:"mode"`
	Neighbors []string `json:"neighbors"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Build:     buildinfo.Get(),
	})
}

func (s *Server) handleRanking(w http.ResponseWriter, r *http.Request) {
	opts := s.opts
	mode, err := s.modeParam(r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	opts.Mode = mode

	if raw := r.URL.Query().Get("top"); raw != "" {
		top, err := strconv.Atoi(raw)
		if err != nil {
			s.respondError(w, errors.New(errors.ErrCodeInvalidInput, "top must be an integer, got %q", raw))
			return
		}
		if err := errors.ValidateTopK(top); err != nil {
			s.respondError(w, err)
			return
		}
		opts.Top = top
		if top == 0 {
			opts.Top = -1
		}
	}

	if opts.Logger == nil {
		opts.Logger = s.logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.respondError(w, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report.New(res, opts))
}

func (s *Server) handleAirport(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if err := errors.ValidateAirportCode(code); err != nil {
		s.respondError(w, err)
		return
	}
	mode, err := s.modeParam(r)
	if err != nil {
		s.respondError(w, err)
		return
	}

	res, err := s.snapshot(r.Context(), mode)
	if err != nil {
		s.respondError(w, err)
		return
	}
	id, ok := res.Registry.ID(code)
	if !ok {
		s.respondError(w, errors.New(errors.ErrCodeAirportNotFound, "airport %q has no routes", code))
		return
	}

	respondJSON(w, http.StatusOK, AirportResponse{
		Code:      code,
		ID:        id,
		Name:      res.Labels[id],
		Degree:    res.Scores[id],
		Mode:      mode,
		Neighbors: res.Neighbors(id),
	})
}

func (s *Server) handleLatestReport(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.respondError(w, notFound("report storage is not configured"))
		return
	}
	mode := r.URL.Query().Get("mode")
	if mode != "" {
		if err := pipeline.ValidateMode(mode); err != nil {
			s.respondError(w, err)
			return
		}
	}
	rep, err := s.store.Latest(r.Context(), mode)
	if err != nil {
		s.respondError(w, storeError(err, "no reports saved"))
		return
	}
	respondJSON(w, http.StatusOK, rep)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.respondError(w, notFound("report storage is not configured"))
		return
	}
	id := chi.URLParam(r, "id")
	if !report.ValidID(id) {
		s.respondError(w, errors.New(errors.ErrCodeInvalidInput, "invalid report id: %q", id))
		return
	}
	rep, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, storeError(err, "report %s not found", id))
		return
	}
	respondJSON(w, http.StatusOK, rep)
}

// modeParam returns the mode query parameter, or the server default.
func (s *Server) modeParam(r *http.Request) (string, error) {
	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = s.opts.Mode
	}
	if mode == "" {
		mode = pipeline.DefaultMode
	}
	if err := pipeline.ValidateMode(mode); err != nil {
		return "", err
	}
	return mode, nil
}

func notFound(format string, args ...any) error {
	return errors.New(errors.ErrCodeNotFound, format, args...)
}

func storeError(err error, format string, args ...any) error {
	if stderrors.Is(err, report.ErrNotFound) {
		return errors.Wrap(errors.ErrCodeNotFound, err, format, args...)
	}
	return errors.Wrap(errors.ErrCodeStore, err, "report store")
}
