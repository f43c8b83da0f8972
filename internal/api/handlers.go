// Package api provides HTTP handlers for StabilityPipe endpoints.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/FluxWard/StabilityPipe/internal/models"
)

func (s *Server) questionsHandler(w http.ResponseWriter, r *http.Request) {
	slog.Debug("Server.questionsHandler: processing questions request", "method", r.Method, "path", r.URL.Path)
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		slog.Warn("Server.questionsHandler: method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	bank, hit := s.bank.Snapshot()
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	slog.Debug("Server.questionsHandler: serving question bank", "cache_hit", hit, "total_items", bank.Metadata.TotalCount)
	writeJSONResponse(w, http.StatusOK, models.Success(bank))
}

func (s *Server) submitHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.submitHandler: processing submission", "method", r.Method, "path", r.URL.Path)
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		slog.Warn("Server.submitHandler: method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req models.SubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.submitHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}
	slog.Debug("Server.submitHandler: parsed submission", "user_id", req.UserID,
		"hexaco_count", len(req.HexacoResponses), "dass_count", len(req.DassResponses), "teique_count", len(req.TeiqueResponses))

	result, err := s.pipeline.Process(r.Context(), req)
	if err != nil {
		var incomplete *models.IncompleteError
		switch {
		case errors.As(err, &incomplete),
			errors.Is(err, models.ErrMissingUserID),
			errors.Is(err, models.ErrMissingResponses),
			errors.Is(err, models.ErrResponseOutOfRange),
			errors.Is(err, models.ErrItemIDOutOfRange):
			slog.Warn("Server.submitHandler: submission rejected", "user_id", req.UserID, "error", err)
			writeJSONResponse(w, http.StatusBadRequest, models.Error(err.Error()))
		default:
			slog.Error("Server.submitHandler: failed to process submission", "user_id", req.UserID, "error", err)
			writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to process submission"))
		}
		return
	}

	slog.Info("Server.submitHandler: submission processed", "user_id", req.UserID, "result_id", result.ResultID,
		"stability", result.Analysis.OverallStability)
	writeJSONResponse(w, http.StatusCreated, models.RecordedWithMessage("Assessment processed successfully", result))
}

func (s *Server) resultsHandler(w http.ResponseWriter, r *http.Request) {
	slog.Debug("Server.resultsHandler: processing results request", "method", r.Method, "path", r.URL.Path)
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		slog.Warn("Server.resultsHandler: method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	userID := r.URL.Query().Get("user")
	if userID == "" {
		slog.Warn("Server.resultsHandler: missing user parameter")
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Missing required parameter: user"))
		return
	}

	results, err := s.pipeline.Results(r.Context(), userID)
	if err != nil {
		slog.Error("Server.resultsHandler: failed to load results", "user_id", userID, "error", err)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to load results"))
		return
	}

	slog.Debug("Server.resultsHandler: returning results", "user_id", userID, "count", len(results))
	writeJSONResponse(w, http.StatusOK, models.Success(results))
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("Service healthy", nil))
}
