// Package api provides HTTP handlers for SwiftAid endpoints.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/nafisahi/swiftaid/internal/guidance"
	"github.com/nafisahi/swiftaid/internal/models"
	"github.com/nafisahi/swiftaid/internal/symptoms"
	"github.com/nafisahi/swiftaid/internal/telephony"
	"github.com/nafisahi/swiftaid/internal/timer"
)

// topicsHandler lists topics, optionally filtered by category (GET /topics).
func (s *Server) topicsHandler(w http.ResponseWriter, r *http.Request) {
	slog.Debug("Server.topicsHandler: processing topics request", "method", r.Method, "path", r.URL.Path)
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	category := r.URL.Query().Get("category")
	if category == "" {
		writeJSONResponse(w, http.StatusOK, models.Success(s.catalog.AllTopics()))
		return
	}
	if !models.IsValidCategory(models.EmergencyCategory(category)) {
		slog.Warn("Server.topicsHandler: unknown category", "category", category)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Unknown category"))
		return
	}
	topics := s.catalog.ListTopics(models.EmergencyCategory(category))
	slog.Debug("Server.topicsHandler: topics listed", "category", category, "count", len(topics))
	writeJSONResponse(w, http.StatusOK, models.Success(topics))
}

// stepsHandler returns the ordered steps of one topic (GET /topics/steps).
func (s *Server) stepsHandler(w http.ResponseWriter, r *http.Request) {
	slog.Debug("Server.stepsHandler: processing steps request", "method", r.Method, "path", r.URL.Path)
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	topicID := r.URL.Query().Get("topic")
	if topicID == "" {
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Missing required parameter: topic"))
		return
	}
	steps, err := s.catalog.GetSteps(topicID)
	if err != nil {
		slog.Warn("Server.stepsHandler: topic not found", "topic", topicID)
		writeJSONResponse(w, http.StatusNotFound, models.Error("Topic not found"))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(steps))
}

// searchHandler searches topics and steps (GET /search?q=).
func (s *Server) searchHandler(w http.ResponseWriter, r *http.Request) {
	slog.Debug("Server.searchHandler: processing search request", "method", r.Method, "path", r.URL.Path)
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	query := r.URL.Query().Get("q")
	results := s.catalog.Search(query)
	slog.Debug("Server.searchHandler: search completed", "query", query, "hits", len(results))
	writeJSONResponse(w, http.StatusOK, models.Success(results))
}

// sessionsHandler opens (POST) or closes (DELETE) a guidance session.
func (s *Server) sessionsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.sessionsHandler: processing session request", "method", r.Method, "path", r.URL.Path)

	switch r.Method {
	case http.MethodPost:
		var req models.OpenSessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Warn("Server.sessionsHandler: failed to decode JSON", "error", err)
			writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
			return
		}
		session, err := s.sessions.Open(req.TopicID)
		if err != nil {
			if errors.Is(err, models.ErrTopicNotFound) {
				writeJSONResponse(w, http.StatusNotFound, models.Error("Topic not found"))
				return
			}
			slog.Error("Server.sessionsHandler: failed to open session", "error", err, "topic", req.TopicID)
			writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to open session"))
			return
		}
		slog.Info("Server.sessionsHandler: session opened", "session", session.ID, "topic", req.TopicID)
		writeJSONResponse(w, http.StatusCreated, models.Success(map[string]interface{}{
			"session_id": session.ID,
			"topic":      session.Engine.Topic(),
		}))

	case http.MethodDelete:
		sessionID := r.URL.Query().Get("session")
		if sessionID == "" {
			writeJSONResponse(w, http.StatusBadRequest, models.Error("Missing required parameter: session"))
			return
		}
		if err := s.sessions.Close(sessionID); err != nil {
			writeJSONResponse(w, http.StatusNotFound, models.Error("Session not found"))
			return
		}
		slog.Info("Server.sessionsHandler: session closed", "session", sessionID)
		writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("Session closed", nil))

	default:
		w.Header().Set("Allow", http.MethodPost+", "+http.MethodDelete)
		slog.Warn("Server.sessionsHandler: method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// toggleHandler flips completion of one instruction (POST /sessions/toggle).
func (s *Server) toggleHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.toggleHandler: processing toggle request", "method", r.Method, "path", r.URL.Path)
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.toggleHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}

	session, err := s.sessions.Get(req.SessionID)
	if err != nil {
		writeJSONResponse(w, http.StatusNotFound, models.Error("Session not found"))
		return
	}

	ref := models.InstructionRef{StepID: req.StepID, InstructionIndex: req.InstructionIndex}
	completed, err := session.Engine.Toggle(ref)
	if err != nil {
		slog.Warn("Server.toggleHandler: invalid instruction reference", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error(err.Error()))
		return
	}

	result := map[string]interface{}{
		"completed": completed,
		"progress":  session.Engine.Progress(),
	}
	if cd := session.Engine.Timer(req.StepID); cd != nil {
		result["timer"] = timerStatus(cd)
	}
	if at, ok := session.Engine.TimestampAt(req.StepID); ok {
		result["timestamp"] = at.Format(time.RFC3339)
	}
	writeJSONResponse(w, http.StatusOK, models.Success(result))
}

// progressHandler reports checklist progress (GET /sessions/progress).
func (s *Server) progressHandler(w http.ResponseWriter, r *http.Request) {
	slog.Debug("Server.progressHandler: processing progress request", "method", r.Method, "path", r.URL.Path)
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	session, err := s.sessions.Get(r.URL.Query().Get("session"))
	if err != nil {
		writeJSONResponse(w, http.StatusNotFound, models.Error("Session not found"))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(session.Engine.Progress()))
}

// timerHandler reads (GET) or drives (POST) a step's armed countdown.
func (s *Server) timerHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.timerHandler: processing timer request", "method", r.Method, "path", r.URL.Path)

	switch r.Method {
	case http.MethodGet:
		session, err := s.sessions.Get(r.URL.Query().Get("session"))
		if err != nil {
			writeJSONResponse(w, http.StatusNotFound, models.Error("Session not found"))
			return
		}
		stepID := r.URL.Query().Get("step")
		cd := session.Engine.Timer(stepID)
		if cd == nil {
			writeJSONResponse(w, http.StatusNotFound, models.Error("Step has no armed timer"))
			return
		}
		writeJSONResponse(w, http.StatusOK, models.Success(timerStatus(cd)))

	case http.MethodPost:
		var req models.TimerControlRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Warn("Server.timerHandler: failed to decode JSON", "error", err)
			writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
			return
		}
		session, err := s.sessions.Get(req.SessionID)
		if err != nil {
			writeJSONResponse(w, http.StatusNotFound, models.Error("Session not found"))
			return
		}
		if err := session.Engine.ControlTimer(req.StepID, guidance.TimerAction(req.Action)); err != nil {
			slog.Warn("Server.timerHandler: timer control failed", "error", err, "step", req.StepID, "action", req.Action)
			writeJSONResponse(w, http.StatusBadRequest, models.Error(err.Error()))
			return
		}
		writeJSONResponse(w, http.StatusOK, models.Success(timerStatus(session.Engine.Timer(req.StepID))))

	default:
		w.Header().Set("Allow", http.MethodGet+", "+http.MethodPost)
		slog.Warn("Server.timerHandler: method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// symptomCheckHandler runs the AI symptom checker (POST /symptoms/check).
func (s *Server) symptomCheckHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.symptomCheckHandler: processing symptom check", "method", r.Method, "path", r.URL.Path)
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	if s.checker == nil {
		slog.Warn("Server.symptomCheckHandler: symptom checker not configured")
		writeJSONResponse(w, http.StatusServiceUnavailable, models.Error("Symptom checker not configured"))
		return
	}

	var req models.SymptomCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.symptomCheckHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), DefaultRequestTimeout)
	defer cancel()
	guidanceText, err := s.checker.Check(ctx, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, symptoms.ErrOffline):
			writeJSONResponse(w, http.StatusServiceUnavailable, models.Error("No internet connection. The symptom checker needs to be online."))
		case errors.Is(err, symptoms.ErrEmptyDescription):
			writeJSONResponse(w, http.StatusBadRequest, models.Error("Please describe the symptoms."))
		default:
			slog.Error("Server.symptomCheckHandler: check failed", "error", err)
			writeJSONResponse(w, http.StatusInternalServerError, models.Error("Symptom check failed"))
		}
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(map[string]string{"guidance": guidanceText}))
}

// emergencyCallHandler places a confirmed emergency call (POST /emergency/call).
func (s *Server) emergencyCallHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.emergencyCallHandler: processing call request", "method", r.Method, "path", r.URL.Path)
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	if s.dialer == nil {
		slog.Warn("Server.emergencyCallHandler: dialer not configured")
		writeJSONResponse(w, http.StatusServiceUnavailable, models.Error("Emergency calling not configured"))
		return
	}

	var req models.EmergencyCallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.emergencyCallHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}
	// The client shows a confirmation prompt before the call leaves the device.
	if !req.Confirmed {
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Call must be confirmed"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), DefaultRequestTimeout)
	defer cancel()
	if err := s.dialer.PlaceCall(ctx, req.Number); err != nil {
		if errors.Is(err, telephony.ErrUnsupportedNumber) {
			writeJSONResponse(w, http.StatusBadRequest, models.Error(err.Error()))
			return
		}
		slog.Error("Server.emergencyCallHandler: call failed", "error", err, "number", req.Number)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to place call"))
		return
	}

	receipt := models.CallReceipt{Number: req.Number, Time: time.Now().Unix()}
	if sess := s.identity.Session(); sess != nil {
		receipt.PlacedBy = sess.UserID
	}
	if err := s.st.AddCallReceipt(receipt); err != nil {
		slog.Error("Server.emergencyCallHandler: failed to record receipt", "error", err)
	}
	slog.Info("Server.emergencyCallHandler: emergency call placed", "number", req.Number)
	writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("Call placed", nil))
}

// callReceiptsHandler lists placed emergency calls (GET /emergency/calls).
func (s *Server) callReceiptsHandler(w http.ResponseWriter, r *http.Request) {
	slog.Debug("Server.callReceiptsHandler: processing receipts request", "method", r.Method, "path", r.URL.Path)
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	receipts, err := s.st.GetCallReceipts()
	if err != nil {
		slog.Error("Error fetching call receipts", "error", err)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to fetch call receipts"))
		return
	}
	slog.Debug("call receipts fetched", "count", len(receipts))
	writeJSONResponse(w, http.StatusOK, models.Success(receipts))
}

// healthHandler reports liveness and connectivity (GET /health).
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	online := false
	if s.monitor != nil {
		online = s.monitor.Online()
	}
	writeJSONResponse(w, http.StatusOK, models.Success(map[string]interface{}{
		"online":   online,
		"sessions": s.sessions.Count(),
	}))
}

func timerStatus(cd *timer.Countdown) models.TimerStatus {
	return models.TimerStatus{
		State:     string(cd.State()),
		Remaining: cd.Remaining(),
		Total:     cd.Total(),
		Formatted: cd.FormattedRemaining(),
	}
}
