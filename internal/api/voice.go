package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/hearthd/hearth-core/internal/voice"
)

// defaultEventLimit is applied when GET /voice/events omits the limit parameter.
const defaultEventLimit = 50

// handleVoiceStart starts the voice assistant session.
//
// The optional JSON body overrides the configured wake words and model:
//
//	{"wake_words": "computer", "model": "small"}
func (s *Server) handleVoiceStart(w http.ResponseWriter, r *http.Request) {
	var cfg voice.Config
	// A missing or empty body falls through to the configured defaults.
	//nolint:errcheck // body is optional
	json.NewDecoder(r.Body).Decode(&cfg)

	if err := s.assistant.Start(s.ctx, cfg); err != nil {
		if errors.Is(err, voice.ErrAlreadyRunning) {
			writeBadRequest(w, "Voice assistant is already running")
			return
		}
		if errors.Is(err, voice.ErrInvalidModel) {
			writeBadRequest(w, fmt.Sprintf("Failed to start voice assistant: %v", err))
			return
		}
		writeInternalError(w, fmt.Sprintf("Failed to start voice assistant: %v", err))
		return
	}

	status := s.assistant.Status()
	s.events.Append(voice.EventSystem, "Voice assistant started", map[string]any{
		"wake_words": status.WakeWords,
		"model":      status.Model,
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Voice assistant started successfully",
		"status":  status,
	})
}

// handleVoiceStop stops the voice assistant session.
func (s *Server) handleVoiceStop(w http.ResponseWriter, _ *http.Request) {
	if err := s.assistant.Stop(); err != nil {
		if errors.Is(err, voice.ErrNotRunning) {
			writeBadRequest(w, "Voice assistant is not running")
			return
		}
		writeInternalError(w, fmt.Sprintf("Failed to stop voice assistant: %v", err))
		return
	}

	s.events.Append(voice.EventSystem, "Voice assistant stopped", nil)

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Voice assistant stopped successfully",
	})
}

// handleVoiceStatus reports the current assistant state.
func (s *Server) handleVoiceStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"status":  s.assistant.Status(),
	})
}

// handleVoiceEvents returns recent events, optionally filtered by type
// and limited in count. total_events always reflects the unfiltered log.
func (s *Server) handleVoiceEvents(w http.ResponseWriter, r *http.Request) {
	limit := defaultEventLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeBadRequest(w, fmt.Sprintf("Invalid limit: %s", raw))
			return
		}
		limit = parsed
	}

	eventType := r.URL.Query().Get("type")

	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"events":       s.events.Recent(limit, eventType),
		"total_events": s.events.Len(),
	})
}

// handleVoiceEventsClear discards all recorded events.
func (s *Server) handleVoiceEventsClear(w http.ResponseWriter, _ *http.Request) {
	s.events.Clear()
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Events cleared successfully",
	})
}

// handleVoiceConfig enumerates the supported models and wake words.
func (s *Server) handleVoiceConfig(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"config": map[string]any{
			"available_models":     voice.AvailableModels(),
			"available_wake_words": voice.AvailableWakeWords(),
			"default_wake_words":   voice.DefaultWakeWords,
			"default_model":        voice.DefaultModel,
		},
	})
}

// voiceTestRequest is the body for POST /voice/test.
type voiceTestRequest struct {
	Text string `json:"text"`
}

// handleVoiceTest feeds text straight into the command pipeline,
// bypassing audio capture. Used for deterministic testing.
func (s *Server) handleVoiceTest(w http.ResponseWriter, r *http.Request) {
	var req voiceTestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		writeBadRequest(w, "Text is required")
		return
	}

	if _, err := s.assistant.ProcessText(req.Text); err != nil {
		if errors.Is(err, voice.ErrNotRunning) {
			writeBadRequest(w, "Voice assistant is not running")
			return
		}
		writeInternalError(w, fmt.Sprintf("Failed to test command: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Command processed: %s", req.Text),
	})
}
