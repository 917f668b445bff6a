package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hearthd/hearth-core/internal/device"
	"github.com/hearthd/hearth-core/internal/infrastructure/mqtt"
)

// handleListDevices returns all registered devices keyed by ID.
func (s *Server) handleListDevices(w http.ResponseWriter, _ *http.Request) {
	devices := s.registry.Snapshots()
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"devices": devices,
		"count":   len(devices),
	})
}

// handleGetDevice returns a single device by ID.
func (s *Server) handleGetDevice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	d, err := s.registry.Get(id)
	if err != nil {
		writeNotFound(w, fmt.Sprintf("Device %s not found", id))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"device":  d.Snapshot(),
	})
}

// handleSearchDevices matches devices by name or location substring.
func (s *Server) handleSearchDevices(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeBadRequest(w, `Query parameter "q" is required`)
		return
	}

	devices := snapshots(s.registry.Search(query))
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"devices": devices,
		"count":   len(devices),
		"query":   query,
	})
}

// handleDevicesByType returns devices of a single type.
func (s *Server) handleDevicesByType(w http.ResponseWriter, r *http.Request) {
	typeStr := chi.URLParam(r, "type")

	typ, err := device.ParseType(typeStr)
	if err != nil {
		writeBadRequest(w, fmt.Sprintf("Invalid device type: %s", typeStr))
		return
	}

	devices := snapshots(s.registry.FindByType(typ))
	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"devices":     devices,
		"count":       len(devices),
		"device_type": typeStr,
	})
}

// handleDevicesByLocation returns devices whose location matches the filter.
func (s *Server) handleDevicesByLocation(w http.ResponseWriter, r *http.Request) {
	location := chi.URLParam(r, "location")

	devices := snapshots(s.registry.FindByLocation(location))
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"devices":  devices,
		"count":    len(devices),
		"location": location,
	})
}

// handleControlDevice executes a named action against a device.
//
// The request body carries the action plus any action parameters:
//
//	{"action": "set_brightness", "brightness": 60}
//
// Failures are relayed with the dispatch message and a 400 status.
func (s *Server) handleControlDevice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body == nil {
		writeBadRequest(w, "Action is required")
		return
	}

	action, ok := body["action"].(string)
	if !ok || action == "" {
		writeBadRequest(w, "Action is required")
		return
	}

	args := make(map[string]any, len(body)-1)
	for k, v := range body {
		if k != "action" {
			args[k] = v
		}
	}

	result := s.registry.Control(id, action, args)
	if !result.Success {
		writeJSON(w, http.StatusBadRequest, result)
		return
	}

	s.publishDeviceState(result.Device)
	writeJSON(w, http.StatusOK, result)
}

// addDeviceRequest is the body for POST /devices/add.
type addDeviceRequest struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	DeviceType string `json:"device_type"`
	Location   string `json:"location"`
}

// handleAddDevice registers a new device.
func (s *Server) handleAddDevice(w http.ResponseWriter, r *http.Request) {
	var req addDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Device data is required")
		return
	}

	required := []struct {
		field string
		value string
	}{
		{"id", req.ID},
		{"name", req.Name},
		{"device_type", req.DeviceType},
		{"location", req.Location},
	}
	for _, f := range required {
		if f.value == "" {
			writeBadRequest(w, fmt.Sprintf("Field %q is required", f.field))
			return
		}
	}

	typ, err := device.ParseType(req.DeviceType)
	if err != nil {
		writeBadRequest(w, fmt.Sprintf("Invalid device type: %s", req.DeviceType))
		return
	}

	d, err := device.New(typ, req.ID, req.Name, req.Location)
	if err != nil {
		writeBadRequest(w, fmt.Sprintf("Device type %s not yet supported for creation", typ))
		return
	}

	if err := s.registry.Add(d); err != nil {
		if errors.Is(err, device.ErrDuplicateID) {
			writeBadRequest(w, fmt.Sprintf("Device with ID %s already exists", req.ID))
			return
		}
		writeInternalError(w, "Failed to add device")
		return
	}

	snap := d.Snapshot()
	s.publishDeviceState(&snap)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Device %s added successfully", req.Name),
		"device":  snap,
	})
}

// handleRemoveDevice deletes a device by ID.
func (s *Server) handleRemoveDevice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.registry.Remove(id); err != nil {
		writeNotFound(w, fmt.Sprintf("Device %s not found", id))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Device %s removed successfully", id),
	})
}

// handleDeviceTypes enumerates the device type catalogue.
func (s *Server) handleDeviceTypes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"device_types": device.AllTypes(),
	})
}

// handleDeviceStats returns device registry statistics.
func (s *Server) handleDeviceStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"stats":   s.registry.GetStats(),
	})
}

// publishDeviceState fans a device state change out to the WebSocket hub,
// the MQTT bus, and the telemetry store. Absent backends are skipped.
func (s *Server) publishDeviceState(snap *device.Snapshot) {
	if snap == nil {
		return
	}

	if s.hub != nil {
		s.hub.Broadcast("device.state_changed", snap)
	}

	if s.mqtt != nil {
		payload, err := json.Marshal(snap)
		if err != nil {
			s.logger.Error("failed to marshal device state", "device_id", snap.ID, "error", err)
		} else if err := s.mqtt.PublishRetained(mqtt.Topics{}.DeviceState(snap.ID), payload); err != nil {
			s.logger.Warn("failed to publish device state", "device_id", snap.ID, "error", err)
		}
	}

	if s.influx != nil {
		s.influx.WriteDeviceState(snap.ID, string(snap.Type), string(snap.Status))
	}
}

// snapshots converts a device slice into serialisable snapshots,
// preserving registry order.
func snapshots(devices []device.Device) []device.Snapshot {
	out := make([]device.Snapshot, len(devices))
	for i, d := range devices {
		out[i] = d.Snapshot()
	}
	return out
}
