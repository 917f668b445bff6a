package api

import (
	"net/http"
	"testing"
)

// ─── Device Listing Tests ──────────────────────────────────────────

func TestListDevices(t *testing.T) {
	srv, _ := testServer(t)

	w, resp := doRequest(t, srv, http.MethodGet, "/devices/", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if resp["success"] != true {
		t.Error("expected success = true")
	}
	if resp["count"] != float64(8) {
		t.Errorf("count = %v, want 8", resp["count"])
	}

	devices, ok := resp["devices"].(map[string]any)
	if !ok {
		t.Fatalf("devices is %T, want map keyed by id", resp["devices"])
	}
	if _, ok := devices["light_1"]; !ok {
		t.Error("expected light_1 in device map")
	}
}

func TestGetDevice(t *testing.T) {
	srv, _ := testServer(t)

	w, resp := doRequest(t, srv, http.MethodGet, "/devices/light_1", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	dev, ok := resp["device"].(map[string]any)
	if !ok {
		t.Fatalf("device is %T, want object", resp["device"])
	}
	if dev["name"] != "Living Room Light" {
		t.Errorf("name = %v, want Living Room Light", dev["name"])
	}
	if dev["device_type"] != "light" {
		t.Errorf("device_type = %v, want light", dev["device_type"])
	}
}

func TestGetDevice_NotFound(t *testing.T) {
	srv, _ := testServer(t)

	w, resp := doRequest(t, srv, http.MethodGet, "/devices/ghost", nil)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
	if resp["message"] != "Device ghost not found" {
		t.Errorf("message = %v", resp["message"])
	}
}

func TestSearchDevices(t *testing.T) {
	srv, _ := testServer(t)

	w, resp := doRequest(t, srv, http.MethodGet, "/devices/search?q=bedroom", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	// Bedroom Light plus Bedroom Fan
	if resp["count"] != float64(2) {
		t.Errorf("count = %v, want 2", resp["count"])
	}
	if resp["query"] != "bedroom" {
		t.Errorf("query = %v, want bedroom", resp["query"])
	}
}

func TestSearchDevices_MissingQuery(t *testing.T) {
	srv, _ := testServer(t)

	w, resp := doRequest(t, srv, http.MethodGet, "/devices/search", nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if resp["message"] != `Query parameter "q" is required` {
		t.Errorf("message = %v", resp["message"])
	}
}

func TestDevicesByType(t *testing.T) {
	srv, _ := testServer(t)

	w, resp := doRequest(t, srv, http.MethodGet, "/devices/by-type/light", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if resp["count"] != float64(3) {
		t.Errorf("count = %v, want 3", resp["count"])
	}
	if resp["device_type"] != "light" {
		t.Errorf("device_type = %v, want light", resp["device_type"])
	}
}

func TestDevicesByType_Invalid(t *testing.T) {
	srv, _ := testServer(t)

	w, resp := doRequest(t, srv, http.MethodGet, "/devices/by-type/toaster", nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if resp["message"] != "Invalid device type: toaster" {
		t.Errorf("message = %v", resp["message"])
	}
}

func TestDevicesByLocation(t *testing.T) {
	srv, _ := testServer(t)

	w, resp := doRequest(t, srv, http.MethodGet, "/devices/by-location/living_room", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	// Living Room Light, Main Thermostat, Living Room Fan
	if resp["count"] != float64(3) {
		t.Errorf("count = %v, want 3", resp["count"])
	}
	if resp["location"] != "living_room" {
		t.Errorf("location = %v, want living_room", resp["location"])
	}
}

func TestDevicesByLocation_ExactMatchOnly(t *testing.T) {
	srv, _ := testServer(t)

	w, resp := doRequest(t, srv, http.MethodGet, "/devices/by-location/room", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if resp["count"] != float64(0) {
		t.Errorf("count = %v, want 0", resp["count"])
	}
}

func TestDeviceTypes(t *testing.T) {
	srv, _ := testServer(t)

	w, resp := doRequest(t, srv, http.MethodGet, "/devices/types", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	types, ok := resp["device_types"].([]any)
	if !ok {
		t.Fatalf("device_types is %T, want array", resp["device_types"])
	}
	if len(types) != 8 {
		t.Errorf("len(device_types) = %d, want 8", len(types))
	}
}

func TestDeviceStats(t *testing.T) {
	srv, _ := testServer(t)

	w, resp := doRequest(t, srv, http.MethodGet, "/devices/stats", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	stats, ok := resp["stats"].(map[string]any)
	if !ok {
		t.Fatalf("stats is %T, want object", resp["stats"])
	}
	if stats["total_devices"] != float64(8) {
		t.Errorf("total_devices = %v, want 8", stats["total_devices"])
	}
	byType, _ := stats["by_type"].(map[string]any)
	if byType["light"] != float64(3) {
		t.Errorf("by_type[light] = %v, want 3", byType["light"])
	}
}

// ─── Device Control Tests ──────────────────────────────────────────

func TestControlDevice_TurnOn(t *testing.T) {
	srv, registry := testServer(t)

	body := `{"action": "turn_on"}`
	w, resp := doRequest(t, srv, http.MethodPost, "/devices/light_1/control", &body)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body: %v)", w.Code, http.StatusOK, resp)
	}
	if resp["message"] != "Successfully executed turn_on on Living Room Light" {
		t.Errorf("message = %v", resp["message"])
	}

	d, err := registry.Get("light_1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if d.Status() != "on" {
		t.Errorf("status = %v, want on", d.Status())
	}
}

func TestControlDevice_SetBrightness(t *testing.T) {
	srv, registry := testServer(t)

	body := `{"action": "set_brightness", "brightness": 60}`
	w, _ := doRequest(t, srv, http.MethodPost, "/devices/light_2/control", &body)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	d, err := registry.Get("light_2")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got, _ := d.Property("brightness"); got != 60 {
		t.Errorf("brightness = %v, want 60", got)
	}
}

func TestControlDevice_ResponseIncludesSnapshot(t *testing.T) {
	srv, _ := testServer(t)

	body := `{"action": "unlock"}`
	w, resp := doRequest(t, srv, http.MethodPost, "/devices/lock_1/control", &body)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	dev, ok := resp["device"].(map[string]any)
	if !ok {
		t.Fatalf("device is %T, want object", resp["device"])
	}
	props, _ := dev["properties"].(map[string]any)
	if props["locked"] != false {
		t.Errorf("locked = %v, want false", props["locked"])
	}
}

func TestControlDevice_MissingAction(t *testing.T) {
	srv, _ := testServer(t)

	body := `{"brightness": 50}`
	w, resp := doRequest(t, srv, http.MethodPost, "/devices/light_1/control", &body)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if resp["message"] != "Action is required" {
		t.Errorf("message = %v", resp["message"])
	}
}

func TestControlDevice_UnsupportedAction(t *testing.T) {
	srv, _ := testServer(t)

	body := `{"action": "set_brightness"}`
	w, resp := doRequest(t, srv, http.MethodPost, "/devices/lock_1/control", &body)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if resp["message"] != "Action set_brightness not supported for device Front Door" {
		t.Errorf("message = %v", resp["message"])
	}
}

func TestControlDevice_NotFound(t *testing.T) {
	srv, _ := testServer(t)

	body := `{"action": "turn_on"}`
	w, resp := doRequest(t, srv, http.MethodPost, "/devices/ghost/control", &body)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if resp["message"] != "Device ghost not found" {
		t.Errorf("message = %v", resp["message"])
	}
}

// ─── Device Add/Remove Tests ───────────────────────────────────────

func TestAddDevice(t *testing.T) {
	srv, registry := testServer(t)

	body := `{"id": "light_9", "name": "Porch Light", "device_type": "light", "location": "porch"}`
	w, resp := doRequest(t, srv, http.MethodPost, "/devices/add", &body)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body: %v)", w.Code, http.StatusOK, resp)
	}
	if resp["message"] != "Device Porch Light added successfully" {
		t.Errorf("message = %v", resp["message"])
	}
	if registry.Count() != 9 {
		t.Errorf("Count() = %d, want 9", registry.Count())
	}
}

func TestAddDevice_MissingField(t *testing.T) {
	srv, _ := testServer(t)

	body := `{"id": "light_9", "device_type": "light", "location": "porch"}`
	w, resp := doRequest(t, srv, http.MethodPost, "/devices/add", &body)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if resp["message"] != `Field "name" is required` {
		t.Errorf("message = %v", resp["message"])
	}
}

func TestAddDevice_InvalidType(t *testing.T) {
	srv, _ := testServer(t)

	body := `{"id": "x", "name": "X", "device_type": "toaster", "location": "kitchen"}`
	w, resp := doRequest(t, srv, http.MethodPost, "/devices/add", &body)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if resp["message"] != "Invalid device type: toaster" {
		t.Errorf("message = %v", resp["message"])
	}
}

func TestAddDevice_CatalogueOnlyType(t *testing.T) {
	srv, _ := testServer(t)

	body := `{"id": "cam_1", "name": "Door Camera", "device_type": "security_camera", "location": "entrance"}`
	w, resp := doRequest(t, srv, http.MethodPost, "/devices/add", &body)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if resp["message"] != "Device type security_camera not yet supported for creation" {
		t.Errorf("message = %v", resp["message"])
	}
}

func TestAddDevice_Duplicate(t *testing.T) {
	srv, _ := testServer(t)

	body := `{"id": "light_1", "name": "Clone", "device_type": "light", "location": "anywhere"}`
	w, resp := doRequest(t, srv, http.MethodPost, "/devices/add", &body)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if resp["message"] != "Device with ID light_1 already exists" {
		t.Errorf("message = %v", resp["message"])
	}
}

func TestRemoveDevice(t *testing.T) {
	srv, registry := testServer(t)

	w, resp := doRequest(t, srv, http.MethodDelete, "/devices/fan_2", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if resp["message"] != "Device fan_2 removed successfully" {
		t.Errorf("message = %v", resp["message"])
	}
	if registry.Count() != 7 {
		t.Errorf("Count() = %d, want 7", registry.Count())
	}
}

func TestRemoveDevice_NotFound(t *testing.T) {
	srv, _ := testServer(t)

	w, resp := doRequest(t, srv, http.MethodDelete, "/devices/ghost", nil)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
	if resp["message"] != "Device ghost not found" {
		t.Errorf("message = %v", resp["message"])
	}
}
