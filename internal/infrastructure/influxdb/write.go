package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteCommand records the outcome of a processed voice command.
//
// The write is non-blocking; data is batched and sent asynchronously.
//
// Parameters:
//   - kind: The command kind (e.g., "turn_on", "set_brightness")
//   - success: Whether dispatch succeeded
//   - durationMs: Interpret-and-dispatch latency in milliseconds
//
// Example:
//
//	client.WriteCommand("turn_on", true, 2)
func (c *Client) WriteCommand(kind string, success bool, durationMs int64) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"voice_commands",
		map[string]string{
			"kind": kind,
		},
		map[string]interface{}{
			"success":     success,
			"duration_ms": durationMs,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteEvent records an assistant event occurrence for rate monitoring.
//
// Parameters:
//   - eventType: The event type (e.g., "transcription_final", "command")
func (c *Client) WriteEvent(eventType string) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"voice_events",
		map[string]string{
			"type": eventType,
		},
		map[string]interface{}{
			"count": 1,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteDeviceState records a device status change.
//
// Parameters:
//   - deviceID: Device identifier (e.g., "light_1")
//   - deviceType: Device type tag (e.g., "light")
//   - status: The new status value ("on", "off", ...)
func (c *Client) WriteDeviceState(deviceID, deviceType, status string) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"device_state",
		map[string]string{
			"device_id":   deviceID,
			"device_type": deviceType,
		},
		map[string]interface{}{
			"status": status,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WritePoint writes a custom point with full control over tags and fields.
//
// Use this for custom measurements that don't fit the helper methods.
//
// Example:
//
//	client.WritePoint("system_stats",
//	    map[string]string{"host": "core-01"},
//	    map[string]interface{}{"goroutines": 42})
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, time.Now())
	c.writeAPI.WritePoint(point)
}
