package device

import (
	"fmt"
	"strconv"
)

// ControlResult is the uniform outcome of a control invocation. Device is
// populated with the post-action snapshot on success.
type ControlResult struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Device  *Snapshot `json:"device,omitempty"`
}

// Control actions accepted by Registry.Control.
const (
	ActionTurnOn         = "turn_on"
	ActionTurnOff        = "turn_off"
	ActionSetBrightness  = "set_brightness"
	ActionSetColor       = "set_color"
	ActionSetTemperature = "set_temperature"
	ActionSetMode        = "set_mode"
	ActionSetSpeed       = "set_speed"
	ActionSetOscillating = "set_oscillating"
	ActionLock           = "lock"
	ActionUnlock         = "unlock"
	ActionUpdateProperty = "update_property"
)

// Control executes a named action against a device. It never returns an
// error; failures are reported in the result so callers can relay the
// message verbatim. A panicking device is caught and reported as a
// failed execution.
func (r *Registry) Control(id, action string, args map[string]any) (result ControlResult) {
	d, err := r.Get(id)
	if err != nil {
		return ControlResult{Success: false, Message: fmt.Sprintf("Device %s not found", id)}
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("device action panicked", "id", id, "action", action, "panic", rec)
			result = ControlResult{
				Success: false,
				Message: fmt.Sprintf("Failed to execute %s on %s", action, d.Name()),
			}
		}
	}()

	ok, supported := apply(d, action, args)
	if !supported {
		r.logger.Warn("unsupported device action", "id", id, "action", action, "type", d.Type())
		return ControlResult{
			Success: false,
			Message: fmt.Sprintf("Action %s not supported for device %s", action, d.Name()),
		}
	}
	if !ok {
		return ControlResult{
			Success: false,
			Message: fmt.Sprintf("Failed to execute %s on %s", action, d.Name()),
		}
	}

	snap := d.Snapshot()
	r.logger.Info("device action executed", "id", id, "action", action)
	return ControlResult{
		Success: true,
		Message: fmt.Sprintf("Successfully executed %s on %s", action, d.Name()),
		Device:  &snap,
	}
}

// apply routes an action to the matching capability. The second return
// reports whether the device supports the action at all; the first
// whether it succeeded.
func apply(d Device, action string, args map[string]any) (ok, supported bool) {
	switch action {
	case ActionTurnOn:
		d.TurnOn()
		return true, true
	case ActionTurnOff:
		d.TurnOff()
		return true, true
	case ActionSetBrightness:
		c, isCap := d.(BrightnessController)
		if !isCap {
			return false, false
		}
		return c.SetBrightness(intArg(args, "brightness", 100)) == nil, true
	case ActionSetColor:
		c, isCap := d.(BrightnessController)
		if !isCap {
			return false, false
		}
		return c.SetColor(stringArg(args, "color", "#FFFFFF")) == nil, true
	case ActionSetTemperature:
		c, isCap := d.(ClimateController)
		if !isCap {
			return false, false
		}
		return c.SetTemperature(intArg(args, "temperature", 22)) == nil, true
	case ActionSetMode:
		c, isCap := d.(ClimateController)
		if !isCap {
			return false, false
		}
		return c.SetMode(stringArg(args, "mode", "auto")) == nil, true
	case ActionSetSpeed:
		c, isCap := d.(SpeedController)
		if !isCap {
			return false, false
		}
		return c.SetSpeed(intArg(args, "speed", 1)) == nil, true
	case ActionSetOscillating:
		c, isCap := d.(SpeedController)
		if !isCap {
			return false, false
		}
		return c.SetOscillating(boolArg(args, "oscillating", true)) == nil, true
	case ActionLock:
		c, isCap := d.(LockController)
		if !isCap {
			return false, false
		}
		c.Lock()
		return true, true
	case ActionUnlock:
		c, isCap := d.(LockController)
		if !isCap {
			return false, false
		}
		c.Unlock()
		return true, true
	case ActionUpdateProperty:
		key := stringArg(args, "key", "")
		if key == "" {
			return false, true
		}
		d.SetProperty(key, args["value"])
		return true, true
	default:
		return false, false
	}
}

// intArg coerces an argument to int. JSON numbers decode as float64, so
// that is the common case; strings are parsed as a convenience for
// voice-derived parameters.
func intArg(args map[string]any, key string, fallback int) int {
	v, ok := args[key]
	if !ok {
		return fallback
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case string:
		if parsed, err := strconv.Atoi(n); err == nil {
			return parsed
		}
	}
	return fallback
}

func stringArg(args map[string]any, key, fallback string) string {
	if s, ok := args[key].(string); ok {
		return s
	}
	return fallback
}

func boolArg(args map[string]any, key string, fallback bool) bool {
	if b, ok := args[key].(bool); ok {
		return b
	}
	return fallback
}
