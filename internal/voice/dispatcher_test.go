package voice

import (
	"strings"
	"testing"

	"github.com/hearthd/hearth-core/internal/device"
)

func testRegistry(t *testing.T) *device.Registry {
	t.Helper()
	r := device.NewRegistry()
	if err := device.SeedDefaults(r); err != nil {
		t.Fatalf("SeedDefaults() error = %v", err)
	}
	return r
}

func dispatch(t *testing.T, text string) (Result, *device.Registry) {
	t.Helper()
	r := testRegistry(t)
	dp := NewDispatcher(r)
	return dp.Dispatch(NewInterpreter().Interpret(text)), r
}

func TestDispatcher_TurnOn(t *testing.T) {
	t.Run("exact name match", func(t *testing.T) {
		res, r := dispatch(t, "turn on the living room light")
		if !res.Success {
			t.Fatalf("Dispatch() failed: %s", res.Message)
		}
		d, _ := r.Get("light_1")
		if d.Status() != device.StatusOn {
			t.Errorf("light_1 status = %q, want on", d.Status())
		}
	})

	t.Run("fuzzy fallback takes first match", func(t *testing.T) {
		// "light" is not an exact name; search returns light_1 first
		res, r := dispatch(t, "turn on the light")
		if !res.Success {
			t.Fatalf("Dispatch() failed: %s", res.Message)
		}
		d, _ := r.Get("light_1")
		if d.Status() != device.StatusOn {
			t.Errorf("light_1 status = %q, want on", d.Status())
		}
	})

	t.Run("unknown device", func(t *testing.T) {
		res, _ := dispatch(t, "turn on the jacuzzi")
		if res.Success {
			t.Fatal("Dispatch() succeeded for unknown device")
		}
		if res.Message != `Device "jacuzzi" not found` {
			t.Errorf("Message = %q", res.Message)
		}
	})
}

func TestDispatcher_TurnOff_Lock(t *testing.T) {
	// Generic power commands apply to locks like any other device.
	res, r := dispatch(t, "turn off the front door")
	if !res.Success {
		t.Fatalf("Dispatch() failed: %s", res.Message)
	}
	d, _ := r.Get("lock_1")
	if d.Status() != device.StatusOff {
		t.Errorf("lock_1 status = %q, want off", d.Status())
	}
}

func TestDispatcher_SetBrightness(t *testing.T) {
	t.Run("sets brightness on a light", func(t *testing.T) {
		res, r := dispatch(t, "set the bedroom light brightness to 30")
		if !res.Success {
			t.Fatalf("Dispatch() failed: %s", res.Message)
		}
		d, _ := r.Get("light_2")
		if v, _ := d.Property("brightness"); v != 30 {
			t.Errorf("brightness = %v, want 30", v)
		}
	})

	t.Run("requires exact name", func(t *testing.T) {
		res, _ := dispatch(t, "set the bedroom brightness to 30")
		if res.Success {
			t.Fatal("Dispatch() succeeded for inexact name")
		}
		if res.Message != `Light "bedroom" not found` {
			t.Errorf("Message = %q", res.Message)
		}
	})

	t.Run("rejects non-light target", func(t *testing.T) {
		res, _ := dispatch(t, "set the main thermostat brightness to 30")
		if res.Success {
			t.Fatal("Dispatch() set brightness on a thermostat")
		}
		if res.Message != `Light "main thermostat" not found` {
			t.Errorf("Message = %q", res.Message)
		}
	})

	t.Run("out of range reports failure", func(t *testing.T) {
		res, _ := dispatch(t, "set the bedroom light brightness to 500")
		if res.Success {
			t.Fatal("Dispatch() accepted brightness 500")
		}
		if !strings.HasPrefix(res.Message, "Failed to execute set_brightness") {
			t.Errorf("Message = %q", res.Message)
		}
	})
}

func TestDispatcher_SetTemperature(t *testing.T) {
	t.Run("sets target on a thermostat", func(t *testing.T) {
		res, r := dispatch(t, "set the main thermostat to 25 degrees")
		if !res.Success {
			t.Fatalf("Dispatch() failed: %s", res.Message)
		}
		d, _ := r.Get("thermostat_1")
		if v, _ := d.Property("target_temperature"); v != 25 {
			t.Errorf("target_temperature = %v, want 25", v)
		}
	})

	t.Run("rejects non-thermostat target", func(t *testing.T) {
		res, _ := dispatch(t, "set the bedroom fan to 25 degrees")
		if res.Success {
			t.Fatal("Dispatch() set temperature on a fan")
		}
		if res.Message != `Thermostat "bedroom fan" not found` {
			t.Errorf("Message = %q", res.Message)
		}
	})
}

func TestDispatcher_GetStatus(t *testing.T) {
	res, _ := dispatch(t, "what is the status of the front door")
	if !res.Success {
		t.Fatalf("Dispatch() failed: %s", res.Message)
	}
	if res.Message != "Front Door is off" {
		t.Errorf("Message = %q", res.Message)
	}
	if res.Device == nil || res.Device.ID != "lock_1" {
		t.Errorf("Device = %+v, want lock_1 snapshot", res.Device)
	}
}

func TestDispatcher_ListDevices(t *testing.T) {
	res, _ := dispatch(t, "list all devices")
	if !res.Success {
		t.Fatalf("Dispatch() failed: %s", res.Message)
	}
	if len(res.Devices) != 8 {
		t.Errorf("len(Devices) = %d, want 8", len(res.Devices))
	}
	if !strings.HasPrefix(res.Message, "Available devices: Living Room Light (light)") {
		t.Errorf("Message = %q", res.Message)
	}
	if !strings.Contains(res.Message, "Front Door (door_lock)") {
		t.Errorf("Message missing lock entry: %q", res.Message)
	}
}

func TestDispatcher_Unknown(t *testing.T) {
	res, _ := dispatch(t, "make me a sandwich")
	if res.Success {
		t.Fatal("Dispatch() succeeded for unknown command")
	}
	if res.Message != "Unknown command type: unknown" {
		t.Errorf("Message = %q", res.Message)
	}
}
