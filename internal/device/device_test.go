package device

import (
	"errors"
	"sync"
	"testing"
)

func TestLight_SetBrightness(t *testing.T) {
	t.Run("accepts value in range and turns on", func(t *testing.T) {
		l := NewLight("l1", "Lamp", "study")
		if err := l.SetBrightness(75); err != nil {
			t.Fatalf("SetBrightness() error = %v", err)
		}
		if v, _ := l.Property("brightness"); v != 75 {
			t.Errorf("brightness = %v, want 75", v)
		}
		if l.Status() != StatusOn {
			t.Errorf("Status() = %q, want %q", l.Status(), StatusOn)
		}
	})

	t.Run("zero turns light off", func(t *testing.T) {
		l := NewLight("l1", "Lamp", "study")
		l.TurnOn()
		if err := l.SetBrightness(0); err != nil {
			t.Fatalf("SetBrightness() error = %v", err)
		}
		if l.Status() != StatusOff {
			t.Errorf("Status() = %q, want %q", l.Status(), StatusOff)
		}
	})

	t.Run("out of range leaves state unchanged", func(t *testing.T) {
		l := NewLight("l1", "Lamp", "study")
		for _, bad := range []int{-1, 101} {
			if err := l.SetBrightness(bad); !errors.Is(err, ErrOutOfRange) {
				t.Errorf("SetBrightness(%d) error = %v, want ErrOutOfRange", bad, err)
			}
		}
		if v, _ := l.Property("brightness"); v != 100 {
			t.Errorf("brightness = %v, want 100", v)
		}
		if l.Status() != StatusOff {
			t.Errorf("Status() = %q, want %q", l.Status(), StatusOff)
		}
	})
}

func TestLight_SetColor(t *testing.T) {
	l := NewLight("l1", "Lamp", "study")

	if err := l.SetColor("#FFAA00"); err != nil {
		t.Fatalf("SetColor() error = %v", err)
	}
	if v, _ := l.Property("color"); v != "#FFAA00" {
		t.Errorf("color = %v, want #FFAA00", v)
	}

	for _, bad := range []string{"FFAA00", "#FFF", "red", "#FFAA001"} {
		if err := l.SetColor(bad); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("SetColor(%q) error = %v, want ErrInvalidColor", bad, err)
		}
	}
}

func TestThermostat_SetTemperature(t *testing.T) {
	th := NewThermostat("t1", "Thermostat", "hall")

	t.Run("accepts boundary values and turns on", func(t *testing.T) {
		for _, temp := range []int{10, 35, 22} {
			if err := th.SetTemperature(temp); err != nil {
				t.Fatalf("SetTemperature(%d) error = %v", temp, err)
			}
		}
		if th.Status() != StatusOn {
			t.Errorf("Status() = %q, want %q", th.Status(), StatusOn)
		}
	})

	t.Run("rejects out of range", func(t *testing.T) {
		for _, temp := range []int{9, 36} {
			if err := th.SetTemperature(temp); !errors.Is(err, ErrOutOfRange) {
				t.Errorf("SetTemperature(%d) error = %v, want ErrOutOfRange", temp, err)
			}
		}
		if v, _ := th.Property("target_temperature"); v != 22 {
			t.Errorf("target_temperature = %v, want 22", v)
		}
	})
}

func TestThermostat_SetMode(t *testing.T) {
	th := NewThermostat("t1", "Thermostat", "hall")

	if err := th.SetMode("HEAT"); err != nil {
		t.Fatalf("SetMode() error = %v", err)
	}
	if v, _ := th.Property("mode"); v != "heat" {
		t.Errorf("mode = %v, want heat", v)
	}
	if th.Status() != StatusOn {
		t.Errorf("Status() = %q, want %q", th.Status(), StatusOn)
	}

	if err := th.SetMode("off"); err != nil {
		t.Fatalf("SetMode() error = %v", err)
	}
	if th.Status() != StatusOff {
		t.Errorf("Status() = %q, want %q after mode off", th.Status(), StatusOff)
	}

	if err := th.SetMode("turbo"); !errors.Is(err, ErrInvalidMode) {
		t.Errorf("SetMode(turbo) error = %v, want ErrInvalidMode", err)
	}
}

func TestFan_SetSpeed(t *testing.T) {
	f := NewFan("f1", "Fan", "bedroom")

	if err := f.SetSpeed(3); err != nil {
		t.Fatalf("SetSpeed() error = %v", err)
	}
	if f.Status() != StatusOn {
		t.Errorf("Status() = %q, want %q", f.Status(), StatusOn)
	}

	if err := f.SetSpeed(0); err != nil {
		t.Fatalf("SetSpeed(0) error = %v", err)
	}
	if f.Status() != StatusOff {
		t.Errorf("Status() = %q, want %q after speed 0", f.Status(), StatusOff)
	}

	for _, bad := range []int{-1, 6} {
		if err := f.SetSpeed(bad); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("SetSpeed(%d) error = %v, want ErrOutOfRange", bad, err)
		}
	}
}

func TestDoorLock_LockUnlock(t *testing.T) {
	d := NewDoorLock("d1", "Front Door", "entrance")

	if v, _ := d.Property("locked"); v != true {
		t.Fatalf("new lock locked = %v, want true", v)
	}
	if v, _ := d.Property("last_access"); v != nil {
		t.Fatalf("new lock last_access = %v, want nil", v)
	}

	d.Unlock()
	if v, _ := d.Property("locked"); v != false {
		t.Errorf("locked = %v after Unlock, want false", v)
	}
	if v, _ := d.Property("last_access"); v == nil {
		t.Error("last_access not stamped by Unlock")
	}
	if d.Status() != StatusOn {
		t.Errorf("Status() = %q, want %q", d.Status(), StatusOn)
	}

	d.Lock()
	if v, _ := d.Property("locked"); v != true {
		t.Errorf("locked = %v after Lock, want true", v)
	}
}

func TestNew(t *testing.T) {
	t.Run("builds each constructible type", func(t *testing.T) {
		for _, typ := range ConstructibleTypes() {
			d, err := New(typ, "id", "name", "loc")
			if err != nil {
				t.Fatalf("New(%s) error = %v", typ, err)
			}
			if d.Type() != typ {
				t.Errorf("Type() = %q, want %q", d.Type(), typ)
			}
			if d.Status() != StatusOff {
				t.Errorf("new %s Status() = %q, want %q", typ, d.Status(), StatusOff)
			}
		}
	})

	t.Run("rejects catalogue-only types", func(t *testing.T) {
		_, err := New(TypeSecurityCamera, "id", "name", "loc")
		if !errors.Is(err, ErrUnsupportedType) {
			t.Errorf("New(security_camera) error = %v, want ErrUnsupportedType", err)
		}
	})
}

func TestParseType(t *testing.T) {
	if _, err := ParseType("light"); err != nil {
		t.Errorf("ParseType(light) error = %v", err)
	}
	if _, err := ParseType("toaster"); !errors.Is(err, ErrInvalidType) {
		t.Errorf("ParseType(toaster) error = %v, want ErrInvalidType", err)
	}
}

func TestSnapshot_CopiesProperties(t *testing.T) {
	l := NewLight("l1", "Lamp", "study")
	snap := l.Snapshot()
	snap.Properties["brightness"] = 1

	if v, _ := l.Property("brightness"); v != 100 {
		t.Errorf("mutating snapshot changed device: brightness = %v, want 100", v)
	}
	if snap.Type != TypeLight {
		t.Errorf("snapshot Type = %q, want %q", snap.Type, TypeLight)
	}
}

func TestDevice_ConcurrentLoggerSwap(t *testing.T) {
	l := NewLight("l1", "Lamp", "study")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			l.SetLogger(noopLogger{})
		}()
		go func() {
			defer wg.Done()
			l.TurnOn()
			l.SetProperty("note", "checked")
			l.TurnOff()
		}()
	}
	wg.Wait()

	if l.Status() != StatusOff && l.Status() != StatusOn {
		t.Errorf("Status() = %q after concurrent mutation", l.Status())
	}
}
