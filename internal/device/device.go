package device

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// base carries the state common to every device variant. Each device has
// its own lock so two requests mutating the same device never race on the
// property map or timestamp.
type base struct {
	mu          sync.RWMutex
	id          string
	name        string
	typ         Type
	location    string
	status      Status
	properties  map[string]any
	lastUpdated time.Time
	logger      Logger
}

func newBase(id, name string, typ Type, location string, properties map[string]any) base {
	return base{
		id:          id,
		name:        name,
		typ:         typ,
		location:    location,
		status:      StatusOff,
		properties:  properties,
		lastUpdated: time.Now().UTC(),
		logger:      noopLogger{},
	}
}

func (b *base) ID() string       { return b.id }
func (b *base) Name() string     { return b.name }
func (b *base) Type() Type       { return b.typ }
func (b *base) Location() string { return b.location }

func (b *base) Status() Status {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.status
}

func (b *base) LastUpdated() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastUpdated
}

// SetLogger sets the logger used for mutation log entries.
func (b *base) SetLogger(logger Logger) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if logger == nil {
		logger = noopLogger{}
	}
	b.logger = logger
}

// TurnOn sets the device status to on. Always succeeds.
func (b *base) TurnOn() {
	b.mu.Lock()
	b.status = StatusOn
	b.lastUpdated = time.Now().UTC()
	logger := b.logger
	b.mu.Unlock()
	logger.Info("device turned on", "device", b.name)
}

// TurnOff sets the device status to off. Always succeeds.
func (b *base) TurnOff() {
	b.mu.Lock()
	b.status = StatusOff
	b.lastUpdated = time.Now().UTC()
	logger := b.logger
	b.mu.Unlock()
	logger.Info("device turned off", "device", b.name)
}

// SetProperty writes an arbitrary property key. Unknown keys may be added
// this way; the fixed per-type schema is only touched by typed setters.
func (b *base) SetProperty(key string, value any) {
	b.mu.Lock()
	b.properties[key] = value
	b.lastUpdated = time.Now().UTC()
	logger := b.logger
	b.mu.Unlock()
	logger.Info("device property updated", "device", b.name, "property", key, "value", value)
}

// Property returns a property value by key.
func (b *base) Property(key string) (any, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.properties[key]
	return v, ok
}

// Snapshot returns a serialisable copy of the device record.
func (b *base) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	props := make(map[string]any, len(b.properties))
	for k, v := range b.properties {
		props[k] = v
	}

	return Snapshot{
		ID:          b.id,
		Name:        b.name,
		Type:        b.typ,
		Location:    b.location,
		Status:      b.status,
		Properties:  props,
		LastUpdated: b.lastUpdated,
	}
}

// setProperty mutates a schema property and the status in one critical
// section, then emits the mutation log entry.
func (b *base) setProperty(key string, value any, status Status) {
	b.mu.Lock()
	b.properties[key] = value
	b.status = status
	b.lastUpdated = time.Now().UTC()
	logger := b.logger
	b.mu.Unlock()
	logger.Info("device property updated", "device", b.name, "property", key, "value", value)
}

// Light is a dimmable colour lamp.
type Light struct {
	base
}

// NewLight creates a light with the fixed lamp schema.
func NewLight(id, name, location string) *Light {
	return &Light{base: newBase(id, name, TypeLight, location, map[string]any{
		"brightness":        100,
		"color":             "#FFFFFF",
		"color_temperature": 3000,
	})}
}

// SetBrightness sets lamp brightness (0-100). Zero forces the light off,
// any other accepted value forces it on. Out-of-range values leave state
// unchanged.
func (l *Light) SetBrightness(brightness int) error {
	if brightness < 0 || brightness > 100 {
		return fmt.Errorf("%w: brightness %d (want 0-100)", ErrOutOfRange, brightness)
	}
	status := StatusOn
	if brightness == 0 {
		status = StatusOff
	}
	l.setProperty("brightness", brightness, status)
	return nil
}

// SetColor sets the lamp colour. The colour must be a 7-character hex
// string starting with '#'.
func (l *Light) SetColor(color string) error {
	if !strings.HasPrefix(color, "#") || len(color) != 7 {
		return fmt.Errorf("%w: %q (want #RRGGBB)", ErrInvalidColor, color)
	}
	l.setProperty("color", color, l.Status())
	return nil
}

// Thermostat controls a temperature setpoint and operating mode.
type Thermostat struct {
	base
}

// NewThermostat creates a thermostat with the fixed climate schema.
func NewThermostat(id, name, location string) *Thermostat {
	return &Thermostat{base: newBase(id, name, TypeThermostat, location, map[string]any{
		"target_temperature":  22,
		"current_temperature": 20,
		"mode":                "auto",
		"humidity":            45,
	})}
}

// SetTemperature sets the target temperature (10-35 inclusive) and turns
// the unit on. Out-of-range values leave state unchanged.
func (t *Thermostat) SetTemperature(temperature int) error {
	if temperature < 10 || temperature > 35 {
		return fmt.Errorf("%w: temperature %d (want 10-35)", ErrOutOfRange, temperature)
	}
	t.setProperty("target_temperature", temperature, StatusOn)
	return nil
}

// SetMode sets the operating mode (auto, heat, cool, off;
// case-insensitive). Mode off turns the unit off, any other mode on.
func (t *Thermostat) SetMode(mode string) error {
	mode = strings.ToLower(mode)
	switch mode {
	case "auto", "heat", "cool", "off":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	status := StatusOn
	if mode == "off" {
		status = StatusOff
	}
	t.setProperty("mode", mode, status)
	return nil
}

// Fan is a variable-speed fan.
type Fan struct {
	base
}

// NewFan creates a fan with the fixed motor schema.
func NewFan(id, name, location string) *Fan {
	return &Fan{base: newBase(id, name, TypeFan, location, map[string]any{
		"speed":       0,
		"oscillating": false,
		"timer":       0,
	})}
}

// SetSpeed sets fan speed (0-5 inclusive). Zero turns the fan off, any
// other accepted value on. Out-of-range values leave state unchanged.
func (f *Fan) SetSpeed(speed int) error {
	if speed < 0 || speed > 5 {
		return fmt.Errorf("%w: speed %d (want 0-5)", ErrOutOfRange, speed)
	}
	status := StatusOn
	if speed == 0 {
		status = StatusOff
	}
	f.setProperty("speed", speed, status)
	return nil
}

// SetOscillating toggles oscillation. Always succeeds and does not change
// the power status.
func (f *Fan) SetOscillating(oscillating bool) error {
	f.setProperty("oscillating", oscillating, f.Status())
	return nil
}

// DoorLock is a latch with a battery.
//
// Lock and Unlock both leave status=on: status models whether the lock
// service is responsive, not whether the latch is engaged. The latch
// position is carried in the "locked" property.
type DoorLock struct {
	base
}

// NewDoorLock creates a door lock with the fixed latch schema, initially
// locked.
func NewDoorLock(id, name, location string) *DoorLock {
	return &DoorLock{base: newBase(id, name, TypeDoorLock, location, map[string]any{
		"locked":        true,
		"battery_level": 85,
		"last_access":   nil,
	})}
}

// Lock engages the latch and stamps last_access. Always succeeds.
func (d *DoorLock) Lock() { d.setLatch(true) }

// Unlock releases the latch and stamps last_access. Always succeeds.
func (d *DoorLock) Unlock() { d.setLatch(false) }

func (d *DoorLock) setLatch(locked bool) {
	now := time.Now().UTC()
	d.mu.Lock()
	d.properties["locked"] = locked
	d.properties["last_access"] = now
	d.status = StatusOn
	d.lastUpdated = now
	logger := d.logger
	d.mu.Unlock()
	logger.Info("device latch changed", "device", d.name, "locked", locked)
}

// New constructs a device of the given type. Only the types listed by
// ConstructibleTypes can be created; the rest return ErrUnsupportedType.
func New(typ Type, id, name, location string) (Device, error) {
	switch typ {
	case TypeLight:
		return NewLight(id, name, location), nil
	case TypeThermostat:
		return NewThermostat(id, name, location), nil
	case TypeFan:
		return NewFan(id, name, location), nil
	case TypeDoorLock:
		return NewDoorLock(id, name, location), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, typ)
	}
}
