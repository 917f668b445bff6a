package device

import (
	"fmt"
	"time"
)

// Type classifies a device. Only the first four types have behaviour and
// can be created through the API; the rest exist so the catalogue can
// describe a full home.
type Type string

// Device type constants.
const (
	TypeLight          Type = "light"
	TypeThermostat     Type = "thermostat"
	TypeFan            Type = "fan"
	TypeDoorLock       Type = "door_lock"
	TypeSecurityCamera Type = "security_camera"
	TypeSmartPlug      Type = "smart_plug"
	TypeSpeaker        Type = "speaker"
	TypeTV             Type = "tv"
)

// AllTypes returns all valid device type values.
func AllTypes() []Type {
	return []Type{
		TypeLight, TypeThermostat, TypeFan, TypeDoorLock,
		TypeSecurityCamera, TypeSmartPlug, TypeSpeaker, TypeTV,
	}
}

// ConstructibleTypes returns the device types that can be created at
// runtime. The remaining types are catalogue-only.
func ConstructibleTypes() []Type {
	return []Type{TypeLight, TypeThermostat, TypeFan, TypeDoorLock}
}

// ParseType validates a raw type string against the closed enumeration.
func ParseType(s string) (Type, error) {
	t := Type(s)
	for _, valid := range AllTypes() {
		if t == valid {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidType, s)
}

// Status is the coarse power state of a device. Finer-grained state
// (brightness, setpoint, locked) lives in the property bag.
type Status string

// Status constants.
const (
	StatusOn      Status = "on"
	StatusOff     Status = "off"
	StatusUnknown Status = "unknown"
	StatusError   Status = "error"
)

// AllStatuses returns all valid status values.
func AllStatuses() []Status {
	return []Status{StatusOn, StatusOff, StatusUnknown, StatusError}
}

// Snapshot is the serialised representation of a device returned over
// the API and embedded in dispatch results. Enum fields render as their
// string values.
type Snapshot struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Type        Type           `json:"device_type"`
	Location    string         `json:"location"`
	Status      Status         `json:"status"`
	Properties  map[string]any `json:"properties"`
	LastUpdated time.Time      `json:"last_updated"`
}

// Device is the common surface shared by every device variant.
// Type-specific mutators are exposed through the capability interfaces
// below and discovered by interface assertion at dispatch time.
type Device interface {
	ID() string
	Name() string
	Type() Type
	Location() string
	Status() Status
	LastUpdated() time.Time

	// TurnOn and TurnOff always succeed.
	TurnOn()
	TurnOff()

	// SetProperty performs an ad-hoc property write. Type-specific
	// setters only ever touch their own fixed schema keys.
	SetProperty(key string, value any)
	Property(key string) (any, bool)

	Snapshot() Snapshot
	SetLogger(Logger)
}

// BrightnessController is implemented by devices with a dimmable lamp.
type BrightnessController interface {
	Device
	SetBrightness(brightness int) error
	SetColor(color string) error
}

// ClimateController is implemented by devices with a temperature setpoint.
type ClimateController interface {
	Device
	SetTemperature(temperature int) error
	SetMode(mode string) error
}

// SpeedController is implemented by devices with a variable-speed motor.
type SpeedController interface {
	Device
	SetSpeed(speed int) error
	SetOscillating(oscillating bool) error
}

// LockController is implemented by devices with a latch.
type LockController interface {
	Device
	Lock()
	Unlock()
}
