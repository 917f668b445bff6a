package device

import "errors"

// Domain errors for the device package. Check with errors.Is():
//
//	if errors.Is(err, device.ErrOutOfRange) {
//	    // reject without mutating state
//	}
var (
	// ErrNotFound is returned when no registered device matches a lookup.
	ErrNotFound = errors.New("device: not found")

	// ErrDuplicateID is returned when adding a device whose ID is
	// already registered.
	ErrDuplicateID = errors.New("device: duplicate id")

	// ErrInvalidType is returned when a device type is not recognised.
	ErrInvalidType = errors.New("device: invalid type")

	// ErrUnsupportedType is returned when a catalogue-only type is used
	// where a constructible type is required.
	ErrUnsupportedType = errors.New("device: type not supported for creation")

	// ErrOutOfRange is returned when a numeric setter argument falls
	// outside the device's accepted range. State is left unchanged.
	ErrOutOfRange = errors.New("device: value out of range")

	// ErrInvalidColor is returned when a colour is not a #RRGGBB string.
	ErrInvalidColor = errors.New("device: invalid colour format")

	// ErrInvalidMode is returned when a thermostat mode is not one of
	// auto, heat, cool, off.
	ErrInvalidMode = errors.New("device: invalid mode")
)
