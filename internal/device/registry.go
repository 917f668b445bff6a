package device

import (
	"strings"
	"sync"
)

// Logger defines the logging interface used by the device package.
// This allows different logging implementations to be used.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Registry is the in-memory device collection.
//
// Devices are kept in insertion order so that list and search results
// iterate deterministically; the first device added is always the first
// considered. All public methods are thread-safe.
type Registry struct {
	mu      sync.RWMutex
	ids     []string
	devices map[string]Device
	logger  Logger
}

// NewRegistry creates an empty device registry.
func NewRegistry() *Registry {
	return &Registry{
		devices: make(map[string]Device),
		logger:  noopLogger{},
	}
}

// SetLogger sets the logger for the registry and for every device
// currently registered. Devices added later inherit it on Add.
func (r *Registry) SetLogger(logger Logger) {
	if logger == nil {
		logger = noopLogger{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = logger
	for _, d := range r.devices {
		d.SetLogger(logger)
	}
}

// Add registers a device. A device with a duplicate ID is rejected with
// ErrDuplicateID; all other devices keep their position.
func (r *Registry) Add(d Device) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.devices[d.ID()]; exists {
		return ErrDuplicateID
	}

	d.SetLogger(r.logger)
	r.ids = append(r.ids, d.ID())
	r.devices[d.ID()] = d

	r.logger.Info("device registered", "id", d.ID(), "name", d.Name(), "type", d.Type())
	return nil
}

// Remove deletes a device by ID. Returns ErrNotFound if no device has
// that ID.
func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.devices[id]; !exists {
		return ErrNotFound
	}

	delete(r.devices, id)
	for i, existing := range r.ids {
		if existing == id {
			r.ids = append(r.ids[:i], r.ids[i+1:]...)
			break
		}
	}

	r.logger.Info("device removed", "id", id)
	return nil
}

// Get retrieves a device by ID. Returns ErrNotFound if the device does
// not exist.
func (r *Registry) Get(id string) (Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.devices[id]
	if !ok {
		return nil, ErrNotFound
	}
	return d, nil
}

// GetByName retrieves the first device whose name matches
// case-insensitively, in insertion order.
func (r *Registry) GetByName(name string) (Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.ids {
		if strings.EqualFold(r.devices[id].Name(), name) {
			return r.devices[id], nil
		}
	}
	return nil, ErrNotFound
}

// FindByType returns all devices of the given type, in insertion order.
func (r *Registry) FindByType(typ Type) []Device {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Device
	for _, id := range r.ids {
		if r.devices[id].Type() == typ {
			out = append(out, r.devices[id])
		}
	}
	return out
}

// FindByLocation returns all devices whose location equals the query
// case-insensitively, in insertion order.
func (r *Registry) FindByLocation(location string) []Device {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Device
	for _, id := range r.ids {
		if strings.EqualFold(r.devices[id].Location(), location) {
			out = append(out, r.devices[id])
		}
	}
	return out
}

// Search returns all devices whose name or location contains the query
// case-insensitively, in insertion order.
func (r *Registry) Search(query string) []Device {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(query)
	var out []Device
	for _, id := range r.ids {
		d := r.devices[id]
		if strings.Contains(strings.ToLower(d.Name()), q) ||
			strings.Contains(strings.ToLower(d.Location()), q) {
			out = append(out, d)
		}
	}
	return out
}

// All returns every registered device in insertion order.
func (r *Registry) All() []Device {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Device, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, r.devices[id])
	}
	return out
}

// Snapshots returns a serialisable copy of every device, keyed by ID.
func (r *Registry) Snapshots() map[string]Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]Snapshot, len(r.ids))
	for _, id := range r.ids {
		out[id] = r.devices[id].Snapshot()
	}
	return out
}

// Count returns the number of registered devices.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ids)
}

// Stats holds registry statistics for monitoring.
type Stats struct {
	TotalDevices int            `json:"total_devices"`
	ByType       map[Type]int   `json:"by_type"`
	ByStatus     map[Status]int `json:"by_status"`
	ByLocation   map[string]int `json:"by_location"`
}

// GetStats returns current registry statistics.
func (r *Registry) GetStats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := Stats{
		TotalDevices: len(r.ids),
		ByType:       make(map[Type]int),
		ByStatus:     make(map[Status]int),
		ByLocation:   make(map[string]int),
	}

	for _, id := range r.ids {
		d := r.devices[id]
		stats.ByType[d.Type()]++
		stats.ByStatus[d.Status()]++
		stats.ByLocation[d.Location()]++
	}

	return stats
}
