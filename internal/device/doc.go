// Package device provides the simulated device fleet for Hearth Core.
//
// The registry is the central catalogue of every simulated device in a
// Hearth installation. It owns device lifecycle and state, and provides
// the query and control operations used by the REST API and the voice
// assistant's command dispatcher.
//
// # Architecture
//
//	┌──────────────────────────────────────────────────────────────────┐
//	│                         Device Package                           │
//	│                                                                  │
//	│  ┌────────────────┐   ┌────────────────┐   ┌────────────────┐   │
//	│  │    Registry    │   │    Devices     │   │    Control     │   │
//	│  │ (registry.go)  │──▶│  (device.go)   │◀──│  (control.go)  │   │
//	│  │                │   │                │   │                │   │
//	│  │ • Add/Remove   │   │ • Light        │   │ • Action names │   │
//	│  │ • Lookups      │   │ • Thermostat   │   │ • Capability   │   │
//	│  │ • Search       │   │ • Fan          │   │   routing      │   │
//	│  │ • Stats        │   │ • DoorLock     │   │ • Arg coercion │   │
//	│  └────────────────┘   └────────────────┘   └────────────────┘   │
//	└──────────────────────────────────────────────────────────────────┘
//
// # Key Types
//
//   - Device: the common interface every simulated device implements
//   - Registry: thread-safe, insertion-ordered device collection
//   - Snapshot: serialisable device record used by the API
//   - BrightnessController, ClimateController, SpeedController,
//     LockController: capability interfaces discovered by assertion
//
// # Usage
//
//	registry := device.NewRegistry()
//	registry.SetLogger(log)
//	if err := device.SeedDefaults(registry); err != nil {
//	    return err
//	}
//
//	// Direct control by ID
//	result := registry.Control("light_1", device.ActionSetBrightness,
//	    map[string]any{"brightness": 75})
//
//	// Queries
//	lights := registry.FindByType(device.TypeLight)
//	d, err := registry.GetByName("ceiling fan")
//
// # Thread Safety
//
// The Registry and every device are safe for concurrent use. The
// registry guards its index with a read-write mutex; each device guards
// its own state, so controlling one device never blocks reads of
// another.
package device
