package device

// DefaultFleet returns the simulated devices seeded at startup. The
// insertion order here is load-bearing: name and location searches
// resolve ambiguity by first match.
func DefaultFleet() []Device {
	return []Device{
		NewLight("light_1", "Living Room Light", "living_room"),
		NewLight("light_2", "Bedroom Light", "bedroom"),
		NewLight("light_3", "Kitchen Light", "kitchen"),
		NewThermostat("thermostat_1", "Main Thermostat", "living_room"),
		NewFan("fan_1", "Bedroom Fan", "bedroom"),
		NewFan("fan_2", "Living Room Fan", "living_room"),
		NewDoorLock("lock_1", "Front Door", "entrance"),
		NewDoorLock("lock_2", "Back Door", "back_yard"),
	}
}

// SeedDefaults populates a registry with the default fleet.
func SeedDefaults(r *Registry) error {
	for _, d := range DefaultFleet() {
		if err := r.Add(d); err != nil {
			return err
		}
	}
	return nil
}
