package voice

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hearthd/hearth-core/internal/device"
)

// Result is the outcome of dispatching a command against the device
// registry. Device is set for single-device commands, Devices for
// list_devices.
type Result struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Device  *device.Snapshot  `json:"device,omitempty"`
	Devices []device.Snapshot `json:"devices,omitempty"`
}

// Dispatcher resolves parsed commands to device actions.
//
// Power commands resolve the target by exact name first and fall back to
// a fuzzy search taking the first hit; brightness and temperature
// commands require an exact name and the matching capability.
type Dispatcher struct {
	registry *device.Registry
	logger   device.Logger
}

// NewDispatcher creates a dispatcher over the given registry.
func NewDispatcher(registry *device.Registry) *Dispatcher {
	return &Dispatcher{registry: registry, logger: noopLogger{}}
}

// SetLogger sets the logger used for dispatch log entries.
func (dp *Dispatcher) SetLogger(logger device.Logger) {
	if logger == nil {
		logger = noopLogger{}
	}
	dp.logger = logger
}

// Dispatch executes a command. It never returns an error; failures are
// reported in the result message so callers can relay it verbatim.
func (dp *Dispatcher) Dispatch(cmd Command) (result Result) {
	dp.logger.Info("dispatching voice command", "kind", cmd.Kind, "params", cmd.Params)

	defer func() {
		if rec := recover(); rec != nil {
			dp.logger.Error("voice dispatch panicked", "kind", cmd.Kind, "panic", rec)
			result = Result{Success: false, Message: fmt.Sprintf("Error processing command: %v", rec)}
		}
	}()

	switch cmd.Kind {
	case KindTurnOn:
		return dp.power(cmd, device.ActionTurnOn)
	case KindTurnOff:
		return dp.power(cmd, device.ActionTurnOff)
	case KindSetBrightness:
		return dp.setBrightness(cmd)
	case KindSetTemperature:
		return dp.setTemperature(cmd)
	case KindGetStatus:
		return dp.getStatus(cmd)
	case KindListDevices:
		return dp.listDevices()
	default:
		return Result{Success: false, Message: fmt.Sprintf("Unknown command type: %s", cmd.Kind)}
	}
}

// power handles turn_on and turn_off: exact name match first, then the
// first fuzzy search hit.
func (dp *Dispatcher) power(cmd Command, action string) Result {
	name, ok := param(cmd, 0)
	if !ok {
		return missingParams(cmd)
	}

	d, err := dp.registry.GetByName(name)
	if err != nil {
		if matches := dp.registry.Search(name); len(matches) > 0 {
			d = matches[0]
		} else {
			return Result{Success: false, Message: fmt.Sprintf("Device %q not found", name)}
		}
	}

	ctl := dp.registry.Control(d.ID(), action, nil)
	return Result{Success: ctl.Success, Message: ctl.Message, Device: ctl.Device}
}

func (dp *Dispatcher) setBrightness(cmd Command) Result {
	name, ok := param(cmd, 0)
	if !ok {
		return missingParams(cmd)
	}
	raw, ok := param(cmd, 1)
	if !ok {
		return missingParams(cmd)
	}
	brightness, err := strconv.Atoi(raw)
	if err != nil {
		return Result{Success: false, Message: fmt.Sprintf("Error processing command: %v", err)}
	}

	d, err := dp.registry.GetByName(name)
	if err != nil {
		return Result{Success: false, Message: fmt.Sprintf("Light %q not found", name)}
	}
	if _, isLight := d.(device.BrightnessController); !isLight {
		return Result{Success: false, Message: fmt.Sprintf("Light %q not found", name)}
	}

	ctl := dp.registry.Control(d.ID(), device.ActionSetBrightness, map[string]any{"brightness": brightness})
	return Result{Success: ctl.Success, Message: ctl.Message, Device: ctl.Device}
}

func (dp *Dispatcher) setTemperature(cmd Command) Result {
	name, ok := param(cmd, 0)
	if !ok {
		return missingParams(cmd)
	}
	raw, ok := param(cmd, 1)
	if !ok {
		return missingParams(cmd)
	}
	temperature, err := strconv.Atoi(raw)
	if err != nil {
		return Result{Success: false, Message: fmt.Sprintf("Error processing command: %v", err)}
	}

	d, err := dp.registry.GetByName(name)
	if err != nil {
		return Result{Success: false, Message: fmt.Sprintf("Thermostat %q not found", name)}
	}
	if _, isClimate := d.(device.ClimateController); !isClimate {
		return Result{Success: false, Message: fmt.Sprintf("Thermostat %q not found", name)}
	}

	ctl := dp.registry.Control(d.ID(), device.ActionSetTemperature, map[string]any{"temperature": temperature})
	return Result{Success: ctl.Success, Message: ctl.Message, Device: ctl.Device}
}

func (dp *Dispatcher) getStatus(cmd Command) Result {
	name, ok := param(cmd, 0)
	if !ok {
		return missingParams(cmd)
	}

	d, err := dp.registry.GetByName(name)
	if err != nil {
		return Result{Success: false, Message: fmt.Sprintf("Device %q not found", name)}
	}

	snap := d.Snapshot()
	return Result{
		Success: true,
		Message: fmt.Sprintf("%s is %s", snap.Name, snap.Status),
		Device:  &snap,
	}
}

func (dp *Dispatcher) listDevices() Result {
	all := dp.registry.All()
	names := make([]string, 0, len(all))
	snaps := make([]device.Snapshot, 0, len(all))
	for _, d := range all {
		snap := d.Snapshot()
		names = append(names, fmt.Sprintf("%s (%s)", snap.Name, snap.Type))
		snaps = append(snaps, snap)
	}
	return Result{
		Success: true,
		Message: fmt.Sprintf("Available devices: %s", strings.Join(names, ", ")),
		Devices: snaps,
	}
}

func param(cmd Command, i int) (string, bool) {
	if i >= len(cmd.Params) {
		return "", false
	}
	v := strings.TrimSpace(cmd.Params[i])
	return v, v != ""
}

func missingParams(cmd Command) Result {
	return Result{
		Success: false,
		Message: fmt.Sprintf("Error processing command: missing parameters for %s", cmd.Kind),
	}
}
