package voice

import "time"

// Kind identifies the intent class of a parsed command.
type Kind string

// Command kinds, in match precedence order. KindUnknown is assigned when
// no pattern matches.
const (
	KindTurnOn         Kind = "turn_on"
	KindTurnOff        Kind = "turn_off"
	KindSetBrightness  Kind = "set_brightness"
	KindSetTemperature Kind = "set_temperature"
	KindGetStatus      Kind = "get_status"
	KindListDevices    Kind = "list_devices"
	KindUnknown        Kind = "unknown"
)

// Command is the structured result of interpreting an utterance. Params
// holds the capture groups of the matched pattern; for KindUnknown it
// holds the normalised text itself.
type Command struct {
	Kind       Kind      `json:"type"`
	Params     []string  `json:"params"`
	SourceText string    `json:"original_text"`
	Timestamp  time.Time `json:"timestamp"`
}
