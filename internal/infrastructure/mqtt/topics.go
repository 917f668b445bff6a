package mqtt

import "fmt"

// Topic prefixes for the Hearth MQTT namespace.
//
// All topics live under a single root: hearth/{category}/...
const (
	// TopicPrefix is the root of the Hearth topic hierarchy.
	TopicPrefix = "hearth"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "hearth/system"

	// TopicPrefixDevice is the base for device topics.
	TopicPrefixDevice = "hearth/device"

	// TopicPrefixVoice is the base for voice assistant topics.
	TopicPrefixVoice = "hearth/voice"
)

// Topics provides builders for Hearth MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
//
//	topics := mqtt.Topics{}
//	stateTopic := topics.DeviceState("light_1")
//	// Returns: "hearth/device/light_1/state"
type Topics struct{}

// SystemStatus returns the topic carrying the service's online/offline
// status. Retained, so new subscribers see the last known state.
//
// Example: hearth/system/status
func (Topics) SystemStatus() string {
	return TopicPrefixSystem + "/status"
}

// DeviceState returns the canonical state topic for a device. Published
// retained after every successful control action.
//
// Example: hearth/device/light_1/state
func (Topics) DeviceState(deviceID string) string {
	return fmt.Sprintf("%s/%s/state", TopicPrefixDevice, deviceID)
}

// AllDeviceStates returns a wildcard matching every device state topic.
//
// Example: hearth/device/+/state
func (Topics) AllDeviceStates() string {
	return TopicPrefixDevice + "/+/state"
}

// VoiceEvent returns the topic for a voice assistant event type.
//
// Example: hearth/voice/event/transcription_final
func (Topics) VoiceEvent(eventType string) string {
	return fmt.Sprintf("%s/event/%s", TopicPrefixVoice, eventType)
}

// AllVoiceEvents returns a wildcard matching every voice event topic.
//
// Example: hearth/voice/event/#
func (Topics) AllVoiceEvents() string {
	return TopicPrefixVoice + "/event/#"
}
