// Package mqtt provides MQTT connectivity for Hearth Core.
//
// This package wraps paho.mqtt.golang with connection management,
// automatic reconnection, subscription restoration, and Hearth's topic
// naming conventions.
//
// # Topic Hierarchy
//
//	hearth/system/status              service online/offline (retained, LWT)
//	hearth/device/{id}/state          device state after control actions (retained)
//	hearth/voice/event/{type}         voice assistant events (not retained)
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	topics := mqtt.Topics{}
//	client.PublishRetained(topics.DeviceState("light_1"), payload)
//
// # Reliability
//
// The client reconnects automatically with exponential backoff and
// restores subscriptions after reconnect. A Last Will and Testament on
// hearth/system/status lets other services detect unexpected exits.
package mqtt
