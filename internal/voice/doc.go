// Package voice provides the voice assistant pipeline for Hearth Core.
//
// The pipeline has three stages. A Recorder yields transcribed
// utterances (the speech-to-text engine behind it is a black box), the
// Interpreter matches final utterances against a regex pattern table to
// produce structured commands, and the Dispatcher executes those
// commands against the device registry.
//
//	Recorder ──▶ utterances ──▶ Interpreter ──▶ Command ──▶ Dispatcher
//	                                                            │
//	   EventLog ◀── status / transcription / command events ◀───┘
//
// The Assistant ties the stages together. One listening session runs at
// a time; a single consumer goroutine reads the recorder, so commands
// are processed strictly in the order they were spoken. Everything the
// pipeline does is recorded in the EventLog, a fixed-capacity ring that
// feeds the REST API, the websocket hub, and telemetry.
//
// # Usage
//
//	events := voice.NewEventLog(voice.DefaultEventCapacity)
//	assistant := voice.NewAssistant(voice.Deps{
//	    Registry: registry,
//	    Events:   events,
//	    Logger:   log,
//	})
//
//	if err := assistant.Start(ctx, voice.Config{}); err != nil {
//	    return err
//	}
//	defer assistant.Stop()
//
//	// Text can bypass the recorder entirely
//	result, err := assistant.ProcessText("turn on the living room light")
//
// Without a configured RecorderFactory sessions use a SimRecorder,
// which accepts injected utterances instead of microphone audio.
package voice
