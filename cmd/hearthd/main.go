// Hearth Core - Smart Home Simulation Platform
//
// This is the main entry point for the Hearth Core application. Hearth
// exposes an in-memory registry of simulated smart-home devices over an
// HTTP API, plus a voice-command pipeline that maps transcribed speech
// to device-control actions.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hearthd/hearth-core/internal/api"
	"github.com/hearthd/hearth-core/internal/device"
	"github.com/hearthd/hearth-core/internal/infrastructure/config"
	"github.com/hearthd/hearth-core/internal/infrastructure/influxdb"
	"github.com/hearthd/hearth-core/internal/infrastructure/logging"
	"github.com/hearthd/hearth-core/internal/infrastructure/mqtt"
	"github.com/hearthd/hearth-core/internal/voice"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting Hearth Core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Initialise device registry with the default simulated fleet
	registry := device.NewRegistry()
	registry.SetLogger(log)
	if err := device.SeedDefaults(registry); err != nil {
		return fmt.Errorf("seeding device registry: %w", err)
	}
	log.Info("device registry initialised", "devices", registry.Count())

	// Connect to MQTT broker (optional)
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)

		mqttClient.SetOnConnect(func() {
			log.Info("MQTT reconnected")
		})
		mqttClient.SetOnDisconnect(func(err error) {
			log.Warn("MQTT disconnected", "error", err)
		})
	} else {
		log.Info("MQTT disabled")
	}

	// Connect to InfluxDB (optional)
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)

		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
	} else {
		log.Info("InfluxDB disabled")
	}

	// Event log and voice assistant
	events := voice.NewEventLog(cfg.Voice.EventCapacity)
	assistant := voice.NewAssistant(voice.Deps{
		Registry: registry,
		Events:   events,
		Logger:   log,
	})

	// HTTP API server with WebSocket hub
	server, err := api.New(api.Deps{
		Config:    cfg.API,
		WS:        cfg.WebSocket,
		Logger:    log,
		Registry:  registry,
		Assistant: assistant,
		Events:    events,
		MQTT:      mqttClient,
		Influx:    influxClient,
		Version:   version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}

	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()
	log.Info("API server started", "host", cfg.API.Host, "port", cfg.API.Port)

	// Fan assistant events out to the WebSocket hub, the MQTT bus, and
	// the telemetry store.
	events.SetNotify(eventFanout(server.Hub(), mqttClient, influxClient, log))

	// Verify all connections are healthy
	if err := healthCheck(ctx, server, mqttClient, influxClient); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal")

	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls will run in reverse order:
	// 1. API server (stops the voice assistant)
	// 2. InfluxDB (if enabled)
	// 3. MQTT (if enabled)

	log.Info("Hearth Core stopped")
	return nil
}

// eventFanout builds the notification hook that relays every recorded
// assistant event to the connected backends. Absent backends are skipped.
func eventFanout(hub *api.Hub, mqttClient *mqtt.Client, influxClient *influxdb.Client, log *logging.Logger) voice.NotifyFunc {
	return func(e voice.Event) {
		if hub != nil {
			hub.Broadcast("voice.events", e)
		}

		if mqttClient != nil {
			payload, err := json.Marshal(e)
			if err != nil {
				log.Error("failed to marshal voice event", "type", e.Type, "error", err)
			} else if err := mqttClient.PublishEvent(mqtt.Topics{}.VoiceEvent(e.Type), payload); err != nil {
				log.Warn("failed to publish voice event", "type", e.Type, "error", err)
			}
		}

		if influxClient != nil {
			influxClient.WriteEvent(e.Type)
			if e.Type == voice.EventCommand {
				writeCommandMetric(influxClient, e.Data)
			}
		}
	}
}

// writeCommandMetric extracts the command outcome from a command event's
// data map and records it as a telemetry point.
func writeCommandMetric(influxClient *influxdb.Client, data map[string]any) {
	kind, _ := data["type"].(voice.Kind)
	result, _ := data["result"].(voice.Result)
	durationMs, _ := data["duration_ms"].(int64)
	influxClient.WriteCommand(string(kind), result.Success, durationMs)
}

// getConfigPath returns the configuration file path.
// Uses HEARTH_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("HEARTH_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// healthCheck verifies all infrastructure connections are healthy.
func healthCheck(ctx context.Context, server *api.Server, mqttClient *mqtt.Client, influxClient *influxdb.Client) error {
	if err := server.HealthCheck(ctx); err != nil {
		return fmt.Errorf("api: %w", err)
	}

	if mqttClient != nil {
		if err := mqttClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("mqtt: %w", err)
		}
	}

	if influxClient != nil {
		if err := influxClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("influxdb: %w", err)
		}
	}

	return nil
}
