package main

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/mcdev12/minigolf/go/internal/gateway"
	"github.com/mcdev12/minigolf/go/internal/reaper"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`

	Reaper reaper.Config `yaml:"reaper"`

	Gateway struct {
		SendBufferSize      int           `yaml:"send_buffer_size"`
		BroadcastBufferSize int           `yaml:"broadcast_buffer_size"`
		MaxMessageSize      int64         `yaml:"max_message_size"`
		JoinTimeout         time.Duration `yaml:"join_timeout"`
	} `yaml:"gateway"`
}

func defaultConfig() *Config {
	var config Config
	config.Server.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	config.Reaper = reaper.DefaultConfig()

	gw := gateway.DefaultConfig()
	config.Gateway.SendBufferSize = gw.ConnectionConfig.SendBufferSize
	config.Gateway.BroadcastBufferSize = gw.ConnectionConfig.BroadcastBufferSize
	config.Gateway.MaxMessageSize = gw.ConnectionConfig.MaxMessageSize
	config.Gateway.JoinTimeout = gw.JoinTimeout
	return &config
}

// loadConfig overlays the YAML file at path on the defaults. A missing file yields the defaults.
func loadConfig(path string) (*Config, error) {
	config := defaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if config.Reaper.Enabled && (config.Reaper.Interval <= 0 || config.Reaper.Retention <= 0) {
		return nil, fmt.Errorf("reaper interval and retention must be positive")
	}

	return config, nil
}

// gatewayConfig builds the gateway configuration; checkOrigin guards WebSocket upgrades
func (c *Config) gatewayConfig(checkOrigin func(r *http.Request) bool) gateway.Config {
	config := gateway.DefaultConfig()
	if c.Gateway.SendBufferSize > 0 {
		config.ConnectionConfig.SendBufferSize = c.Gateway.SendBufferSize
	}
	if c.Gateway.BroadcastBufferSize > 0 {
		config.ConnectionConfig.BroadcastBufferSize = c.Gateway.BroadcastBufferSize
	}
	if c.Gateway.MaxMessageSize > 0 {
		config.ConnectionConfig.MaxMessageSize = c.Gateway.MaxMessageSize
	}
	if c.Gateway.JoinTimeout > 0 {
		config.JoinTimeout = c.Gateway.JoinTimeout
	}
	config.ConnectionConfig.CheckOrigin = checkOrigin
	return config
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
