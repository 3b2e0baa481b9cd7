package main

import (
	"fmt"
	"os"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a [time.Duration] that unmarshals from YAML strings like "30s" or "1m".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration '%s': %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config holds the waitfor settings that may come from a YAML file.
// Flags take precedence over file values.
type Config struct {
	Timeout Duration `yaml:"timeout"`
	Event   string   `yaml:"event"`
	Signals []string `yaml:"signals"`
	LogFile string   `yaml:"log_file"`
	JSONLog bool     `yaml:"json_log"`
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", path, err)
	}
	return &cfg, nil
}

var signalNames = map[string]os.Signal{
	"SIGHUP":  syscall.SIGHUP,
	"SIGINT":  syscall.SIGINT,
	"SIGQUIT": syscall.SIGQUIT,
	"SIGTERM": syscall.SIGTERM,
	"SIGUSR1": syscall.SIGUSR1,
	"SIGUSR2": syscall.SIGUSR2,
}

func parseSignals(names []string) ([]os.Signal, error) {
	if len(names) == 0 {
		return []os.Signal{syscall.SIGINT, syscall.SIGTERM}, nil
	}
	sigs := make([]os.Signal, 0, len(names))
	for _, name := range names {
		sig, ok := signalNames[name]
		if !ok {
			return nil, fmt.Errorf("unknown signal '%s'", name)
		}
		sigs = append(sigs, sig)
	}
	return sigs, nil
}
