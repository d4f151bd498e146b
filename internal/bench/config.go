package bench

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so "30s"-style YAML values decode.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is a YAML experiment description mirroring the CLI flags, for runs
// that are easier to keep in a file than on a command line.
type Config struct {
	Out             string       `yaml:"out"`
	Runs            int          `yaml:"runs"`
	Seed            int64        `yaml:"seed"`
	InstanceSeed    int64        `yaml:"instance_seed"`
	PerRunTimeout   Duration     `yaml:"per_run_timeout"`
	Representations []string     `yaml:"representations"`
	EDA             EDAParams    `yaml:"eda"`
	Cases           []CaseConfig `yaml:"cases"`
}

type EDAParams struct {
	Population  int     `yaml:"population"`
	Generations int     `yaml:"generations"`
	Elite       int     `yaml:"elite"`
	Truncation  float64 `yaml:"truncation"`
}

// CaseConfig is one benchmark case: a path to an instance file, or a
// problem name plus a size (and machines for pfsp) to generate randomly.
type CaseConfig struct {
	Problem  string `yaml:"problem"`
	Size     int    `yaml:"size"`
	Machines int    `yaml:"machines"`
	Path     string `yaml:"path"`
}

// LoadConfig reads and decodes a YAML experiment file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}
