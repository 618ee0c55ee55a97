// Package config loads the optional .thornrc.yaml project file,
// validates it against a JSON Schema, and gates execution on the
// running binary meeting the file's declared minimum version.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// Config is the decoded, validated contents of a .thornrc.yaml.
type Config struct {
	MinVersion    string `yaml:"min_version"`
	NoColor       bool   `yaml:"no_color"`
	WatchDebounce string `yaml:"watch_debounce"`
	HistoryFile   string `yaml:"history_file"`
}

var compiledSchema *jsonschema.Schema

func schema() (*jsonschema.Schema, error) {
	if compiledSchema != nil {
		return compiledSchema, nil
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("thornrc.json", bytes.NewReader([]byte(schemaJSON))); err != nil {
		return nil, err
	}
	s, err := compiler.Compile("thornrc.json")
	if err != nil {
		return nil, err
	}
	compiledSchema = s
	return s, nil
}

// Load reads, decodes, and schema-validates the config file at path.
// A missing file is not an error: it returns a zero-value Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	s, err := schema()
	if err != nil {
		return nil, fmt.Errorf("compiling config schema: %w", err)
	}
	// jsonschema validates against generic JSON values; round-trip
	// through encoding/json to normalize map[interface{}]interface{}
	// shapes yaml.v3 may produce into plain map[string]interface{}.
	normalized, err := jsonRoundTrip(raw)
	if err != nil {
		return nil, fmt.Errorf("normalizing config %s: %w", path, err)
	}
	if err := s.Validate(normalized); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decoding config %s: %w", path, err)
	}
	return &cfg, nil
}

func jsonRoundTrip(v interface{}) (interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CheckMinVersion reports an error if buildVersion is older than the
// config's declared min_version. Both must be valid semver
// ("v"-prefix optional); an empty MinVersion always passes.
func (c *Config) CheckMinVersion(buildVersion string) error {
	if c.MinVersion == "" {
		return nil
	}
	want := normalizeSemver(c.MinVersion)
	have := normalizeSemver(buildVersion)
	if !semver.IsValid(want) {
		return fmt.Errorf("config min_version %q is not a valid version", c.MinVersion)
	}
	if !semver.IsValid(have) {
		return fmt.Errorf("build version %q is not a valid version", buildVersion)
	}
	if semver.Compare(have, want) < 0 {
		return fmt.Errorf("this project requires thorn %s or newer, running %s", c.MinVersion, buildVersion)
	}
	return nil
}

func normalizeSemver(v string) string {
	if len(v) > 0 && v[0] != 'v' {
		return "v" + v
	}
	return v
}

// WatchDebounceDuration parses WatchDebounce, defaulting to 200ms when
// unset or invalid.
func (c *Config) WatchDebounceDuration() time.Duration {
	if c.WatchDebounce == "" {
		return 200 * time.Millisecond
	}
	d, err := time.ParseDuration(c.WatchDebounce)
	if err != nil {
		return 200 * time.Millisecond
	}
	return d
}
