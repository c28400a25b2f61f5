// Package config handles the sectioned configuration shared by drivers,
// page objects and the status reporter.
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Section names read by this module.
const (
	SectionDriver       = "Driver"
	SectionCapabilities = "Capabilities"
	SectionJira         = "Jira"
)

// Config is a set of named sections, each holding key/value options
// (config.yaml). Section and key lookups are case-insensitive; keys keep
// the case they were first set with.
type Config struct {
	sections map[string]map[string]option
}

type option struct {
	name  string
	value interface{}
}

// New returns an empty configuration.
func New() *Config {
	return &Config{sections: make(map[string]map[string]option)}
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- user-provided config file
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML of the form {section: {key: value}}.
func Parse(data []byte) (*Config, error) {
	var raw map[string]map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	cfg := New()
	for section, options := range raw {
		for key, value := range options {
			cfg.Set(section, key, value)
		}
	}
	return cfg, nil
}

// LoadFromDir looks for config.yaml or config.yml in the directory.
func LoadFromDir(dir string) (*Config, error) {
	if path, ok := Find(dir); ok {
		return Load(path)
	}

	// No config file found, return empty config
	return New(), nil
}

// Find returns the first config.yaml or config.yml found in dirs, in order.
func Find(dirs ...string) (string, bool) {
	for _, dir := range dirs {
		for _, name := range []string{"config.yaml", "config.yml"} {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, true
			}
		}
	}
	return "", false
}

// LoadDotEnv loads <dir>/.env into the process environment if it exists.
// Variables already set in the environment win.
func LoadDotEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides options from environment variables named
// <PREFIX>_<SECTION>_<KEY>, e.g. PAGEOBJECTS_JIRA_ENABLED=true.
// Sections are matched against the known and already loaded ones.
func (c *Config) ApplyEnv(prefix string) {
	prefix = strings.ToUpper(prefix) + "_"
	known := []string{SectionDriver, SectionCapabilities, SectionJira}
	for name := range c.sections {
		known = append(known, name)
	}

	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, prefix) {
			continue
		}
		rest := strings.TrimPrefix(name, prefix)
		for _, section := range known {
			sp := strings.ToUpper(section) + "_"
			if strings.HasPrefix(rest, sp) && len(rest) > len(sp) {
				c.Set(section, strings.TrimPrefix(rest, sp), value)
				break
			}
		}
	}
}

// Set stores value under section/key.
func (c *Config) Set(section, key string, value interface{}) {
	if c.sections == nil {
		c.sections = make(map[string]map[string]option)
	}
	s := strings.ToLower(section)
	if c.sections[s] == nil {
		c.sections[s] = make(map[string]option)
	}
	k := strings.ToLower(key)
	if existing, ok := c.sections[s][k]; ok {
		key = existing.name
	}
	c.sections[s][k] = option{name: key, value: value}
}

// HasSection reports whether the section exists.
func (c *Config) HasSection(section string) bool {
	if c == nil {
		return false
	}
	_, ok := c.sections[strings.ToLower(section)]
	return ok
}

// Section returns a copy of the raw options of a section, keyed as they
// were written.
func (c *Config) Section(section string) map[string]interface{} {
	out := make(map[string]interface{})
	if c == nil {
		return out
	}
	for _, o := range c.sections[strings.ToLower(section)] {
		out[o.name] = o.value
	}
	return out
}

func (c *Config) lookup(section, key string) (interface{}, bool) {
	if c == nil {
		return nil, false
	}
	options, ok := c.sections[strings.ToLower(section)]
	if !ok {
		return nil, false
	}
	o, ok := options[strings.ToLower(key)]
	if !ok || o.value == nil {
		return nil, false
	}
	return o.value, true
}

// GetOptional returns the option as a string and whether it is set.
func (c *Config) GetOptional(section, key string) (string, bool) {
	v, ok := c.lookup(section, key)
	if !ok {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	return fmt.Sprint(v), true
}

// Get returns the option as a string, or def when unset.
func (c *Config) Get(section, key, def string) string {
	if v, ok := c.GetOptional(section, key); ok {
		return v
	}
	return def
}

// GetBoolOptional returns the option as a bool. Unset or unparsable options
// are false.
func (c *Config) GetBoolOptional(section, key string) bool {
	v, ok := c.lookup(section, key)
	if !ok {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return parseBool(b)
	default:
		return false
	}
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "on":
		return true
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(s))
	return err == nil && parsed
}

// GetIntOptional returns the option as an int and whether it parsed.
func (c *Config) GetIntOptional(section, key string) (int, bool) {
	v, ok := c.lookup(section, key)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), n == math.Trunc(n)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		return i, err == nil
	default:
		return 0, false
	}
}

// GetDurationOptional parses options like "30s" or plain seconds ("30",
// "0.5").
func (c *Config) GetDurationOptional(section, key string) (time.Duration, bool) {
	s, ok := c.GetOptional(section, key)
	if !ok {
		return 0, false
	}
	s = strings.TrimSpace(s)
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), true
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, false
	}
	return d, true
}
