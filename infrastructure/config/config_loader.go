package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/carlosrabelo/vlaninv/domain/entities"
	"github.com/carlosrabelo/vlaninv/domain/services"
	"github.com/carlosrabelo/vlaninv/platform"
)

const (
	DefaultFileName    = "config.yaml"
	DefaultHostsFile   = "input.csv"
	DefaultOutput      = "vlan_info.xlsx"
	DefaultConcurrency = 4
	appDir             = "vlaninv"
)

var (
	// ErrInvalidConfig wraps every validation failure
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrNotFound is returned by Locate when no configuration file exists
	ErrNotFound = errors.New("no configuration file found")
)

// Config defines the global configuration; switches inherit every unset field
type Config struct {
	Platform       string                  `yaml:"platform"`
	Transport      string                  `yaml:"transport"`
	Username       string                  `yaml:"username"`
	Password       string                  `yaml:"password"`
	EnablePassword string                  `yaml:"enable_password"`
	SnmpCommunity  string                  `yaml:"snmp_community"`
	Port           int                     `yaml:"port"`
	Timeout        time.Duration           `yaml:"timeout"`
	Concurrency    int                     `yaml:"concurrency"`
	SkipPolicy     string                  `yaml:"skip_policy"`
	HeaderLines    *int                    `yaml:"header_lines"`
	Exclude        []string                `yaml:"exclude"`
	HostsFile      string                  `yaml:"hosts_file"`
	Output         string                  `yaml:"output"`
	Switches       []entities.SwitchConfig `yaml:"switches"`
	VerbosityLevel int                     `yaml:"-"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Platform:    "ios",
		Transport:   entities.TransportSSH,
		Timeout:     entities.DefaultTimeout,
		Concurrency: DefaultConcurrency,
		SkipPolicy:  string(entities.PolicyHeader),
		HostsFile:   DefaultHostsFile,
		Output:      DefaultOutput,
	}
}

// Load loads and validates configuration from a YAML file
func Load(yamlFile string, verbosityLevel int) (*Config, error) {
	data, err := os.ReadFile(yamlFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read YAML file %s: %w", yamlFile, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", yamlFile, err)
	}
	cfg.VerbosityLevel = verbosityLevel
	return cfg, nil
}

// Parse decodes YAML on top of Default and validates the result
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate normalizes names and checks every field, including switch overrides
func (c *Config) Validate() error {
	c.Platform = normalize(c.Platform)
	if c.Platform == "" {
		c.Platform = "ios"
	}
	if err := validatePlatform(c.Platform); err != nil {
		return err
	}

	c.Transport = normalize(c.Transport)
	if c.Transport == "" {
		c.Transport = entities.TransportSSH
	}
	if err := validateTransport(c.Transport); err != nil {
		return err
	}

	if err := validatePort(c.Port, "global port"); err != nil {
		return err
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidConfig, c.Timeout)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("%w: concurrency must be at least 1, got %d", ErrInvalidConfig, c.Concurrency)
	}

	policy, err := entities.ParseSkipPolicy(c.SkipPolicy)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	c.SkipPolicy = string(policy)
	switch policy {
	case entities.PolicyHeader:
		if len(c.Exclude) > 0 {
			return fmt.Errorf("%w: exclude requires skip_policy %q", ErrInvalidConfig, entities.PolicyExclude)
		}
		if c.HeaderLines != nil && *c.HeaderLines < 0 {
			return fmt.Errorf("%w: header_lines must not be negative, got %d", ErrInvalidConfig, *c.HeaderLines)
		}
	case entities.PolicyExclude:
		if c.HeaderLines != nil {
			return fmt.Errorf("%w: header_lines cannot be combined with skip_policy %q", ErrInvalidConfig, entities.PolicyExclude)
		}
	}

	for i := range c.Switches {
		sw := &c.Switches[i]
		sw.Target = strings.TrimSpace(sw.Target)
		if sw.Target == "" {
			return fmt.Errorf("%w: target is required for switch %d", ErrInvalidConfig, i)
		}
		sw.Platform = normalize(sw.Platform)
		if sw.Platform != "" {
			if err := validatePlatform(sw.Platform); err != nil {
				return fmt.Errorf("invalid platform for switch %s: %w", sw.Target, err)
			}
		}
		sw.Transport = normalize(sw.Transport)
		if sw.Transport != "" {
			if err := validateTransport(sw.Transport); err != nil {
				return fmt.Errorf("invalid transport for switch %s: %w", sw.Target, err)
			}
		}
		if err := validatePort(sw.Port, "port for switch "+sw.Target); err != nil {
			return err
		}
		if sw.Timeout < 0 {
			return fmt.Errorf("%w: timeout for switch %s must not be negative", ErrInvalidConfig, sw.Target)
		}
	}
	return nil
}

// Policy returns the validated skip policy
func (c *Config) Policy() entities.SkipPolicy {
	policy, _ := entities.ParseSkipPolicy(c.SkipPolicy)
	return policy
}

// HeaderLineCount returns header_lines or the default of the header policy
func (c *Config) HeaderLineCount() int {
	if c.HeaderLines == nil {
		return entities.DefaultHeaderLines
	}
	return *c.HeaderLines
}

// Extractor builds the line extractor for the configured skip policy
func (c *Config) Extractor() *services.Extractor {
	if c.Policy() == entities.PolicyExclude {
		return services.NewExclusionExtractor(services.SubstringFilter(c.Exclude))
	}
	return services.NewHeaderExtractor(c.HeaderLineCount())
}

// SwitchFor returns the session settings of host: its switches entry, if
// any, with every unset field inherited from the globals
func (c *Config) SwitchFor(host string) entities.SwitchConfig {
	host = strings.TrimSpace(host)
	sw := entities.SwitchConfig{Target: host}
	for _, candidate := range c.Switches {
		if strings.EqualFold(candidate.Target, host) {
			sw = candidate
			sw.Target = host
			break
		}
	}

	if sw.Platform == "" {
		sw.Platform = c.Platform
	}
	if sw.Transport == "" {
		sw.Transport = c.Transport
	}
	if sw.Port == 0 {
		sw.Port = c.Port
	}
	if sw.Username == "" {
		sw.Username = c.Username
	}
	if sw.Password == "" {
		sw.Password = c.Password
	}
	if sw.EnablePassword == "" {
		sw.EnablePassword = c.EnablePassword
	}
	if sw.SnmpCommunity == "" {
		sw.SnmpCommunity = c.SnmpCommunity
	}
	if sw.Timeout == 0 {
		sw.Timeout = c.Timeout
	}
	sw.VerbosityLevel = c.VerbosityLevel
	return sw
}

// SwitchesFor returns the merged settings of every host, in order
func (c *Config) SwitchesFor(hosts []string) []entities.SwitchConfig {
	out := make([]entities.SwitchConfig, 0, len(hosts))
	for _, host := range hosts {
		out = append(out, c.SwitchFor(host))
	}
	return out
}

// NeedsCredentials reports whether any of switches logs in without a
// configured username or password
func NeedsCredentials(switches []entities.SwitchConfig) (username, password bool) {
	for _, sw := range switches {
		if sw.Transport == entities.TransportSNMP {
			continue
		}
		if sw.Username == "" {
			username = true
		}
		if sw.Password == "" {
			password = true
		}
	}
	return username, password
}

// SearchPaths lists the locations tried when no configuration file is given
func SearchPaths() []string {
	paths := []string{filepath.Join(".", DefaultFileName)}
	if runtime.GOOS == "windows" {
		if appDataDir := os.Getenv("APPDATA"); appDataDir != "" {
			paths = append(paths, filepath.Join(appDataDir, appDir, DefaultFileName))
		}
		if programDataDir := os.Getenv("ProgramData"); programDataDir != "" {
			paths = append(paths, filepath.Join(programDataDir, appDir, DefaultFileName))
		}
		return paths
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(userConfigDir, appDir, DefaultFileName))
	}
	return append(paths, filepath.Join("/etc", appDir, DefaultFileName))
}

// Locate returns explicit when set, otherwise the first existing search path
func Locate(explicit string, paths []string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w in %s", ErrNotFound, strings.Join(paths, ", "))
}

func validatePlatform(name string) error {
	names := platform.Names()
	if !slices.Contains(names, name) {
		return fmt.Errorf("%w: platform %s is invalid, must be one of %s", ErrInvalidConfig, name, strings.Join(names, ", "))
	}
	return nil
}

func validateTransport(name string) error {
	switch name {
	case entities.TransportSSH, entities.TransportTelnet, entities.TransportSNMP:
		return nil
	default:
		return fmt.Errorf("%w: transport %s is invalid, must be 'ssh', 'telnet' or 'snmp'", ErrInvalidConfig, name)
	}
}

func validatePort(port int, context string) error {
	if port < 0 || port > 65535 {
		return fmt.Errorf("%w: %s %d is out of range", ErrInvalidConfig, context, port)
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
