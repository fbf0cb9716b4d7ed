// Package config provides centralized configuration management for chassign
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"time"

	"chassign/pkg/errors"
	"chassign/pkg/logging"

	"gopkg.in/yaml.v3"
)

// Manager handles centralized configuration for the entire application
type Manager struct {
	config     *Config
	configPath string
	logger     *logging.Logger
	mutex      sync.RWMutex

	// Hot-reloading
	watchers   []ConfigWatcher
	stopWatch  chan struct{}
	watchMutex sync.RWMutex
}

// ConfigWatcher defines the interface for configuration change notifications
type ConfigWatcher interface {
	OnConfigChanged(oldConfig, newConfig *Config) error
}

// Config represents the unified application configuration
type Config struct {
	// Application metadata
	App AppConfig `yaml:"app" json:"app"`

	// Module catalogue configuration
	Catalogue CatalogueConfig `yaml:"catalogue" json:"catalogue"`

	// Rack model defaults
	Rack RackConfig `yaml:"rack" json:"rack"`

	// Assigner configuration
	Assigner AssignerConfig `yaml:"assigner" json:"assigner"`

	// Validator configuration
	Validator ValidatorConfig `yaml:"validator" json:"validator"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`

	// Observability configuration
	Observability ObservabilityConfig `yaml:"observability" json:"observability"`
}

// AppConfig contains application-level settings
type AppConfig struct {
	Name        string `yaml:"name" json:"name"`
	Version     string `yaml:"version" json:"version"`
	Environment string `yaml:"environment" json:"environment"` // dev, staging, prod
	Debug       bool   `yaml:"debug" json:"debug"`
}

// CatalogueConfig contains module catalogue loading settings
type CatalogueConfig struct {
	// Path to the YAML catalogue file listing module models, their kind,
	// and their channel width.
	Path string `yaml:"path" json:"path"`

	// DefaultSystemType names a system type ("classic-serial" or
	// "cpu-centric"). Nothing outside this package reads it; rack.Build
	// decides the system type from the device list.
	DefaultSystemType string `yaml:"default_system_type" json:"default_system_type"`
}

// RackConfig contains default rack-model construction settings
type RackConfig struct {
	// SlotsPerRack is the physical slot count of the configured backplane.
	SlotsPerRack int `yaml:"slots_per_rack" json:"slots_per_rack"`

	// ReservedSlots lists 0-based slot indices that are reserved for
	// power/DP-master/CPU modules and excluded from point assignment.
	ReservedSlots []int `yaml:"reserved_slots" json:"reserved_slots"`
}

// AssignerConfig contains assignment algorithm tuning
type AssignerConfig struct {
	// KindOrder lists point kinds, defaulting to AI, DI, DO, AO. The
	// assigner does not read it; it always allocates in types.BulkKinds
	// order.
	KindOrder []string `yaml:"kind_order" json:"kind_order"`

	// EnablePairedRackPrepass turns on the optional paired-digital
	// rack-affinity pre-pass before the main contiguous pass.
	EnablePairedRackPrepass bool `yaml:"enable_paired_rack_prepass" json:"enable_paired_rack_prepass"`
}

// ValidatorConfig contains post-assignment sheet validation settings
type ValidatorConfig struct {
	// Strictness is checked to be "strict" or "lenient" on load. The
	// validator does not read it; every finding is reported as an error.
	Strictness string `yaml:"strictness" json:"strictness"` // strict, lenient

	// RequireHMINameUniqueness is not read by the validator;
	// validator.ValidateSheet always applies the duplicate-HMI-name rule.
	RequireHMINameUniqueness bool `yaml:"require_hmi_name_uniqueness" json:"require_hmi_name_uniqueness"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`   // debug, info, warn, error
	Format string `yaml:"format" json:"format"` // json, text
	Output string `yaml:"output" json:"output"` // stdout, stderr, file
	File   string `yaml:"file" json:"file"`     // log file path
}

// ObservabilityConfig contains monitoring and metrics settings
type ObservabilityConfig struct {
	Metrics MetricsConfig `yaml:"metrics" json:"metrics"`
}

// MetricsConfig contains Prometheus metrics settings
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled" json:"enabled"`
	Address   string `yaml:"address" json:"address"`
	Port      int    `yaml:"port" json:"port"`
	Path      string `yaml:"path" json:"path"`
	Namespace string `yaml:"namespace" json:"namespace"`
}

// NewManager creates a new configuration manager
func NewManager() *Manager {
	return &Manager{
		logger:    logging.NewLogger("config-manager", logging.INFO, false),
		stopWatch: make(chan struct{}),
		watchers:  make([]ConfigWatcher, 0),
	}
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Environment variables (highest priority)
// 2. Configuration file
// 3. Default values (lowest priority)
// Command-line flags are not read here.
func (m *Manager) LoadConfig(configPath string) (*Config, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.configPath = configPath

	// Start with default configuration
	config := GetDefaultConfig()

	// Load from file if provided
	if configPath != "" {
		if err := m.loadFromFile(config, configPath); err != nil {
			return nil, errors.WrapIO(err, errors.CodeFileNotFound, "failed to load config file").WithContext("config_path", configPath)
		}
	}

	// Override with environment variables
	if err := m.loadFromEnv(config); err != nil {
		return nil, errors.WrapConfiguration(err, errors.CodeInvalidConfig, "failed to load environment variables")
	}

	// Validate configuration
	if err := m.validateConfig(config); err != nil {
		return nil, errors.WrapValidation(err, errors.CodeInvalidConfig, "configuration validation failed")
	}

	m.config = config

	m.logger.Info("Configuration loaded successfully", map[string]interface{}{
		"config_path":        configPath,
		"environment":        config.App.Environment,
		"debug_mode":         config.App.Debug,
		"catalogue_path":     config.Catalogue.Path,
		"metrics":            config.Observability.Metrics.Enabled,
	})

	return config, nil
}

// GetConfig returns the current configuration (thread-safe)
func (m *Manager) GetConfig() *Config {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.config == nil {
		return GetDefaultConfig()
	}

	// Return a deep copy to prevent external modifications
	return m.copyConfig(m.config)
}

// UpdateConfig updates the configuration and notifies watchers
func (m *Manager) UpdateConfig(newConfig *Config) error {
	m.mutex.Lock()
	oldConfig := m.copyConfig(m.config)
	m.mutex.Unlock()

	// Validate new configuration
	if err := m.validateConfig(newConfig); err != nil {
		return errors.WrapValidation(err, errors.CodeInvalidConfig, "new configuration validation failed")
	}

	m.mutex.Lock()
	m.config = newConfig
	m.mutex.Unlock()

	// Notify watchers
	m.notifyWatchers(oldConfig, newConfig)

	m.logger.Info("Configuration updated", map[string]interface{}{
		"watchers_notified": len(m.watchers),
	})

	return nil
}

// SaveConfig saves the current configuration to file
func (m *Manager) SaveConfig(configPath string) error {
	m.mutex.RLock()
	config := m.copyConfig(m.config)
	m.mutex.RUnlock()

	if config == nil {
		return errors.NewValidationError(errors.CodeMissingConfig, "no configuration to save")
	}

	// Ensure directory exists
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.WrapIO(err, errors.CodePermissionDenied, "failed to create config directory").WithContext("directory", dir)
	}

	// Marshal to YAML
	data, err := yaml.Marshal(config)
	if err != nil {
		return errors.WrapIO(err, errors.CodeUnexpected, "failed to marshal configuration")
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return errors.WrapIO(err, errors.CodeFileNotFound, "failed to write config file").WithContext("config_path", configPath)
	}

	m.logger.Info("Configuration saved", map[string]interface{}{
		"config_path": configPath,
	})

	return nil
}

// AddWatcher adds a configuration change watcher
func (m *Manager) AddWatcher(watcher ConfigWatcher) {
	m.watchMutex.Lock()
	defer m.watchMutex.Unlock()

	m.watchers = append(m.watchers, watcher)
}

// RemoveWatcher removes a configuration change watcher
func (m *Manager) RemoveWatcher(watcher ConfigWatcher) {
	m.watchMutex.Lock()
	defer m.watchMutex.Unlock()

	for i, w := range m.watchers {
		if w == watcher {
			m.watchers = append(m.watchers[:i], m.watchers[i+1:]...)
			break
		}
	}
}

// loadFromFile loads configuration from a YAML file
func (m *Manager) loadFromFile(config *Config, configPath string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			m.logger.Info("Config file not found, using defaults", map[string]interface{}{
				"config_path": configPath,
			})
			return nil
		}
		return err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse YAML config: %w", err)
	}

	return nil
}

// loadFromEnv loads configuration from environment variables
func (m *Manager) loadFromEnv(config *Config) error {
	// Use reflection to set fields from environment variables
	return m.setFromEnv(reflect.ValueOf(config).Elem(), "CHASSIGN")
}

// setFromEnv recursively sets configuration fields from environment variables
func (m *Manager) setFromEnv(v reflect.Value, prefix string) error {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		// Skip unexported fields
		if !field.CanSet() {
			continue
		}

		// Get YAML tag for field name
		yamlTag := fieldType.Tag.Get("yaml")
		if yamlTag == "" || yamlTag == "-" {
			continue
		}

		fieldName := strings.ToUpper(strings.ReplaceAll(yamlTag, "_", "_"))
		envKey := prefix + "_" + fieldName

		if field.Kind() == reflect.Struct {
			// Recursively handle nested structs
			if err := m.setFromEnv(field, envKey); err != nil {
				return err
			}
		} else {
			// Set field from environment variable
			if envValue := os.Getenv(envKey); envValue != "" {
				if err := m.setFieldFromString(field, envValue); err != nil {
					return fmt.Errorf("failed to set field %s from env %s: %w", fieldType.Name, envKey, err)
				}
			}
		}
	}

	return nil
}

// setFieldFromString sets a field value from a string representation
func (m *Manager) setFieldFromString(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		if strings.ToLower(value) == "true" || value == "1" {
			field.SetBool(true)
		} else {
			field.SetBool(false)
		}
	case reflect.Int, reflect.Int32, reflect.Int64:
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			duration, err := time.ParseDuration(value)
			if err != nil {
				return err
			}
			field.SetInt(int64(duration))
		} else {
			var intVal int64
			if _, err := fmt.Sscanf(value, "%d", &intVal); err != nil {
				return err
			}
			field.SetInt(intVal)
		}
	case reflect.Float32, reflect.Float64:
		var floatVal float64
		if _, err := fmt.Sscanf(value, "%f", &floatVal); err != nil {
			return err
		}
		field.SetFloat(floatVal)
	case reflect.Slice:
		// Handle string and int slices
		if field.Type().Elem().Kind() == reflect.String {
			values := strings.Split(value, ",")
			slice := reflect.MakeSlice(field.Type(), len(values), len(values))
			for i, v := range values {
				slice.Index(i).SetString(strings.TrimSpace(v))
			}
			field.Set(slice)
		} else if field.Type().Elem().Kind() == reflect.Int {
			values := strings.Split(value, ",")
			slice := reflect.MakeSlice(field.Type(), len(values), len(values))
			for i, v := range values {
				var intVal int64
				if _, err := fmt.Sscanf(strings.TrimSpace(v), "%d", &intVal); err != nil {
					return err
				}
				slice.Index(i).SetInt(intVal)
			}
			field.Set(slice)
		}
	}

	return nil
}

// validateConfig validates the configuration
func (m *Manager) validateConfig(config *Config) error {
	if config == nil {
		return errors.NewValidationError(errors.CodeInvalidConfig, "configuration is nil")
	}

	if config.App.Name == "" {
		return errors.NewValidationError(errors.CodeMissingRequired, "app name is required")
	}

	if config.Rack.SlotsPerRack <= 0 {
		return errors.NewValidationError(errors.CodeInvalidInput, "slots per rack must be positive").WithContext("slots_per_rack", config.Rack.SlotsPerRack)
	}

	switch config.Validator.Strictness {
	case "strict", "lenient":
	default:
		return errors.NewValidationError(errors.CodeInvalidInput, "validator strictness must be 'strict' or 'lenient'").WithContext("strictness", config.Validator.Strictness)
	}

	if config.Observability.Metrics.Enabled && config.Observability.Metrics.Port <= 0 {
		return errors.NewValidationError(errors.CodeInvalidInput, "metrics port must be positive").WithContext("port", config.Observability.Metrics.Port)
	}

	return nil
}

// copyConfig creates a deep copy of the configuration
func (m *Manager) copyConfig(config *Config) *Config {
	if config == nil {
		return nil
	}

	// Use YAML marshal/unmarshal for deep copy
	data, err := yaml.Marshal(config)
	if err != nil {
		m.logger.Error("Failed to marshal config for copying", map[string]interface{}{
			"error": err.Error(),
		})
		return config // Return original if copy fails
	}

	var copy Config
	if err := yaml.Unmarshal(data, &copy); err != nil {
		m.logger.Error("Failed to unmarshal config for copying", map[string]interface{}{
			"error": err.Error(),
		})
		return config // Return original if copy fails
	}

	return &copy
}

// notifyWatchers notifies all registered watchers of configuration changes
func (m *Manager) notifyWatchers(oldConfig, newConfig *Config) {
	m.watchMutex.RLock()
	watchers := make([]ConfigWatcher, len(m.watchers))
	copy(watchers, m.watchers)
	m.watchMutex.RUnlock()

	for _, watcher := range watchers {
		if err := watcher.OnConfigChanged(oldConfig, newConfig); err != nil {
			m.logger.Error("Config watcher failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}

// GetDefaultConfig returns the default configuration
func GetDefaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:        "chassign",
			Version:     "1.0.0",
			Environment: "development",
			Debug:       false,
		},
		Catalogue: CatalogueConfig{
			Path:              "",
			DefaultSystemType: "classic-serial",
		},
		Rack: RackConfig{
			SlotsPerRack:  11,
			ReservedSlots: []int{0},
		},
		Assigner: AssignerConfig{
			KindOrder:               []string{"AI", "DI", "DO", "AO"},
			EnablePairedRackPrepass: false,
		},
		Validator: ValidatorConfig{
			Strictness:               "strict",
			RequireHMINameUniqueness: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stdout",
			File:   "",
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{
				Enabled:   false,
				Address:   "localhost",
				Port:      9090,
				Path:      "/metrics",
				Namespace: "chassign",
			},
		},
	}
}
