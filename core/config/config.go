package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mritunjay-prog/DeviceProvisioning/core/catalog"
	"github.com/mritunjay-prog/DeviceProvisioning/core/database"
	"github.com/mritunjay-prog/DeviceProvisioning/core/geo"
	"github.com/mritunjay-prog/DeviceProvisioning/core/logger"
)

// FileName is the expected configuration file, kept from the original
// deployment layout.
const FileName = "config.properties"

// Config holds all configuration for the application.
// It is constructed once at process start and passed into every component
// constructor; nothing reads configuration ambiently.
type Config struct {
	// Thingsboard holds the catalog endpoint and tenant credential.
	Thingsboard ThingsboardConfig `mapstructure:"thingsboard"`
	// Assets names the target hierarchy for a provisioning run.
	Assets AssetsConfig `mapstructure:"assets"`
	// Location holds the static fallback coordinates.
	Location geo.Config `mapstructure:"location"`
	// Profiles names the catalog profiles used for creation payloads.
	Profiles ProfilesConfig `mapstructure:"profiles"`
	// Database holds configuration for the mirror database connection.
	Database database.Config `mapstructure:"database"`
	// API holds overridable catalog endpoint paths.
	API APIConfig `mapstructure:"api"`
	// Settings holds request tuning knobs.
	Settings SettingsConfig `mapstructure:"settings"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
}

// ThingsboardConfig identifies the remote catalog and its tenant credential.
type ThingsboardConfig struct {
	// URL is the ThingsBoard server URL.
	URL string `mapstructure:"url" default:"https://demo.thingsboard.io"`
	// JWTToken is the tenant bearer token.
	JWTToken string `mapstructure:"jwt_token" default:""`
}

// AssetsConfig names the desired hierarchy. Country and state names must
// match catalog entities byte for byte.
type AssetsConfig struct {
	CountryName  string `mapstructure:"country_name" default:""`
	StateName    string `mapstructure:"state_name" default:""`
	SerialNumber string `mapstructure:"serial_number" default:""`
}

// ProfilesConfig names the catalog profiles resolved at the start of a run.
type ProfilesConfig struct {
	CountryProfileName string `mapstructure:"country_profile_name" default:""`
	StateProfileName   string `mapstructure:"state_profile_name" default:""`
	DeviceProfileName  string `mapstructure:"device_profile_name" default:""`
	// DeviceProfileID is used directly when DeviceProfileName is empty.
	DeviceProfileID string `mapstructure:"device_profile_id" default:""`
}

// APIConfig allows overriding the device endpoint paths.
type APIConfig struct {
	DeviceEndpoint        string `mapstructure:"device_endpoint" default:"/api/device"`
	TenantDevicesEndpoint string `mapstructure:"tenant_devices_endpoint" default:"/api/tenant/devices"`
}

// SettingsConfig holds request tuning.
type SettingsConfig struct {
	// DefaultPageSize bounds every catalog listing (single page).
	DefaultPageSize int `mapstructure:"default_page_size" default:"1000"`
	// RequestTimeout is the per-request HTTP timeout in seconds.
	RequestTimeout int `mapstructure:"request_timeout" default:"30"`
}

// Catalog assembles the catalog client configuration from the relevant
// sections.
func (c *Config) Catalog() catalog.Config {
	return catalog.Config{
		BaseURL:               c.Thingsboard.URL,
		JWTToken:              c.Thingsboard.JWTToken,
		DeviceEndpoint:        c.API.DeviceEndpoint,
		TenantDevicesEndpoint: c.API.TenantDevicesEndpoint,
		PageSize:              c.Settings.DefaultPageSize,
		TimeoutSeconds:        c.Settings.RequestTimeout,
	}
}

// LoadConfig loads configuration from config.properties, .env, and
// environment variables (in increasing precedence). A missing
// config.properties is a terminal condition.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists (e.g. local development overrides)
	envPath := filepath.Join(path, ".env")
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. THINGSBOARD_URL -> thingsboard.url)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configFile := filepath.Join(path, FileName)
	if _, err := os.Stat(configFile); err != nil {
		return nil, fmt.Errorf(
			"configuration file %q not found: %w (copy config.properties.example and fill in the thingsboard, assets, profiles and database keys)",
			configFile, err)
	}

	v.SetConfigFile(configFile)
	v.SetConfigType("properties")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", configFile, err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
