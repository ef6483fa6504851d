package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory.
const FileName = "gobuilding.json"

// AssetsConfig describes where models come from
type AssetsConfig struct {
	Dir           string   `mapstructure:"dir"`
	Building      string   `mapstructure:"building"`
	BuildingScale float32  `mapstructure:"buildingScale"`
	Targets       []string `mapstructure:"targets"`
}

// StoreConfig selects the key-value backend that holds the link snapshot
type StoreConfig struct {
	Type string `mapstructure:"type"`
	Path string `mapstructure:"path"`
}

// WindowConfig holds raylib window settings
type WindowConfig struct {
	Width  int32  `mapstructure:"width"`
	Height int32  `mapstructure:"height"`
	FPS    int32  `mapstructure:"fps"`
	Title  string `mapstructure:"title"`
}

// CameraConfig holds the default building view
type CameraConfig struct {
	FOV      float32    `mapstructure:"fov"`
	Position [3]float32 `mapstructure:"position"`
	Target   [3]float32 `mapstructure:"target"`
}

// MarkerConfig holds link marker appearance
type MarkerConfig struct {
	Radius float64 `mapstructure:"radius"`
	Spin   float64 `mapstructure:"spin"` // radians per second
}

// WatchConfig controls asset hot reload
type WatchConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Debounce time.Duration `mapstructure:"debounce"`
}

// NotifyConfig controls toast notifications
type NotifyConfig struct {
	Duration time.Duration `mapstructure:"duration"`
}

// MetricsConfig controls the OpenTelemetry metrics export. File is
// appended to; empty means stderr.
type MetricsConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"`
	File     string        `mapstructure:"file"`
}

// Config is the full viewer configuration
type Config struct {
	LogLevel string        `mapstructure:"logLevel"`
	Assets   AssetsConfig  `mapstructure:"assets"`
	Store    StoreConfig   `mapstructure:"store"`
	Window   WindowConfig  `mapstructure:"window"`
	Camera   CameraConfig  `mapstructure:"camera"`
	Marker   MarkerConfig  `mapstructure:"marker"`
	Watch    WatchConfig   `mapstructure:"watch"`
	Notify   NotifyConfig  `mapstructure:"notify"`
	Metrics  MetricsConfig `mapstructure:"metrics"`
}

// SetDefaults registers the default value of every key.
func SetDefaults() {
	viper.SetDefault("logLevel", "info")

	viper.SetDefault("assets.dir", "assets/models")
	viper.SetDefault("assets.building", "building4.glb")
	viper.SetDefault("assets.buildingScale", 20)
	viper.SetDefault("assets.targets", []string{"floor1.glb", "floor2.glb", "officeRoom.glb"})

	viper.SetDefault("store.type", "file")
	viper.SetDefault("store.path", ".")

	viper.SetDefault("window.width", 1400)
	viper.SetDefault("window.height", 900)
	viper.SetDefault("window.fps", 60)
	viper.SetDefault("window.title", "GoBuilding")

	viper.SetDefault("camera.fov", 75)
	viper.SetDefault("camera.position", []float64{16.04, 40.73, -6.56})
	viper.SetDefault("camera.target", []float64{-4.66, 31.62, -2.41})

	viper.SetDefault("marker.radius", 0.3)
	viper.SetDefault("marker.spin", 0.6)

	viper.SetDefault("watch.enabled", true)
	viper.SetDefault("watch.debounce", "500ms")

	viper.SetDefault("notify.duration", "5s")

	viper.SetDefault("metrics.enabled", false)
	viper.SetDefault("metrics.interval", "30s")
	viper.SetDefault("metrics.file", "")
}

// Load reads gobuilding.json from configDir on top of the defaults.
// A missing file is not an error.
func Load(configDir string) (*Config, error) {
	SetDefaults()

	viper.SetConfigName(FileName)
	viper.SetConfigType("json")
	viper.AddConfigPath(configDir)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return Get()
}

// Get unmarshals the current viper state, including bound flags.
func Get() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	return &cfg, nil
}
