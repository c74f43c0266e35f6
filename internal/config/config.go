package config

import (
	"os"
	"strings"
	"time"

	"codeberg.org/mutker/znfsd/internal/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix         = "ZNFSD"
	configEnvVar      = envPrefix + "_CONFIG"
	defaultConfigPath = "/etc/znfsd.toml"

	DefaultInterval        = time.Second
	DefaultLogLevel        = string(LogLevelWarning)
	DefaultInterface       = "end0"
	DefaultTemperaturePath = "/sys/class/thermal/thermal_zone0/temp"
	DefaultI2CBus          = "1"
	DefaultFontSize        = 10.0
)

type Config struct {
	Interval        time.Duration `mapstructure:"interval"`
	LogLevel        string        `mapstructure:"log_level"`
	Interface       string        `mapstructure:"interface"`
	TemperaturePath string        `mapstructure:"temperature_path"`
	I2CBus          string        `mapstructure:"i2c_bus"`
	FontPath        string        `mapstructure:"font_path"`
	FontSize        float64       `mapstructure:"font_size"`
}

// Load reads the configuration using the process arguments.
func Load() (*Config, error) {
	return LoadArgs(os.Args[1:])
}

// LoadArgs reads the configuration from defaults, the optional config file,
// ZNFSD_* environment variables and the given flags, in increasing order of
// precedence.
func LoadArgs(args []string) (*Config, error) {
	errFactory := errors.New()
	v := viper.New()

	v.SetDefault("interval", DefaultInterval)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("interface", DefaultInterface)
	v.SetDefault("temperature_path", DefaultTemperaturePath)
	v.SetDefault("i2c_bus", DefaultI2CBus)
	v.SetDefault("font_path", "")
	v.SetDefault("font_size", DefaultFontSize)

	// Define flags
	flags := pflag.NewFlagSet("znfsd", pflag.ContinueOnError)
	configPath := flags.String("config", "", "Path to the configuration file")
	flags.Duration("interval", DefaultInterval, "Delay between status updates")
	flags.String("log-level", DefaultLogLevel, "Log level (debug, info, warning, error)")
	flags.String("interface", DefaultInterface, "Network interface shown on the display")

	// Parse flags
	if err := flags.Parse(args); err != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	for key, name := range map[string]string{
		"interval":  "interval",
		"log_level": "log-level",
		"interface": "interface",
	} {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return nil, errFactory.Wrap(errors.ErrBindFlags, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// Load configuration from file
	path := *configPath
	if path == "" {
		path = os.Getenv(configEnvVar)
	}
	if err := readConfigFile(v, path); err != nil {
		return nil, err
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// readConfigFile reads an explicitly named file, which must exist, or the
// default file, which may be absent.
func readConfigFile(v *viper.Viper, path string) error {
	errFactory := errors.New()

	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return errFactory.Wrap(errors.ErrReadConfig, err)
		}
		return nil
	}

	if _, err := os.Stat(defaultConfigPath); err != nil {
		return nil
	}

	v.SetConfigFile(defaultConfigPath)
	if err := v.ReadInConfig(); err != nil {
		return errFactory.Wrap(errors.ErrReadConfig, err)
	}

	return nil
}

// Validate checks the loaded values
func (c *Config) Validate() error {
	errFactory := errors.New()

	if c.Interval <= 0 {
		return errFactory.WithData(errors.ErrInvalidInterval, c.Interval)
	}

	if !LogLevel(strings.ToLower(c.LogLevel)).IsValid() {
		return errFactory.WithData(errors.ErrInvalidLogLevel, c.LogLevel)
	}

	if c.Interface == "" {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "interface must not be empty")
	}

	if c.TemperaturePath == "" {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "temperature_path must not be empty")
	}

	if c.FontSize <= 0 {
		return errFactory.WithData(errors.ErrInvalidConfig, c.FontSize)
	}

	return nil
}
