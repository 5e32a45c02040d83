package config

import (
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/ini.v1"

	"github.com/jsphweid/chartpak/constants"
)

type Config struct {
	OutputSuffix string

	ServeAddr      string
	AllowedOrigins []string

	WatchInterval time.Duration
	WatchDebounce time.Duration

	CatalogTable    string
	CatalogEndpoint string
	CatalogRegion   string
}

func Default() *Config {
	return &Config{
		OutputSuffix:   constants.DefaultOutputSuffix,
		ServeAddr:      ":8080",
		AllowedOrigins: []string{"*"},
		WatchInterval:  250 * time.Millisecond,
		WatchDebounce:  500 * time.Millisecond,
		CatalogTable:   "chartpak-catalog",
		CatalogRegion:  "us-east-1",
	}
}

func GetConfigPath() string {
	path := os.Getenv(constants.ConfigEnv)
	if path != "" {
		return path
	}
	return constants.DefaultConfigPath
}

// Load layers the ini file at GetConfigPath() and then the environment over the defaults.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	f, err := ini.LoadSources(ini.LoadOptions{Loose: true, Insensitive: true}, path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not load config %s", path)
	}
	cfg.applyIni(f)
	cfg.applyEnv()
	if err := cfg.validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.WatchInterval <= 0 {
		return errors.Errorf("watch interval must be positive, got %v", c.WatchInterval)
	}
	if c.WatchDebounce <= 0 {
		return errors.Errorf("watch debounce must be positive, got %v", c.WatchDebounce)
	}
	return nil
}

func (c *Config) applyIni(f *ini.File) {
	output := f.Section("output")
	c.OutputSuffix = output.Key("suffix").MustString(c.OutputSuffix)

	serve := f.Section("serve")
	c.ServeAddr = serve.Key("addr").MustString(c.ServeAddr)
	if serve.HasKey("origins") {
		c.AllowedOrigins = serve.Key("origins").Strings(",")
	}

	watch := f.Section("watch")
	c.WatchInterval = watch.Key("interval").MustDuration(c.WatchInterval)
	c.WatchDebounce = watch.Key("debounce").MustDuration(c.WatchDebounce)

	catalog := f.Section("catalog")
	c.CatalogTable = catalog.Key("table").MustString(c.CatalogTable)
	c.CatalogEndpoint = catalog.Key("endpoint").MustString(c.CatalogEndpoint)
	c.CatalogRegion = catalog.Key("region").MustString(c.CatalogRegion)
}

func (c *Config) applyEnv() {
	if v := os.Getenv("CHARTPAK_SUFFIX"); v != "" {
		c.OutputSuffix = v
	}
	if v := os.Getenv("CHARTPAK_ADDR"); v != "" {
		c.ServeAddr = v
	}
	if v := os.Getenv("CHARTPAK_ORIGINS"); v != "" {
		c.AllowedOrigins = strings.Split(v, ",")
	}
	if v := os.Getenv("CHARTPAK_CATALOG_ENDPOINT"); v != "" {
		c.CatalogEndpoint = v
	}
}

// OutputPath is where a packed chart for input lands: the input path plus the suffix.
func (c *Config) OutputPath(input string) string {
	return input + c.OutputSuffix
}
