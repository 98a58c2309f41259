package config

import (
	"fmt"
	"io/ioutil"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/Strange-Account/go-modpack-loader/modpack"
)

const CurrentSpec = 1

type ConfigFile struct {
	SpecVer     int64               `yaml:"_specver"`
	Conventions modpack.Conventions `yaml:"conventions"`
	Load        LoadConfig          `yaml:"load"`
	Report      ReportConfig        `yaml:"report"`
}

type LoadConfig struct {
	// Jobs bounds how many modpacks are loaded at once.
	Jobs          int      `yaml:"jobs"`
	Timeout       string   `yaml:"timeout"`
	IgnoreContent []string `yaml:"ignoreContent"`
}

type ReportConfig struct {
	// Dir receives one plan report per modpack. Empty disables reports.
	Dir string `yaml:"dir"`
}

// Default returns the configuration used when no file is given.
func Default() *ConfigFile {
	return &ConfigFile{
		SpecVer:     CurrentSpec,
		Conventions: modpack.DefaultConventions(),
		Load: LoadConfig{
			Jobs:    4,
			Timeout: "2m",
		},
	}
}

// Read loads the YAML config at path. Unset values keep their defaults.
func Read(path string) (*ConfigFile, error) {
	c := Default()

	yamlFile, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(yamlFile, c); err != nil {
		return nil, fmt.Errorf("unmarshal config %s: %w", path, err)
	}
	c.Conventions = c.Conventions.Merge(modpack.DefaultConventions())
	if c.Load.Jobs == 0 {
		c.Load.Jobs = Default().Load.Jobs
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return c, nil
}

func (c *ConfigFile) Validate() error {
	if c.SpecVer < CurrentSpec {
		return fmt.Errorf("spec version %d is older than %d", c.SpecVer, CurrentSpec)
	}
	if c.Load.Jobs < 1 {
		return fmt.Errorf("load.jobs must be at least 1, got %d", c.Load.Jobs)
	}
	if _, err := c.LoadTimeout(); err != nil {
		return err
	}
	if _, err := modpack.CompileIgnore(c.Load.IgnoreContent); err != nil {
		return err
	}

	return c.Conventions.Validate()
}

// LoadTimeout is the deadline for a whole batch. Zero means none.
func (c *ConfigFile) LoadTimeout() (time.Duration, error) {
	if c.Load.Timeout == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(c.Load.Timeout)
	if err != nil {
		return 0, fmt.Errorf("load.timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("load.timeout must not be negative")
	}

	return d, nil
}
