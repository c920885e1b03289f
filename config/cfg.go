package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	validator "github.com/go-playground/validator/v10"
	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"nativestyle/style"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	ViewportConfig struct {
		Width  float64 `yaml:"width" validate:"gte=0"`
		Height float64 `yaml:"height" validate:"gte=0"`
		Scale  float64 `yaml:"scale" validate:"gte=0"`
	}

	ResolverConfig struct {
		RootFontSize float64        `yaml:"root_font_size" validate:"gt=0"`
		FontScale    float64        `yaml:"font_scale" validate:"gte=0"`
		Viewport     ViewportConfig `yaml:"viewport"`
		ColorScheme  string         `yaml:"color_scheme" validate:"omitempty,oneof=light dark"`
		Direction    string         `yaml:"direction" validate:"omitempty,oneof=ltr rtl"`
		Passthrough  []string       `yaml:"passthrough" validate:"dive,required"`
		Dev          bool           `yaml:"dev"`
	}

	OutputConfig struct {
		Format OutputFormat `yaml:"format"`
		Indent int          `yaml:"indent" validate:"min=0,max=8"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Resolver  ResolverConfig `yaml:"resolver"`
		Output    OutputConfig   `yaml:"output"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

// Context builds the base resolution context from configured defaults.
func (conf *ResolverConfig) Context() style.Context {
	opts := []style.ContextOption{
		style.WithRootFontSize(conf.RootFontSize),
		style.WithFontScale(conf.FontScale),
		style.WithViewport(conf.Viewport.Width, conf.Viewport.Height),
		style.WithViewportScale(conf.Viewport.Scale),
		style.WithColorScheme(conf.ColorScheme),
	}
	if dir, ok := style.ParseDirection(conf.Direction); ok {
		opts = append(opts, style.WithDirection(dir))
	}
	if len(conf.Passthrough) > 0 {
		opts = append(opts, style.WithPassthrough(conf.Passthrough...))
	}
	return style.NewContext(opts...)
}

// Options returns composer options.
func (conf *ResolverConfig) Options() style.Options {
	return style.Options{Dev: conf.Dev}
}

// crossFieldChecks validates constraints spanning several fields.
func crossFieldChecks(sl validator.StructLevel) {
	cfg, ok := sl.Current().Interface().(Config)
	if !ok {
		return
	}
	vp := cfg.Resolver.Viewport
	// a viewport is either fully known or not known at all
	if (vp.Width == 0) != (vp.Height == 0) {
		sl.ReportError(vp.Height, "Resolver.Viewport.Height", "Height", "viewport_complete", "")
	}
	if cfg.Logging.FileLogger.Level != "none" && cfg.Logging.FileLogger.Destination == "" {
		sl.ReportError(cfg.Logging.FileLogger.Destination, "Logging.FileLogger.Destination", "Destination", "required_with_level", "")
	}
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg, gencfg.WithAdditionalChecks(crossFieldChecks)); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
