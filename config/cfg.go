package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"

	validator "github.com/go-playground/validator/v10"
	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	GeneratorConfig struct {
		HeaderName      string      `yaml:"header_name" validate:"required"`
		DefinitionsName string      `yaml:"definitions_name" validate:"required"`
		TemplatePath    string      `yaml:"template_path" sanitize:"assure_file_access"`
		Sentinel        string      `yaml:"sentinel" validate:"required"`
		Quotes          QuotePolicy `yaml:"quotes" validate:"gte=0"`
		SourceCharset   string      `yaml:"source_charset"`
	}

	TranslationsConfig struct {
		Author string `yaml:"author"`
	}

	Config struct {
		Version      int                `yaml:"version" validate:"eq=1"`
		Generator    GeneratorConfig    `yaml:"generator"`
		Translations TranslationsConfig `yaml:"translations"`
		Logging      LoggingConfig      `yaml:"logging"`
		Reporting    ReporterConfig     `yaml:"reporting"`
	}
)

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
		if err := gencfg.Validate(cfg, gencfg.WithAdditionalChecks(checkConfig)); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// checkConfig covers what cannot be expressed with validation tags.
func checkConfig(sl validator.StructLevel) {
	cfg, ok := sl.Current().Interface().(Config)
	if !ok {
		return
	}
	if _, err := cfg.Generator.Charset(); err != nil {
		sl.ReportError(cfg.Generator.SourceCharset, "source_charset", "SourceCharset", "charset", "")
	}
	if len(cfg.Generator.Sentinel) > 0 && strings.ContainsAny(cfg.Generator.Sentinel, " \t/,") {
		sl.ReportError(cfg.Generator.Sentinel, "sentinel", "Sentinel", "identifier", "")
	}
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
