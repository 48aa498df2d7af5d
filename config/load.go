package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix namespaces every environment override
const EnvPrefix = "IDEANET_"

// Load reads path over the preset named in the file, or over the default preset
// The format is chosen by extension: .toml, .yaml or .yml
func Load(path string) (Config, error) {
	return LoadVariant(path, "")
}

// LoadVariant is Load with the base preset forced to variant when it is non-empty
func LoadVariant(path, variant string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return DecodeVariant(data, strings.ToLower(filepath.Ext(path)), variant)
}

// Decode parses data in the format named by ext ("toml", ".yaml", ...)
func Decode(data []byte, ext string) (Config, error) {
	return DecodeVariant(data, ext, "")
}

// DecodeVariant parses data over the preset for variant, or over the file's own variant when empty
func DecodeVariant(data []byte, ext, variant string) (Config, error) {
	ext = strings.TrimPrefix(ext, ".")

	// The variant picks the base preset, so it is read before the full decode
	var head struct {
		Variant string `toml:"variant" yaml:"variant"`
	}
	var decode func(v any, strict bool) error
	switch ext {
	case "toml":
		decode = func(v any, strict bool) error {
			md, err := toml.Decode(string(data), v)
			if err != nil {
				return err
			}
			if undecoded := md.Undecoded(); strict && len(undecoded) > 0 {
				return fmt.Errorf("unknown field %q", undecoded[0].String())
			}
			return nil
		}
	case "yaml", "yml":
		decode = func(v any, strict bool) error {
			dec := yaml.NewDecoder(bytes.NewReader(data))
			dec.KnownFields(strict)
			if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
				return err
			}
			return nil
		}
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}

	if err := decode(&head, false); err != nil {
		return Config{}, fmt.Errorf("decode %s config: %w", ext, err)
	}
	forced := variant != ""
	if !forced {
		variant = head.Variant
	}
	cfg, err := Preset(variant)
	if err != nil {
		return Config{}, err
	}
	name := cfg.Variant
	if err := decode(&cfg, true); err != nil {
		return Config{}, fmt.Errorf("decode %s config: %w", ext, err)
	}
	if forced {
		cfg.Variant = name
	}
	return cfg, nil
}

// ApplyEnv overlays IDEANET_* environment variables onto c
func ApplyEnv(c *Config) error {
	return ApplyEnvFrom(c, nil)
}

// ApplyEnvFrom overlays variables from environ (all of os.Environ when nil)
func ApplyEnvFrom(c *Config, environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(c, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Encode writes c in the format named by ext, for `ideanet config`
func Encode(c Config, ext string) ([]byte, error) {
	var buf bytes.Buffer
	switch strings.TrimPrefix(ext, ".") {
	case "toml":
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return nil, fmt.Errorf("encode toml: %w", err)
		}
	case "yaml", "yml":
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		enc.Close()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	return buf.Bytes(), nil
}
