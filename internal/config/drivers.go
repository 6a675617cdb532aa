package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ItsNotGoodName/x-scroller/internal/core"
	"gopkg.in/yaml.v3"
)

var ErrUnknownFormat = errors.New("unknown config format")

// NewDriver picks the driver for filePath by its extension.
func NewDriver(filePath string) (Driver, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		return NewYAML(filePath), nil
	case ".json":
		return NewJSON(filePath), nil
	case ".toml":
		return NewTOML(filePath), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, filePath)
	}
}

// file reads and atomically writes a config file with an encoding.
type file struct {
	filePath string
	decode   func(r io.Reader, cfg *Config) error
	encode   func(w io.Writer, cfg Config) error
}

func (f file) Exists() (bool, error) {
	return core.FileExists(f.filePath)
}

func (f file) Read() (Config, error) {
	fd, err := os.Open(f.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, err
	}
	defer fd.Close()

	cfg := Default()
	if err := f.decode(fd, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", f.filePath, err)
	}
	return cfg, nil
}

func (f file) Write(cfg Config) error {
	filePathTmp := f.filePath + ".tmp"
	fd, err := os.OpenFile(filePathTmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	if err := f.encode(fd, cfg); err != nil {
		fd.Close()
		return err
	}
	if err := fd.Close(); err != nil {
		return err
	}

	return os.Rename(filePathTmp, f.filePath)
}

type YAML struct{ file }

func NewYAML(filePath string) YAML {
	return YAML{file{
		filePath: filePath,
		decode: func(r io.Reader, cfg *Config) error {
			err := yaml.NewDecoder(r).Decode(cfg)
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		},
		encode: func(w io.Writer, cfg Config) error {
			enc := yaml.NewEncoder(w)
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return err
			}
			return enc.Close()
		},
	}}
}

type JSON struct{ file }

func NewJSON(filePath string) JSON {
	return JSON{file{
		filePath: filePath,
		decode: func(r io.Reader, cfg *Config) error {
			err := json.NewDecoder(r).Decode(cfg)
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		},
		encode: func(w io.Writer, cfg Config) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(cfg)
		},
	}}
}

type TOML struct{ file }

func NewTOML(filePath string) TOML {
	return TOML{file{
		filePath: filePath,
		decode: func(r io.Reader, cfg *Config) error {
			_, err := toml.NewDecoder(r).Decode(cfg)
			return err
		},
		encode: func(w io.Writer, cfg Config) error {
			return toml.NewEncoder(w).Encode(cfg)
		},
	}}
}
