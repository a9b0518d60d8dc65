package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigFile = "./configs/okex.yaml"
	EnvApiKey         = "OKEX_API_KEY"
	EnvSecret         = "OKEX_SECRET"
)

var ErrUnknownFormat = errors.New("unknown config format")

// LoadConfig reads a JSON or YAML file, chosen by extension. Credentials
// missing from the file are taken from OKEX_API_KEY / OKEX_SECRET.
func LoadConfig(file string) (*Config, error) {
	cfg := &Config{}
	var err error
	switch strings.ToLower(filepath.Ext(file)) {
	case ".json":
		err = LoadJSON(file, cfg)
	case ".yaml", ".yml":
		err = LoadYAML(file, cfg)
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownFormat, file)
	}
	if err != nil {
		return nil, err
	}
	if cfg.Api.Key == "" {
		cfg.Api.Key = os.Getenv(EnvApiKey)
	}
	if cfg.Api.Secret == "" {
		cfg.Api.Secret = os.Getenv(EnvSecret)
	}
	if cfg.Api.ApiSign == "" {
		cfg.Api.ApiSign = GetServerHost()
	}
	return cfg, nil
}

func GetServerHost() string {
	host, err := os.Hostname()
	if err != nil {
		return ""
	}
	return host
}

// LoadYAML reads the given file and unmarshals its content.
func LoadYAML(file string, val interface{}) error {
	content, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(content, val); err != nil {
		return fmt.Errorf("YAML unmarshal error in %v: %w", file, err)
	}
	return nil
}

// LoadJSON reads the given file and unmarshals its content.
func LoadJSON(file string, val interface{}) error {
	content, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(content, val); err != nil {
		if syntaxerr, ok := err.(*json.SyntaxError); ok {
			line := findLine(content, syntaxerr.Offset)
			return fmt.Errorf("JSON syntax error at %v:%v: %v", file, line, err)
		}
		return fmt.Errorf("JSON unmarshal error in %v: %v", file, err)
	}
	return nil
}

// findLine returns the line number for the given offset into data.
func findLine(data []byte, offset int64) (line int) {
	line = 1
	for i, r := range string(data) {
		if int64(i) >= offset {
			return
		}
		if r == '\n' {
			line++
		}
	}
	return
}
