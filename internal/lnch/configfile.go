//    AyracGoServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/e-gun/AyracGoServer/internal/str"
	"github.com/e-gun/AyracGoServer/internal/vv"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownConfigFormat = errors.New("unknown configuration file format")
)

// FindConfigFile - "-c {path}" wins; then ./ags-conf.*; then ~/.config/ags-conf.*; "" if nothing is there
func FindConfigFile(args []string) (string, error) {
	for i, a := range args {
		if a != "-c" {
			continue
		}
		if i+1 >= len(args) {
			return "", fmt.Errorf("%w: -c", ErrMissingValue)
		}
		if _, err := os.Stat(args[i+1]); err != nil {
			return "", err
		}
		return args[i+1], nil
	}

	dirs := []string{vv.CONFIGLOCATION}
	if h, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, fmt.Sprintf(vv.CONFIGALTAPTH, h))
	}

	base := strings.TrimSuffix(vv.CONFIGBASIC, filepath.Ext(vv.CONFIGBASIC))
	for _, d := range dirs {
		for _, ext := range []string{".json", ".toml", ".yaml", ".yml"} {
			p := filepath.Join(d, base+ext)
			if _, err := os.Stat(p); err == nil {
				return p, nil
			}
		}
	}
	return "", nil
}

// LoadConfigFile - overlay a json, toml or yaml file onto cfg; fields absent from the file keep their values
func LoadConfigFile(path string, cfg *str.CurrentConfiguration) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	// decode into a copy so that a half-read file does not leave cfg half-changed
	c := *cfg

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err = json.Unmarshal(data, &c); err != nil {
			return fmt.Errorf("decode JSON: %w", err)
		}
	case ".toml":
		if _, err = toml.Decode(string(data), &c); err != nil {
			return fmt.Errorf("decode TOML: %w", err)
		}
	case ".yaml", ".yml":
		if err = yaml.Unmarshal(data, &c); err != nil {
			return fmt.Errorf("decode YAML: %w", err)
		}
	default:
		return fmt.Errorf("%w: '%s'", ErrUnknownConfigFormat, path)
	}

	*cfg = c
	return nil
}
