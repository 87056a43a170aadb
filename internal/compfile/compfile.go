// Package compfile reads peridotite oxide compositions from YAML, TOML or
// JSON files, either a single composition or a set of named presets.
//
// A composition file looks like
//
//	units: percent
//	MgO: 34
//	FeO: 12
//	Na2O: 0.4
//	K2O: 0.03
//
// Without a units key values are mass fractions.
package compfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/solliq/pkg/domain"
	"github.com/mitchellh/mapstructure"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a file syntax.
type Format string

const (
	YAML Format = "yaml"
	TOML Format = "toml"
	JSON Format = "json"
)

// FormatOf infers the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	case ".json":
		return JSON, nil
	}
	return "", fmt.Errorf("unsupported composition file %q (want .yaml, .toml or .json)", path)
}

const (
	unitsKey    = "units"
	unitPercent = "percent"
	unitFrac    = "fraction"
)

// unmarshal decodes any of the supported syntaxes into a generic map.
func unmarshal(data []byte, f Format) (map[string]any, error) {
	var raw map[string]any
	var err error
	switch f {
	case YAML:
		err = yaml.Unmarshal(data, &raw)
	case TOML:
		err = toml.Unmarshal(data, &raw)
	case JSON:
		err = json.Unmarshal(data, &raw)
	default:
		return nil, fmt.Errorf("unsupported format %q", f)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", f, err)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return raw, nil
}

// scaleOf removes the units key from raw and returns the factor to fractions.
func scaleOf(raw map[string]any) (float64, error) {
	v, ok := raw[unitsKey]
	if !ok {
		return 1, nil
	}
	delete(raw, unitsKey)
	s, _ := v.(string)
	switch strings.ToLower(s) {
	case unitFrac:
		return 1, nil
	case unitPercent, "%", "wt%":
		return 0.01, nil
	}
	return 0, fmt.Errorf("%w: unknown units %v", domain.ErrInvalidComposition, v)
}

func decodeOxides(in any, scale float64) (domain.Oxides, error) {
	var ox domain.Oxides
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &ox,
	})
	if err != nil {
		return domain.Oxides{}, err
	}
	if err := dec.Decode(in); err != nil {
		return domain.Oxides{}, fmt.Errorf("%w: %v", domain.ErrInvalidComposition, err)
	}
	ox = ox.Scale(scale)
	if err := ox.Validate(); err != nil {
		return domain.Oxides{}, err
	}
	return ox, nil
}

// Decode parses a single composition.
func Decode(data []byte, f Format) (domain.Oxides, error) {
	raw, err := unmarshal(data, f)
	if err != nil {
		return domain.Oxides{}, err
	}
	scale, err := scaleOf(raw)
	if err != nil {
		return domain.Oxides{}, err
	}
	return decodeOxides(raw, scale)
}

// Load reads a single composition from path.
func Load(path string) (domain.Oxides, error) {
	f, err := FormatOf(path)
	if err != nil {
		return domain.Oxides{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Oxides{}, fmt.Errorf("reading composition: %w", err)
	}
	ox, err := Decode(data, f)
	if err != nil {
		return domain.Oxides{}, fmt.Errorf("%s: %w", path, err)
	}
	return ox, nil
}
