package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// Theme holds the board colours as "#rrggbb" or "#rrggbbaa" strings.
type Theme struct {
	LightSquare string `yaml:"light_square"`
	DarkSquare  string `yaml:"dark_square"`
	Origin      string `yaml:"origin"`
	Background  string `yaml:"background"`
	Coordinates string `yaml:"coordinates"`
	FirstPiece  string `yaml:"first_piece"`
	SecondPiece string `yaml:"second_piece"`
}

// DefaultTheme is the light/dark wood palette.
var DefaultTheme = Theme{
	LightSquare: "#deb887",
	DarkSquare:  "#8b4513",
	Origin:      "#f6f66980",
	Background:  "#2b2118",
	Coordinates: "#f0e6d2",
	FirstPiece:  "#ffffff",
	SecondPiece: "#000000",
}

// ErrInvalidColor is returned for colours that are not 6 or 8 hex digits.
var ErrInvalidColor = errors.New("invalid hex colour")

// LoadTheme reads a yaml theme file over DefaultTheme. An empty path
// returns the default. Unknown keys and bad colours are errors.
func LoadTheme(path string) (Theme, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultTheme, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("read theme: %w", err)
	}
	t, err := ParseTheme(raw)
	if err != nil {
		return Theme{}, fmt.Errorf("parse theme %s: %w", path, err)
	}
	return t, nil
}

// ParseTheme applies yaml overrides to DefaultTheme.
func ParseTheme(raw []byte) (Theme, error) {
	t := DefaultTheme
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil && !errors.Is(err, io.EOF) {
		return Theme{}, err
	}
	for name, v := range t.fields() {
		if _, err := ParseHex(v); err != nil {
			return Theme{}, fmt.Errorf("%s: %w", name, err)
		}
	}
	return t, nil
}

func (t Theme) fields() map[string]string {
	return map[string]string{
		"light_square": t.LightSquare,
		"dark_square":  t.DarkSquare,
		"origin":       t.Origin,
		"background":   t.Background,
		"coordinates":  t.Coordinates,
		"first_piece":  t.FirstPiece,
		"second_piece": t.SecondPiece,
	}
}

// ParseHex decodes "#rrggbb" or "#rrggbbaa".
func ParseHex(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	if len(h) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// ColorOf is ParseHex for values already validated by ParseTheme. Bad
// input yields opaque black.
func ColorOf(s string) color.NRGBA {
	c, err := ParseHex(s)
	if err != nil {
		return color.NRGBA{A: 0xff}
	}
	return c
}
