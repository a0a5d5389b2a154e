// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package anatomy

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/core/colors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Palette has the display color of each element.
type Palette [ElementsN]color.RGBA

// DefaultPalette returns the default element colors.
func DefaultPalette() Palette {
	var p Palette
	for _, el := range Elements {
		p[el] = el.DefaultColor()
	}
	return p
}

// paletteFile is the on-disk form of a palette: element name to hex color,
// with an optional opacity in [0, 1] that overrides any alpha in the color.
//
//	[parenchyma]
//	color = "#d2a078"
//	opacity = 0.3
type paletteFile map[string]paletteEntry

type paletteEntry struct {
	Color   string   `toml:"color" yaml:"color"`
	Opacity *float32 `toml:"opacity" yaml:"opacity"`
}

// LoadPalette reads a palette file in TOML (.toml) or YAML (.yaml, .yml)
// format. Elements not named in the file keep their default color.
func LoadPalette(filename string) (Palette, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return Palette{}, err
	}
	var pf paletteFile
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".toml":
		err = toml.Unmarshal(b, &pf)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &pf)
	default:
		return Palette{}, fmt.Errorf("anatomy: %s: unsupported palette format %q", filename, ext)
	}
	if err != nil {
		return Palette{}, fmt.Errorf("%s: %w", filename, err)
	}
	p, err := pf.palette()
	if err != nil {
		return Palette{}, fmt.Errorf("%s: %w", filename, err)
	}
	return p, nil
}

func (pf paletteFile) palette() (Palette, error) {
	p := DefaultPalette()
	for name, pe := range pf {
		el, err := ElementFromString(name)
		if err != nil {
			return p, err
		}
		clr := p[el]
		if pe.Color != "" {
			clr, err = colors.FromHex(pe.Color)
			if err != nil {
				return p, fmt.Errorf("%s: %w", name, err)
			}
		}
		if pe.Opacity != nil {
			op := min(max(*pe.Opacity, 0), 1)
			clr = premultiply(unpremultiply(clr), op)
		}
		p[el] = clr
	}
	return p, nil
}

// unpremultiply returns the opaque color underlying c.
func unpremultiply(c color.RGBA) color.RGBA {
	if c.A == 0 || c.A == 255 {
		c.A = 255
		return c
	}
	d := func(v uint8) uint8 { return uint8(min(255, int(v)*255/int(c.A))) }
	return color.RGBA{d(c.R), d(c.G), d(c.B), 255}
}
