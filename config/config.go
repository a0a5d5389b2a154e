// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the command line and config file
// options of livercompare.
package config

import (
	"fmt"
	"strings"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/cli"
	"cogentcore.org/livercompare/anatomy"
	"github.com/mitchellh/go-homedir"
)

// Config is the configuration of a comparison. The eight model
// files are required; everything else is optional.
type Config struct {

	// ParenchymaA is the parenchyma model A (.vtp format).
	ParenchymaA string `flag:"pa"`

	// ParenchymaB is the parenchyma model B (.vtp format).
	ParenchymaB string `flag:"pb"`

	// HepaticA is the hepatic model A (.vtp format).
	HepaticA string `flag:"ha"`

	// HepaticB is the hepatic model B (.vtp format).
	HepaticB string `flag:"hb"`

	// PortalA is the portal model A (.vtp format).
	PortalA string `flag:"ma"`

	// PortalB is the portal model B (.vtp format).
	PortalB string `flag:"mb"`

	// TumorA is the tumor model A (.vtp format).
	TumorA string `flag:"ta"`

	// TumorB is the tumor model B (.vtp format).
	TumorB string `flag:"tb"`

	// Palette is an optional TOML or YAML file with element colors.
	Palette string

	// Watch reloads a model whenever its file changes.
	Watch bool

	// Snapshot is the image file the snapshot action saves to.
	Snapshot string `default:"livercompare.png"`

	// Report prints the comparison statistics of the two model sets
	// and exits without opening a window.
	Report bool
}

// models returns pointers to the model file fields, by element and side.
func (c *Config) models() [anatomy.ElementsN][2]*string {
	return [anatomy.ElementsN][2]*string{
		anatomy.Parenchyma: {&c.ParenchymaA, &c.ParenchymaB},
		anatomy.Hepatic:    {&c.HepaticA, &c.HepaticB},
		anatomy.Portal:     {&c.PortalA, &c.PortalB},
		anatomy.Tumor:      {&c.TumorA, &c.TumorB},
	}
}

// Validate returns an error naming every missing model file flag,
// followed by the usage text, or nil if all eight are given.
func (c *Config) Validate() error {
	var missing []string
	for _, el := range anatomy.Elements {
		for side, fn := range c.models()[el] {
			if strings.TrimSpace(*fn) == "" {
				missing = append(missing, "-"+el.Flag(sideName(side)))
			}
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("the following arguments are required: %s\n\n%s", strings.Join(missing, ", "), Usage())
}

func sideName(side int) string {
	if side == 1 {
		return "b"
	}
	return "a"
}

// Pairs returns the model files of each element, with any
// leading ~ expanded to the home directory.
func (c *Config) Pairs() anatomy.Pairs {
	var pairs anatomy.Pairs
	for _, el := range anatomy.Elements {
		m := c.models()[el]
		pairs[el] = anatomy.Pair{A: expand(*m[0]), B: expand(*m[1])}
	}
	return pairs
}

func expand(path string) string {
	ep, err := homedir.Expand(path)
	if errors.Log(err) != nil {
		return path
	}
	return ep
}

// Usage returns the usage text for the model file flags.
func Usage() string {
	var b strings.Builder
	b.WriteString("Side-by-side visualization of liver models for comparison\n\nRequired flags:\n")
	for _, el := range anatomy.Elements {
		for _, sn := range []string{"a", "b"} {
			fmt.Fprintf(&b, "  -%s\t%s %s model (.vtp format)\n", el.Flag(sn), el.Title(), strings.ToUpper(sn))
		}
	}
	return b.String()
}

// Parse sets a new config from its default values and the given
// command line arguments (not including the program name) and validates it.
func Parse(args []string) (*Config, error) {
	c := &Config{}
	if err := cli.SetFromDefaults(c); err != nil {
		return nil, err
	}
	if _, err := cli.SetFromArgs(c, args, true); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
