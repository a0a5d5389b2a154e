// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package anatomy provides the liver surface models compared by livercompare:
// the fixed set of anatomical elements, mesh loading from .vtp and .stl files,
// concurrent loading of both model sets, geometric statistics and display colors.
package anatomy

import (
	"fmt"
	"image/color"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Element is one anatomical structure of a liver model.
type Element int32

const (
	// Parenchyma is the main functional liver tissue.
	Parenchyma Element = iota

	// Hepatic is the hepatic vein vessel tree.
	Hepatic

	// Portal is the portal vein vessel tree.
	Portal

	// Tumor is the tumor boundary.
	Tumor

	// ElementsN is the number of elements.
	ElementsN
)

// Elements lists all elements in scene order.
var Elements = [ElementsN]Element{Parenchyma, Hepatic, Portal, Tumor}

var elementNames = [ElementsN]string{"parenchyma", "hepatic", "portal", "tumor"}

// flagLetters are the first letters of the command line flags for each element.
var flagLetters = [ElementsN]string{"p", "h", "m", "t"}

var titler = cases.Title(language.English)

func (el Element) String() string {
	if el < 0 || el >= ElementsN {
		return fmt.Sprintf("Element(%d)", int32(el))
	}
	return elementNames[el]
}

// Title returns the display name of the element, e.g. "Parenchyma".
func (el Element) Title() string {
	return titler.String(el.String())
}

// Flag returns the command line flag for the element on the given side,
// where side is "a" or "b": "pa", "hb" and so on.
func (el Element) Flag(side string) string {
	return flagLetters[el] + strings.ToLower(side)
}

// ElementFromString returns the element with the given name (case-insensitive).
func ElementFromString(s string) (Element, error) {
	ls := strings.ToLower(s)
	for i, nm := range elementNames {
		if nm == ls {
			return Element(i), nil
		}
	}
	return 0, fmt.Errorf("anatomy: unknown element %q", s)
}

// premultiply returns c with the given alpha, premultiplied as required by [color.RGBA].
func premultiply(c color.RGBA, alpha float32) color.RGBA {
	m := func(v uint8) uint8 { return uint8(float32(v)*alpha + 0.5) }
	return color.RGBA{m(c.R), m(c.G), m(c.B), uint8(255*alpha + 0.5)}
}

// DefaultColor returns the default display color of the element.
// The parenchyma is translucent so the vessels and tumor inside it stay visible.
func (el Element) DefaultColor() color.RGBA {
	switch el {
	case Parenchyma:
		return premultiply(color.RGBA{210, 160, 120, 255}, 0.35)
	case Hepatic:
		return color.RGBA{60, 110, 220, 255}
	case Portal:
		return color.RGBA{150, 80, 200, 255}
	case Tumor:
		return color.RGBA{240, 210, 40, 255}
	}
	return color.RGBA{255, 255, 255, 255}
}
