// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vtp

import (
	"encoding/xml"
	"fmt"
)

type xmlFile struct {
	XMLName    xml.Name     `xml:"VTKFile"`
	Type       string       `xml:"type,attr"`
	Version    string       `xml:"version,attr"`
	ByteOrder  string       `xml:"byte_order,attr"`
	HeaderType string       `xml:"header_type,attr"`
	Compressor string       `xml:"compressor,attr"`
	PolyData   *xmlPolyData `xml:"PolyData"`
}

type xmlPolyData struct {
	Pieces []xmlPiece `xml:"Piece"`
}

type xmlPiece struct {
	NumberOfPoints int `xml:"NumberOfPoints,attr"`
	NumberOfVerts  int `xml:"NumberOfVerts,attr"`
	NumberOfLines  int `xml:"NumberOfLines,attr"`
	NumberOfStrips int `xml:"NumberOfStrips,attr"`
	NumberOfPolys  int `xml:"NumberOfPolys,attr"`

	PointData xmlAttributes `xml:"PointData"`
	Points    xmlArrays     `xml:"Points"`
	Verts     xmlArrays     `xml:"Verts"`
	Lines     xmlArrays     `xml:"Lines"`
	Strips    xmlArrays     `xml:"Strips"`
	Polys     xmlArrays     `xml:"Polys"`
}

type xmlAttributes struct {
	Normals string         `xml:"Normals,attr"`
	Arrays  []xmlDataArray `xml:"DataArray"`
}

type xmlArrays struct {
	Arrays []xmlDataArray `xml:"DataArray"`
}

// byName returns the array with the given name, or nil.
func (xa *xmlArrays) byName(name string) *xmlDataArray {
	for i := range xa.Arrays {
		if xa.Arrays[i].Name == name {
			return &xa.Arrays[i]
		}
	}
	return nil
}

type xmlDataArray struct {
	Type               string `xml:"type,attr"`
	Name               string `xml:"Name,attr"`
	NumberOfComponents int    `xml:"NumberOfComponents,attr"`
	Format             string `xml:"format,attr"`
	Offset             int64  `xml:"offset,attr"`
	Data               string `xml:",chardata"`
}

// components returns the number of components, which defaults to 1.
func (da *xmlDataArray) components() int {
	if da.NumberOfComponents <= 0 {
		return 1
	}
	return da.NumberOfComponents
}

type xmlAppended struct {
	Encoding string `xml:"encoding,attr"`
}

func unmarshalFile(doc []byte) (*xmlFile, error) {
	f := &xmlFile{}
	if err := xml.Unmarshal(doc, f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	return f, nil
}

// unmarshalElement decodes the attributes of a lone start tag.
func unmarshalElement(tag []byte, name string, v any) error {
	el := make([]byte, 0, len(tag)+len(name)+3)
	el = append(el, tag...)
	el = append(el, "</"+name+">"...)
	return xml.Unmarshal(el, v)
}
