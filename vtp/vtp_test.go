// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vtp

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const asciiQuad = `<?xml version="1.0"?>
<VTKFile type="PolyData" version="1.0" byte_order="LittleEndian" header_type="UInt64">
  <PolyData>
    <Piece NumberOfPoints="4" NumberOfVerts="0" NumberOfLines="0" NumberOfStrips="0" NumberOfPolys="1">
      <PointData>
      </PointData>
      <CellData>
      </CellData>
      <Points>
        <DataArray type="Float32" Name="Points" NumberOfComponents="3" format="ascii">
          0 0 0  1 0 0
          1 1 0  0 1 0
        </DataArray>
      </Points>
      <Polys>
        <DataArray type="Int64" Name="connectivity" format="ascii">0 1 2 3</DataArray>
        <DataArray type="Int64" Name="offsets" format="ascii">4</DataArray>
      </Polys>
    </Piece>
  </PolyData>
</VTKFile>
`

func TestASCIIQuad(t *testing.T) {
	pd, err := Parse([]byte(asciiQuad))
	require.NoError(t, err)
	assert.Equal(t, 4, pd.NumPoints())
	assert.Equal(t, 2, pd.NumTriangles())
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, pd.Triangles)
	require.Len(t, pd.Normals, 12)
	for i := 0; i < 4; i++ {
		assert.InDelta(t, 1, pd.Normals[3*i+2], 1e-6)
	}
	bb := pd.Bounds()
	assert.Equal(t, math32.Vec3(0, 0, 0), bb.Min)
	assert.Equal(t, math32.Vec3(1, 1, 0), bb.Max)
}

func TestStrips(t *testing.T) {
	doc := strings.Replace(asciiQuad, `NumberOfStrips="0" NumberOfPolys="1"`, `NumberOfStrips="1" NumberOfPolys="0"`, 1)
	doc = strings.Replace(doc, "<Polys>", "<Strips>", 1)
	doc = strings.Replace(doc, "</Polys>", "</Strips>", 1)
	doc = strings.Replace(doc, ">0 1 2 3<", ">0 1 3 2<", 1)
	pd, err := Parse([]byte(doc))
	require.NoError(t, err)
	// second triangle has its winding flipped to stay consistent
	assert.Equal(t, []uint32{0, 1, 3, 3, 1, 2}, pd.Triangles)
}

func TestNotPolyData(t *testing.T) {
	_, err := Parse([]byte(`<VTKFile type="UnstructuredGrid" version="1.0"><UnstructuredGrid/></VTKFile>`))
	assert.ErrorIs(t, err, ErrNotPolyData)
}

func TestUnsupportedCompressor(t *testing.T) {
	doc := strings.Replace(asciiQuad, `header_type="UInt64"`, `header_type="UInt64" compressor="vtkLZ4DataCompressor"`, 1)
	_, err := Parse([]byte(doc))
	assert.ErrorIs(t, err, ErrUnsupportedCompressor)
}

func TestIndexOutOfRange(t *testing.T) {
	doc := strings.Replace(asciiQuad, ">0 1 2 3<", ">0 1 2 7<", 1)
	_, err := Parse([]byte(doc))
	assert.ErrorIs(t, err, ErrFormat)
}

func TestLeadingZeroOffsets(t *testing.T) {
	doc := strings.Replace(asciiQuad, `format="ascii">4<`, `format="ascii">0 4<`, 1)
	pd, err := Parse([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, 2, pd.NumTriangles())
}

// tetra is a tetrahedron used for the binary encodings.
var (
	tetraPoints  = []float32{0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1}
	tetraConn    = []int32{0, 2, 1, 0, 1, 3, 0, 3, 2, 1, 2, 3}
	tetraOffsets = []int32{3, 6, 9, 12}
)

func packed(order binary.ByteOrder, v any) []byte {
	var buf bytes.Buffer
	if err := binary.Write(&buf, order, v); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// blockBytes returns the header and data bytes of one array,
// optionally compressed into blocks of the given size.
func blockBytes(order binary.ByteOrder, data []byte, compress bool, blockSize int) (hdr, body []byte) {
	if !compress {
		return packed(order, uint32(len(data))), data
	}
	var sizes []uint32
	var comp bytes.Buffer
	for off := 0; off < len(data); off += blockSize {
		end := min(off+blockSize, len(data))
		var zb bytes.Buffer
		zw := zlib.NewWriter(&zb)
		zw.Write(data[off:end])
		zw.Close()
		sizes = append(sizes, uint32(zb.Len()))
		comp.Write(zb.Bytes())
	}
	last := uint32(len(data) % blockSize)
	words := append([]uint32{uint32(len(sizes)), uint32(blockSize), last}, sizes...)
	return packed(order, words), comp.Bytes()
}

func tetraDoc(format string, compress bool, order binary.ByteOrder) string {
	orderName := "LittleEndian"
	if order == binary.BigEndian {
		orderName = "BigEndian"
	}
	comp := ""
	if compress {
		comp = ` compressor="vtkZLibDataCompressor"`
	}
	arrays := [][]byte{
		packed(order, tetraPoints),
		packed(order, tetraConn),
		packed(order, tetraOffsets),
	}
	var appended bytes.Buffer
	attrs := make([]string, len(arrays))
	inline := make([]string, len(arrays))
	for i, a := range arrays {
		hdr, body := blockBytes(order, a, compress, 16)
		switch format {
		case "binary":
			attrs[i] = `format="binary"`
			inline[i] = base64.StdEncoding.EncodeToString(hdr) + base64.StdEncoding.EncodeToString(body)
		case "appended":
			attrs[i] = fmt.Sprintf(`format="appended" offset="%d"`, appended.Len())
			appended.Write(hdr)
			appended.Write(body)
		}
	}
	var b strings.Builder
	fmt.Fprintf(&b, `<?xml version="1.0"?>
<VTKFile type="PolyData" version="0.1" byte_order="%s"%s>
<PolyData>
<Piece NumberOfPoints="4" NumberOfPolys="4">
<Points><DataArray type="Float32" NumberOfComponents="3" %s>%s</DataArray></Points>
<Polys>
<DataArray type="Int32" Name="connectivity" %s>%s</DataArray>
<DataArray type="Int32" Name="offsets" %s>%s</DataArray>
</Polys>
</Piece>
</PolyData>
`, orderName, comp, attrs[0], inline[0], attrs[1], inline[1], attrs[2], inline[2])
	if format == "appended" {
		b.WriteString("<AppendedData encoding=\"raw\">\n   _")
		b.Write(appended.Bytes())
		b.WriteString("\n</AppendedData>\n")
	}
	b.WriteString("</VTKFile>\n")
	return b.String()
}

func TestBinaryEncodings(t *testing.T) {
	for _, format := range []string{"binary", "appended"} {
		for _, compress := range []bool{false, true} {
			for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
				name := fmt.Sprintf("%s/compress=%v/%v", format, compress, order)
				t.Run(name, func(t *testing.T) {
					pd, err := Parse([]byte(tetraDoc(format, compress, order)))
					require.NoError(t, err)
					assert.Equal(t, tetraPoints, pd.Points)
					assert.Equal(t, 4, pd.NumTriangles())
					want := make([]uint32, len(tetraConn))
					for i, c := range tetraConn {
						want[i] = uint32(c)
					}
					assert.Equal(t, want, pd.Triangles)
				})
			}
		}
	}
}

func TestComputeNormals(t *testing.T) {
	nrm := ComputeNormals(tetraPoints, []uint32{0, 2, 1, 0, 1, 3, 0, 3, 2, 1, 2, 3})
	require.Len(t, nrm, 12)
	// the apex opposite the origin points away from it
	n3 := math32.Vec3(nrm[9], nrm[10], nrm[11])
	assert.InDelta(t, 1, n3.Length(), 1e-5)
	assert.Greater(t, n3.Z, float32(0))
	n0 := math32.Vec3(nrm[0], nrm[1], nrm[2])
	assert.InDelta(t, -1/math.Sqrt(3), n0.X, 1e-5)
}

func TestReadFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "quad.vtp")
	require.NoError(t, os.WriteFile(fn, []byte(asciiQuad), 0666))
	pd, err := ReadFile(fn)
	require.NoError(t, err)
	assert.Equal(t, 2, pd.NumTriangles())

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.vtp"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
