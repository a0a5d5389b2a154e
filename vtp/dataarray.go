// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vtp

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zlib"
)

// scalarSizes are the byte sizes of the VTK scalar types.
var scalarSizes = map[string]int{
	"Int8":    1,
	"UInt8":   1,
	"Int16":   2,
	"UInt16":  2,
	"Int32":   4,
	"UInt32":  4,
	"Int64":   8,
	"UInt64":  8,
	"Float32": 4,
	"Float64": 8,
}

// decoder holds the file-level settings needed to decode data arrays.
type decoder struct {
	order      binary.ByteOrder
	headerSize int
	compressed bool
	appended   *appendedData
}

func newDecoder(f *xmlFile, ad *appendedData) (*decoder, error) {
	d := &decoder{order: binary.LittleEndian, headerSize: 4, appended: ad}
	if f.ByteOrder == "BigEndian" {
		d.order = binary.BigEndian
	}
	switch f.HeaderType {
	case "", "UInt32":
	case "UInt64":
		d.headerSize = 8
	default:
		return nil, fmt.Errorf("%w: header_type %q", ErrFormat, f.HeaderType)
	}
	switch f.Compressor {
	case "":
	case "vtkZLibDataCompressor":
		d.compressed = true
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCompressor, f.Compressor)
	}
	return d, nil
}

// values decodes all values of the given data array as float64.
func (d *decoder) values(da *xmlDataArray) ([]float64, error) {
	size, ok := scalarSizes[da.Type]
	if !ok {
		return nil, fmt.Errorf("%w: data array %q has unsupported type %q", ErrFormat, da.Name, da.Type)
	}
	switch da.Format {
	case "ascii":
		return parseASCII(da.Data)
	case "binary", "appended":
		b, err := d.payload(da)
		if err != nil {
			return nil, fmt.Errorf("data array %q: %w", da.Name, err)
		}
		return d.convert(b, da.Type, size)
	default:
		return nil, fmt.Errorf("%w: data array %q has unknown format %q", ErrFormat, da.Name, da.Format)
	}
}

func parseASCII(s string) ([]float64, error) {
	fs := strings.Fields(s)
	vals := make([]float64, len(fs))
	for i, f := range fs {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFormat, err)
		}
		vals[i] = v
	}
	return vals, nil
}

// payload returns the decoded, decompressed bytes of a binary or appended array.
func (d *decoder) payload(da *xmlDataArray) ([]byte, error) {
	if da.Format == "binary" {
		return d.base64Payload(strings.Join(strings.Fields(da.Data), ""), true)
	}
	if d.appended == nil {
		return nil, fmt.Errorf("%w: appended array without AppendedData", ErrFormat)
	}
	if da.Offset < 0 || da.Offset > int64(len(d.appended.data)) {
		return nil, fmt.Errorf("%w: appended offset %d out of range", ErrFormat, da.Offset)
	}
	data := d.appended.data[da.Offset:]
	if d.appended.encoding == "base64" {
		return d.base64Payload(string(data), false)
	}
	return d.rawPayload(data)
}

// encodedLen is the length of the padded base64 encoding of n bytes.
func encodedLen(n int) int {
	return base64.StdEncoding.EncodedLen(n)
}

func decodeBase64(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	return b, nil
}

// header reads the i'th header word.
func (d *decoder) header(b []byte, i int) uint64 {
	off := i * d.headerSize
	if d.headerSize == 8 {
		return d.order.Uint64(b[off:])
	}
	return uint64(d.order.Uint32(b[off:]))
}

// size reads the i'th header word as a count that can not exceed limit,
// which is derived from the bytes actually present.
func (d *decoder) size(b []byte, i, limit int) (int, error) {
	v := d.header(b, i)
	if limit < 0 || v > uint64(limit) {
		return 0, fmt.Errorf("%w: header value %d exceeds the %d bytes available", ErrFormat, v, max(limit, 0))
	}
	return int(v), nil
}

// blockSizes reads the nb compressed block sizes following the three
// leading words of a compression header; their total can not exceed limit.
func (d *decoder) blockSizes(hdr []byte, nb, limit int) ([]int, int, error) {
	cs := make([]int, nb)
	total := 0
	for i := range cs {
		c, err := d.size(hdr, 3+i, limit-total)
		if err != nil {
			return nil, 0, fmt.Errorf("block %d: %w", i, err)
		}
		cs[i] = c
		total += c
	}
	return cs, total, nil
}

// base64Payload decodes a base64 block in which the header and the data
// are encoded as separate chunks. If whole is true, s holds only this array,
// and a single chunk covering header and data is also accepted.
func (d *decoder) base64Payload(s string, whole bool) ([]byte, error) {
	hs := d.headerSize
	if !d.compressed {
		hl := encodedLen(hs)
		if len(s) < hl {
			return nil, fmt.Errorf("%w: truncated header", ErrFormat)
		}
		hdr, err := decodeBase64(s[:hl])
		if err != nil {
			return nil, err
		}
		n, err := d.size(hdr, 0, len(s))
		if err != nil {
			return nil, err
		}
		dl := encodedLen(n)
		if len(s)-hl >= dl && (!whole || len(s)-hl == dl) {
			return decodeBase64(s[hl : hl+dl])
		}
		if !whole {
			return nil, fmt.Errorf("%w: truncated data", ErrFormat)
		}
		all, err := decodeBase64(s)
		if err != nil {
			return nil, err
		}
		if len(all) < hs+n {
			return nil, fmt.Errorf("%w: truncated data", ErrFormat)
		}
		return all[hs : hs+n], nil
	}

	// the first three words are a multiple of 3 bytes, so they decode on their own
	if len(s) < 4*hs {
		return nil, fmt.Errorf("%w: truncated compression header", ErrFormat)
	}
	pre, err := decodeBase64(s[:4*hs])
	if err != nil {
		return nil, err
	}
	nb, err := d.size(pre, 0, len(s)/hs)
	if err != nil {
		return nil, err
	}
	hl := encodedLen((3 + nb) * hs)
	if len(s) < hl {
		return nil, fmt.Errorf("%w: truncated compression header", ErrFormat)
	}
	hdr, err := decodeBase64(s[:hl])
	if err != nil {
		return nil, err
	}
	cs, csize, err := d.blockSizes(hdr, nb, len(s)-hl)
	if err != nil {
		return nil, err
	}
	dl := encodedLen(csize)
	if len(s)-hl < dl {
		return nil, fmt.Errorf("%w: truncated compressed data", ErrFormat)
	}
	comp, err := decodeBase64(s[hl : hl+dl])
	if err != nil {
		return nil, err
	}
	return d.inflate(hdr, cs, comp)
}

// rawPayload decodes raw appended bytes starting at an array offset.
func (d *decoder) rawPayload(b []byte) ([]byte, error) {
	hs := d.headerSize
	if len(b) < hs {
		return nil, fmt.Errorf("%w: truncated header", ErrFormat)
	}
	if !d.compressed {
		n, err := d.size(b, 0, len(b)-hs)
		if err != nil {
			return nil, fmt.Errorf("truncated data: %w", err)
		}
		return b[hs : hs+n], nil
	}
	if len(b) < 3*hs {
		return nil, fmt.Errorf("%w: truncated compression header", ErrFormat)
	}
	nb, err := d.size(b, 0, (len(b)-3*hs)/hs)
	if err != nil {
		return nil, fmt.Errorf("truncated compression header: %w", err)
	}
	hl := (3 + nb) * hs
	cs, csize, err := d.blockSizes(b, nb, len(b)-hl)
	if err != nil {
		return nil, fmt.Errorf("truncated compressed data: %w", err)
	}
	return d.inflate(b[:hl], cs, b[hl:hl+csize])
}

// maxInflateRatio bounds the size of an inflated zlib block
// relative to its compressed size.
const maxInflateRatio = 1032

// inflate decompresses the zlib blocks described by the compression header
// [nblocks, blocksize, lastblocksize, csize_0 ... csize_n-1], given the
// compressed block sizes already read from it.
func (d *decoder) inflate(hdr []byte, cs []int, comp []byte) ([]byte, error) {
	nb := len(cs)
	bsize := d.header(hdr, 1)
	last := d.header(hdr, 2)
	if last > bsize {
		return nil, fmt.Errorf("%w: last block size %d exceeds block size %d", ErrFormat, last, bsize)
	}
	var out []byte
	off := 0
	for i, c := range cs {
		usize := bsize
		if i == nb-1 && last != 0 {
			usize = last
		}
		if usize > uint64(maxInflateRatio*c+64) {
			return nil, fmt.Errorf("%w: block %d of %d bytes can not inflate to %d bytes", ErrFormat, i, c, usize)
		}
		zr, err := zlib.NewReader(bytes.NewReader(comp[off : off+c]))
		if err != nil {
			return nil, fmt.Errorf("%w: block %d: %w", ErrFormat, i, err)
		}
		blk, err := io.ReadAll(io.LimitReader(zr, int64(usize)+1))
		zr.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: block %d: %w", ErrFormat, i, err)
		}
		if uint64(len(blk)) != usize {
			return nil, fmt.Errorf("%w: block %d inflated to %d bytes, want %d", ErrFormat, i, len(blk), usize)
		}
		out = append(out, blk...)
		off += c
	}
	return out, nil
}

// convert interprets b as packed scalars of the given type.
func (d *decoder) convert(b []byte, typ string, size int) ([]float64, error) {
	if len(b)%size != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a whole number of %s values", ErrFormat, len(b), typ)
	}
	n := len(b) / size
	vals := make([]float64, n)
	for i := range vals {
		p := b[i*size:]
		switch typ {
		case "Int8":
			vals[i] = float64(int8(p[0]))
		case "UInt8":
			vals[i] = float64(p[0])
		case "Int16":
			vals[i] = float64(int16(d.order.Uint16(p)))
		case "UInt16":
			vals[i] = float64(d.order.Uint16(p))
		case "Int32":
			vals[i] = float64(int32(d.order.Uint32(p)))
		case "UInt32":
			vals[i] = float64(d.order.Uint32(p))
		case "Int64":
			vals[i] = float64(int64(d.order.Uint64(p)))
		case "UInt64":
			vals[i] = float64(d.order.Uint64(p))
		case "Float32":
			vals[i] = float64(math.Float32frombits(d.order.Uint32(p)))
		case "Float64":
			vals[i] = math.Float64frombits(d.order.Uint64(p))
		}
	}
	return vals, nil
}
