// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package geowkb

import (
	"encoding/binary"
	"math"

	"github.com/cockroachdb/errors"
)

// Byte order markers as they appear on the wire.
const (
	wireXDR = 0 // big endian
	wireNDR = 1 // little endian
)

const (
	sizeByte    = 1
	sizeUint32  = 4
	sizeFloat64 = 8
)

// Cursor reads fixed-width WKB primitives from a byte slice. Multi-byte reads
// use the byte order read by the most recent ReadByteOrder (or installed with
// SetByteOrder). A Cursor is not safe for concurrent use.
type Cursor struct {
	buf   []byte
	pos   int
	last  int
	order binary.ByteOrder
}

// NewCursor returns a cursor positioned at the start of b.
func NewCursor(b []byte) *Cursor {
	c := &Cursor{}
	c.Reset(b)
	return c
}

// Reset loads a new buffer and rewinds the cursor. The byte order is cleared.
func (c *Cursor) Reset(b []byte) {
	*c = Cursor{buf: b}
}

// Pos returns the offset of the next unread byte.
func (c *Cursor) Pos() int { return c.pos }

// LastReadStart returns the offset at which the most recent read started.
// After a read fails for lack of input this is where the failed read would
// have started.
func (c *Cursor) LastReadStart() int { return c.pos - c.last }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.buf) - c.pos }

// ByteOrder returns the byte order in force, or nil if none was read yet.
func (c *Cursor) ByteOrder() binary.ByteOrder { return c.order }

// SetByteOrder installs the byte order used by subsequent multi-byte reads.
func (c *Cursor) SetByteOrder(order binary.ByteOrder) { c.order = order }

func (c *Cursor) next(n int) ([]byte, error) {
	if c.Remaining() < n {
		c.last = 0
		return nil, newInsufficientInputError(n, c.Remaining())
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	c.last = n
	return b, nil
}

// ReadByteOrder reads a one byte order marker and makes it the byte order in
// force. Only 0 (XDR) and 1 (NDR) are accepted.
func (c *Cursor) ReadByteOrder() (binary.ByteOrder, error) {
	b, err := c.next(sizeByte)
	if err != nil {
		return nil, err
	}
	switch b[0] {
	case wireXDR:
		c.order = binary.BigEndian
	case wireNDR:
		c.order = binary.LittleEndian
	default:
		return nil, newInvalidByteOrderError(b[0])
	}
	return c.order, nil
}

func (c *Cursor) ordered(n int) ([]byte, error) {
	if c.order == nil {
		return nil, errors.Mark(
			errors.AssertionFailedf("read of %d bytes before any byte order was set", n),
			ErrMalformedInput)
	}
	return c.next(n)
}

// ReadUint32 reads a 4-byte unsigned integer.
func (c *Cursor) ReadUint32() (uint32, error) {
	b, err := c.ordered(sizeUint32)
	if err != nil {
		return 0, err
	}
	return c.order.Uint32(b), nil
}

// ReadFloat64 reads an 8-byte IEEE-754 double.
func (c *Cursor) ReadFloat64() (float64, error) {
	b, err := c.ordered(sizeFloat64)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(c.order.Uint64(b)), nil
}

// ReadFloats reads n doubles and returns them in order with every NaN
// removed. This is how an EMPTY point, written as all NaN components,
// collapses to an empty slice; note that a point with only some NaN
// components also loses exactly those components, changing its arity.
func (c *Cursor) ReadFloats(n int) ([]float64, error) {
	out := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		f, err := c.ReadFloat64()
		if err != nil {
			return nil, err
		}
		if math.IsNaN(f) {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}
