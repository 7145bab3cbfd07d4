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
	"fmt"

	"github.com/cockroachdb/redact"
)

// TypeCode is the raw 32-bit geometry type read from a WKB header. It packs
// the base kind, the dimension and (for EWKB) the presence of an SRID, using
// either the PostGIS flag scheme or the ISO decimal offset scheme.
type TypeCode uint32

// PostGIS EWKB flag bits.
const (
	FlagZ    TypeCode = 0x80000000
	FlagM    TypeCode = 0x40000000
	FlagSRID TypeCode = 0x20000000

	flagZM    = FlagZ | FlagM
	flagsMask = FlagZ | FlagM | FlagSRID
)

// ISO SFA 1.2 decimal offsets.
const (
	OffsetZ  TypeCode = 1000
	OffsetM  TypeCode = 2000
	OffsetZM TypeCode = 3000
)

// plainLimit is the threshold below which a type code is a plain 2-D code.
const plainLimit TypeCode = 0x20

// HasSRID returns whether the EWKB SRID flag is set.
func (c TypeCode) HasSRID() bool {
	return c&FlagSRID != 0
}

// WithoutSRID returns the code with the EWKB SRID flag cleared.
func (c TypeCode) WithoutSRID() TypeCode {
	return c &^ FlagSRID
}

func (c TypeCode) is2D() bool {
	return c < plainLimit
}

// Kind is the base geometry kind of a type code, stripped of dimension and
// SRID information.
type Kind uint32

// The OGC base geometry kinds. Curve, Surface, Tin and Triangle are named so
// that they can be reported, but there is no decoding rule for them.
const (
	KindGeometry Kind = iota
	KindPoint
	KindLineString
	KindPolygon
	KindMultiPoint
	KindMultiLineString
	KindMultiPolygon
	KindGeometryCollection
	KindCircularString
	KindCompoundCurve
	KindCurvePolygon
	KindMultiCurve
	KindMultiSurface
	KindCurve
	KindSurface
	KindPolyhedralSurface
	KindTin
	KindTriangle
)

var kindNames = [...]string{
	KindGeometry:           "GEOMETRY",
	KindPoint:              "POINT",
	KindLineString:         "LINESTRING",
	KindPolygon:            "POLYGON",
	KindMultiPoint:         "MULTIPOINT",
	KindMultiLineString:    "MULTILINESTRING",
	KindMultiPolygon:       "MULTIPOLYGON",
	KindGeometryCollection: "GEOMETRYCOLLECTION",
	KindCircularString:     "CIRCULARSTRING",
	KindCompoundCurve:      "COMPOUNDCURVE",
	KindCurvePolygon:       "CURVEPOLYGON",
	KindMultiCurve:         "MULTICURVE",
	KindMultiSurface:       "MULTISURFACE",
	KindCurve:              "CURVE",
	KindSurface:            "SURFACE",
	KindPolyhedralSurface:  "POLYHEDRALSURFACE",
	KindTin:                "TIN",
	KindTriangle:           "TRIANGLE",
}

// String returns the upper-case OGC name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("UNKNOWN(%d)", uint32(k))
}

// SafeValue implements redact.SafeValue. Kind names never carry user data.
func (k Kind) SafeValue() {}

var _ redact.SafeValue = Kind(0)

// Dispatchable returns whether the decoder has a decoding rule for the kind.
func (k Kind) Dispatchable() bool {
	switch k {
	case KindPoint, KindLineString, KindPolygon,
		KindMultiPoint, KindMultiLineString, KindMultiPolygon,
		KindGeometryCollection,
		KindCircularString, KindCompoundCurve, KindCurvePolygon,
		KindMultiCurve, KindMultiSurface, KindPolyhedralSurface:
		return true
	}
	return false
}

// Dimension is the dimensionality tag of a geometry.
type Dimension uint8

const (
	// DimensionNone is a plain 2-D geometry.
	DimensionNone Dimension = iota
	DimensionZ
	DimensionM
	DimensionZM
)

// String returns "", "Z", "M" or "ZM".
func (d Dimension) String() string {
	switch d {
	case DimensionZ:
		return "Z"
	case DimensionM:
		return "M"
	case DimensionZM:
		return "ZM"
	}
	return ""
}

// SafeValue implements redact.SafeValue.
func (d Dimension) SafeValue() {}

// Arity is the number of components of a point of this dimension.
func (d Dimension) Arity() int {
	switch d {
	case DimensionZ, DimensionM:
		return 3
	case DimensionZM:
		return 4
	}
	return 2
}

// Scheme identifies how dimension bits are encoded in a type code.
type Scheme uint8

const (
	// SchemeNone is used for plain 2-D codes, which carry no dimension bits.
	SchemeNone Scheme = iota
	// SchemeFlag is the PostGIS EWKB high-bit scheme.
	SchemeFlag
	// SchemeOffset is the ISO SFA 1.2 decimal offset scheme.
	SchemeOffset
)

// DimensionEncoding is the dimension part of a type code together with the
// scheme that produced it. Bits is either zero, a combination of FlagZ and
// FlagM, or a multiple of 1000.
type DimensionEncoding struct {
	Scheme Scheme
	Bits   TypeCode
}

// DimensionEncodingOf extracts the dimension bits of a type code. It is the
// single place where the flag and offset schemes are told apart; BaseKind and
// Dimensioned are its inverses.
func DimensionEncodingOf(c TypeCode) DimensionEncoding {
	switch {
	case c.is2D():
		return DimensionEncoding{Scheme: SchemeNone}
	case c&flagsMask != 0:
		return DimensionEncoding{Scheme: SchemeFlag, Bits: c & flagZM}
	default:
		return DimensionEncoding{Scheme: SchemeOffset, Bits: c - c%1000}
	}
}

// Dimension resolves the encoding to a dimension tag. ok is false when the
// bits name no known dimension, e.g. an offset of 4000.
func (e DimensionEncoding) Dimension() (_ Dimension, ok bool) {
	switch e.Bits {
	case 0:
		return DimensionNone, true
	case OffsetZ, FlagZ:
		return DimensionZ, true
	case OffsetM, FlagM:
		return DimensionM, true
	case OffsetZM, flagZM:
		return DimensionZM, true
	}
	return 0, false
}

// BaseKind extracts the base kind of a type code.
func BaseKind(c TypeCode) Kind {
	switch {
	case c.is2D():
		return Kind(c)
	case c > 0xFFFF:
		return Kind(c & 0xFF)
	default:
		return Kind(c % 1000)
	}
}

// Dimensioned recomposes the code a geometry of kind k must carry under the
// dimension bits d of its parent.
func Dimensioned(k Kind, d TypeCode) TypeCode {
	switch {
	case d == 0:
		return TypeCode(k)
	case d == FlagZ || d == FlagM || d == flagZM:
		return TypeCode(k) | d
	default:
		return TypeCode(k) + d
	}
}
