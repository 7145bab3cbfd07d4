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
	"github.com/cockroachdb/geowkb/pkg/geo/geopb"
	"github.com/cockroachdb/redact"
)

// Geometry is a decoded geometry body. The set of implementations is closed:
// it is exactly the types declared in this file.
type Geometry interface {
	Kind() Kind
	geometry()
}

// Point is the list of coordinate components of a point, in X, Y[, Z][, M]
// order.
//
// Components that decoded as NaN are dropped. An EMPTY point, which WKB
// writes with every component NaN, is therefore an empty Point; a point with
// only some NaN components is shorter than its dimension implies.
type Point []float64

// LineString is an ordered list of points.
type LineString []Point

// CircularString is an ordered list of points describing circular arcs.
type CircularString []Point

// LinearRing is one ring of a polygon.
type LinearRing []Point

// Polygon is a list of rings; the first is the shell.
type Polygon []LinearRing

// MultiPoint is a list of points.
type MultiPoint []Point

// MultiLineString is a list of line strings.
type MultiLineString []LineString

// MultiPolygon is a list of polygons.
type MultiPolygon []Polygon

// CompoundCurve is a list of LineString and CircularString segments.
type CompoundCurve []Geometry

// CurvePolygon is a list of rings, each a LineString, CircularString or
// CompoundCurve.
type CurvePolygon []Geometry

// MultiCurve is a list of LineString and CircularString elements.
type MultiCurve []Geometry

// MultiSurface is a list of Polygon and CurvePolygon elements.
type MultiSurface []Geometry

// PolyhedralSurface is a list of polygon faces.
type PolyhedralSurface []Polygon

// GeometryCollection is a list of geometries of any dispatchable kind.
type GeometryCollection []Geometry

func (Point) Kind() Kind              { return KindPoint }
func (LineString) Kind() Kind         { return KindLineString }
func (CircularString) Kind() Kind     { return KindCircularString }
func (Polygon) Kind() Kind            { return KindPolygon }
func (MultiPoint) Kind() Kind         { return KindMultiPoint }
func (MultiLineString) Kind() Kind    { return KindMultiLineString }
func (MultiPolygon) Kind() Kind       { return KindMultiPolygon }
func (CompoundCurve) Kind() Kind      { return KindCompoundCurve }
func (CurvePolygon) Kind() Kind       { return KindCurvePolygon }
func (MultiCurve) Kind() Kind         { return KindMultiCurve }
func (MultiSurface) Kind() Kind       { return KindMultiSurface }
func (PolyhedralSurface) Kind() Kind  { return KindPolyhedralSurface }
func (GeometryCollection) Kind() Kind { return KindGeometryCollection }

func (Point) geometry()              {}
func (LineString) geometry()         {}
func (CircularString) geometry()     {}
func (Polygon) geometry()            {}
func (MultiPoint) geometry()         {}
func (MultiLineString) geometry()    {}
func (MultiPolygon) geometry()       {}
func (CompoundCurve) geometry()      {}
func (CurvePolygon) geometry()       {}
func (MultiCurve) geometry()         {}
func (MultiSurface) geometry()       {}
func (PolyhedralSurface) geometry()  {}
func (GeometryCollection) geometry() {}

// ParsedGeometry is the result of decoding one WKB value. It does not
// reference the decoded buffer.
type ParsedGeometry struct {
	Kind Kind
	// SRID is only meaningful when HasSRID is set. It is taken from the
	// outermost header only.
	SRID      geopb.SRID
	HasSRID   bool
	Dimension Dimension
	Geometry  Geometry
}

// SafeFormat implements redact.SafeFormatter. Coordinates are user data and
// are not printed.
func (pg ParsedGeometry) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("%s", pg.Kind)
	if pg.Dimension != DimensionNone {
		w.Printf(" %s", pg.Dimension)
	}
	if pg.HasSRID {
		w.Printf(" SRID=%d", redact.Safe(pg.SRID))
	}
}

func (pg ParsedGeometry) String() string { return redact.StringWithoutMarkers(pg) }

// Element is a {kind, value} pair as rendered for containers whose elements
// may be of more than one kind.
type Element struct {
	Kind  string      `json:"kind" yaml:"kind"`
	Value interface{} `json:"value" yaml:"value"`
}

// Record is the plain, language neutral rendering of a ParsedGeometry. A
// missing SRID and DimensionNone are rendered as nil.
type Record struct {
	Kind      string      `json:"kind" yaml:"kind"`
	Value     interface{} `json:"value" yaml:"value"`
	SRID      *uint32     `json:"srid" yaml:"srid"`
	Dimension *string     `json:"dimension" yaml:"dimension"`
}

// Record renders pg as a Record.
func (pg ParsedGeometry) Record() Record {
	r := Record{
		Kind:  pg.Kind.String(),
		Value: recordValue(pg.Geometry),
	}
	if pg.HasSRID {
		srid := uint32(pg.SRID)
		r.SRID = &srid
	}
	if pg.Dimension != DimensionNone {
		dim := pg.Dimension.String()
		r.Dimension = &dim
	}
	return r
}

func recordValue(g Geometry) interface{} {
	switch g := g.(type) {
	case Point:
		return []float64(g)
	case LineString:
		return pointsValue(g)
	case CircularString:
		return pointsValue(g)
	case Polygon:
		return polygonValue(g)
	case MultiPoint:
		return pointsValue(g)
	case MultiLineString:
		out := make([]interface{}, len(g))
		for i := range g {
			out[i] = pointsValue(g[i])
		}
		return out
	case MultiPolygon:
		out := make([]interface{}, len(g))
		for i := range g {
			out[i] = polygonValue(g[i])
		}
		return out
	case PolyhedralSurface:
		out := make([]Element, len(g))
		for i := range g {
			out[i] = Element{Kind: KindPolygon.String(), Value: polygonValue(g[i])}
		}
		return out
	case CompoundCurve:
		return elementsValue(g)
	case CurvePolygon:
		return elementsValue(g)
	case MultiCurve:
		return elementsValue(g)
	case MultiSurface:
		return elementsValue(g)
	case GeometryCollection:
		return elementsValue(g)
	}
	return nil
}

func pointsValue(pts []Point) [][]float64 {
	out := make([][]float64, len(pts))
	for i, p := range pts {
		out[i] = p
	}
	return out
}

func polygonValue(p Polygon) [][][]float64 {
	out := make([][][]float64, len(p))
	for i, ring := range p {
		out[i] = pointsValue(ring)
	}
	return out
}

func elementsValue(gs []Geometry) []Element {
	out := make([]Element, len(gs))
	for i, g := range gs {
		out[i] = Element{Kind: g.Kind().String(), Value: recordValue(g)}
	}
	return out
}
