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
	"context"
	"encoding/binary"

	"github.com/cockroachdb/geowkb/pkg/geo/geopb"
	"github.com/cockroachdb/geowkb/pkg/util/log"
)

// DefaultMaxDepth is the default bound on geometry nesting. The deepest
// nesting reachable without a GeometryCollection is 3 (MULTISURFACE >
// CURVEPOLYGON > COMPOUNDCURVE > LINESTRING), so only nested collections get
// anywhere near it.
const DefaultMaxDepth = 64

// Kinds allowed as elements of each container.
var (
	pointKinds   = []Kind{KindPoint}
	lineKinds    = []Kind{KindLineString}
	polygonKinds = []Kind{KindPolygon}
	curveKinds   = []Kind{KindLineString, KindCircularString}
	ringKinds    = []Kind{KindLineString, KindCircularString, KindCompoundCurve}
	surfaceKinds = []Kind{KindPolygon, KindCurvePolygon}
)

// Header describes one geometry header as it was read.
type Header struct {
	// Offset is the position of the byte order marker.
	Offset int
	// Depth is 0 for the outermost geometry.
	Depth     int
	ByteOrder binary.ByteOrder
	Code      TypeCode
	Kind      Kind
	Dimension Dimension
	SRID      geopb.SRID
	HasSRID   bool
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithMaxDepth bounds how deeply geometries may nest. Decoding input that
// nests deeper fails with ErrResourceLimit.
func WithMaxDepth(n int) Option {
	return func(d *Decoder) { d.maxDepth = n }
}

// WithHeaderTrace registers fn to be called with every header the decoder
// reads, outermost first, in input order.
func WithHeaderTrace(fn func(Header)) Option {
	return func(d *Decoder) { d.trace = fn }
}

// Decoder decodes WKB, ISO WKB and EWKB values. A Decoder may be reused for
// any number of sequential Decode calls but must not be used concurrently.
type Decoder struct {
	cur      Cursor
	maxDepth int
	trace    func(Header)
}

// NewDecoder returns a Decoder configured with opts.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode decodes a single WKB value using a fresh Decoder.
func Decode(ctx context.Context, b []byte) (ParsedGeometry, error) {
	return NewDecoder().Decode(ctx, b)
}

// frame is the state a geometry body is decoded under. Nested elements get a
// copy; the parent's frame is never modified by its children.
type frame struct {
	order binary.ByteOrder
	// bits are the dimension bits of the outermost header, which every
	// nested header must reproduce exactly.
	bits  TypeCode
	arity int
	depth int
}

// Decode decodes b. On failure the error is a *PositionError wrapping one of
// the Err* markers, and no geometry is returned.
func (d *Decoder) Decode(ctx context.Context, b []byte) (ParsedGeometry, error) {
	d.cur.Reset(b)
	pg, err := d.decode(ctx)
	if err != nil {
		return ParsedGeometry{}, withPosition(err, d.cur.LastReadStart())
	}
	if rem := d.cur.Remaining(); rem > 0 {
		log.VEventf(ctx, 1, "%d trailing bytes after %s", rem, pg.Kind)
	}
	return pg, nil
}

func (d *Decoder) decode(ctx context.Context) (ParsedGeometry, error) {
	h, err := d.readHeader(ctx, 0 /* depth */)
	if err != nil {
		return ParsedGeometry{}, err
	}
	enc := DimensionEncodingOf(h.Code)
	dim, ok := enc.Dimension()
	if !ok {
		return ParsedGeometry{}, newUnsupportedDimensionError(h.Kind, enc.Bits)
	}
	f := frame{order: h.ByteOrder, bits: enc.Bits, arity: dim.Arity()}
	g, err := d.decodeBody(ctx, h.Kind, h.Code, f)
	if err != nil {
		return ParsedGeometry{}, err
	}
	return ParsedGeometry{
		Kind:      h.Kind,
		SRID:      h.SRID,
		HasSRID:   h.HasSRID,
		Dimension: dim,
		Geometry:  g,
	}, nil
}

// readHeader reads a byte order marker, a type code and, if the code says
// so, an SRID. SRIDs on nested headers are consumed and dropped.
func (d *Decoder) readHeader(ctx context.Context, depth int) (Header, error) {
	h := Header{Offset: d.cur.Pos(), Depth: depth}
	var err error
	if h.ByteOrder, err = d.cur.ReadByteOrder(); err != nil {
		return Header{}, err
	}
	code, err := d.cur.ReadUint32()
	if err != nil {
		return Header{}, err
	}
	h.Code = TypeCode(code)
	if h.Code.HasSRID() {
		srid, err := d.cur.ReadUint32()
		if err != nil {
			return Header{}, err
		}
		if depth == 0 {
			h.SRID, h.HasSRID = geopb.SRID(srid), true
		} else {
			log.VEventf(ctx, 2, "ignoring SRID %d on nested header at byte %d", srid, h.Offset)
		}
	}
	h.Kind = BaseKind(h.Code)
	h.Dimension, _ = DimensionEncodingOf(h.Code).Dimension()
	if d.trace != nil {
		d.trace(h)
	}
	return h, nil
}

// decodeBody decodes the body of a geometry of kind k whose header has
// already been read.
func (d *Decoder) decodeBody(
	ctx context.Context, k Kind, code TypeCode, f frame,
) (Geometry, error) {
	switch k {
	case KindPoint:
		return d.readPoint(f)
	case KindLineString:
		pts, err := d.readPoints(f)
		if err != nil {
			return nil, err
		}
		return LineString(pts), nil
	case KindCircularString:
		pts, err := d.readPoints(f)
		if err != nil {
			return nil, err
		}
		return CircularString(pts), nil
	case KindPolygon:
		return d.readPolygon(f)
	case KindMultiPoint:
		return d.readMultiPoint(ctx, f)
	case KindMultiLineString:
		return d.readMultiLineString(ctx, f)
	case KindMultiPolygon:
		return d.readMultiPolygon(ctx, f)
	case KindCompoundCurve:
		gs, err := d.readCurves(ctx, KindCompoundCurve, f)
		if err != nil {
			return nil, err
		}
		return CompoundCurve(gs), nil
	case KindMultiCurve:
		gs, err := d.readCurves(ctx, KindMultiCurve, f)
		if err != nil {
			return nil, err
		}
		return MultiCurve(gs), nil
	case KindCurvePolygon:
		return d.readCurvePolygon(ctx, f)
	case KindMultiSurface:
		return d.readMultiSurface(ctx, f)
	case KindPolyhedralSurface:
		return d.readPolyhedralSurface(ctx, f)
	case KindGeometryCollection:
		return d.readGeometryCollection(ctx, f)
	case KindGeometry, KindCurve, KindSurface, KindTin, KindTriangle:
		return nil, newUnsupportedTypeError(code)
	default:
		return nil, newUnsupportedTypeError(code)
	}
}

func (d *Decoder) readPoint(f frame) (Point, error) {
	coords, err := d.cur.ReadFloats(f.arity)
	if err != nil {
		return nil, err
	}
	return Point(coords), nil
}

func (d *Decoder) readPoints(f frame) ([]Point, error) {
	n, err := d.cur.ReadUint32()
	if err != nil {
		return nil, err
	}
	pts := make([]Point, 0, d.capHint(n, sizeFloat64*f.arity))
	for i := uint32(0); i < n; i++ {
		p, err := d.readPoint(f)
		if err != nil {
			return nil, err
		}
		pts = append(pts, p)
	}
	return pts, nil
}

func (d *Decoder) readPolygon(f frame) (Polygon, error) {
	n, err := d.cur.ReadUint32()
	if err != nil {
		return nil, err
	}
	rings := make(Polygon, 0, d.capHint(n, sizeUint32))
	for i := uint32(0); i < n; i++ {
		pts, err := d.readPoints(f)
		if err != nil {
			return nil, err
		}
		rings = append(rings, LinearRing(pts))
	}
	return rings, nil
}

// capHint bounds an allocation for n elements of at least size bytes each by
// what the remaining input could possibly hold.
func (d *Decoder) capHint(n uint32, size int) int {
	if size <= 0 {
		size = 1
	}
	if max := d.cur.Remaining() / size; int64(n) > int64(max) {
		return max
	}
	return int(n)
}

// readElements reads an element count and then, for every element, its
// header, checking the header against the kinds allowed by the container
// before handing the element's kind and frame to fn. With allowed nil any
// kind is accepted as long as its dimension bits match.
func (d *Decoder) readElements(
	ctx context.Context,
	container Kind,
	allowed []Kind,
	f frame,
	fn func(k Kind, code TypeCode, child frame) error,
) error {
	n, err := d.cur.ReadUint32()
	if err != nil {
		return err
	}
	for i := uint32(0); i < n; i++ {
		h, err := d.readHeader(ctx, f.depth+1)
		if err != nil {
			return err
		}
		if h.Depth > d.maxDepth {
			return newResourceLimitError(d.maxDepth)
		}
		code := h.Code.WithoutSRID()
		k, ok := matchElement(code, allowed, f.bits)
		if !ok {
			expected := allowed
			if expected == nil {
				expected = []Kind{BaseKind(code)}
			}
			return newTypeMismatchError(container, code, expected, f.bits)
		}
		child := f
		child.order = h.ByteOrder
		child.depth = h.Depth
		if err := fn(k, code, child); err != nil {
			return err
		}
		d.cur.SetByteOrder(f.order)
	}
	return nil
}

// matchElement returns the kind among allowed whose dimensioned code under
// bits is exactly code.
func matchElement(code TypeCode, allowed []Kind, bits TypeCode) (Kind, bool) {
	if allowed == nil {
		k := BaseKind(code)
		return k, code == Dimensioned(k, bits)
	}
	for _, k := range allowed {
		if code == Dimensioned(k, bits) {
			return k, true
		}
	}
	return 0, false
}

func (d *Decoder) readMultiPoint(ctx context.Context, f frame) (MultiPoint, error) {
	var out MultiPoint
	err := d.readElements(ctx, KindMultiPoint, pointKinds, f,
		func(_ Kind, _ TypeCode, child frame) error {
			p, err := d.readPoint(child)
			if err != nil {
				return err
			}
			out = append(out, p)
			return nil
		})
	if err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func (d *Decoder) readMultiLineString(ctx context.Context, f frame) (MultiLineString, error) {
	var out MultiLineString
	err := d.readElements(ctx, KindMultiLineString, lineKinds, f,
		func(_ Kind, _ TypeCode, child frame) error {
			pts, err := d.readPoints(child)
			if err != nil {
				return err
			}
			out = append(out, LineString(pts))
			return nil
		})
	if err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func (d *Decoder) readMultiPolygon(ctx context.Context, f frame) (MultiPolygon, error) {
	var out MultiPolygon
	err := d.readElements(ctx, KindMultiPolygon, polygonKinds, f,
		func(_ Kind, _ TypeCode, child frame) error {
			p, err := d.readPolygon(child)
			if err != nil {
				return err
			}
			out = append(out, p)
			return nil
		})
	if err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func (d *Decoder) readPolyhedralSurface(
	ctx context.Context, f frame,
) (PolyhedralSurface, error) {
	var out PolyhedralSurface
	err := d.readElements(ctx, KindPolyhedralSurface, polygonKinds, f,
		func(_ Kind, _ TypeCode, child frame) error {
			p, err := d.readPolygon(child)
			if err != nil {
				return err
			}
			out = append(out, p)
			return nil
		})
	if err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

// readCurves reads the elements of a COMPOUNDCURVE or MULTICURVE.
func (d *Decoder) readCurves(ctx context.Context, container Kind, f frame) ([]Geometry, error) {
	var out []Geometry
	err := d.readElements(ctx, container, curveKinds, f,
		func(k Kind, _ TypeCode, child frame) error {
			pts, err := d.readPoints(child)
			if err != nil {
				return err
			}
			if k == KindCircularString {
				out = append(out, CircularString(pts))
			} else {
				out = append(out, LineString(pts))
			}
			return nil
		})
	if err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func (d *Decoder) readCurvePolygon(ctx context.Context, f frame) (CurvePolygon, error) {
	var out CurvePolygon
	err := d.readElements(ctx, KindCurvePolygon, ringKinds, f,
		func(k Kind, _ TypeCode, child frame) error {
			var ring Geometry
			switch k {
			case KindCompoundCurve:
				gs, err := d.readCurves(ctx, KindCompoundCurve, child)
				if err != nil {
					return err
				}
				ring = CompoundCurve(gs)
			case KindCircularString:
				pts, err := d.readPoints(child)
				if err != nil {
					return err
				}
				ring = CircularString(pts)
			default:
				pts, err := d.readPoints(child)
				if err != nil {
					return err
				}
				ring = LineString(pts)
			}
			out = append(out, ring)
			return nil
		})
	if err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func (d *Decoder) readMultiSurface(ctx context.Context, f frame) (MultiSurface, error) {
	var out MultiSurface
	err := d.readElements(ctx, KindMultiSurface, surfaceKinds, f,
		func(k Kind, _ TypeCode, child frame) error {
			var surface Geometry
			var err error
			if k == KindCurvePolygon {
				surface, err = d.readCurvePolygon(ctx, child)
			} else {
				surface, err = d.readPolygon(child)
			}
			if err != nil {
				return err
			}
			out = append(out, surface)
			return nil
		})
	if err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func (d *Decoder) readGeometryCollection(
	ctx context.Context, f frame,
) (GeometryCollection, error) {
	var out GeometryCollection
	err := d.readElements(ctx, KindGeometryCollection, nil /* allowed */, f,
		func(k Kind, code TypeCode, child frame) error {
			g, err := d.decodeBody(ctx, k, code, child)
			if err != nil {
				return err
			}
			out = append(out, g)
			return nil
		})
	if err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

// nonNil makes an empty container decode to an empty, non-nil slice, like
// every other empty sequence the decoder produces.
func nonNil[S ~[]E, E any](s S) S {
	if s == nil {
		return S{}
	}
	return s
}
