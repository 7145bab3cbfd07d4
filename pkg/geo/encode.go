// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package geo

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/geowkb/pkg/geo/geopb"
	"github.com/cockroachdb/geowkb/pkg/geo/geowkb"
	"github.com/cockroachdb/redact"
	"github.com/pierrre/geohash"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkbhex"
	"github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/kml"
	"github.com/twpayne/go-geom/encoding/wkbcommon"
	"github.com/twpayne/go-geom/encoding/wkbhex"
	"github.com/twpayne/go-geom/encoding/wkt"
)

// DefaultGeoJSONDecimalDigits is the default number of digits coordinates in GeoJSON.
const DefaultGeoJSONDecimalDigits = 9

// DefaultWKTDecimalDigits is the default number of digits coordinates in WKT.
// -1 prints the shortest representation that reads back as the same float64.
const DefaultWKTDecimalDigits = -1

// DefaultEWKBEncodingFormat is the byte order used for hex output unless
// another is asked for.
var DefaultEWKBEncodingFormat binary.ByteOrder = binary.LittleEndian

// ToGeomT converts a decoded geometry into the equivalent go-geom value. The
// curve kinds and POLYHEDRALSURFACE have no go-geom equivalent and fail with
// ErrUnsupportedConversion, as do points whose NaN components were dropped.
func ToGeomT(pg geowkb.ParsedGeometry) (geom.T, error) {
	t, err := toGeomT(pg.Geometry, layoutOf(pg.Dimension))
	if err != nil {
		return nil, err
	}
	if pg.HasSRID {
		if err := adjustGeomSRID(t, pg.SRID); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func toGeomT(g geowkb.Geometry, layout geom.Layout) (geom.T, error) {
	switch g := g.(type) {
	case geowkb.Point:
		return toGeomPoint(g, layout)
	case geowkb.LineString:
		flat, err := flatCoords(g, layout)
		if err != nil {
			return nil, err
		}
		return geom.NewLineStringFlat(layout, flat), nil
	case geowkb.Polygon:
		return toGeomPolygon(g, layout)
	case geowkb.MultiPoint:
		mp := geom.NewMultiPoint(layout)
		for _, p := range g {
			pt, err := toGeomPoint(p, layout)
			if err != nil {
				return nil, err
			}
			if err := mp.Push(pt); err != nil {
				return nil, errors.Wrap(err, "could not construct MULTIPOINT")
			}
		}
		return mp, nil
	case geowkb.MultiLineString:
		mls := geom.NewMultiLineString(layout)
		for _, ls := range g {
			flat, err := flatCoords(ls, layout)
			if err != nil {
				return nil, err
			}
			if err := mls.Push(geom.NewLineStringFlat(layout, flat)); err != nil {
				return nil, errors.Wrap(err, "could not construct MULTILINESTRING")
			}
		}
		return mls, nil
	case geowkb.MultiPolygon:
		mp := geom.NewMultiPolygon(layout)
		for _, p := range g {
			poly, err := toGeomPolygon(p, layout)
			if err != nil {
				return nil, err
			}
			if err := mp.Push(poly); err != nil {
				return nil, errors.Wrap(err, "could not construct MULTIPOLYGON")
			}
		}
		return mp, nil
	case geowkb.GeometryCollection:
		gc := geom.NewGeometryCollection().MustSetLayout(layout)
		for _, child := range g {
			t, err := toGeomT(child, layout)
			if err != nil {
				return nil, err
			}
			if err := gc.Push(t); err != nil {
				return nil, errors.Wrap(err, "could not construct GEOMETRYCOLLECTION")
			}
		}
		return gc, nil
	case nil:
		return nil, errors.AssertionFailedf("no geometry to convert")
	default:
		return nil, errors.Mark(
			errors.Newf("%s has no go-geom representation", g.Kind()),
			ErrUnsupportedConversion,
		)
	}
}

func toGeomPoint(p geowkb.Point, layout geom.Layout) (*geom.Point, error) {
	if len(p) == 0 {
		return geom.NewPointEmpty(layout), nil
	}
	if len(p) != layout.Stride() {
		return nil, newStrideError(len(p), layout)
	}
	return geom.NewPointFlat(layout, []float64(p)), nil
}

func toGeomPolygon(p geowkb.Polygon, layout geom.Layout) (*geom.Polygon, error) {
	var flat []float64
	ends := make([]int, 0, len(p))
	for _, ring := range p {
		ringFlat, err := flatCoords(ring, layout)
		if err != nil {
			return nil, err
		}
		flat = append(flat, ringFlat...)
		ends = append(ends, len(flat))
	}
	return geom.NewPolygonFlat(layout, flat, ends), nil
}

// flatCoords lays pts out as go-geom flat coordinates. Every point must have
// exactly the layout's stride.
func flatCoords(pts []geowkb.Point, layout geom.Layout) ([]float64, error) {
	stride := layout.Stride()
	flat := make([]float64, 0, len(pts)*stride)
	for _, p := range pts {
		if len(p) != stride {
			return nil, newStrideError(len(p), layout)
		}
		flat = append(flat, p...)
	}
	return flat, nil
}

func newStrideError(n int, layout geom.Layout) error {
	return errors.Mark(
		errors.Newf("point with %d coordinates does not fit a %d coordinate layout",
			redact.Safe(n), redact.Safe(layout.Stride())),
		ErrUnsupportedConversion,
	)
}

// adjustGeomSRID adjusts the SRID of a given geom.T.
// Ideally SetSRID is an interface of geom.T, but that is not the case.
func adjustGeomSRID(t geom.T, srid geopb.SRID) error {
	switch t := t.(type) {
	case *geom.Point:
		t.SetSRID(int(srid))
	case *geom.LineString:
		t.SetSRID(int(srid))
	case *geom.Polygon:
		t.SetSRID(int(srid))
	case *geom.GeometryCollection:
		t.SetSRID(int(srid))
	case *geom.MultiPoint:
		t.SetSRID(int(srid))
	case *geom.MultiLineString:
		t.SetSRID(int(srid))
	case *geom.MultiPolygon:
		t.SetSRID(int(srid))
	default:
		return errors.AssertionFailedf("unknown geom type: %T", t)
	}
	return nil
}

// ToWKT renders pg as WKT.
func ToWKT(pg geowkb.ParsedGeometry, maxDecimalDigits int) (geopb.WKT, error) {
	t, err := ToGeomT(pg)
	if err != nil {
		return "", err
	}
	ret, err := wkt.Marshal(t, wkt.EncodeOptionWithMaxDecimalDigits(maxDecimalDigits))
	return geopb.WKT(ret), err
}

// ToEWKT renders pg as EWKT, which is WKT with an "SRID=n;" prefix when pg
// has an SRID.
func ToEWKT(pg geowkb.ParsedGeometry, maxDecimalDigits int) (geopb.EWKT, error) {
	ret, err := ToWKT(pg, maxDecimalDigits)
	if err != nil {
		return "", err
	}
	if pg.HasSRID {
		return geopb.EWKT(fmt.Sprintf("SRID=%d;%s", pg.SRID, ret)), nil
	}
	return geopb.EWKT(ret), nil
}

// GeoJSONFlag maps to the ST_AsGeoJSON flags for PostGIS.
type GeoJSONFlag int

// These should be kept with ST_AsGeoJSON in PostGIS.
// 0: means no option
// 1: GeoJSON BBOX
// 2: GeoJSON Short CRS (e.g EPSG:4326)
// 4: GeoJSON Long CRS (e.g urn:ogc:def:crs:EPSG::4326)
// 8: GeoJSON Short CRS if not EPSG:4326 (default)
const (
	GeoJSONFlagIncludeBBox GeoJSONFlag = 1 << (iota)
	GeoJSONFlagShortCRS
	GeoJSONFlagLongCRS
	GeoJSONFlagShortCRSIfNot4326

	GeoJSONFlagZero = 0
)

// geoJSONCRS returns the named CRS member for srid. SRIDs are taken to be
// EPSG codes.
func geoJSONCRS(srid geopb.SRID, long bool) *geojson.CRS {
	var prop string
	if long {
		prop = fmt.Sprintf("urn:ogc:def:crs:EPSG::%d", srid)
	} else {
		prop = fmt.Sprintf("EPSG:%d", srid)
	}
	return &geojson.CRS{
		Type: "name",
		Properties: map[string]interface{}{
			"name": prop,
		},
	}
}

// ToGeoJSON renders pg as a GeoJSON geometry.
func ToGeoJSON(
	pg geowkb.ParsedGeometry, maxDecimalDigits int, flag GeoJSONFlag,
) ([]byte, error) {
	t, err := ToGeomT(pg)
	if err != nil {
		return nil, err
	}
	options := []geojson.EncodeGeometryOption{
		geojson.EncodeGeometryWithMaxDecimalDigits(maxDecimalDigits),
	}
	if flag&GeoJSONFlagIncludeBBox != 0 {
		// Do not encode empty bounding boxes.
		if BoundingBoxOf(pg) != nil {
			options = append(options, geojson.EncodeGeometryWithBBox())
		}
	}
	// Take CRS flag in order of precedence.
	if pg.HasSRID && pg.SRID != 0 {
		switch {
		case flag&GeoJSONFlagLongCRS != 0:
			options = append(options, geojson.EncodeGeometryWithCRS(geoJSONCRS(pg.SRID, true /* long */)))
		case flag&GeoJSONFlagShortCRS != 0:
			options = append(options, geojson.EncodeGeometryWithCRS(geoJSONCRS(pg.SRID, false /* long */)))
		case flag&GeoJSONFlagShortCRSIfNot4326 != 0:
			if pg.SRID != 4326 {
				options = append(options, geojson.EncodeGeometryWithCRS(geoJSONCRS(pg.SRID, false /* long */)))
			}
		}
	}
	return geojson.Marshal(t, options...)
}

// ToWKBHex renders pg as upper case ISO WKB hex. The SRID is not written.
func ToWKBHex(pg geowkb.ParsedGeometry, byteOrder binary.ByteOrder) (string, error) {
	t, err := ToGeomT(pg)
	if err != nil {
		return "", err
	}
	ret, err := wkbhex.Encode(t, byteOrder, wkbcommon.WKBOptionEmptyPointHandling(wkbcommon.EmptyPointHandlingNaN))
	return strings.ToUpper(ret), err
}

// ToEWKBHex renders pg as upper case EWKB hex, including its SRID.
func ToEWKBHex(pg geowkb.ParsedGeometry, byteOrder binary.ByteOrder) (string, error) {
	t, err := ToGeomT(pg)
	if err != nil {
		return "", err
	}
	ret, err := ewkbhex.Encode(t, byteOrder)
	return strings.ToUpper(ret), err
}

// ToKML renders pg as a KML geometry element.
func ToKML(pg geowkb.ParsedGeometry) (string, error) {
	t, err := ToGeomT(pg)
	if err != nil {
		return "", err
	}
	kmlElement, err := kml.Encode(t)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := kmlElement.Write(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// BoundingBoxOf returns the X/Y bounding box of every coordinate in pg, of
// any kind. It returns nil for a geometry with no coordinates.
func BoundingBoxOf(pg geowkb.ParsedGeometry) *geopb.BoundingBox {
	bbox := geopb.NewBoundingBox()
	extendBoundingBox(bbox, pg.Geometry)
	if bbox.Empty() {
		return nil
	}
	return bbox
}

func extendBoundingBox(bbox *geopb.BoundingBox, g geowkb.Geometry) {
	switch g := g.(type) {
	case geowkb.Point:
		// Points that lost X or Y to NaN dropping have no usable position.
		if len(g) >= 2 {
			bbox.Update(g[0], g[1])
		}
	case geowkb.LineString:
		extendPoints(bbox, g)
	case geowkb.CircularString:
		extendPoints(bbox, g)
	case geowkb.MultiPoint:
		extendPoints(bbox, g)
	case geowkb.Polygon:
		for _, ring := range g {
			extendPoints(bbox, ring)
		}
	case geowkb.MultiLineString:
		for _, ls := range g {
			extendPoints(bbox, ls)
		}
	case geowkb.MultiPolygon:
		for _, p := range g {
			extendBoundingBox(bbox, p)
		}
	case geowkb.PolyhedralSurface:
		for _, p := range g {
			extendBoundingBox(bbox, p)
		}
	case geowkb.CompoundCurve:
		extendAll(bbox, g)
	case geowkb.CurvePolygon:
		extendAll(bbox, g)
	case geowkb.MultiCurve:
		extendAll(bbox, g)
	case geowkb.MultiSurface:
		extendAll(bbox, g)
	case geowkb.GeometryCollection:
		extendAll(bbox, g)
	}
}

func extendPoints(bbox *geopb.BoundingBox, pts []geowkb.Point) {
	for _, p := range pts {
		extendBoundingBox(bbox, p)
	}
}

func extendAll(bbox *geopb.BoundingBox, gs []geowkb.Geometry) {
	for _, g := range gs {
		extendBoundingBox(bbox, g)
	}
}

// GeoHashAutoPrecision means to calculate the precision of ToGeoHash
// based on input, up to 32 characters.
const GeoHashAutoPrecision = 0

// GeoHashMaxPrecision is the maximum precision for GeoHashes.
// 20 is picked as doubles have 51 decimals of precision, and each base32 position
// can contain 5 bits of data. As we have two points, we use floor((2 * 51) / 5) = 20.
const GeoHashMaxPrecision = 20

// ToGeoHash returns the GeoHash of the center of pg's bounding box, whose
// coordinates are taken to be degrees. A geometry with no coordinates has an
// empty GeoHash.
func ToGeoHash(pg geowkb.ParsedGeometry, p int) (string, error) {
	bbox := BoundingBoxOf(pg)
	if bbox == nil {
		return "", nil
	}
	if bbox.LoX < -180 || bbox.HiX > 180 || bbox.LoY < -90 || bbox.HiY > 90 {
		return "", errors.Newf(
			"object has bounds greater than the bounds of lat/lng, got (%f %f, %f %f)",
			bbox.LoX, bbox.LoY,
			bbox.HiX, bbox.HiY,
		)
	}

	// Get precision using the bounding box if required.
	if p <= GeoHashAutoPrecision {
		p = getPrecisionForBBox(bbox)
	}

	// Support up to 20, which is the same as PostGIS.
	if p > GeoHashMaxPrecision {
		p = GeoHashMaxPrecision
	}

	bbCenterLng := bbox.LoX + (bbox.HiX-bbox.LoX)/2.0
	bbCenterLat := bbox.LoY + (bbox.HiY-bbox.LoY)/2.0

	return geohash.Encode(bbCenterLat, bbCenterLng, p), nil
}

// getPrecisionForBBox imitates PostGIS: starting from the world bounding box,
// it halves the box in each dimension until it would no longer contain bbox,
// counting one bit of precision per halving.
func getPrecisionForBBox(bbox *geopb.BoundingBox) int {
	// Points get the full precision.
	if bbox.LoX == bbox.HiX && bbox.LoY == bbox.HiY {
		return GeoHashMaxPrecision
	}

	bitPrecision := 0
	lonMin, lonMax := -180.0, 180.0
	latMin, latMax := -90.0, 90.0
	for {
		lonHalf := (lonMax - lonMin) / 2.0
		latHalf := (latMax - latMin) / 2.0

		switch {
		case bbox.LoX > lonMin+lonHalf:
			lonMin += lonHalf
		case bbox.HiX < lonMax-lonHalf:
			lonMax -= lonHalf
		default:
			return bitPrecision / 5
		}
		switch {
		case bbox.LoY > latMin+latHalf:
			latMin += latHalf
		case bbox.HiY < latMax-latHalf:
			latMax -= latHalf
		default:
			return bitPrecision / 5
		}
		bitPrecision += 2
	}
}

// StringToByteOrder returns the byte order named by s, "ndr" or "xdr" in any
// case, or DefaultEWKBEncodingFormat for anything else.
func StringToByteOrder(s string) binary.ByteOrder {
	switch strings.ToLower(s) {
	case "ndr":
		return binary.LittleEndian
	case "xdr":
		return binary.BigEndian
	default:
		return DefaultEWKBEncodingFormat
	}
}
