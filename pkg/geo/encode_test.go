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
	"context"
	"encoding/binary"
	"fmt"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/geowkb/pkg/geo/geopb"
	"github.com/cockroachdb/geowkb/pkg/geo/geowkb"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkb"
	"github.com/twpayne/go-geom/encoding/ewkbhex"
	"github.com/twpayne/go-geom/encoding/wkb"
	"github.com/twpayne/go-geom/encoding/wkt"
)

// TestDecodeGoGeomEncodings decodes the EWKB and ISO WKB go-geom writes for a
// range of geometries in both byte orders, and checks the result converts back
// to the same geometry.
func TestDecodeGoGeomEncodings(t *testing.T) {
	ctx := context.Background()
	testCases := []struct {
		desc string
		g    geom.T
	}{
		{"point", geom.NewPointFlat(geom.XY, []float64{1, 2})},
		{"point z with srid", geom.NewPointFlat(geom.XYZ, []float64{1, 2, 3}).SetSRID(4326)},
		{"point zm", geom.NewPointFlat(geom.XYZM, []float64{1, 2, 3, 4})},
		{"linestring m", geom.NewLineStringFlat(geom.XYM, []float64{0, 0, 1, 1, 1, 2})},
		{
			"polygon with hole",
			geom.NewPolygonFlat(geom.XY, []float64{
				0, 0, 10, 0, 10, 10, 0, 10, 0, 0,
				2, 2, 4, 2, 4, 4, 2, 2,
			}, []int{10, 18}),
		},
		{"multipoint", geom.NewMultiPointFlat(geom.XY, []float64{5, 10, -30.5, 40.2, 1, 1})},
		{
			"multilinestring z",
			geom.NewMultiLineStringFlat(geom.XYZ, []float64{0, 0, 0, 1, 1, 1, 2, 2, 2, 3, 3, 3}, []int{6, 12}).SetSRID(3857),
		},
		{
			"multipolygon",
			geom.NewMultiPolygonFlat(geom.XY, []float64{
				0, 0, 1, 0, 1, 1, 0, 0,
				5, 5, 6, 5, 6, 6, 5, 5,
			}, [][]int{{8}, {16}}),
		},
		{
			"geometrycollection",
			geom.NewGeometryCollection().MustPush(
				geom.NewPointFlat(geom.XY, []float64{1, 2}),
				geom.NewLineStringFlat(geom.XY, []float64{0, 0, 1, 1}),
			),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			expectedWKT, err := wkt.Marshal(tc.g, wkt.EncodeOptionWithMaxDecimalDigits(DefaultWKTDecimalDigits))
			require.NoError(t, err)

			var decoded []geowkb.ParsedGeometry
			for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
				b, err := ewkb.Marshal(tc.g, order)
				require.NoError(t, err)
				pg, err := ParseWKB(ctx, b)
				require.NoError(t, err)
				require.Equal(t, tc.g.SRID() != 0, pg.HasSRID)
				require.EqualValues(t, tc.g.SRID(), pg.SRID)
				decoded = append(decoded, pg)

				got, err := ToWKT(pg, DefaultWKTDecimalDigits)
				require.NoError(t, err)
				require.Equal(t, expectedWKT, string(got))

				expectedHex, err := ewkbhex.Encode(tc.g, order)
				require.NoError(t, err)
				gotHex, err := ToEWKBHex(pg, order)
				require.NoError(t, err)
				require.Equal(t, strings.ToUpper(expectedHex), gotHex)

				iso, err := wkb.Marshal(tc.g, order)
				require.NoError(t, err)
				isoPG, err := ParseWKB(ctx, iso)
				require.NoError(t, err)
				withoutSRID := pg
				withoutSRID.SRID, withoutSRID.HasSRID = 0, false
				require.Equal(t, withoutSRID, isoPG)
			}
			require.Equal(t, decoded[0], decoded[1])
		})
	}
}

func mustParse(t *testing.T, s string) geowkb.ParsedGeometry {
	pg, err := ParseWKBString(context.Background(), s)
	require.NoError(t, err)
	return pg
}

func TestToGeomTUnsupported(t *testing.T) {
	testCases := []struct {
		desc        string
		pg          geowkb.ParsedGeometry
		expectedErr string
	}{
		{
			desc: "circularstring",
			pg: geowkb.ParsedGeometry{
				Kind:     geowkb.KindCircularString,
				Geometry: geowkb.CircularString{{0, 0}, {1, 1}, {2, 0}},
			},
			expectedErr: "CIRCULARSTRING has no go-geom representation",
		},
		{
			desc: "curve in collection",
			pg: geowkb.ParsedGeometry{
				Kind:     geowkb.KindGeometryCollection,
				Geometry: geowkb.GeometryCollection{geowkb.Point{1, 2}, geowkb.MultiCurve{}},
			},
			expectedErr: "MULTICURVE has no go-geom representation",
		},
		{
			desc: "polyhedralsurface",
			pg: geowkb.ParsedGeometry{
				Kind:      geowkb.KindPolyhedralSurface,
				Dimension: geowkb.DimensionZ,
				Geometry:  geowkb.PolyhedralSurface{},
			},
			expectedErr: "POLYHEDRALSURFACE has no go-geom representation",
		},
		{
			desc: "partially NaN point",
			pg: geowkb.ParsedGeometry{
				Kind:      geowkb.KindLineString,
				Dimension: geowkb.DimensionZ,
				Geometry:  geowkb.LineString{{1, 2, 3}, {1, 2}},
			},
			expectedErr: "point with 2 coordinates does not fit a 3 coordinate layout",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			_, err := ToGeomT(tc.pg)
			require.EqualError(t, err, tc.expectedErr)
			require.True(t, errors.Is(err, ErrUnsupportedConversion))
		})
	}
}

func TestTextEncodings(t *testing.T) {
	point := mustParse(t, pointHex)
	pointSRID := mustParse(t, "0020000001000010E640411D70A3D70A3DC055C00000000000")
	empty := mustParse(t, "0101000000000000000000F87F000000000000F87F")

	t.Run("wkt", func(t *testing.T) {
		got, err := ToWKT(pointSRID, DefaultWKTDecimalDigits)
		require.NoError(t, err)
		require.Equal(t, geopb.WKT("POINT (34.23 -87)"), got)

		got, err = ToWKT(empty, DefaultWKTDecimalDigits)
		require.NoError(t, err)
		require.Equal(t, geopb.WKT("POINT EMPTY"), got)
	})

	t.Run("ewkt", func(t *testing.T) {
		got, err := ToEWKT(pointSRID, DefaultWKTDecimalDigits)
		require.NoError(t, err)
		require.Equal(t, geopb.EWKT("SRID=4326;POINT (34.23 -87)"), got)

		got, err = ToEWKT(point, 1)
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(string(got), "POINT (34.2 "), got)
	})

	t.Run("geojson", func(t *testing.T) {
		got, err := ToGeoJSON(point, DefaultGeoJSONDecimalDigits, GeoJSONFlagZero)
		require.NoError(t, err)
		require.JSONEq(t, `{"type":"Point","coordinates":[34.23,-87]}`, string(got))

		got, err = ToGeoJSON(pointSRID, DefaultGeoJSONDecimalDigits, GeoJSONFlagShortCRSIfNot4326)
		require.NoError(t, err)
		require.JSONEq(t, `{"type":"Point","coordinates":[34.23,-87]}`, string(got))

		got, err = ToGeoJSON(pointSRID, DefaultGeoJSONDecimalDigits, GeoJSONFlagShortCRS)
		require.NoError(t, err)
		require.JSONEq(t,
			`{"type":"Point","coordinates":[34.23,-87],"crs":{"type":"name","properties":{"name":"EPSG:4326"}}}`,
			string(got))

		got, err = ToGeoJSON(pointSRID, DefaultGeoJSONDecimalDigits, GeoJSONFlagLongCRS|GeoJSONFlagShortCRS)
		require.NoError(t, err)
		require.Contains(t, string(got), `"urn:ogc:def:crs:EPSG::4326"`)

		got, err = ToGeoJSON(point, DefaultGeoJSONDecimalDigits, GeoJSONFlagIncludeBBox)
		require.NoError(t, err)
		require.Contains(t, string(got), `"bbox"`)
	})

	t.Run("kml", func(t *testing.T) {
		got, err := ToKML(point)
		require.NoError(t, err)
		require.Contains(t, got, "<Point>")
		require.Contains(t, got, "<coordinates>34.23")
	})

	t.Run("wkb hex", func(t *testing.T) {
		got, err := ToWKBHex(pointSRID, binary.LittleEndian)
		require.NoError(t, err)
		require.Equal(t, pointHex, got)

		// The empty point comes back as NaN coordinates, which decode to an
		// empty point again.
		got, err = ToWKBHex(empty, binary.LittleEndian)
		require.NoError(t, err)
		require.Equal(t, empty, mustParse(t, got))
	})

	t.Run("ewkb hex", func(t *testing.T) {
		got, err := ToEWKBHex(pointSRID, binary.BigEndian)
		require.NoError(t, err)
		require.Equal(t, "0020000001000010E640411D70A3D70A3DC055C00000000000", got)
	})
}

func TestBoundingBoxOf(t *testing.T) {
	testCases := []struct {
		desc     string
		g        geowkb.Geometry
		expected *geopb.BoundingBox
	}{
		{desc: "empty point", g: geowkb.Point{}},
		{desc: "empty collection", g: geowkb.GeometryCollection{}},
		{
			desc:     "point",
			g:        geowkb.Point{1, 2, 3},
			expected: &geopb.BoundingBox{LoX: 1, HiX: 1, LoY: 2, HiY: 2},
		},
		{
			desc: "curve polygon",
			g: geowkb.CurvePolygon{
				geowkb.CompoundCurve{
					geowkb.CircularString{{0, 0}, {1, 1}, {2, 0}},
					geowkb.LineString{{2, 0}, {0, 0}},
				},
				geowkb.LineString{{0.5, -3}, {1, 0.2}},
			},
			expected: &geopb.BoundingBox{LoX: 0, HiX: 2, LoY: -3, HiY: 1},
		},
		{
			desc: "polyhedral surface",
			g: geowkb.PolyhedralSurface{
				{{{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {0, 0, 0}}},
				{{{-1, 0, 1}, {0, 5, 1}, {-1, 0, 1}}},
			},
			expected: &geopb.BoundingBox{LoX: -1, HiX: 1, LoY: 0, HiY: 5},
		},
		{
			desc: "nested collection",
			g: geowkb.GeometryCollection{
				geowkb.MultiSurface{geowkb.Polygon{{{3, 3}, {4, 4}, {3, 3}}}},
				geowkb.MultiPoint{{-7, 9}},
				geowkb.MultiLineString{{{0, 0}, {1, 1}}},
			},
			expected: &geopb.BoundingBox{LoX: -7, HiX: 4, LoY: 0, HiY: 9},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			require.Equal(t, tc.expected, BoundingBoxOf(geowkb.ParsedGeometry{Geometry: tc.g}))
		})
	}
}

func TestToGeoHash(t *testing.T) {
	testCases := []struct {
		g           geowkb.Geometry
		precision   int
		expected    string
		expectedErr string
	}{
		{g: geowkb.Point{10.40744, 57.64911}, precision: 11, expected: "u4pruydqqvj"},
		{g: geowkb.Point{}, precision: GeoHashAutoPrecision, expected: ""},
		{
			g:         geowkb.LineString{{10, 57.5}, {10.5, 57.75}},
			precision: GeoHashAutoPrecision,
			expected:  "u4",
		},
		{
			g:           geowkb.Point{200, 0},
			precision:   5,
			expectedErr: "object has bounds greater than the bounds of lat/lng, got (200.000000 0.000000, 200.000000 0.000000)",
		},
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%v", tc.g), func(t *testing.T) {
			got, err := ToGeoHash(geowkb.ParsedGeometry{Geometry: tc.g}, tc.precision)
			if tc.expectedErr != "" {
				require.EqualError(t, err, tc.expectedErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, got)
		})
	}

	t.Run("auto precision for points", func(t *testing.T) {
		got, err := ToGeoHash(geowkb.ParsedGeometry{Geometry: geowkb.Point{10.40744, 57.64911}}, GeoHashAutoPrecision)
		require.NoError(t, err)
		require.Len(t, got, GeoHashMaxPrecision)
		require.True(t, strings.HasPrefix(got, "u4pruydqqvj"), got)
	})
}

func TestStringToByteOrder(t *testing.T) {
	require.Equal(t, binary.LittleEndian, StringToByteOrder("ndr"))
	require.Equal(t, binary.BigEndian, StringToByteOrder("XDR"))
	require.Equal(t, DefaultEWKBEncodingFormat, StringToByteOrder("other"))
}
