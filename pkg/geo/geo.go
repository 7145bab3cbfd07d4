// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

// Package geo accepts WKB input in the raw and hex text forms PostGIS
// produces, decodes it, and renders decoded geometries in other formats.
//
// Subpackages:
//   - geo/geowkb implements the WKB, ISO WKB and EWKB decoder itself.
//   - geo/geopb holds the small value types shared between packages.
package geo

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/geowkb/pkg/geo/geowkb"
	"github.com/twpayne/go-geom"
)

// ErrUnsupportedConversion marks a decoded geometry that has no go-geom
// equivalent, such as any of the curve kinds.
var ErrUnsupportedConversion = errors.New("unsupported conversion")

// layoutOf maps a decoded dimension onto the go-geom layout with the same
// coordinates.
func layoutOf(d geowkb.Dimension) geom.Layout {
	switch d {
	case geowkb.DimensionZ:
		return geom.XYZ
	case geowkb.DimensionM:
		return geom.XYM
	case geowkb.DimensionZM:
		return geom.XYZM
	default:
		return geom.XY
	}
}
