// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

// Package geopb holds the small value types shared by the geo packages.
package geopb

// SRID is a Spatial Reference Identifier.
type SRID uint32

// WKB is a Well Known Binary encoded geometry.
type WKB []byte

// EWKB is an Extended Well Known Binary encoded geometry, as written by
// PostGIS.
type EWKB []byte

// WKT is a Well Known Text encoded geometry.
type WKT string

// EWKT is a WKT prefixed with "SRID=n;".
type EWKT string
