// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package cliflags

// Flags of the decode and inspect commands.
var (
	Format = FlagInfo{
		Name:      "format",
		Shorthand: "f",
		EnvVar:    "GEOWKB_FORMAT",
		Description: `
Selects how decoded geometries are printed. Possible values: json, yaml,
pretty, wkt, ewkt, geojson, kml, wkbhex, ewkbhex, geohash. The text
formats other than json, yaml and pretty cannot represent curves.`,
	}

	File = FlagInfo{
		Name:        "file",
		EnvVar:      "GEOWKB_FILE",
		Description: `Read a single geometry, raw WKB or hex text, from the given file.`,
	}

	MaxDepth = FlagInfo{
		Name:        "max-depth",
		EnvVar:      "GEOWKB_MAX_DEPTH",
		Description: `Maximum nesting of geometries inside one another.`,
	}

	ByteOrder = FlagInfo{
		Name:        "byte-order",
		EnvVar:      "GEOWKB_BYTE_ORDER",
		Description: `Byte order of the wkbhex and ewkbhex formats: ndr (little endian) or xdr (big endian).`,
	}

	DecimalDigits = FlagInfo{
		Name:        "decimal-digits",
		EnvVar:      "GEOWKB_DECIMAL_DIGITS",
		Description: `Maximum number of decimal digits of coordinates in the wkt, ewkt and geojson formats.`,
	}

	GeoJSONOptions = FlagInfo{
		Name:   "geojson-options",
		EnvVar: "GEOWKB_GEOJSON_OPTIONS",
		Description: `
ST_AsGeoJSON options bitmask: 1 adds a bbox, 2 a short CRS, 4 a long CRS,
8 a short CRS unless the SRID is 4326.`,
	}

	GeoHashPrecision = FlagInfo{
		Name:        "geohash-precision",
		EnvVar:      "GEOWKB_GEOHASH_PRECISION",
		Description: `Number of GeoHash characters; 0 derives it from the bounding box.`,
	}

	Verbosity = FlagInfo{
		Name:        "verbosity",
		Shorthand:   "v",
		EnvVar:      "GEOWKB_VERBOSITY",
		Description: `Log verbosity level. 1 reports trailing bytes, 2 reports every decode error and ignored nested SRIDs.`,
	}
)
