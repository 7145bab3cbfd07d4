// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package cli

import (
	"encoding/binary"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/geowkb/pkg/geo"
	"github.com/cockroachdb/geowkb/pkg/geo/geowkb"
)

// cliContext captures the command-line parameters of the commands.
type cliContext struct {
	verbosity int
	maxDepth  int
	file      string

	format           outputFormat
	byteOrder        byteOrderFlag
	decimalDigits    int
	geoJSONOptions   int
	geoHashPrecision int
}

// cliCtx holds the parameters of the command being run. Flags are bound to
// its fields, so it must only ever be reset in place.
var cliCtx cliContext

// initCLIDefaults sets the default value of every parameter.
func initCLIDefaults() {
	cliCtx = cliContext{
		maxDepth:         geowkb.DefaultMaxDepth,
		format:           outputFormatJSON,
		byteOrder:        byteOrderFlag{geo.DefaultEWKBEncodingFormat},
		decimalDigits:    geo.DefaultWKTDecimalDigits,
		geoJSONOptions:   int(geo.GeoJSONFlagShortCRSIfNot4326),
		geoHashPrecision: geo.GeoHashAutoPrecision,
	}
}

// outputFormat is how the decode command prints each geometry.
type outputFormat int

const (
	outputFormatJSON outputFormat = iota
	outputFormatYAML
	outputFormatPretty
	outputFormatWKT
	outputFormatEWKT
	outputFormatGeoJSON
	outputFormatKML
	outputFormatWKBHex
	outputFormatEWKBHex
	outputFormatGeoHash
)

var outputFormatNames = [...]string{
	outputFormatJSON:    "json",
	outputFormatYAML:    "yaml",
	outputFormatPretty:  "pretty",
	outputFormatWKT:     "wkt",
	outputFormatEWKT:    "ewkt",
	outputFormatGeoJSON: "geojson",
	outputFormatKML:     "kml",
	outputFormatWKBHex:  "wkbhex",
	outputFormatEWKBHex: "ewkbhex",
	outputFormatGeoHash: "geohash",
}

// Type implements the pflag.Value interface.
func (f *outputFormat) Type() string { return "string" }

// String implements the pflag.Value interface.
func (f *outputFormat) String() string { return outputFormatNames[*f] }

// Set implements the pflag.Value interface.
func (f *outputFormat) Set(s string) error {
	for i, name := range outputFormatNames {
		if strings.EqualFold(s, name) {
			*f = outputFormat(i)
			return nil
		}
	}
	return errors.Newf("invalid output format %q; valid values: %s",
		s, strings.Join(outputFormatNames[:], ", "))
}

// byteOrderFlag is the byte order of hex output.
type byteOrderFlag struct {
	binary.ByteOrder
}

// Type implements the pflag.Value interface.
func (b *byteOrderFlag) Type() string { return "string" }

// String implements the pflag.Value interface.
func (b *byteOrderFlag) String() string {
	if b.ByteOrder == binary.BigEndian {
		return "xdr"
	}
	return "ndr"
}

// Set implements the pflag.Value interface.
func (b *byteOrderFlag) Set(s string) error {
	switch strings.ToLower(s) {
	case "ndr", "xdr":
		b.ByteOrder = geo.StringToByteOrder(s)
		return nil
	}
	return errors.Newf("invalid byte order %q; valid values: ndr, xdr", s)
}
