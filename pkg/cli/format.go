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
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/geowkb/pkg/geo"
	"github.com/cockroachdb/geowkb/pkg/geo/geopb"
	"github.com/cockroachdb/geowkb/pkg/geo/geowkb"
	"github.com/goccy/go-json"
	"github.com/kr/pretty"
	"gopkg.in/yaml.v3"
)

// decodeInput decodes one raw or hex input with d.
func decodeInput(
	ctx context.Context, d *geowkb.Decoder, input []byte,
) (geowkb.ParsedGeometry, error) {
	wkb, err := geo.NormalizeWKBInput(input)
	if err != nil {
		return geowkb.ParsedGeometry{}, err
	}
	return d.Decode(ctx, wkb)
}

// formatGeometry renders pg in the given format. The result always ends in a
// newline, except for YAML documents which are separated by "---".
func formatGeometry(pg geowkb.ParsedGeometry, format outputFormat) (string, error) {
	var s string
	var err error
	switch format {
	case outputFormatJSON:
		var b []byte
		b, err = json.Marshal(pg.Record())
		s = string(b)
	case outputFormatYAML:
		var b []byte
		b, err = yaml.Marshal(pg.Record())
		s = "---\n" + string(b)
	case outputFormatPretty:
		s = fmt.Sprintf("%# v", pretty.Formatter(pg))
	case outputFormatWKT:
		var wkt geopb.WKT
		wkt, err = geo.ToWKT(pg, cliCtx.decimalDigits)
		s = string(wkt)
	case outputFormatEWKT:
		var ewkt geopb.EWKT
		ewkt, err = geo.ToEWKT(pg, cliCtx.decimalDigits)
		s = string(ewkt)
	case outputFormatGeoJSON:
		digits := cliCtx.decimalDigits
		if digits < 0 {
			digits = geo.DefaultGeoJSONDecimalDigits
		}
		var b []byte
		b, err = geo.ToGeoJSON(pg, digits, geo.GeoJSONFlag(cliCtx.geoJSONOptions))
		s = string(b)
	case outputFormatKML:
		s, err = geo.ToKML(pg)
	case outputFormatWKBHex:
		s, err = geo.ToWKBHex(pg, cliCtx.byteOrder.ByteOrder)
	case outputFormatEWKBHex:
		s, err = geo.ToEWKBHex(pg, cliCtx.byteOrder.ByteOrder)
	case outputFormatGeoHash:
		s, err = geo.ToGeoHash(pg, cliCtx.geoHashPrecision)
	default:
		return "", errors.AssertionFailedf("unknown output format %d", format)
	}
	if err != nil {
		return "", errors.Wrapf(err, "formatting %s as %s", pg, format.String())
	}
	if len(s) == 0 || s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s, nil
}
