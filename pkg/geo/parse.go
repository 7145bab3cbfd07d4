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
	"context"
	"encoding/hex"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/geowkb/pkg/geo/geopb"
	"github.com/cockroachdb/geowkb/pkg/geo/geowkb"
	"github.com/cockroachdb/geowkb/pkg/util/log"
)

// textThreshold separates the two input forms: WKB always starts with a byte
// order marker of 0 or 1, while hex text starts with a printable character.
const textThreshold = 0x20

// NormalizeWKBInput turns the given input into raw WKB bytes.
//
// Input whose first byte is below 0x20 is taken to be raw WKB and returned
// as is. Anything else is hex text: surrounding whitespace is trimmed, any
// prefix up to and including the first 'x' or 'X' (as in "\x0101..." or
// "0x0101...") is dropped, and the rest is hex decoded.
func NormalizeWKBInput(b []byte) (geopb.WKB, error) {
	if len(b) == 0 {
		return nil, errors.Mark(
			errors.New("geo: parsing empty input"), geowkb.ErrInsufficientInput)
	}
	if b[0] < textThreshold {
		return geopb.WKB(b), nil
	}
	s := bytes.TrimSpace(b)
	if i := bytes.IndexAny(s, "xX"); i >= 0 {
		s = s[i+1:]
	}
	out := make([]byte, hex.DecodedLen(len(s)))
	if _, err := hex.Decode(out, s); err != nil {
		return nil, errors.Mark(
			errors.Wrap(err, "geo: decoding hex input"), geowkb.ErrMalformedInput)
	}
	return geopb.WKB(out), nil
}

var decoderPool = sync.Pool{
	New: func() interface{} {
		return geowkb.NewDecoder()
	},
}

// ParseWKB normalizes b with NormalizeWKBInput and decodes the result. It is
// safe for concurrent use.
func ParseWKB(ctx context.Context, b []byte) (geowkb.ParsedGeometry, error) {
	wkb, err := NormalizeWKBInput(b)
	if err != nil {
		return geowkb.ParsedGeometry{}, err
	}
	d := decoderPool.Get().(*geowkb.Decoder)
	defer decoderPool.Put(d)
	pg, err := d.Decode(ctx, wkb)
	if err != nil {
		log.VEventf(ctx, 2, "decoding %d bytes: %v", len(wkb), err)
		return geowkb.ParsedGeometry{}, err
	}
	return pg, nil
}

// ParseWKBString is ParseWKB for text input.
func ParseWKBString(ctx context.Context, s string) (geowkb.ParsedGeometry, error) {
	return ParseWKB(ctx, []byte(s))
}
