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
	"bytes"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/geowkb/pkg/cli/clierror"
	"github.com/cockroachdb/geowkb/pkg/cli/exit"
	"github.com/cockroachdb/geowkb/pkg/util/log"
	"github.com/stretchr/testify/require"
)

const (
	pointHex        = "01010000003D0AD7A3701D41400000000000C055C0"
	pointSRIDHex    = "0020000001000010E640411D70A3D70A3DC055C00000000000"
	badByteOrderHex = "03010000003D0AD7A3701D41400000000000C055C0"
	// POINT (10.40744 57.64911)
	geoHashPointHex = "01010000001B2AC6F99BD02440D7C0560916D34C40"
	// CIRCULARSTRING (0 0, 1 1, 2 0)
	circularHex = "01080000000300000000000000000000000000000000000000000000000000F03F000000000000F03F00000000000000400000000000000000"
	// GEOMETRYCOLLECTION (GEOMETRYCOLLECTION (POINT (1 2)))
	nestedHex = "0107000000010000000107000000010000000101000000000000000000F03F0000000000000040"
)

type cliResult struct {
	stdout, stderr string
	err            error
}

// runCLI runs the tool with all flags at their defaults and stdin as the
// standard input.
func runCLI(t *testing.T, stdin string, args ...string) cliResult {
	t.Helper()
	return runCLIWithLog(t, io.Discard, stdin, args...)
}

// runCLIWithLog is runCLI with log entries written to logOut.
func runCLIWithLog(t *testing.T, logOut io.Writer, stdin string, args ...string) cliResult {
	t.Helper()
	log.SetOutput(logOut)
	defer log.SetOutput(os.Stderr)
	defer log.SetVerbosity(0)

	initCLIDefaults()
	resetFlags(geowkbCmd)
	var stdout, stderr bytes.Buffer
	geowkbCmd.SetOut(&stdout)
	geowkbCmd.SetErr(&stderr)
	geowkbCmd.SetIn(strings.NewReader(stdin))
	err := Run(args)
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func TestDecodeFormats(t *testing.T) {
	testCases := []struct {
		desc     string
		args     []string
		expected string
	}{
		{
			desc:     "json",
			args:     []string{"decode", pointHex},
			expected: `{"kind":"POINT","value":[34.23,-87],"srid":null,"dimension":null}` + "\n",
		},
		{
			desc:     "json with srid",
			args:     []string{"decode", "--format=json", pointSRIDHex},
			expected: `{"kind":"POINT","value":[34.23,-87],"srid":4326,"dimension":null}` + "\n",
		},
		{
			desc:     "wkt",
			args:     []string{"decode", "--format=wkt", pointSRIDHex},
			expected: "POINT (34.23 -87)\n",
		},
		{
			desc:     "ewkt",
			args:     []string{"decode", "-f", "ewkt", pointSRIDHex},
			expected: "SRID=4326;POINT (34.23 -87)\n",
		},
		{
			desc:     "ewkbhex",
			args:     []string{"decode", "--format=ewkbhex", "--byte-order=xdr", "\\x" + pointHex},
			expected: "00000000014041" + "1D70A3D70A3DC055C00000000000\n",
		},
		{
			desc:     "wkbhex",
			args:     []string{"decode", "--format=wkbhex", pointSRIDHex},
			expected: pointHex + "\n",
		},
		{
			desc:     "geohash",
			args:     []string{"decode", "--format=geohash", "--geohash-precision=5", geoHashPointHex},
			expected: "u4pru\n",
		},
		{
			desc:     "several inputs",
			args:     []string{"decode", "--format=wkt", pointHex, geoHashPointHex},
			expected: "POINT (34.23 -87)\nPOINT (10.40744 57.64911)\n",
		},
		{
			desc:     "curve as json",
			args:     []string{"decode", circularHex},
			expected: `{"kind":"CIRCULARSTRING","value":[[0,0],[1,1],[2,0]],"srid":null,"dimension":null}` + "\n",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			res := runCLI(t, "", tc.args...)
			require.NoError(t, res.err)
			require.Equal(t, tc.expected, res.stdout)
			require.Empty(t, res.stderr)
		})
	}
}

func TestDecodeStructuredFormats(t *testing.T) {
	res := runCLI(t, "", "decode", "--format=yaml", pointSRIDHex)
	require.NoError(t, res.err)
	require.True(t, strings.HasPrefix(res.stdout, "---\n"), res.stdout)
	require.Contains(t, res.stdout, "kind: POINT")
	require.Contains(t, res.stdout, "srid: 4326")
	require.Contains(t, res.stdout, "dimension: null")

	res = runCLI(t, "", "decode", "--format=pretty", pointHex)
	require.NoError(t, res.err)
	require.Contains(t, res.stdout, "ParsedGeometry{")

	res = runCLI(t, "", "decode", "--format=geojson", "--geojson-options=2", pointSRIDHex)
	require.NoError(t, res.err)
	require.Contains(t, res.stdout, `"EPSG:4326"`)

	res = runCLI(t, "", "decode", "--format=kml", pointHex)
	require.NoError(t, res.err)
	require.Contains(t, res.stdout, "<Point>")
}

func TestDecodeStdin(t *testing.T) {
	res := runCLI(t, "\n"+pointHex+"\n\n  "+pointSRIDHex+"  \n", "decode", "--format=ewkt")
	require.NoError(t, res.err)
	require.Equal(t, "POINT (34.23 -87)\nSRID=4326;POINT (34.23 -87)\n", res.stdout)
}

func TestDecodeFile(t *testing.T) {
	raw, err := hex.DecodeString(pointSRIDHex)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "point.wkb")
	require.NoError(t, os.WriteFile(path, raw, 0644))

	res := runCLI(t, "", "decode", "--format=ewkt", "--file", path)
	require.NoError(t, res.err)
	require.Equal(t, "SRID=4326;POINT (34.23 -87)\n", res.stdout)

	res = runCLI(t, "", "decode", "--file", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, res.err)
	require.Equal(t, exit.UnspecifiedError(), clierror.ExitCode(res.err))
}

func TestDecodeFailures(t *testing.T) {
	t.Run("bad input among good ones", func(t *testing.T) {
		res := runCLI(t, "", "decode", "--format=wkt", pointHex, badByteOrderHex, pointHex)
		require.EqualError(t, res.err, "1 of 3 inputs failed to decode")
		require.Equal(t, exit.DecodeFailed(), clierror.ExitCode(res.err))
		require.Equal(t, "POINT (34.23 -87)\nPOINT (34.23 -87)\n", res.stdout)
		require.Equal(t, "input 1: invalid byte order 0x03 (3) at byte 0\n", res.stderr)
	})

	t.Run("max depth", func(t *testing.T) {
		res := runCLI(t, "", "decode", "--max-depth=1", nestedHex)
		require.Equal(t, exit.DecodeFailed(), clierror.ExitCode(res.err))
		require.Equal(t, "input 0: geometry nesting exceeds maximum depth 1 at byte 19\n", res.stderr)

		res = runCLI(t, "", "decode", "--max-depth=2", nestedHex)
		require.NoError(t, res.err)
	})

	t.Run("curve as wkt", func(t *testing.T) {
		res := runCLI(t, "", "decode", "--format=wkt", circularHex)
		require.Equal(t, exit.ConversionFailed(), clierror.ExitCode(res.err))
		require.EqualError(t, res.err, "1 of 1 inputs could not be printed as wkt")
		require.Contains(t, res.stderr, "CIRCULARSTRING has no go-geom representation")
	})

	t.Run("bad hex", func(t *testing.T) {
		res := runCLI(t, "", "decode", "0x0g")
		require.Equal(t, exit.DecodeFailed(), clierror.ExitCode(res.err))
		require.Contains(t, res.stderr, "geo: decoding hex input")
	})
}

func TestFlagErrors(t *testing.T) {
	for _, args := range [][]string{
		{"decode", "--format=svg", pointHex},
		{"decode", "--byte-order=middle", pointHex},
		{"decode", "--no-such-flag", pointHex},
		{"decode", "--max-depth=0", pointHex},
		{"inspect", pointHex, pointHex},
	} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			res := runCLI(t, "", args...)
			require.Error(t, res.err)
			require.Equal(t, exit.CommandLineFlagError(), clierror.ExitCode(res.err), "%v", res.err)
		})
	}
}

func TestFlagsFromEnv(t *testing.T) {
	t.Setenv("GEOWKB_FORMAT", "ewkt")
	res := runCLI(t, "", "decode", pointSRIDHex)
	require.NoError(t, res.err)
	require.Equal(t, "SRID=4326;POINT (34.23 -87)\n", res.stdout)

	// The command line wins over the environment.
	res = runCLI(t, "", "decode", "--format=wkt", pointSRIDHex)
	require.NoError(t, res.err)
	require.Equal(t, "POINT (34.23 -87)\n", res.stdout)

	t.Setenv("GEOWKB_MAX_DEPTH", "not a number")
	res = runCLI(t, "", "decode", pointSRIDHex)
	require.Equal(t, exit.CommandLineFlagError(), clierror.ExitCode(res.err))
	require.True(t, strings.Contains(res.err.Error(), "GEOWKB_MAX_DEPTH"), "%v", res.err)
}

func TestInspect(t *testing.T) {
	// MULTIPOINT Z (1 2 3, 4 5 6) in ISO WKB, the second point big endian.
	input := "01EC03000002000000" +
		"01E9030000000000000000F03F00000000000000400000000000000840" +
		"00000003E9401000000000000040140000000000004018000000000000"
	res := runCLI(t, "", "inspect", input)
	require.NoError(t, res.err)
	for _, s := range []string{"offset", "MULTIPOINT", "0x000003ec", "0x000003e9", "XDR", "NDR", "38"} {
		require.Contains(t, res.stdout, s)
	}
	require.Equal(t, 3, strings.Count(res.stdout, "POINT"))

	res = runCLI(t, pointSRIDHex, "inspect")
	require.NoError(t, res.err)
	require.Contains(t, res.stdout, "4326")

	res = runCLI(t, "", "inspect", "0080000004000000020000000001")
	require.Equal(t, exit.DecodeFailed(), clierror.ExitCode(res.err))
	require.Contains(t, res.stdout, "MULTIPOINT")
	require.Equal(t,
		"Bad POINT with dimensions 0x0 (0) in MULTIPOINT, expected dimensions 0x80000000 (2147483648) at byte 10\n",
		res.stderr)
}

func TestDecodeFailureLogging(t *testing.T) {
	inputs := []string{badByteOrderHex, pointHex, badByteOrderHex}

	// Without verbosity failures only go to stderr.
	var logs bytes.Buffer
	decodeErrorLog = log.Every(time.Hour)
	res := runCLIWithLog(t, &logs, "", append([]string{"decode"}, inputs...)...)
	require.Equal(t, exit.DecodeFailed(), clierror.ExitCode(res.err))
	require.Equal(t, 2, strings.Count(res.stderr, "invalid byte order"))
	require.Empty(t, logs.String())

	// At verbosity 1 the log is rate limited.
	logs.Reset()
	decodeErrorLog = log.Every(time.Hour)
	res = runCLIWithLog(t, &logs, "", append([]string{"decode", "--verbosity=1"}, inputs...)...)
	require.Equal(t, 2, strings.Count(res.stderr, "invalid byte order"))
	require.Equal(t, 1, strings.Count(logs.String(), "decoding 42 byte input"), logs.String())
	require.Contains(t, logs.String(), "[decode,input=0]")

	// At verbosity 2 every failure is logged.
	logs.Reset()
	decodeErrorLog = log.Every(time.Hour)
	res = runCLIWithLog(t, &logs, "", append([]string{"decode", "--verbosity=2"}, inputs...)...)
	require.Equal(t, 2, strings.Count(logs.String(), "decoding 42 byte input"), logs.String())
}

func TestDecimalDigits(t *testing.T) {
	// POINT (34.23 -87) is printed in its shortest form by default.
	res := runCLI(t, "", "decode", "--format=wkt", pointHex)
	require.NoError(t, res.err)
	require.Equal(t, "POINT (34.23 -87)\n", res.stdout)

	res = runCLI(t, "", "decode", "--format=wkt", "--decimal-digits=1", pointHex)
	require.NoError(t, res.err)
	require.True(t, strings.HasPrefix(res.stdout, "POINT (34.2 "), res.stdout)

	// GeoJSON falls back to its own default instead of an unlimited precision.
	res = runCLI(t, "", "decode", "--format=geojson", pointHex)
	require.NoError(t, res.err)
	require.Contains(t, res.stdout, "34.23")
	require.NotContains(t, res.stdout, "34.229999")
}
