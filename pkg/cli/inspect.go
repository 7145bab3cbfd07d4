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
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/geowkb/pkg/cli/clierror"
	"github.com/cockroachdb/geowkb/pkg/cli/exit"
	"github.com/cockroachdb/geowkb/pkg/geo/geowkb"
	"github.com/cockroachdb/logtags"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [<hex>]",
	Short: "print the geometry headers of a WKB value",
	Long: `
Prints one row per geometry header of the input, outermost first: where the
header starts, how deeply it is nested, its byte order, its raw type code and
what the type code means. When decoding fails, the headers read up to the
failure are printed, followed by the error.
`,
	Args: func(cmd *cobra.Command, args []string) error {
		if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
			return clierror.NewError(err, exit.CommandLineFlagError())
		}
		return nil
	},
	RunE: runInspect,
}

var inspectColumns = []string{"offset", "depth", "order", "code", "kind", "dimension", "srid"}

func runInspect(cmd *cobra.Command, args []string) error {
	inputs, err := readInputs(cmd, args)
	if err != nil {
		return err
	}
	if len(inputs) != 1 {
		return clierror.NewError(
			errors.Newf("expected exactly one input, got %d", len(inputs)),
			exit.CommandLineFlagError())
	}
	ctx := logtags.AddTag(cmdContext(cmd), "inspect", nil)

	var rows [][]string
	d := geowkb.NewDecoder(
		geowkb.WithMaxDepth(cliCtx.maxDepth),
		geowkb.WithHeaderTrace(func(h geowkb.Header) {
			rows = append(rows, headerRow(h))
		}),
	)
	_, decodeErr := decodeInput(ctx, d, inputs[0])
	renderHeaderTable(cmd.OutOrStdout(), rows)
	if decodeErr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", decodeErr)
		return clierror.NewError(decodeErr, exit.DecodeFailed())
	}
	return nil
}

func headerRow(h geowkb.Header) []string {
	order := "NDR"
	if h.ByteOrder == binary.BigEndian {
		order = "XDR"
	}
	srid := ""
	if h.HasSRID {
		srid = strconv.FormatUint(uint64(h.SRID), 10)
	}
	return []string{
		strconv.Itoa(h.Offset),
		strconv.Itoa(h.Depth),
		order,
		fmt.Sprintf("0x%08x", uint32(h.Code)),
		strings.Repeat("  ", h.Depth) + h.Kind.String(),
		h.Dimension.String(),
		srid,
	}
}

// renderHeaderTable prints rows as an ASCII table.
func renderHeaderTable(w io.Writer, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader(inspectColumns)
	table.AppendBulk(rows)
	table.Render()
}
