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
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/geowkb/pkg/cli/clierror"
	"github.com/cockroachdb/geowkb/pkg/cli/exit"
	"github.com/cockroachdb/geowkb/pkg/geo/geowkb"
	"github.com/cockroachdb/geowkb/pkg/util/log"
	"github.com/cockroachdb/logtags"
	"github.com/cockroachdb/redact"
	"github.com/spf13/cobra"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [<hex>...]",
	Short: "decode geometries and print them",
	Long: `
Decodes each geometry given as an argument. Without arguments the geometry
in --file is decoded, or else every non-empty line of standard input.

Inputs that fail to decode are reported on standard error; the others are
still printed.
`,
	RunE: runDecode,
}

// decodeErrorLog limits how often decode failures are logged at verbosity 1
// when many inputs are streamed through stdin. Every failure is still
// reported on stderr.
var decodeErrorLog = log.Every(time.Second)

func runDecode(cmd *cobra.Command, args []string) error {
	inputs, err := readInputs(cmd, args)
	if err != nil {
		return err
	}
	ctx := logtags.AddTag(cmdContext(cmd), "decode", nil)
	d := geowkb.NewDecoder(geowkb.WithMaxDepth(cliCtx.maxDepth))
	out := cmd.OutOrStdout()

	var decodeFailures, conversionFailures int
	for i, input := range inputs {
		ctx := logtags.AddTag(ctx, "input", i)
		pg, err := decodeInput(ctx, d, input)
		if err != nil {
			decodeFailures++
			if log.V(1) && decodeErrorLog.ShouldLog() {
				log.Infof(ctx, "decoding %d byte input: %v", redact.Safe(len(input)), err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "input %d: %v\n", i, err)
			continue
		}
		s, err := formatGeometry(pg, cliCtx.format)
		if err != nil {
			conversionFailures++
			fmt.Fprintf(cmd.ErrOrStderr(), "input %d: %v\n", i, err)
			continue
		}
		fmt.Fprint(out, s)
	}

	switch {
	case decodeFailures > 0:
		return clierror.NewError(
			errors.Newf("%d of %d inputs failed to decode",
				redact.Safe(decodeFailures), redact.Safe(len(inputs))),
			exit.DecodeFailed())
	case conversionFailures > 0:
		return clierror.NewError(
			errors.Newf("%d of %d inputs could not be printed as %s",
				redact.Safe(conversionFailures), redact.Safe(len(inputs)), redact.Safe(cliCtx.format.String())),
			exit.ConversionFailed())
	}
	return nil
}
