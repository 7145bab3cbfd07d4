// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

// Package cli implements the geowkb command line tool.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/geowkb/pkg/cli/clierror"
	"github.com/cockroachdb/geowkb/pkg/cli/exit"
	"github.com/cockroachdb/geowkb/pkg/util/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Proxy to allow overrides in tests.
var osStderr io.Writer = os.Stderr

var geowkbCmd = &cobra.Command{
	Use:   "geowkb [command] (flags)",
	Short: "WKB, ISO WKB and EWKB geometry decoder",
	Long: `
Decodes geometries in Well-Known Binary, ISO WKB and PostGIS Extended WKB,
given as raw bytes or as hex text.
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.EnableCommandSorting = false

	geowkbCmd.AddCommand(
		decodeCmd,
		inspectCmd,
	)
	geowkbCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return clierror.NewError(err, exit.CommandLineFlagError())
	})
}

// Main is the entry point for the geowkb binary.
func Main() {
	err := Run(os.Args[1:])
	if err == nil {
		exit.WithCode(exit.Success())
	}
	_ = clierror.CheckAndMaybeLog(err, log.Logf)
	fmt.Fprintf(osStderr, "ERROR: %v\n", err)
	exit.WithCode(clierror.ExitCode(err))
}

// Run runs the command line tool with the given arguments.
func Run(args []string) error {
	geowkbCmd.SetArgs(args)
	return geowkbCmd.Execute()
}

// resetFlags returns every flag of cmd and its subcommands to its default
// value, as if it had never been set.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// readInputs returns the inputs of a command: the positional arguments if
// there are any, else the contents of --file, else one input per non-empty
// line of stdin.
func readInputs(cmd *cobra.Command, args []string) ([][]byte, error) {
	if len(args) > 0 {
		inputs := make([][]byte, len(args))
		for i, arg := range args {
			inputs[i] = []byte(arg)
		}
		return inputs, nil
	}
	if cliCtx.file != "" {
		b, err := os.ReadFile(cliCtx.file)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", cliCtx.file)
		}
		return [][]byte{b}, nil
	}
	var inputs [][]byte
	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(nil, 64<<20)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			inputs = append(inputs, []byte(line))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading stdin")
	}
	return inputs, nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
