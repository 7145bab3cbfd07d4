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
	"os"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/geowkb/pkg/cli/clierror"
	"github.com/cockroachdb/geowkb/pkg/cli/cliflags"
	"github.com/cockroachdb/geowkb/pkg/cli/exit"
	"github.com/cockroachdb/geowkb/pkg/util/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// AddPersistentPreRunE add 'fn' as a persistent pre-run function to 'cmd'.
// If the command has an existing pre-run function, it is saved and will be called
// at the beginning of 'fn'.
func AddPersistentPreRunE(cmd *cobra.Command, fn func(*cobra.Command, []string) error) {
	// Save any existing hooks.
	wrapped := cmd.PersistentPreRunE

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Run the previous hook if it exists.
		if wrapped != nil {
			if err := wrapped(cmd, args); err != nil {
				return err
			}
		}

		// Now we can call the new function.
		return fn(cmd, args)
	}
}

// setFlagFromEnv applies the flag's environment variable, if set, unless the
// flag was given on the command line.
func setFlagFromEnv(f *pflag.FlagSet, flagInfo cliflags.FlagInfo) error {
	if flagInfo.EnvVar == "" || f.Changed(flagInfo.Name) {
		return nil
	}
	if value, set := os.LookupEnv(flagInfo.EnvVar); set {
		if err := f.Set(flagInfo.Name, value); err != nil {
			return errors.Wrapf(err, "invalid value for %s", flagInfo.EnvVar)
		}
	}
	return nil
}

// envFlags lists, per flag set, the flags that can also be set from the
// environment.
var envFlags = map[*pflag.FlagSet][]cliflags.FlagInfo{}

// applyEnvFlags sets every registered flag of cmd that was not given on the
// command line from its environment variable.
func applyEnvFlags(cmd *cobra.Command) error {
	for _, fs := range []*pflag.FlagSet{cmd.Flags(), cmd.PersistentFlags(), cmd.Root().PersistentFlags()} {
		for _, flagInfo := range envFlags[fs] {
			if err := setFlagFromEnv(fs, flagInfo); err != nil {
				return err
			}
		}
	}
	return nil
}

func registerEnv(f *pflag.FlagSet, flagInfo cliflags.FlagInfo) {
	if flagInfo.EnvVar != "" {
		envFlags[f] = append(envFlags[f], flagInfo)
	}
}

// StringFlag creates a string flag and registers it with the FlagSet.
func StringFlag(f *pflag.FlagSet, valPtr *string, flagInfo cliflags.FlagInfo, defaultVal string) {
	f.StringVarP(valPtr, flagInfo.Name, flagInfo.Shorthand, defaultVal, flagInfo.Usage())
	registerEnv(f, flagInfo)
}

// IntFlag creates an int flag and registers it with the FlagSet.
func IntFlag(f *pflag.FlagSet, valPtr *int, flagInfo cliflags.FlagInfo, defaultVal int) {
	f.IntVarP(valPtr, flagInfo.Name, flagInfo.Shorthand, defaultVal, flagInfo.Usage())
	registerEnv(f, flagInfo)
}

// VarFlag creates a custom-variable flag and registers it with the FlagSet.
func VarFlag(f *pflag.FlagSet, value pflag.Value, flagInfo cliflags.FlagInfo) {
	f.VarP(value, flagInfo.Name, flagInfo.Shorthand, flagInfo.Usage())
	registerEnv(f, flagInfo)
}

func init() {
	initCLIDefaults()

	pf := geowkbCmd.PersistentFlags()
	IntFlag(pf, &cliCtx.verbosity, cliflags.Verbosity, cliCtx.verbosity)
	IntFlag(pf, &cliCtx.maxDepth, cliflags.MaxDepth, cliCtx.maxDepth)
	StringFlag(pf, &cliCtx.file, cliflags.File, cliCtx.file)

	f := decodeCmd.Flags()
	VarFlag(f, &cliCtx.format, cliflags.Format)
	VarFlag(f, &cliCtx.byteOrder, cliflags.ByteOrder)
	IntFlag(f, &cliCtx.decimalDigits, cliflags.DecimalDigits, cliCtx.decimalDigits)
	IntFlag(f, &cliCtx.geoJSONOptions, cliflags.GeoJSONOptions, cliCtx.geoJSONOptions)
	IntFlag(f, &cliCtx.geoHashPrecision, cliflags.GeoHashPrecision, cliCtx.geoHashPrecision)

	AddPersistentPreRunE(geowkbCmd, func(cmd *cobra.Command, _ []string) error {
		if err := applyEnvFlags(cmd); err != nil {
			return clierror.NewError(err, exit.CommandLineFlagError())
		}
		if cliCtx.maxDepth < 1 {
			return clierror.NewError(
				errors.Newf("--%s must be at least 1", cliflags.MaxDepth.Name),
				exit.CommandLineFlagError())
		}
		log.SetVerbosity(int32(cliCtx.verbosity))
		return nil
	})
}
