// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

// Package clierror attaches process exit codes and log severities to the
// errors returned by CLI commands.
package clierror

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/geowkb/pkg/cli/exit"
	"github.com/cockroachdb/geowkb/pkg/util/log"
)

// Error wraps another error with an exit code and the severity at which it
// should be logged.
type Error struct {
	exitCode exit.Code
	severity log.Severity
	cause    error
}

var _ error = (*Error)(nil)

// NewError wraps err with an exit code. It is logged at the ERROR severity.
func NewError(err error, code exit.Code) error {
	return NewErrorWithSeverity(err, code, log.SeverityError)
}

// NewErrorWithSeverity wraps err with an exit code and a log severity.
func NewErrorWithSeverity(err error, code exit.Code, severity log.Severity) error {
	return &Error{exitCode: code, severity: severity, cause: err}
}

// GetExitCode returns the exit code attached to the error.
func (e *Error) GetExitCode() exit.Code { return e.exitCode }

// GetSeverity returns the log severity attached to the error.
func (e *Error) GetSeverity() log.Severity { return e.severity }

// Error implements the error interface.
func (e *Error) Error() string { return fmt.Sprintf("%v", e.cause) }

// Cause implements causer.
func (e *Error) Cause() error { return e.cause }

// Unwrap implements the Go 1.13 wrapper interface.
func (e *Error) Unwrap() error { return e.cause }

// Format implements fmt.Formatter.
func (e *Error) Format(s fmt.State, verb rune) { errors.FormatError(e, s, verb) }

// FormatError implements errors.Formatter.
func (e *Error) FormatError(p errors.Printer) error {
	if p.Detail() {
		p.Printf("error with exit code: %s", e.exitCode)
	}
	return e.cause
}

// ExitCode returns the exit code attached to the outermost *Error in err's
// chain, or exit.UnspecifiedError() if there is none.
func ExitCode(err error) exit.Code {
	var cliErr *Error
	if errors.As(err, &cliErr) {
		return cliErr.exitCode
	}
	return exit.UnspecifiedError()
}

// CheckAndMaybeLog reports err through logger, at the severity attached to
// the outermost *Error in its chain or at ERROR if there is none. Only that
// one layer is removed before logging. err is returned unchanged.
func CheckAndMaybeLog(
	err error, logger func(context.Context, log.Severity, string, ...interface{}),
) error {
	if err == nil {
		return nil
	}
	severity := log.SeverityError
	cause := err
	var cliErr *Error
	if errors.As(err, &cliErr) {
		severity = cliErr.severity
		cause = cliErr.cause
	}
	logger(context.Background(), severity, "%v", cause)
	return err
}
