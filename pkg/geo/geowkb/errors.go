// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package geowkb

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
)

// Markers classifying decode failures. Use errors.Is to test for them; every
// error returned by Decode carries exactly one.
var (
	ErrInsufficientInput    = errors.New("insufficient input")
	ErrInvalidByteOrder     = errors.New("invalid byte order")
	ErrUnsupportedType      = errors.New("unsupported geometry type")
	ErrUnsupportedDimension = errors.New("unsupported dimension")
	ErrTypeMismatch         = errors.New("type mismatch in container")
	ErrMalformedInput       = errors.New("malformed input")
	ErrResourceLimit        = errors.New("resource limit exceeded")
)

func newInsufficientInputError(need, remaining int) error {
	return errors.Mark(
		errors.Newf("insufficient input: need %d bytes, %d remaining",
			redact.Safe(need), redact.Safe(remaining)),
		ErrInsufficientInput)
}

func newInvalidByteOrderError(b byte) error {
	return errors.Mark(
		errors.Newf("invalid byte order 0x%02x (%d)", redact.Safe(b), redact.Safe(b)),
		ErrInvalidByteOrder)
}

func newUnsupportedTypeError(c TypeCode) error {
	return errors.Mark(
		errors.Newf("unsupported geometry type %s: code %d (0x%x)",
			BaseKind(c), redact.Safe(uint32(c)), redact.Safe(uint32(c))),
		ErrUnsupportedType)
}

func newUnsupportedDimensionError(k Kind, bits TypeCode) error {
	return errors.Mark(
		errors.Newf("unsupported dimensions 0x%x (%d) for %s",
			redact.Safe(uint32(bits)), redact.Safe(uint32(bits)), k),
		ErrUnsupportedDimension)
}

func newResourceLimitError(maxDepth int) error {
	return errors.Mark(
		errors.Newf("geometry nesting exceeds maximum depth %d", redact.Safe(maxDepth)),
		ErrResourceLimit)
}

// MismatchClass says how a nested geometry failed its container's type check.
type MismatchClass uint8

const (
	// MismatchBad is an allowed kind carrying the wrong dimension encoding.
	MismatchBad MismatchClass = iota + 1
	// MismatchUnexpected is a kind the container does not allow.
	MismatchUnexpected
)

func (c MismatchClass) String() string {
	switch c {
	case MismatchBad:
		return "Bad"
	case MismatchUnexpected:
		return "Unexpected"
	}
	return "Unknown"
}

// TypeMismatchError reports a nested geometry whose header does not match
// what its container allows. It is always marked with ErrTypeMismatch.
type TypeMismatchError struct {
	Class      MismatchClass
	Container  Kind
	Child      Kind
	ChildBits  TypeCode
	Expected   []Kind
	ParentBits TypeCode
}

var _ error = (*TypeMismatchError)(nil)

func (e *TypeMismatchError) Error() string { return fmt.Sprint(e) }

// SafeFormatError implements errors.SafeFormatter.
func (e *TypeMismatchError) SafeFormatError(p errors.Printer) (next error) {
	p.Printf("%s %s with dimensions 0x%x (%d) in %s, expected ",
		redact.Safe(e.Class), e.Child,
		redact.Safe(uint32(e.ChildBits)), redact.Safe(uint32(e.ChildBits)),
		e.Container)
	if e.Class == MismatchUnexpected {
		p.Printf("%s with ", redact.SafeString(joinKinds(e.Expected)))
	}
	p.Printf("dimensions 0x%x (%d)",
		redact.Safe(uint32(e.ParentBits)), redact.Safe(uint32(e.ParentBits)))
	return nil
}

// Format implements fmt.Formatter.
func (e *TypeMismatchError) Format(s fmt.State, verb rune) { errors.FormatError(e, s, verb) }

// joinKinds renders "A", "A or B", "A, B or C".
func joinKinds(kinds []Kind) string {
	var b strings.Builder
	for i, k := range kinds {
		switch {
		case i == 0:
		case i == len(kinds)-1:
			b.WriteString(" or ")
		default:
			b.WriteString(", ")
		}
		b.WriteString(k.String())
	}
	return b.String()
}

func newTypeMismatchError(
	container Kind, child TypeCode, expected []Kind, parentBits TypeCode,
) error {
	childKind := BaseKind(child)
	class := MismatchUnexpected
	for _, k := range expected {
		if k == childKind {
			class = MismatchBad
			break
		}
	}
	return errors.Mark(&TypeMismatchError{
		Class:      class,
		Container:  container,
		Child:      childKind,
		ChildBits:  DimensionEncodingOf(child).Bits,
		Expected:   expected,
		ParentBits: parentBits,
	}, ErrTypeMismatch)
}

// PositionError annotates a decode failure with the offset of the read that
// triggered it. Its message is the cause followed by "at byte N".
type PositionError struct {
	cause error
	pos   int
}

var _ error = (*PositionError)(nil)

func withPosition(err error, pos int) error {
	if err == nil {
		return nil
	}
	return &PositionError{cause: err, pos: pos}
}

// Position returns the byte offset of the failing read.
func (e *PositionError) Position() int { return e.pos }

// Unwrap returns the classified cause.
func (e *PositionError) Unwrap() error { return e.cause }

func (e *PositionError) Error() string {
	return fmt.Sprintf("%s at byte %d", e.cause.Error(), e.pos)
}
