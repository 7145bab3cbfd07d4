// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

// Package log is a small leveled logger in the style of the CockroachDB
// logging package: every call takes a context whose log tags prefix the
// message, and message arguments go through redact so that sensitive values
// can be told apart from safe ones.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Severity is the severity of a log entry.
type Severity int32

const (
	SeverityInfo Severity = iota + 1
	SeverityWarning
	SeverityError
)

func (s Severity) letter() byte {
	switch s {
	case SeverityWarning:
		return 'W'
	case SeverityError:
		return 'E'
	}
	return 'I'
}

var logging struct {
	verbosity  atomic.Int32
	minSev     atomic.Int32
	redactable atomic.Bool

	mu struct {
		sync.Mutex
		out   io.Writer
		color *colorProfile
		now   func() time.Time
	}
}

func init() {
	logging.minSev.Store(int32(SeverityInfo))
	SetOutput(os.Stderr)
}

// SetOutput directs log entries to w. Colors are used only when w is a
// terminal.
func SetOutput(w io.Writer) {
	logging.mu.Lock()
	defer logging.mu.Unlock()
	logging.mu.out = w
	logging.mu.color = nil
	if f, ok := w.(*os.File); ok {
		logging.mu.color = colorProfileFor(f)
	}
	logging.mu.now = time.Now
}

// SetVerbosity sets the level up to which V and VEventf are enabled.
func SetVerbosity(level int32) {
	logging.verbosity.Store(level)
}

// SetMinSeverity suppresses entries below sev.
func SetMinSeverity(sev Severity) {
	logging.minSev.Store(int32(sev))
}

// SetRedactable controls whether entries keep redaction markers around
// unsafe values.
func SetRedactable(redactable bool) {
	logging.redactable.Store(redactable)
}

// V returns whether verbose logging at the given level is enabled.
func V(level int32) bool {
	return logging.verbosity.Load() >= level
}

// Infof logs to the INFO severity.
func Infof(ctx context.Context, format string, args ...interface{}) {
	logDepth(ctx, 1, SeverityInfo, format, args...)
}

// Warningf logs to the WARNING severity.
func Warningf(ctx context.Context, format string, args ...interface{}) {
	logDepth(ctx, 1, SeverityWarning, format, args...)
}

// Errorf logs to the ERROR severity.
func Errorf(ctx context.Context, format string, args ...interface{}) {
	logDepth(ctx, 1, SeverityError, format, args...)
}

// Logf logs to the given severity.
func Logf(ctx context.Context, sev Severity, format string, args ...interface{}) {
	logDepth(ctx, 1, sev, format, args...)
}

// VEventf logs to the INFO severity if verbosity is at least level.
func VEventf(ctx context.Context, level int32, format string, args ...interface{}) {
	if V(level) {
		logDepth(ctx, 1, SeverityInfo, format, args...)
	}
}

func logDepth(ctx context.Context, depth int, sev Severity, format string, args ...interface{}) {
	if int32(sev) < logging.minSev.Load() {
		return
	}
	file, line := "???", 0
	if _, f, l, ok := runtime.Caller(depth + 1); ok {
		file, line = filepath.Base(f), l
	}

	var buf strings.Builder
	formatTags(ctx, true /* brackets */, &buf)
	buf.WriteString(renderMessage(logging.redactable.Load(), format, args...))
	msg := buf.String()

	logging.mu.Lock()
	defer logging.mu.Unlock()
	now := logging.mu.now()
	var prefix, reset, timePrefix []byte
	if cp := logging.mu.color; cp != nil {
		prefix, reset, timePrefix = cp.prefix(sev), colorReset, cp.timePrefix
	}
	fmt.Fprintf(logging.mu.out, "%s%c%s%s%s%s %s:%d  %s\n",
		prefix, sev.letter(), reset,
		timePrefix, now.UTC().Format("060102 15:04:05.000000"), reset, file, line,
		strings.TrimSuffix(msg, "\n"))
}
