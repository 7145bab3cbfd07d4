// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package log

import (
	"context"
	"strings"

	"github.com/cockroachdb/logtags"
	"github.com/cockroachdb/redact"
)

// FormatWithContextTags formats the string and prepends the context
// tags.
//
// Redaction markers are *not* inserted. The resulting
// string is generally unsafe for reporting.
func FormatWithContextTags(ctx context.Context, format string, args ...interface{}) string {
	var buf strings.Builder
	formatTags(ctx, true /* brackets */, &buf)
	buf.WriteString(redact.Sprintf(format, args...).StripMarkers())
	return buf.String()
}

// formatTags writes the log tags of ctx to buf as "[k1=v1,k2] ". It writes
// nothing if ctx carries no tags.
func formatTags(ctx context.Context, brackets bool, buf *strings.Builder) {
	tags := logtags.FromContext(ctx)
	if tags == nil {
		return
	}
	list := tags.Get()
	if len(list) == 0 {
		return
	}
	if brackets {
		buf.WriteByte('[')
	}
	for i := range list {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(list[i].Key())
		if v := list[i].ValueStr(); v != "" {
			if len(list[i].Key()) > 1 {
				buf.WriteByte('=')
			}
			buf.WriteString(v)
		}
	}
	if brackets {
		buf.WriteString("] ")
	}
}

// renderMessage formats the payload of a log entry. When redactable is set
// unsafe arguments keep their redaction markers.
func renderMessage(redactable bool, format string, args ...interface{}) string {
	msg := redact.Sprintf(format, args...)
	if redactable {
		return string(msg)
	}
	return msg.StripMarkers()
}
