// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package geopb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBoundingBox(t *testing.T) {
	b := NewBoundingBox()
	require.True(t, b.Empty())

	b.Update(-3, 2)
	require.False(t, b.Empty())
	require.Equal(t, BoundingBox{LoX: -3, HiX: -3, LoY: 2, HiY: 2}, *b)

	b.Update(5, -1)
	b.Update(0, 0)
	require.Equal(t, BoundingBox{LoX: -3, HiX: 5, LoY: -1, HiY: 2}, *b)
}
