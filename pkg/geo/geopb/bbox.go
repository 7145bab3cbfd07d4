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

import "math"

// BoundingBox is the planar extent of a geometry.
type BoundingBox struct {
	LoX, HiX float64
	LoY, HiY float64
}

// NewBoundingBox returns a bounding box that contains nothing; the first
// Update sets it to that point.
func NewBoundingBox() *BoundingBox {
	return &BoundingBox{
		LoX: math.MaxFloat64,
		HiX: -math.MaxFloat64,
		LoY: math.MaxFloat64,
		HiY: -math.MaxFloat64,
	}
}

// Update extends the BoundingBox to contain (x, y).
func (b *BoundingBox) Update(x, y float64) {
	b.LoX = math.Min(b.LoX, x)
	b.HiX = math.Max(b.HiX, x)
	b.LoY = math.Min(b.LoY, y)
	b.HiY = math.Max(b.HiY, y)
}

// Empty returns whether no point was ever added.
func (b *BoundingBox) Empty() bool {
	return b.LoX > b.HiX
}
