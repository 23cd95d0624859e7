// Package virtual implements the windowed row renderer used by the document
// view: a height cache for measured rows, a windower that turns a scroll
// offset into the range of rows that must be materialized, a measurer that
// reports rendered heights back into the cache, and a coordinator that
// schedules deferred re-measurement after row-level interactions.
//
// Everything in this package runs on the Bubble Tea update loop. Deferred
// work is expressed as tea.Cmd values that deliver a message back into
// Update; nothing here starts goroutines or locks.
package virtual

import (
	"math"
	"strconv"
)

// Default sizing used when the caller does not configure the cache.
const (
	DefaultRowHeight = 200.0
	DefaultMinHeight = 100.0
)

// HeightCache stores measured row heights.
//
// Entries are keyed by a stable row key. An index→key table, installed with
// SetKeys whenever the row structure changes, lets callers keep addressing
// rows by index while heights follow the row they were measured for. When
// no table is installed the cache is purely positional.
type HeightCache struct {
	defaultHeight float64
	minHeight     float64

	heights map[string]float64
	keys    []string
}

// NewHeightCache returns an empty cache. Non-positive sizes fall back to the
// package defaults; a default below the minimum is raised to the minimum.
func NewHeightCache(defaultHeight, minHeight float64) *HeightCache {
	if !(minHeight > 0) || math.IsInf(minHeight, 0) {
		minHeight = DefaultMinHeight
	}
	if !(defaultHeight > 0) || math.IsInf(defaultHeight, 0) {
		defaultHeight = DefaultRowHeight
	}
	if defaultHeight < minHeight {
		defaultHeight = minHeight
	}
	return &HeightCache{
		defaultHeight: defaultHeight,
		minHeight:     minHeight,
		heights:       make(map[string]float64),
	}
}

// DefaultHeight is the estimate returned for unmeasured rows.
func (c *HeightCache) DefaultHeight() float64 { return c.defaultHeight }

// MinHeight is the floor applied to every measured value.
func (c *HeightCache) MinHeight() float64 { return c.minHeight }

// SetKeys installs the index→key table. Heights already measured under a
// key survive, so a reorder moves each height with its row. A nil slice
// switches back to positional keying.
func (c *HeightCache) SetKeys(keys []string) {
	c.keys = keys
}

// Key returns the cache key for row.
func (c *HeightCache) Key(row int) string {
	if row >= 0 && row < len(c.keys) {
		return c.keys[row]
	}
	return "#" + strconv.Itoa(row)
}

// Get returns the measured height of row or the default height.
func (c *HeightCache) Get(row int) float64 {
	h, ok := c.heights[c.Key(row)]
	if !ok || !valid(h) {
		return c.defaultHeight
	}
	return h
}

// RowHeight is Get under the name the windower uses. It is a plain map
// lookup and never triggers measurement.
func (c *HeightCache) RowHeight(row int) float64 { return c.Get(row) }

// Has reports whether row has a measured entry.
func (c *HeightCache) Has(row int) bool {
	h, ok := c.heights[c.Key(row)]
	return ok && valid(h)
}

// Set stores a measured height for row, clamped to the minimum height.
// Malformed values (NaN, ±Inf) are ignored and the row stays unmeasured.
func (c *HeightCache) Set(row int, h float64) {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return
	}
	if h < c.minHeight {
		h = c.minHeight
	}
	c.heights[c.Key(row)] = h
}

// Clear reverts row to the default height.
func (c *HeightCache) Clear(row int) {
	delete(c.heights, c.Key(row))
}

// Retain drops every entry whose key is not in keep. Positional entries go
// too once a key table is installed.
func (c *HeightCache) Retain(keep map[string]int) {
	for key := range c.heights {
		if _, ok := keep[key]; !ok {
			delete(c.heights, key)
		}
	}
}

// ClearAll drops every measured entry.
func (c *HeightCache) ClearAll() {
	c.heights = make(map[string]float64)
}

// Len is the number of measured entries.
func (c *HeightCache) Len() int { return len(c.heights) }

func valid(h float64) bool {
	return !math.IsNaN(h) && !math.IsInf(h, 0) && h > 0
}
