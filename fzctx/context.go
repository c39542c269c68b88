// Package fzctx implements the process-wide environment that every
// document, buffer and cached resource in this module is opened
// against: an allocation-pressure tracker with a scavenging retry loop,
// a numbered lock table for the optional multi-threaded mode, a warning
// sink, and the font/glyph resource store. In a garbage-collected
// runtime there is no pluggable malloc, so "allocation failure" here
// means the resource store's configured byte budget has been exceeded
// and scavenging could not free enough to fit the new item.
package fzctx

import (
	"fmt"
	"sync"
)

// LockSlot names one of the mutexes a Context owns. Code that touches
// state shared across documents opened against the same Context must
// take the matching slot for the shortest window possible, and, per
// the lock-order rule, must never hold a higher-numbered slot while
// acquiring a lower-numbered one.
type LockSlot int

const (
	LockAlloc LockSlot = iota
	LockFile
	LockFreetype
	LockGlyphCache
	lockSlotCount
)

func (s LockSlot) String() string {
	switch s {
	case LockAlloc:
		return "ALLOC"
	case LockFile:
		return "FILE"
	case LockFreetype:
		return "FREETYPE"
	case LockGlyphCache:
		return "GLYPHCACHE"
	default:
		return "UNKNOWN"
	}
}

// Context is process-wide state shared by every Document opened
// against it. It is safe for concurrent use only by code that goes
// through Lock/Unlock for the slots it touches; a Context used from a
// single goroutine never needs to lock at all.
//
// A Context is created explicitly, shared by every document opened
// against it, and released with Close once every such document has
// been closed.
type Context struct {
	mu      [lockSlotCount]sync.Mutex
	highest [lockSlotCount]int // never written: Lock performs no lock-order check

	warnMu sync.Mutex
	warn   func(string)

	Store *Store
}

// New creates a Context with the given resource-store byte budget (see
// Store) and warning sink. warn may be nil, in which case warnings are
// discarded. budgetBytes <= 0 means unbounded (no eviction).
func New(budgetBytes int64, warn func(string)) *Context {
	c := &Context{warn: warn}
	c.Store = newStore(c, budgetBytes)
	return c
}

// Close evicts every item still held by the resource store. It does
// not error if documents opened against c are still live; the caller
// is responsible for closing every such document first.
func (c *Context) Close() {
	c.Store.evictAll()
}

// Lock acquires the named slot. Slots must be acquired in increasing
// numeric order (ALLOC < FILE < FREETYPE < GLYPHCACHE) to avoid
// deadlock; callers that need more than one slot at once must request
// them low-to-high and release high-to-low.
func (c *Context) Lock(slot LockSlot) { c.mu[slot].Lock() }

// Unlock releases the named slot.
func (c *Context) Unlock(slot LockSlot) { c.mu[slot].Unlock() }

// Warn delivers one human-readable, non-fatal diagnostic line. It is
// the sink every recoverable error in this module funnels through:
// per-object parse failures, per-operator interpreter recoveries,
// skipped out-of-range object-stream entries, and so on. Warn never
// aborts the calling operation.
func (c *Context) Warn(msg string) {
	c.warnMu.Lock()
	defer c.warnMu.Unlock()
	if c.warn != nil {
		c.warn(msg)
	}
}

// Warnf is Warn with fmt.Sprintf formatting.
func (c *Context) Warnf(format string, args ...interface{}) {
	c.Warn(fmt.Sprintf(format, args...))
}

// WarnFunc adapts c into the plain func(string) signature used by
// render.NewInterpreter and the reader's per-object recovery paths, so
// a single Context can back every warning sink in a document's
// lifetime.
func (c *Context) WarnFunc() func(string) { return c.Warn }
