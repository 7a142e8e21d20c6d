// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aseq

import (
	"context"

	"code.hybscloud.com/atomix"
)

// createSeq adapts three raw callbacks into a conformant session without
// authoring a full operator type. It represents a single already-open
// iteration, not a reusable Seq: a second Open is a usage error.
type createSeq[T any] struct {
	next    func(context.Context) (bool, error)
	value   func() T
	dispose func(context.Context) error

	ctx    context.Context
	serial Serial
	opened atomix.Uint32
	closed atomix.Uint32
	valid  bool
}

// Create builds a [Seq] from raw advance, read and dispose callbacks.
// The result is intentionally not re-enumerable: the first Open returns the
// adapter itself and any further Open fails with [ErrNotSupported].
// dispose may be nil; it is invoked at most once even under concurrent or
// repeated Close calls.
func Create[T any](next func(context.Context) (bool, error), value func() T, dispose func(context.Context) error) Seq[T] {
	if next == nil {
		panic("aseq: Create: nil next")
	}
	if value == nil {
		panic("aseq: Create: nil value")
	}
	return &createSeq[T]{next: next, value: value, dispose: dispose}
}

func (c *createSeq[T]) Open(ctx context.Context) (Cursor[T], error) {
	if !c.opened.CompareAndSwap(0, 1) {
		return nil, ErrNotSupported
	}
	if ctx == nil {
		ctx = context.Background()
	}
	c.ctx = ctx
	c.serial = nextSerial()
	return c, nil
}

func (c *createSeq[T]) Next() (bool, error) {
	if c.closed.Load() != 0 {
		return false, nil
	}
	if c.opened.Load() == 0 {
		return false, ErrNotOpen
	}
	if err := c.ctx.Err(); err != nil {
		c.valid = false
		_ = c.Close()
		return false, err
	}
	ok, err := c.next(c.ctx)
	if err != nil {
		c.valid = false
		// The advance failure takes priority over teardown failures.
		_ = c.Close()
		return false, err
	}
	c.valid = ok
	if !ok {
		if cerr := c.Close(); cerr != nil {
			return false, cerr
		}
	}
	return ok, nil
}

func (c *createSeq[T]) Value() (T, error) {
	if !c.valid || c.closed.Load() != 0 {
		var zero T
		return zero, ErrNoValue
	}
	return c.value(), nil
}

// Close exchanges the stored dispose callback for an empty marker through
// the atomic gate, so concurrent or repeated closes run the underlying
// cleanup at most once.
func (c *createSeq[T]) Close() error {
	if !c.closed.CompareAndSwap(0, 1) {
		return nil
	}
	c.valid = false
	d := c.dispose
	c.dispose = nil
	if d == nil {
		return nil
	}
	ctx := c.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return d(ctx)
}

func (c *createSeq[T]) Serial() Serial {
	return c.serial
}
