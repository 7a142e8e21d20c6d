// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aseq

import (
	"context"

	"code.hybscloud.com/atomix"
)

// Session lifecycle states. The order is total and never revisited:
// a cursor only ever moves forward through New → Allocated → Iterating
// → Disposed.
const (
	stateNew uint32 = iota
	stateAllocated
	stateIterating
	stateDisposed
)

// operator is the structural interface every operator supplies on top of
// the shared lifecycle engine. All four capabilities are required.
type operator[T any] interface {
	// clone returns the core of a fresh, unstarted instance built from the
	// same immutable configuration.
	clone() *core[T]
	// setup runs at session acquisition. A non-nil error disposes the
	// partially-built session and is reported from Open.
	setup(ctx context.Context) error
	// step runs one advance: (true, nil) produced a value into current,
	// (false, nil) exhausted, (false, err) failed.
	step() (bool, error)
	// release frees operator-held resources (nested cursors, queues,
	// background work). Must tolerate a session that never started.
	release() error
}

// core is the shared lifecycle engine embedded by every operator.
// It implements both [Seq] and [Cursor]; operators write produced values
// into current from their step hook.
type core[T any] struct {
	op      operator[T]
	state   atomix.Uint32
	ctx     context.Context
	serial  Serial
	current T
	valid   bool
}

// init wires the back-pointer from the engine to its operator.
// Called once by each operator constructor.
func (c *core[T]) init(op operator[T]) {
	c.op = op
}

// Open implements [Seq]. The factory value itself is claimed as the session
// when it wins the New→Allocated transition, avoiding an allocation; every
// other Open clones an independent session from immutable configuration.
func (c *core[T]) Open(ctx context.Context) (Cursor[T], error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cur := c
	if !c.state.CompareAndSwap(stateNew, stateAllocated) {
		cur = c.op.clone()
		cur.state.Store(stateAllocated)
	}
	cur.ctx = ctx
	cur.serial = nextSerial()
	if err := cur.op.setup(ctx); err != nil {
		// The setup failure takes priority over any teardown failure.
		_ = cur.Close()
		return nil, err
	}
	return cur, nil
}

// Next implements [Cursor]. Exactly one failure path exists: whatever the
// operator's step raises, immediately or after internal suspension, the
// session is closed before the failure is returned.
func (c *core[T]) Next() (bool, error) {
	switch c.state.Load() {
	case stateDisposed:
		return false, nil
	case stateNew:
		return false, ErrNotOpen
	case stateAllocated:
		c.state.CompareAndSwap(stateAllocated, stateIterating)
	}
	if err := c.ctx.Err(); err != nil {
		c.valid = false
		_ = c.Close()
		return false, err
	}
	ok, err := c.op.step()
	if err != nil {
		c.valid = false
		// The in-flight failure takes priority over teardown failures.
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

// Value implements [Cursor].
func (c *core[T]) Value() (T, error) {
	if !c.valid || c.state.Load() == stateDisposed {
		var zero T
		return zero, ErrNoValue
	}
	return c.current, nil
}

// Close implements [Cursor]. The atomic swap makes disposal idempotent and
// safe to race with itself; release runs at most once. Teardown is
// inside-out: operator resources first, then the engine's value slot.
func (c *core[T]) Close() error {
	if c.state.Swap(stateDisposed) == stateDisposed {
		return nil
	}
	err := c.op.release()
	c.valid = false
	var zero T
	c.current = zero
	return err
}

// Serial implements [Cursor].
func (c *core[T]) Serial() Serial {
	return c.serial
}
