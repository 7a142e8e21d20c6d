// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aseq

import (
	"context"
)

// Observer is the synchronous callback set for [Do]. Next is required;
// Error and Complete are optional and validated independently.
// All callbacks run to completion on the advancing goroutine.
type Observer[T any] struct {
	// Next is invoked with every produced value before it is yielded.
	Next func(T)
	// Error is invoked with any non-cancellation failure before it is
	// re-raised. It observes, never suppresses.
	Error func(error)
	// Complete is invoked exactly once on normal exhaustion.
	Complete func()
}

// ObserverCtx is the suspending callback set for [DoCtx]. Callbacks receive
// the session context and may fail; a callback failure fails the advance.
type ObserverCtx[T any] struct {
	Next     func(context.Context, T) error
	Error    func(context.Context, error) error
	Complete func(context.Context) error
}

// doSeq is a transparent tap: every value, the terminal success, and any
// failure are observed without altering what is yielded.
type doSeq[T any] struct {
	core[T]
	source Seq[T]
	obs    ObserverCtx[T]

	src Cursor[T]
}

// Do observes source transparently with synchronous callbacks.
// Cancellation failures bypass obs.Error and propagate unmodified.
func Do[T any](source Seq[T], obs Observer[T]) Seq[T] {
	if obs.Next == nil {
		panic("aseq: Do: nil Next")
	}
	wrapped := ObserverCtx[T]{
		Next: func(_ context.Context, v T) error {
			obs.Next(v)
			return nil
		},
	}
	if obs.Error != nil {
		wrapped.Error = func(_ context.Context, err error) error {
			obs.Error(err)
			return nil
		}
	}
	if obs.Complete != nil {
		wrapped.Complete = func(context.Context) error {
			obs.Complete()
			return nil
		}
	}
	return DoCtx(source, wrapped)
}

// DoCtx observes source transparently with callbacks that may suspend.
// A failing callback fails the advance with the callback's own error.
func DoCtx[T any](source Seq[T], obs ObserverCtx[T]) Seq[T] {
	if source == nil {
		panic("aseq: Do: nil source")
	}
	if obs.Next == nil {
		panic("aseq: Do: nil Next")
	}
	d := &doSeq[T]{source: source, obs: obs}
	d.init(d)
	return d
}

func (d *doSeq[T]) clone() *core[T] {
	n := &doSeq[T]{source: d.source, obs: d.obs}
	n.init(n)
	return &n.core
}

func (d *doSeq[T]) setup(context.Context) error { return nil }

func (d *doSeq[T]) step() (bool, error) {
	if d.src == nil {
		cur, err := d.source.Open(d.ctx)
		if err != nil {
			return false, d.observe(err)
		}
		d.src = cur
	}
	ok, err := d.src.Next()
	if err != nil {
		return false, d.observe(err)
	}
	if !ok {
		if d.obs.Complete != nil {
			if cerr := d.obs.Complete(d.ctx); cerr != nil {
				return false, cerr
			}
		}
		return false, nil
	}
	v, err := d.src.Value()
	if err != nil {
		return false, d.observe(err)
	}
	if nerr := d.obs.Next(d.ctx, v); nerr != nil {
		return false, nerr
	}
	d.current = v
	return true, nil
}

// observe routes a source failure through the Error hook. Cancellation is
// exempt and re-raised untouched. The hook observes but never suppresses;
// a failure inside the hook itself replaces the original.
func (d *doSeq[T]) observe(err error) error {
	if d.obs.Error == nil || IsCancellation(err) {
		return err
	}
	if herr := d.obs.Error(d.ctx, err); herr != nil {
		return herr
	}
	return err
}

func (d *doSeq[T]) release() error {
	if d.src == nil {
		return nil
	}
	cur := d.src
	d.src = nil
	return cur.Close()
}
