// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aseq

import (
	"context"
)

// expandSeq flattens a self-referential sequence-of-sequences breadth-first.
// The FIFO queue of pending sequences bounds recursion depth at one: all
// elements of one generation are yielded before any element they spawned.
type expandSeq[T any] struct {
	core[T]
	source   Seq[T]
	selector func(context.Context, T) (Seq[T], error)

	pending []Seq[T]  // FIFO of sequences awaiting a session
	src     Cursor[T] // at most one open nested session
}

// Expand yields every element of source, then every element of
// selector(element), and so on breadth-first: each expansion generation is
// fully processed before any sequence it produced. A nil selector result
// expands to nothing.
func Expand[T any](source Seq[T], selector func(T) Seq[T]) Seq[T] {
	if selector == nil {
		panic("aseq: Expand: nil selector")
	}
	return ExpandCtx(source, func(_ context.Context, v T) (Seq[T], error) {
		return selector(v), nil
	})
}

// ExpandCtx is [Expand] with a selector that may itself suspend:
// it receives the session context and may fail, which fails the advance.
func ExpandCtx[T any](source Seq[T], selector func(context.Context, T) (Seq[T], error)) Seq[T] {
	if source == nil {
		panic("aseq: Expand: nil source")
	}
	if selector == nil {
		panic("aseq: Expand: nil selector")
	}
	e := &expandSeq[T]{source: source, selector: selector}
	e.init(e)
	return e
}

func (e *expandSeq[T]) clone() *core[T] {
	n := &expandSeq[T]{source: e.source, selector: e.selector}
	n.init(n)
	return &n.core
}

// setup seeds the queue with the original source.
func (e *expandSeq[T]) setup(context.Context) error {
	e.pending = append(e.pending, e.source)
	return nil
}

func (e *expandSeq[T]) step() (bool, error) {
	for {
		if e.src == nil {
			if len(e.pending) == 0 {
				return false, nil
			}
			next := e.pending[0]
			e.pending[0] = nil
			e.pending = e.pending[1:]
			cur, err := next.Open(e.ctx)
			if err != nil {
				return false, err
			}
			e.src = cur
		}
		ok, err := e.src.Next()
		if err != nil {
			return false, err
		}
		if !ok {
			cur := e.src
			e.src = nil
			if cerr := cur.Close(); cerr != nil {
				return false, cerr
			}
			continue
		}
		v, err := e.src.Value()
		if err != nil {
			return false, err
		}
		child, err := e.selector(e.ctx, v)
		if err != nil {
			return false, err
		}
		if child != nil {
			e.pending = append(e.pending, child)
		}
		e.current = v
		return true, nil
	}
}

func (e *expandSeq[T]) release() error {
	e.pending = nil
	if e.src == nil {
		return nil
	}
	cur := e.src
	e.src = nil
	return cur.Close()
}
