// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aseq

import (
	"context"
)

// selectSeq projects each source value through fn.
type selectSeq[S, T any] struct {
	core[T]
	source Seq[S]
	fn     func(S) T

	src Cursor[S]
}

// Select yields fn(v) for every value v of source, in order.
func Select[S, T any](source Seq[S], fn func(S) T) Seq[T] {
	if source == nil {
		panic("aseq: Select: nil source")
	}
	if fn == nil {
		panic("aseq: Select: nil fn")
	}
	s := &selectSeq[S, T]{source: source, fn: fn}
	s.init(s)
	return s
}

func (s *selectSeq[S, T]) clone() *core[T] {
	n := &selectSeq[S, T]{source: s.source, fn: s.fn}
	n.init(n)
	return &n.core
}

func (s *selectSeq[S, T]) setup(context.Context) error { return nil }

func (s *selectSeq[S, T]) step() (bool, error) {
	if s.src == nil {
		cur, err := s.source.Open(s.ctx)
		if err != nil {
			return false, err
		}
		s.src = cur
	}
	ok, err := s.src.Next()
	if err != nil || !ok {
		return false, err
	}
	v, err := s.src.Value()
	if err != nil {
		return false, err
	}
	s.current = s.fn(v)
	return true, nil
}

func (s *selectSeq[S, T]) release() error {
	if s.src == nil {
		return nil
	}
	cur := s.src
	s.src = nil
	return cur.Close()
}

// whereSeq filters source values through pred.
type whereSeq[T any] struct {
	core[T]
	source Seq[T]
	pred   func(T) bool

	src Cursor[T]
}

// Where yields the values of source for which pred holds, in order.
func Where[T any](source Seq[T], pred func(T) bool) Seq[T] {
	if source == nil {
		panic("aseq: Where: nil source")
	}
	if pred == nil {
		panic("aseq: Where: nil pred")
	}
	w := &whereSeq[T]{source: source, pred: pred}
	w.init(w)
	return w
}

func (w *whereSeq[T]) clone() *core[T] {
	n := &whereSeq[T]{source: w.source, pred: w.pred}
	n.init(n)
	return &n.core
}

func (w *whereSeq[T]) setup(context.Context) error { return nil }

func (w *whereSeq[T]) step() (bool, error) {
	if w.src == nil {
		cur, err := w.source.Open(w.ctx)
		if err != nil {
			return false, err
		}
		w.src = cur
	}
	for {
		ok, err := w.src.Next()
		if err != nil || !ok {
			return false, err
		}
		v, err := w.src.Value()
		if err != nil {
			return false, err
		}
		if w.pred(v) {
			w.current = v
			return true, nil
		}
	}
}

func (w *whereSeq[T]) release() error {
	if w.src == nil {
		return nil
	}
	cur := w.src
	w.src = nil
	return cur.Close()
}

// ToSlice drives a session over s to completion and collects every value.
func ToSlice[T any](ctx context.Context, s Seq[T]) ([]T, error) {
	cur, err := s.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer cur.Close()
	var out []T
	for {
		ok, err := cur.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		v, err := cur.Value()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
}

// Count drives a session over s to completion and counts its values.
func Count[T any](ctx context.Context, s Seq[T]) (int, error) {
	cur, err := s.Open(ctx)
	if err != nil {
		return 0, err
	}
	defer cur.Close()
	n := 0
	for {
		ok, err := cur.Next()
		if err != nil {
			return 0, err
		}
		if !ok {
			return n, nil
		}
		n++
	}
}
