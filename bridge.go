// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aseq

import (
	"context"
	"iter"
)

// sliceSeq is the trivial in-memory source. It is the primitive building
// block behind [Return] and [Empty].
type sliceSeq[T any] struct {
	core[T]
	items []T
	idx   int
}

// FromSlice wraps an in-memory slice as a re-enumerable [Seq].
// The slice is not copied; callers must not mutate it while sessions are live.
func FromSlice[T any](items []T) Seq[T] {
	s := &sliceSeq[T]{items: items}
	s.init(s)
	return s
}

// Return produces a Seq yielding exactly one value.
func Return[T any](v T) Seq[T] {
	return FromSlice([]T{v})
}

// Empty produces a Seq yielding no values.
func Empty[T any]() Seq[T] {
	return FromSlice[T](nil)
}

func (s *sliceSeq[T]) clone() *core[T] {
	n := &sliceSeq[T]{items: s.items}
	n.init(n)
	return &n.core
}

func (s *sliceSeq[T]) setup(context.Context) error { return nil }

func (s *sliceSeq[T]) step() (bool, error) {
	if s.idx >= len(s.items) {
		return false, nil
	}
	s.current = s.items[s.idx]
	s.idx++
	return true, nil
}

func (s *sliceSeq[T]) release() error { return nil }

// pullSeq bridges a synchronous push iterator into the asynchronous
// protocol via iter.Pull. Re-enumerable iff the wrapped iter.Seq is.
type pullSeq[T any] struct {
	core[T]
	seq  iter.Seq[T]
	next func() (T, bool)
	stop func()
}

// FromSeq bridges a synchronous iter.Seq into a [Seq].
// Each session pulls the push iterator independently.
func FromSeq[T any](seq iter.Seq[T]) Seq[T] {
	if seq == nil {
		panic("aseq: FromSeq: nil seq")
	}
	s := &pullSeq[T]{seq: seq}
	s.init(s)
	return s
}

func (s *pullSeq[T]) clone() *core[T] {
	n := &pullSeq[T]{seq: s.seq}
	n.init(n)
	return &n.core
}

func (s *pullSeq[T]) setup(context.Context) error {
	s.next, s.stop = iter.Pull(s.seq)
	return nil
}

func (s *pullSeq[T]) step() (bool, error) {
	v, ok := s.next()
	if !ok {
		return false, nil
	}
	s.current = v
	return true, nil
}

func (s *pullSeq[T]) release() error {
	if s.stop != nil {
		s.stop()
		s.next, s.stop = nil, nil
	}
	return nil
}

// All drives a session over s to completion as a range-over-func iterator.
// The second position carries the failure, if any; on failure or early break
// the session is closed before the loop ends.
func All[T any](ctx context.Context, s Seq[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		cur, err := s.Open(ctx)
		if err != nil {
			var zero T
			yield(zero, err)
			return
		}
		defer cur.Close()
		for {
			ok, err := cur.Next()
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			if !ok {
				return
			}
			v, err := cur.Value()
			if !yield(v, err) {
				return
			}
		}
	}
}
