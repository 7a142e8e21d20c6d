// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aseq

import (
	"hash/maphash"
)

// Comparer supplies equality and hashing over values of type T.
// Implementations must be consistent: Equal values hash identically.
type Comparer[T any] interface {
	Equal(x, y T) bool
	Hash(x T) uint64
}

// defaultComparer hashes comparable values with hash/maphash.
// The seed is fixed per comparer so hashes are stable within a session.
type defaultComparer[T comparable] struct {
	seed maphash.Seed
}

func (c defaultComparer[T]) Equal(x, y T) bool { return x == y }

func (c defaultComparer[T]) Hash(x T) uint64 { return maphash.Comparable(c.seed, x) }

// DefaultComparer returns a Comparer using == equality and maphash hashing.
func DefaultComparer[T comparable]() Comparer[T] {
	return defaultComparer[T]{seed: maphash.MakeSeed()}
}

// lookupSet is a membership and removal structure keyed by a [Comparer].
// Values equal under the comparer collapse to a single entry.
// Not safe for concurrent use; each session owns its set exclusively.
type lookupSet[T any] struct {
	cmp     Comparer[T]
	buckets map[uint64][]T
	size    int
}

func newLookupSet[T any](cmp Comparer[T]) *lookupSet[T] {
	return &lookupSet[T]{cmp: cmp, buckets: make(map[uint64][]T)}
}

// Add inserts v, reporting whether it was absent.
func (s *lookupSet[T]) Add(v T) bool {
	h := s.cmp.Hash(v)
	for _, w := range s.buckets[h] {
		if s.cmp.Equal(v, w) {
			return false
		}
	}
	s.buckets[h] = append(s.buckets[h], v)
	s.size++
	return true
}

// Remove deletes v, reporting whether it was present.
func (s *lookupSet[T]) Remove(v T) bool {
	h := s.cmp.Hash(v)
	bucket := s.buckets[h]
	for i, w := range bucket {
		if s.cmp.Equal(v, w) {
			last := len(bucket) - 1
			bucket[i] = bucket[last]
			var zero T
			bucket[last] = zero
			bucket = bucket[:last]
			if len(bucket) == 0 {
				delete(s.buckets, h)
			} else {
				s.buckets[h] = bucket
			}
			s.size--
			return true
		}
	}
	return false
}

// Contains reports whether v is present.
func (s *lookupSet[T]) Contains(v T) bool {
	h := s.cmp.Hash(v)
	for _, w := range s.buckets[h] {
		if s.cmp.Equal(v, w) {
			return true
		}
	}
	return false
}

// Len returns the number of distinct values held.
func (s *lookupSet[T]) Len() int { return s.size }
