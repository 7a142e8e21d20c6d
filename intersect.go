// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aseq

import (
	"context"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// populateCapacity is the bounded capacity of the population transport ring.
// Large enough to amortize producer-side cached-index refresh cost, small
// enough to keep the ring within a few cache lines.
const populateCapacity = 64

// intersectSeq yields each value of first that also occurs in second, each
// qualifying value exactly once, in first-source order.
//
// Rather than materializing second before touching first, population runs as
// background work concurrently with the first advance: a goroutine drains
// second into a bounded SPSC ring, and the consumer folds the ring into its
// lookup set at a single join point. Only the first advance waits on both
// the population and the first source-advance; later advances wait on the
// first source alone. The populator never touches the lookup set, so the
// session's mutable working state stays single-owner.
type intersectSeq[T any] struct {
	core[T]
	first  Seq[T]
	second Seq[T]
	cmp    Comparer[T]

	src       Cursor[T]
	wanted    *lookupSet[T]
	started   bool
	populated bool

	popQ    lfq.SPSC[T]
	popSlot T
	popDone atomix.Uint32
	popErr  error // published before popDone; read after observing popDone
	cancel  context.CancelFunc
}

// Intersect yields the values first and second have in common under ==,
// first occurrence only, in first-source order.
func Intersect[T comparable](first, second Seq[T]) Seq[T] {
	return IntersectWith(first, second, DefaultComparer[T]())
}

// IntersectWith is [Intersect] under a caller-supplied [Comparer].
// Duplicates in second collapse under the comparer; a duplicate in first is
// not yielded again, its entry having already been consumed from the set.
func IntersectWith[T any](first, second Seq[T], cmp Comparer[T]) Seq[T] {
	if first == nil {
		panic("aseq: Intersect: nil first")
	}
	if second == nil {
		panic("aseq: Intersect: nil second")
	}
	if cmp == nil {
		panic("aseq: Intersect: nil cmp")
	}
	x := &intersectSeq[T]{first: first, second: second, cmp: cmp}
	x.init(x)
	return x
}

func (x *intersectSeq[T]) clone() *core[T] {
	n := &intersectSeq[T]{first: x.first, second: x.second, cmp: x.cmp}
	n.init(n)
	return &n.core
}

func (x *intersectSeq[T]) setup(context.Context) error { return nil }

func (x *intersectSeq[T]) step() (bool, error) {
	if !x.started {
		x.started = true
		x.wanted = newLookupSet(x.cmp)
		x.popQ.Init(populateCapacity)
		pctx, cancel := context.WithCancel(x.ctx)
		x.cancel = cancel
		go x.populate(pctx)
		cur, err := x.first.Open(x.ctx)
		if err != nil {
			return false, err
		}
		x.src = cur
	}
	for {
		ok, err := x.src.Next()
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
		v, err := x.src.Value()
		if err != nil {
			return false, err
		}
		if !x.populated {
			if err := x.join(); err != nil {
				return false, err
			}
		}
		if x.wanted.Remove(v) {
			x.current = v
			return true, nil
		}
	}
}

// populate drains the second source into the transport ring.
// Runs on its own goroutine; publishes its outcome, then raises popDone.
func (x *intersectSeq[T]) populate(ctx context.Context) {
	err := func() (err error) {
		cur, err := x.second.Open(ctx)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := cur.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		var bo iox.Backoff
		for {
			ok, err := cur.Next()
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			v, err := cur.Value()
			if err != nil {
				return err
			}
			x.popSlot = v
			for x.popQ.Enqueue(&x.popSlot) != nil {
				// Ring full: consumer not draining yet, or gone.
				if err := ctx.Err(); err != nil {
					return err
				}
				bo.Wait()
			}
			bo.Reset()
		}
	}()
	x.popErr = err
	x.popDone.Store(1)
}

// join is the single synchronization point between the consumer and the
// populator. Folds the ring into the lookup set until the populator is done,
// then performs the final drain. Runs exactly once; later advances skip it.
func (x *intersectSeq[T]) join() error {
	var bo iox.Backoff
	for {
		if v, err := x.popQ.Dequeue(); err == nil {
			x.wanted.Add(v)
			bo.Reset()
			continue
		}
		if x.popDone.Load() != 0 {
			for {
				v, err := x.popQ.Dequeue()
				if err != nil {
					break
				}
				x.wanted.Add(v)
			}
			x.populated = true
			return x.popErr
		}
		bo.Wait()
	}
}

// release cancels the populator and waits for it to finish, so a closed
// session never leaks the background goroutine. The residual ring drain
// unblocks a producer parked on a full ring.
func (x *intersectSeq[T]) release() error {
	if x.cancel != nil {
		x.cancel()
		var bo iox.Backoff
		for x.popDone.Load() == 0 {
			if _, err := x.popQ.Dequeue(); err != nil {
				bo.Wait()
			}
		}
		x.cancel = nil
	}
	x.wanted = nil
	if x.src == nil {
		return nil
	}
	cur := x.src
	x.src = nil
	return cur.Close()
}
