// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package aseq provides lazily-evaluated, asynchronously-produced pull
// sequences and composable transformation operators over them.
//
// A [Seq] is an immutable, re-enumerable description of how to produce
// values; it holds no iteration position. [Seq.Open] yields a [Cursor], a
// single-use session advanced one value at a time, where advancing may
// itself wait on external asynchronous work.
//
// # Architecture
//
//   - Lifecycle: every operator shares one state machine
//     (New → Allocated → Iterating → Disposed) held in [code.hybscloud.com/atomix]
//     atomics. Opening an untouched Seq claims it in place; any further Open
//     clones a fresh session from immutable configuration.
//   - Failure safety: any failure during an advance closes the session and
//     releases its resources before the failure reaches the consumer.
//     Teardown failures never mask the in-flight failure.
//   - Cancellation: the context captured at Open is checked before each
//     advance; context errors propagate unmodified and are exempt from
//     user error hooks ([IsCancellation]).
//   - Concurrency: [Intersect] populates its lookup set from a background
//     goroutine over a bounded lock-free SPSC ring from
//     [code.hybscloud.com/lfq], joined exactly once on the first advance
//     with [code.hybscloud.com/iox.Backoff] waiting.
//   - Generators: [Generate] steps a [code.hybscloud.com/kont] effect
//     program one [Yield] per advance, in Cont-world or Expr-world.
//
// # API Topologies
//
//   - Contract: [Seq], [Cursor], [Comparer].
//   - Sources: [FromSlice], [Return], [Empty], [FromSeq], [Create].
//   - Operators: [Expand], [ExpandCtx], [Do], [DoCtx], [Intersect],
//     [IntersectWith], [Select], [Where].
//   - Sinks: [ToSlice], [Count], [All].
//   - Generator world: [Yield], [YieldThen], [Done], [Loop], [Generate];
//     Expr-world variants [ExprYieldThen], [ExprDone], [GenerateExpr].
//
// # Example
//
//	s := aseq.Expand(aseq.Return(0), func(n int) aseq.Seq[int] {
//		if n >= 3 {
//			return aseq.Empty[int]()
//		}
//		return aseq.Return(n + 1)
//	})
//	values, _ := aseq.ToSlice(context.Background(), s)
//	// values == []int{0, 1, 2, 3}
package aseq
