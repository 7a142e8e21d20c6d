// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aseq

import (
	"context"
)

// Seq is an immutable, re-enumerable description of how to produce values.
// A Seq holds configuration only, never iteration position; it may be opened
// any number of times, each Open producing an independent [Cursor].
type Seq[T any] interface {
	// Open obtains a single-use iteration session. The context is the
	// session's cancellation signal, checked before every advance.
	// Operator setup failures are reported here, with the partially-built
	// session already disposed.
	Open(ctx context.Context) (Cursor[T], error)
}

// Cursor is a single-use, single-consumer iteration session over a [Seq].
// A Cursor must never be advanced concurrently; Close alone is safe to call
// concurrently with itself and is idempotent.
type Cursor[T any] interface {
	// Next advances the session. Returns (true, nil) when a value was
	// produced, (false, nil) on exhaustion, and (false, err) on failure.
	// Any failure leaves the session closed with all resources released.
	// After exhaustion or Close, Next keeps returning (false, nil) without
	// running operator logic.
	Next() (bool, error)

	// Value returns the value produced by the most recent Next.
	// It fails with [ErrNoValue] outside the valid window: before the
	// first Next, after an exhausted or failed Next, or after Close.
	Value() (T, error)

	// Close releases the session's resources, innermost first.
	Close() error

	// Serial returns the serial number assigned to this session.
	Serial() Serial
}
