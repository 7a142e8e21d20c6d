// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aseq

import (
	"context"
	"errors"
)

var (
	// ErrNoValue reports a Value call outside the valid window: before the
	// first advance, after exhaustion or failure, or after Close.
	ErrNoValue = errors.New("aseq: value is not available")

	// ErrNotOpen reports an advance on a Seq that was never opened.
	ErrNotOpen = errors.New("aseq: cursor has not been opened")

	// ErrNotSupported reports an attempt to open a second session on a
	// non-re-enumerable source such as [Create].
	ErrNotSupported = errors.New("aseq: re-enumeration is not supported")
)

// IsCancellation reports whether err is a cooperative cancellation failure.
// Cancellation propagates unmodified through every operator and is exempt
// from user error hooks; [Do]'s Error callback never fires for it.
func IsCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
