// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aseq_test

import (
	"context"
	"errors"
	"testing"

	"code.hybscloud.com/aseq"
)

// errBoom is the canonical source failure used across tests.
var errBoom = errors.New("boom")

// collect drives s to completion, failing the test on any error.
func collect[T any](t *testing.T, s aseq.Seq[T]) []T {
	t.Helper()
	values, err := aseq.ToSlice(context.Background(), s)
	if err != nil {
		t.Fatalf("ToSlice failed: %v", err)
	}
	return values
}

// failAfter builds a single-use source yielding values, then failing with
// err instead of exhausting.
func failAfter(values []int, err error) aseq.Seq[int] {
	i := 0
	var cur int
	return aseq.Create(
		func(context.Context) (bool, error) {
			if i < len(values) {
				cur = values[i]
				i++
				return true, nil
			}
			return false, err
		},
		func() int { return cur },
		nil,
	)
}

// mustOpen opens a session, failing the test on error.
func mustOpen[T any](t *testing.T, s aseq.Seq[T]) aseq.Cursor[T] {
	t.Helper()
	cur, err := s.Open(context.Background())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return cur
}
