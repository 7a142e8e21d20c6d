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

func TestSelectWhereChain(t *testing.T) {
	s := aseq.Select(
		aseq.Where(aseq.FromSlice([]int{1, 2, 3, 4, 5, 6}), func(n int) bool { return n%2 == 0 }),
		func(n int) int { return n * 10 },
	)
	got := collect(t, s)
	want := []int{20, 40, 60}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestSelectTypeChange(t *testing.T) {
	s := aseq.Select(aseq.FromSlice([]int{1, 2}), func(n int) string {
		return string(rune('a' + n - 1))
	})
	got := collect(t, s)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("got %v, want [a b]", got)
	}
}

func TestCount(t *testing.T) {
	n, err := aseq.Count(context.Background(), aseq.FromSlice([]int{1, 2, 3}))
	if err != nil || n != 3 {
		t.Fatalf("Count got (%d, %v), want (3, nil)", n, err)
	}
}

func TestCountFailure(t *testing.T) {
	_, err := aseq.Count(context.Background(), failAfter([]int{1}, errBoom))
	if !errors.Is(err, errBoom) {
		t.Fatalf("Count got %v, want errBoom", err)
	}
}

func TestFromSeq(t *testing.T) {
	s := aseq.FromSeq(func(yield func(int) bool) {
		for i := 1; i <= 3; i++ {
			if !yield(i) {
				return
			}
		}
	})
	first := collect(t, s)
	second := collect(t, s)
	want := []int{1, 2, 3}
	for i := range want {
		if first[i] != want[i] || second[i] != want[i] {
			t.Fatalf("got %v then %v, want %v twice", first, second, want)
		}
	}
}

func TestFromSeqEarlyClose(t *testing.T) {
	s := aseq.FromSeq(func(yield func(int) bool) {
		for i := 0; ; i++ {
			if !yield(i) {
				return
			}
		}
	})
	cur := mustOpen(t, s)
	if ok, err := cur.Next(); !ok || err != nil {
		t.Fatalf("Next got (%v, %v), want (true, nil)", ok, err)
	}
	if err := cur.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}

func TestAll(t *testing.T) {
	var got []int
	for v, err := range aseq.All(context.Background(), aseq.FromSlice([]int{1, 2, 3})) {
		if err != nil {
			t.Fatalf("All yielded error: %v", err)
		}
		got = append(got, v)
	}
	want := []int{1, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestAllEarlyBreak(t *testing.T) {
	n := 0
	for _, err := range aseq.All(context.Background(), aseq.FromSlice([]int{1, 2, 3})) {
		if err != nil {
			t.Fatalf("All yielded error: %v", err)
		}
		n++
		break
	}
	if n != 1 {
		t.Fatalf("ranged %d values after break, want 1", n)
	}
}

func TestAllSurfacesFailure(t *testing.T) {
	var last error
	for _, err := range aseq.All(context.Background(), failAfter([]int{1}, errBoom)) {
		last = err
	}
	if !errors.Is(last, errBoom) {
		t.Fatalf("All surfaced %v, want errBoom", last)
	}
}
