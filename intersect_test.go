// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aseq_test

import (
	"context"
	"errors"
	"hash/maphash"
	"strings"
	"testing"

	"code.hybscloud.com/aseq"
)

func TestIntersect(t *testing.T) {
	skipRace(t)
	s := aseq.Intersect(
		aseq.FromSlice([]int{1, 2, 2, 3}),
		aseq.FromSlice([]int{2, 3, 3, 4}),
	)
	got := collect(t, s)
	want := []int{2, 3}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

// foldComparer compares strings case-insensitively.
type foldComparer struct {
	seed maphash.Seed
}

func (c foldComparer) Equal(x, y string) bool { return strings.EqualFold(x, y) }

func (c foldComparer) Hash(x string) uint64 {
	return maphash.Comparable(c.seed, strings.ToLower(x))
}

func TestIntersectWithComparer(t *testing.T) {
	skipRace(t)
	s := aseq.IntersectWith(
		aseq.FromSlice([]string{"Alpha", "beta", "ALPHA", "delta"}),
		aseq.FromSlice([]string{"alpha", "BETA", "gamma"}),
		foldComparer{seed: maphash.MakeSeed()},
	)
	got := collect(t, s)
	want := []string{"Alpha", "beta"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestIntersectEmpty(t *testing.T) {
	skipRace(t)
	if got := collect(t, aseq.Intersect(aseq.Empty[int](), aseq.FromSlice([]int{1, 2}))); len(got) != 0 {
		t.Fatalf("empty first got %v, want none", got)
	}
	if got := collect(t, aseq.Intersect(aseq.FromSlice([]int{1, 2}), aseq.Empty[int]())); len(got) != 0 {
		t.Fatalf("empty second got %v, want none", got)
	}
}

func TestIntersectSecondFailureSurfacesAtFirstAdvance(t *testing.T) {
	skipRace(t)
	s := aseq.Intersect(
		aseq.FromSlice([]int{1, 2, 3}),
		failAfter([]int{2}, errBoom),
	)
	cur := mustOpen(t, s)
	if _, err := cur.Next(); !errors.Is(err, errBoom) {
		t.Fatalf("first Next got %v, want the population failure", err)
	}
	if ok, err := cur.Next(); ok || err != nil {
		t.Fatalf("Next after failure got (%v, %v), want (false, nil)", ok, err)
	}
}

func TestIntersectFirstFailure(t *testing.T) {
	skipRace(t)
	s := aseq.Intersect(
		failAfter(nil, errBoom),
		aseq.FromSlice([]int{1, 2, 3}),
	)
	cur := mustOpen(t, s)
	if _, err := cur.Next(); !errors.Is(err, errBoom) {
		t.Fatalf("first Next got %v, want errBoom", err)
	}
}

func TestIntersectReenumerable(t *testing.T) {
	skipRace(t)
	s := aseq.Intersect(
		aseq.FromSlice([]int{1, 2, 2, 3}),
		aseq.FromSlice([]int{2, 3, 3, 4}),
	)
	first := collect(t, s)
	second := collect(t, s)
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("got %v then %v, want [2 3] twice", first, second)
	}
}

func TestIntersectCloseBeforeAdvance(t *testing.T) {
	skipRace(t)
	s := aseq.Intersect(
		aseq.FromSlice([]int{1, 2, 3}),
		aseq.FromSlice([]int{2, 3}),
	)
	cur := mustOpen(t, s)
	if err := cur.Close(); err != nil {
		t.Fatalf("Close before advance failed: %v", err)
	}
}

func TestIntersectCloseMidStream(t *testing.T) {
	skipRace(t)
	big := make([]int, 1000)
	for i := range big {
		big[i] = i
	}
	s := aseq.Intersect(aseq.FromSlice(big), aseq.FromSlice(big))
	cur := mustOpen(t, s)
	if ok, err := cur.Next(); !ok || err != nil {
		t.Fatalf("Next got (%v, %v), want (true, nil)", ok, err)
	}
	// Must return without leaking the population goroutine.
	if err := cur.Close(); err != nil {
		t.Fatalf("Close mid-stream failed: %v", err)
	}
}

func TestIntersectFirstOpenFailureUnparksPopulator(t *testing.T) {
	skipRace(t)
	// A single-use first source already consumed: its Open fails inside the
	// first advance while the populator fills a second source larger than
	// the transport ring.
	used := aseq.Create(
		func(context.Context) (bool, error) { return false, nil },
		func() int { return 0 },
		nil,
	)
	if _, err := used.Open(context.Background()); err != nil {
		t.Fatalf("priming Open failed: %v", err)
	}

	big := make([]int, 500)
	s := aseq.Intersect(used, aseq.FromSlice(big))
	cur := mustOpen(t, s)
	if _, err := cur.Next(); !errors.Is(err, aseq.ErrNotSupported) {
		t.Fatalf("Next got %v, want ErrNotSupported", err)
	}
}

func TestIntersectNilComparerPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("IntersectWith with nil comparer did not panic")
		}
	}()
	aseq.IntersectWith[int](aseq.Return(1), aseq.Return(1), nil)
}
