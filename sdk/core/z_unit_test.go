// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package core

import (
	"slices"
	"testing"
)

func TestCoreDeterminism(t *testing.T) {
	c1 := New(Default().New(7))
	c2 := New(Default().New(7))
	for i := 0; i < 5; i++ {
		if c1.Uint64() != c2.Uint64() {
			t.Fatalf("Uint64 mismatch at %d", i)
		}
	}
	if c1.IntN(90) != c2.IntN(90) {
		t.Fatalf("IntN mismatch")
	}
	if c1.IntN(0) != -1 {
		t.Fatalf("expected -1 for IntN(0)")
	}
}

func TestSnapshotRestore(t *testing.T) {
	r := NewPCG64WithSeed(42)
	_ = r.Uint64()
	snap, err := r.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	want := []int{r.IntN(90), r.IntN(90), r.IntN(90)}

	r2 := NewPCG64WithSeed(1)
	if err := r2.Restore(snap); err != nil {
		t.Fatalf("restore: %v", err)
	}
	got := []int{r2.IntN(90), r2.IntN(90), r2.IntN(90)}
	if !slices.Equal(want, got) {
		t.Fatalf("restore mismatch: want %v got %v", want, got)
	}
}

func TestCorePickAndShuffle(t *testing.T) {
	c := New(Default().New(9))
	if got := c.Pick(nil); got != -1 {
		t.Fatalf("expected -1 for empty pick, got %d", got)
	}

	src := []int{1, 2, 3, 4}
	c.ShuffleInts(src)
	got := slices.Clone(src)
	slices.Sort(got)
	if !slices.Equal([]int{1, 2, 3, 4}, got) {
		t.Fatalf("shuffle changed elements: %v", src)
	}
}

func TestDistinct(t *testing.T) {
	r := NewPCG64WithSeed(3)
	for i := 0; i < 200; i++ {
		got := Distinct(r, 5, 1, 90)
		if len(got) != 5 {
			t.Fatalf("expected 5 numbers, got %v", got)
		}
		seen := map[int]bool{}
		for _, v := range got {
			if v < 1 || v > 90 {
				t.Fatalf("out of range: %v", got)
			}
			if seen[v] {
				t.Fatalf("duplicate in %v", got)
			}
			seen[v] = true
		}
	}
	if Distinct(r, 91, 1, 90) != nil {
		t.Fatalf("expected nil when n exceeds range")
	}
	if full := Distinct(r, 90, 1, 90); len(full) != 90 {
		t.Fatalf("expected full range draw")
	}
}
