// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package ringbuffer

import "testing"

// Pins the initial Brotli distance-ring layout: {4, 11, 15, 16} must land
// such that Nth(0..3) recovers that exact order before anything is pushed.
func TestInitialOrder(t *testing.T) {
	r := New([]int{4, 11, 15, 16})
	want := []int{4, 11, 15, 16}
	for n, w := range want {
		if got := r.Nth(n); got != w {
			t.Errorf("Nth(%d) = %d, want %d", n, got, w)
		}
	}
}

// Pins the shift invariant a recency ring must satisfy: after Push(v),
// Nth(0) is v and Nth(k) for k>0 is whatever used to be at Nth(k-1).
func TestPushShiftsRecency(t *testing.T) {
	r := New([]int{4, 11, 15, 16})
	before := make([]int, r.Len())
	for n := range before {
		before[n] = r.Nth(n)
	}

	r.Push(99)

	if got := r.Nth(0); got != 99 {
		t.Errorf("Nth(0) after push = %d, want 99", got)
	}
	for n := 1; n < r.Len(); n++ {
		if got, want := r.Nth(n), before[n-1]; got != want {
			t.Errorf("Nth(%d) after push = %d, want %d (old Nth(%d))", n, got, want, n-1)
		}
	}
}
