package main

import "testing"

func TestBoolCount(t *testing.T) {
	cases := []struct {
		bs   []bool
		want int
	}{
		{nil, 0},
		{[]bool{false, false}, 0},
		{[]bool{true, false, false}, 1},
		{[]bool{true, true, false, true}, 3},
	}
	for _, c := range cases {
		if got := boolCount(c.bs...); got != c.want {
			t.Errorf("boolCount(%v) = %d, want %d", c.bs, got, c.want)
		}
	}
}
