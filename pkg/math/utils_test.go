package math

import "testing"

func TestFloorDivRoundsTowardNegativeInfinity(t *testing.T) {
	cases := []struct{ n, m, want int32 }{
		{0, 32, 0},
		{31, 32, 0},
		{32, 32, 1},
		{-1, 32, -1},
		{-32, 32, -1},
		{-33, 32, -2},
	}
	for _, c := range cases {
		if got := FloorDiv(c.n, c.m); got != c.want {
			t.Errorf("FloorDiv(%d, %d) = %d, want %d", c.n, c.m, got, c.want)
		}
	}
}

func TestModInt32AlwaysNonNegative(t *testing.T) {
	cases := []struct{ n, m, want int32 }{
		{0, 32, 0},
		{31, 32, 31},
		{32, 32, 0},
		{-1, 32, 31},
		{-32, 32, 0},
		{-33, 32, 31},
	}
	for _, c := range cases {
		if got := ModInt32(c.n, c.m); got != c.want {
			t.Errorf("ModInt32(%d, %d) = %d, want %d", c.n, c.m, got, c.want)
		}
	}
}

func TestFloorDivAndModInt32Reconstruct(t *testing.T) {
	const m = int32(32)
	for n := int32(-100); n <= 100; n++ {
		q := FloorDiv(n, m)
		r := ModInt32(n, m)
		if q*m+r != n {
			t.Fatalf("FloorDiv/ModInt32 inconsistent for n=%d: q=%d r=%d", n, q, r)
		}
		if r < 0 || r >= m {
			t.Fatalf("ModInt32(%d, %d) out of range: %d", n, m, r)
		}
	}
}

func TestManhattanDistance3D(t *testing.T) {
	if got := ManhattanDistance3D(0, 0, 0, 0, 0, 0); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
	if got := ManhattanDistance3D(1, -2, 3, -4, 5, -6); got != 5+7+9 {
		t.Errorf("got %d, want %d", got, 5+7+9)
	}
}

func TestAbs32(t *testing.T) {
	if Abs32(-5) != 5 {
		t.Errorf("Abs32(-5) != 5")
	}
	if Abs32(5) != 5 {
		t.Errorf("Abs32(5) != 5")
	}
	if Abs32(0) != 0 {
		t.Errorf("Abs32(0) != 0")
	}
}
