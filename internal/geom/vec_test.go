package geom

import "testing"

func TestVecArithmetic(t *testing.T) {
	a := V(2, 8)
	b := V(4, 2)
	if got := a.Add(b); got != V(6, 10) {
		t.Fatalf("Add = %v", got)
	}
	if got := a.Sub(b); got != V(-2, 6) {
		t.Fatalf("Sub = %v", got)
	}
	if got := a.Scale(0.5); got != V(1, 4) {
		t.Fatalf("Scale = %v", got)
	}
	if got := a.Mul(b); got != V(8, 16) {
		t.Fatalf("Mul = %v", got)
	}
	if got := a.Div(b); got != V(0.5, 4) {
		t.Fatalf("Div = %v", got)
	}
	if got := V(1.9, -0.1).Floor(); got != V(1, -1) {
		t.Fatalf("Floor = %v", got)
	}
}

func TestRectContainsIsHalfOpen(t *testing.T) {
	r := Rect{Min: V(10, 10), Size: V(5, 5)}
	cases := []struct {
		p    Vec2
		want bool
	}{
		{V(10, 10), true},
		{V(14.99, 14.99), true},
		{V(15, 12), false},
		{V(12, 15), false},
		{V(9.99, 12), false},
	}
	for _, tc := range cases {
		if got := r.Contains(tc.p); got != tc.want {
			t.Fatalf("Contains(%v) = %v, want %v", tc.p, got, tc.want)
		}
	}
}

func TestSpan(t *testing.T) {
	if got := Span(0, 10, 5, 20); got != 5 {
		t.Fatalf("expected overlap 5, got %f", got)
	}
	if got := Span(0, 10, 10, 20); got != 0 {
		t.Fatalf("touching intervals should not overlap, got %f", got)
	}
}
