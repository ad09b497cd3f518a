package shared

import "testing"

func TestVec2Arithmetic(t *testing.T) {
	a := Vec2{X: 1, Y: 2}
	b := Vec2{X: 3, Y: 5}

	if got := a.Add(b); got != (Vec2{X: 4, Y: 7}) {
		t.Errorf("Add: got %+v", got)
	}
	if got := b.Sub(a); got != (Vec2{X: 2, Y: 3}) {
		t.Errorf("Sub: got %+v", got)
	}
	if got := a.Mul(2); got != (Vec2{X: 2, Y: 4}) {
		t.Errorf("Mul: got %+v", got)
	}
}

func TestVec2LerpEndpoints(t *testing.T) {
	a := Vec2{X: 0, Y: 0}
	b := Vec2{X: 10, Y: 20}

	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Lerp at t=0: got %+v, want %+v", got, a)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Lerp at t=1: got %+v, want %+v", got, b)
	}
	if got := a.Lerp(b, 0.5); got != (Vec2{X: 5, Y: 10}) {
		t.Errorf("Lerp at t=0.5: got %+v", got)
	}
}
