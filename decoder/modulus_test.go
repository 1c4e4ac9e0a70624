package decoder

import "testing"

func TestModulusGFInverse(t *testing.T) {
	for a := 1; a < pdf417GF.Size(); a++ {
		inv := pdf417GF.Inverse(a)
		if got := pdf417GF.Multiply(a, inv); got != 1 {
			t.Fatalf("a=%d: a*inverse(a) = %d, want 1", a, got)
		}
	}
}

func TestModulusGFExpLogRoundTrip(t *testing.T) {
	for i := 0; i < pdf417GF.Size()-1; i++ {
		a := pdf417GF.Exp(i)
		if a == 0 {
			continue
		}
		if got := pdf417GF.Log(a); got != i {
			t.Fatalf("Log(Exp(%d))=%d, want %d", i, got, i)
		}
	}
}

func TestModulusPolyEvaluateAtZero(t *testing.T) {
	p := newModulusPoly(pdf417GF, []int{5, 3, 9})
	if got := p.EvaluateAt(0); got != 9 {
		t.Fatalf("EvaluateAt(0) = %d, want 9 (constant term)", got)
	}
}

func TestModulusPolyAddSubtractRoundTrip(t *testing.T) {
	a := newModulusPoly(pdf417GF, []int{1, 2, 3})
	b := newModulusPoly(pdf417GF, []int{9, 8})
	sum := a.Add(b)
	back := sum.Subtract(b)
	if back.Degree() != a.Degree() {
		t.Fatalf("degree after round trip = %d, want %d", back.Degree(), a.Degree())
	}
	for d := 0; d <= a.Degree(); d++ {
		if back.GetCoefficient(d) != a.GetCoefficient(d) {
			t.Fatalf("coefficient at degree %d = %d, want %d", d, back.GetCoefficient(d), a.GetCoefficient(d))
		}
	}
}

func TestModulusPolyMultiplyByMonomialMatchesMultiply(t *testing.T) {
	a := newModulusPoly(pdf417GF, []int{1, 2, 3})
	monomial := pdf417GF.BuildMonomial(2, 5)
	viaMonomial := a.MultiplyByMonomial(2, 5)
	viaMultiply := a.Multiply(monomial)
	if viaMonomial.Degree() != viaMultiply.Degree() {
		t.Fatalf("degree mismatch: %d vs %d", viaMonomial.Degree(), viaMultiply.Degree())
	}
	for d := 0; d <= viaMonomial.Degree(); d++ {
		if viaMonomial.GetCoefficient(d) != viaMultiply.GetCoefficient(d) {
			t.Fatalf("coefficient mismatch at degree %d", d)
		}
	}
}

func TestModulusPolyIsZero(t *testing.T) {
	if !pdf417GF.Zero().IsZero() {
		t.Fatal("field zero polynomial should report IsZero")
	}
	if newModulusPoly(pdf417GF, []int{1}).IsZero() {
		t.Fatal("constant 1 should not report IsZero")
	}
}
