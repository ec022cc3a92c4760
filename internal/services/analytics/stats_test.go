package analytics

import (
	"math"
	"testing"
)

func TestMedianOdd(t *testing.T) {
	got := median([]float64{3, 1, 2})
	if got != 2 {
		t.Fatalf("median = %v, want 2", got)
	}
}

func TestMedianEven(t *testing.T) {
	got := median([]float64{4, 1, 3, 2})
	if got != 2.5 {
		t.Fatalf("median = %v, want 2.5", got)
	}
}

func TestMedianDoesNotMutateInput(t *testing.T) {
	xs := []float64{3, 1, 2}
	median(xs)
	if xs[0] != 3 || xs[1] != 1 || xs[2] != 2 {
		t.Fatalf("input mutated: %v", xs)
	}
}

func TestMADFloor(t *testing.T) {
	got := mad([]float64{5, 5, 5, 5})
	if got != madEpsilon {
		t.Fatalf("mad of constants = %v, want floor %v", got, madEpsilon)
	}
}

func TestMAD(t *testing.T) {
	got := mad([]float64{1, 2, 3, 4, 5})
	if got != 1 {
		t.Fatalf("mad = %v, want 1", got)
	}
}

func TestClamp01(t *testing.T) {
	if clamp01(-0.5) != 0 {
		t.Fatalf("expected clamp to 0")
	}
	if clamp01(1.5) != 1 {
		t.Fatalf("expected clamp to 1")
	}
	if clamp01(0.25) != 0.25 {
		t.Fatalf("expected passthrough")
	}
}

func TestPearsonPerfectCorrelation(t *testing.T) {
	xs := []float64{1, 2, 3, 4}
	ys := []float64{2, 4, 6, 8}
	r, ok := pearson(xs, ys)
	if !ok {
		t.Fatalf("expected ok")
	}
	if math.Abs(r-1) > 1e-12 {
		t.Fatalf("r = %v, want 1", r)
	}
}

func TestPearsonAntiCorrelation(t *testing.T) {
	xs := []float64{1, 2, 3, 4}
	ys := []float64{8, 6, 4, 2}
	r, ok := pearson(xs, ys)
	if !ok {
		t.Fatalf("expected ok")
	}
	if math.Abs(r+1) > 1e-12 {
		t.Fatalf("r = %v, want -1", r)
	}
}

func TestPearsonZeroVariance(t *testing.T) {
	if _, ok := pearson([]float64{1, 1, 1}, []float64{1, 2, 3}); ok {
		t.Fatalf("expected not ok for zero variance")
	}
}

func TestPearsonTooFewPoints(t *testing.T) {
	if _, ok := pearson([]float64{1}, []float64{2}); ok {
		t.Fatalf("expected not ok for single point")
	}
}

func TestSolveLinearIdentity(t *testing.T) {
	a := [][]float64{{1, 0}, {0, 1}}
	b := []float64{3, 4}
	w, ok := solveLinear(a, b)
	if !ok {
		t.Fatalf("expected solvable system")
	}
	if math.Abs(w[0]-3) > 1e-12 || math.Abs(w[1]-4) > 1e-12 {
		t.Fatalf("w = %v, want [3 4]", w)
	}
}

func TestSolveLinearPivoting(t *testing.T) {
	// leading zero forces a row swap
	a := [][]float64{{0, 1}, {1, 0}}
	b := []float64{2, 5}
	w, ok := solveLinear(a, b)
	if !ok {
		t.Fatalf("expected solvable system")
	}
	if math.Abs(w[0]-5) > 1e-12 || math.Abs(w[1]-2) > 1e-12 {
		t.Fatalf("w = %v, want [5 2]", w)
	}
}

func TestSolveLinearSingular(t *testing.T) {
	a := [][]float64{{1, 1}, {1, 1}}
	b := []float64{1, 2}
	if _, ok := solveLinear(a, b); ok {
		t.Fatalf("expected singular system to fail")
	}
}
