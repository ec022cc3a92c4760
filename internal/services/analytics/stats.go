package analytics

import (
	"math"
	"sort"
)

const (
	// madEpsilon floors every MAD so robust z-scores never divide by zero.
	madEpsilon = 1e-6
	// madToSigma rescales MAD to be comparable to a standard deviation
	// under normality.
	madToSigma = 1.4826
	// normEpsilon pads vector norms in the federated embedding.
	normEpsilon = 1e-8
	// pivotEpsilon is the smallest pivot the linear solver accepts before
	// declaring the system singular.
	pivotEpsilon = 1e-12
)

func median(xs []float64) float64 {
	n := len(xs)
	if n == 0 {
		return math.NaN()
	}
	s := make([]float64, n)
	copy(s, xs)
	sort.Float64s(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2
}

// mad computes the median absolute deviation, floored at madEpsilon.
func mad(xs []float64) float64 {
	if len(xs) == 0 {
		return madEpsilon
	}
	m := median(xs)
	dev := make([]float64, len(xs))
	for i, x := range xs {
		dev[i] = math.Abs(x - m)
	}
	d := median(dev)
	if d > madEpsilon {
		return d
	}
	return madEpsilon
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// pearson computes the correlation of two equal-length samples. ok is false
// when fewer than two points are available or either sample has zero variance.
func pearson(xs, ys []float64) (float64, bool) {
	n := len(xs)
	if n < 2 || n != len(ys) {
		return 0, false
	}
	var sx, sy float64
	for i := 0; i < n; i++ {
		sx += xs[i]
		sy += ys[i]
	}
	mx := sx / float64(n)
	my := sy / float64(n)
	var cov, vx, vy float64
	for i := 0; i < n; i++ {
		dx := xs[i] - mx
		dy := ys[i] - my
		cov += dx * dy
		vx += dx * dx
		vy += dy * dy
	}
	if vx == 0 || vy == 0 {
		return 0, false
	}
	r := cov / math.Sqrt(vx*vy)
	// numeric noise can push r marginally outside [-1,1]
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r, true
}

// solveLinear solves a*w = b in place via Gaussian elimination with partial
// pivoting. ok is false when a pivot degenerates, which callers treat as a
// singular system.
func solveLinear(a [][]float64, b []float64) ([]float64, bool) {
	n := len(b)
	for col := 0; col < n; col++ {
		pivot := col
		for row := col + 1; row < n; row++ {
			if math.Abs(a[row][col]) > math.Abs(a[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(a[pivot][col]) < pivotEpsilon {
			return nil, false
		}
		a[col], a[pivot] = a[pivot], a[col]
		b[col], b[pivot] = b[pivot], b[col]
		for row := col + 1; row < n; row++ {
			f := a[row][col] / a[col][col]
			for k := col; k < n; k++ {
				a[row][k] -= f * a[col][k]
			}
			b[row] -= f * b[col]
		}
	}
	w := make([]float64, n)
	for row := n - 1; row >= 0; row-- {
		sum := b[row]
		for k := row + 1; k < n; k++ {
			sum -= a[row][k] * w[k]
		}
		w[row] = sum / a[row][row]
	}
	return w, true
}
