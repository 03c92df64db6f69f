package integrate

import "github.com/qcserestipy/gointegral/pkg/sample"

// abscissa is the midpoint of the i-th of n equal subintervals of [a, b].
func abscissa(a, b float64, n, i int) float64 {
	return a + (float64(i)+0.5)*((b-a)/float64(n))
}

func scale(sum, a, b float64, n int) float64 {
	return sum * (b - a) / float64(n)
}

// Sequential evaluates the midpoint rule on a single goroutine, summing the
// samples in index order. It is the reference the parallel engine is checked
// against.
func Sequential(fn sample.Func, a, b float64, n, intensity int) float64 {
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += fn(abscissa(a, b, n, i), intensity)
	}
	return scale(sum, a, b, n)
}
