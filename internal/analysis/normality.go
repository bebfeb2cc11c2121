package analysis

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// MinNormalitySample is the smallest sample the Shapiro-Wilk test accepts
const MinNormalitySample = 3

// ShapiroWilk runs the Shapiro-Wilk normality test on values and returns the
// W statistic with its p-value; is_normal holds when p exceeds the
// significance level. Fewer than three values is an input-contract violation
// and returns an error, as does a zero-variance sample.
//
// The W coefficients and the p-value transformation follow Royston's
// approximation (AS R94), which is accurate for 3 <= n <= 5000.
func ShapiroWilk(values []float64) (NormalityResult, error) {
	n := len(values)
	if n < MinNormalitySample {
		return NormalityResult{}, fmt.Errorf("shapiro-wilk requires at least %d values, got %d", MinNormalitySample, n)
	}

	x := make([]float64, n)
	copy(x, values)
	sort.Float64s(x)

	if x[n-1] == x[0] {
		return NormalityResult{}, fmt.Errorf("shapiro-wilk undefined for zero-variance sample")
	}

	w := swStatistic(x)
	// Floating point drift can push W a hair above 1 for near-linear samples
	if w > 1 {
		w = 1
	}
	p := swPValue(w, n)

	return NormalityResult{
		W:        w,
		PValue:   p,
		IsNormal: p > SignificanceLevel,
	}, nil
}

// swStatistic computes the W statistic for a sorted sample
func swStatistic(x []float64) float64 {
	n := len(x)
	normal := distuv.UnitNormal

	// Expected values of normal order statistics (Blom scores)
	m := make([]float64, n)
	var msum float64
	for i := 0; i < n; i++ {
		m[i] = normal.Quantile((float64(i+1) - 0.375) / (float64(n) + 0.25))
		msum += m[i] * m[i]
	}

	a := make([]float64, n)
	rms := math.Sqrt(msum)

	if n == 3 {
		a[0] = -math.Sqrt(0.5)
		a[2] = math.Sqrt(0.5)
	} else {
		rsn := 1.0 / math.Sqrt(float64(n))
		an := polyval([]float64{-2.706056, 4.434685, -2.071190, -0.147981, 0.221157, m[n-1] / rms}, rsn)

		if n <= 5 {
			phi := (msum - 2*m[n-1]*m[n-1]) / (1 - 2*an*an)
			sp := math.Sqrt(phi)
			for i := 1; i < n-1; i++ {
				a[i] = m[i] / sp
			}
			a[n-1] = an
			a[0] = -an
		} else {
			an1 := polyval([]float64{-3.582633, 5.682633, -1.752461, -0.293762, 0.042981, m[n-2] / rms}, rsn)
			phi := (msum - 2*m[n-1]*m[n-1] - 2*m[n-2]*m[n-2]) / (1 - 2*an*an - 2*an1*an1)
			sp := math.Sqrt(phi)
			for i := 2; i < n-2; i++ {
				a[i] = m[i] / sp
			}
			a[n-1] = an
			a[n-2] = an1
			a[0] = -an
			a[1] = -an1
		}
	}

	var mean float64
	for _, v := range x {
		mean += v
	}
	mean /= float64(n)

	var num, den float64
	for i, v := range x {
		num += a[i] * v
		den += (v - mean) * (v - mean)
	}

	return num * num / den
}

// swPValue transforms W into an upper-tail p-value (Royston 1995)
func swPValue(w float64, n int) float64 {
	switch {
	case n == 3:
		// Exact distribution for n = 3
		p := 6 / math.Pi * (math.Asin(math.Sqrt(w)) - math.Asin(math.Sqrt(0.75)))
		return clamp01(p)
	case n <= 11:
		fn := float64(n)
		g := -2.273 + 0.459*fn
		mu := 0.5440 - 0.39978*fn + 0.025054*fn*fn - 0.0006714*fn*fn*fn
		sigma := math.Exp(1.3822 - 0.77857*fn + 0.062767*fn*fn - 0.0020322*fn*fn*fn)
		z := (-math.Log(g-math.Log(1-w)) - mu) / sigma
		return clamp01(distuv.UnitNormal.Survival(z))
	default:
		u := math.Log(float64(n))
		mu := -1.5861 - 0.31082*u - 0.083751*u*u + 0.0038915*u*u*u
		sigma := math.Exp(-0.4803 - 0.082676*u + 0.0030302*u*u)
		z := (math.Log(1-w) - mu) / sigma
		return clamp01(distuv.UnitNormal.Survival(z))
	}
}

// polyval evaluates a polynomial with coefficients ordered from the highest
// power down to the constant term.
func polyval(coeffs []float64, x float64) float64 {
	var result float64
	for _, c := range coeffs {
		result = result*x + c
	}
	return result
}

func clamp01(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
