package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// OneWayANOVA tests whether the group means differ across two or more
// groups. Each group must contain at least one value and the pooled sample
// must leave at least one within-group degree of freedom. When the
// within-group variance is zero and the means differ, F is infinite and the
// p-value zero.
func OneWayANOVA(groups [][]float64) (AnovaResult, error) {
	k := len(groups)
	if k < 2 {
		return AnovaResult{}, fmt.Errorf("anova requires at least 2 groups, got %d", k)
	}

	var total float64
	var n int
	for i, group := range groups {
		if len(group) == 0 {
			return AnovaResult{}, fmt.Errorf("anova group %d is empty", i)
		}
		for _, v := range group {
			total += v
		}
		n += len(group)
	}

	if n-k < 1 {
		return AnovaResult{}, fmt.Errorf("anova needs more observations than groups: n=%d k=%d", n, k)
	}

	grand := total / float64(n)

	var ssBetween, ssWithin float64
	for _, group := range groups {
		var groupSum float64
		for _, v := range group {
			groupSum += v
		}
		groupMean := groupSum / float64(len(group))

		ssBetween += float64(len(group)) * (groupMean - grand) * (groupMean - grand)
		for _, v := range group {
			ssWithin += (v - groupMean) * (v - groupMean)
		}
	}

	dfBetween := float64(k - 1)
	dfWithin := float64(n - k)

	msBetween := ssBetween / dfBetween
	msWithin := ssWithin / dfWithin

	var f, p float64
	switch {
	case msWithin == 0 && msBetween == 0:
		f, p = math.NaN(), math.NaN()
	case msWithin == 0:
		f, p = math.Inf(1), 0
	default:
		f = msBetween / msWithin
		dist := distuv.F{D1: dfBetween, D2: dfWithin}
		p = dist.Survival(f)
	}

	return AnovaResult{
		FStatistic:   f,
		PValue:       p,
		GroupsDiffer: !math.IsNaN(p) && p < SignificanceLevel,
	}, nil
}
