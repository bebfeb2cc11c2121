// Package analysis implements the statistical side of the pipeline: Pearson
// correlation per city and overall (with two-sided p-values under the t
// distribution), the Shapiro-Wilk normality test, one-way ANOVA across city
// price groups, rolling price volatility, extreme temperature events, and
// the deterministic natural-language insight statements.
//
// A correlation over a zero-variance series is NaN, never an error; NaN
// results are excluded from significance and from "strongest" selection and
// serialize as JSON null. All group iteration is lexicographic by city.
package analysis
