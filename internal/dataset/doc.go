// Package dataset implements the data side of the correlation pipeline:
// loading the temperature and egg price CSV sources into canonical
// measurement records, the inner equijoin of the two streams on
// (date, city, year, month), the inclusive date range filter, descriptive
// summaries, and a memoizing store that caches load results per requested
// city set and invalidates them when a source file changes on disk.
//
// Every operation is pure with respect to its inputs; a missing or
// unparseable source surfaces as ErrSourceUnavailable and an empty result,
// never as a fault that propagates to callers.
package dataset
