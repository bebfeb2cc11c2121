package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func measurement(date time.Time, city string, value float64) Measurement {
	return Measurement{
		Date:  date,
		City:  city,
		Value: value,
		Year:  date.Year(),
		Month: int(date.Month()),
	}
}

func monthDate(year, month int) time.Time {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}

func TestMerge_InnerJoin(t *testing.T) {
	jan, feb, mar := monthDate(2019, 1), monthDate(2019, 2), monthDate(2019, 3)

	temps := []Measurement{
		measurement(jan, "Chennai", 24.3),
		measurement(feb, "Chennai", 25.1),
		measurement(mar, "Chennai", 26.0), // no matching price
	}
	prices := []Measurement{
		measurement(jan, "Chennai", 4.5),
		measurement(feb, "Chennai", 4.8),
		measurement(jan, "Delhi", 5.0), // no matching temperature
	}

	rows := Merge(temps, prices)
	require.Len(t, rows, 2, "records without a counterpart are dropped")

	assert.Equal(t, "Chennai", rows[0].City)
	assert.Equal(t, jan, rows[0].Date)
	assert.Equal(t, 24.3, rows[0].Temperature)
	assert.Equal(t, 4.5, rows[0].EggPrice)
	assert.Equal(t, 2019, rows[0].Year)
	assert.Equal(t, "January", rows[0].MonthName)

	assert.Equal(t, feb, rows[1].Date)
	assert.Equal(t, "February", rows[1].MonthName)
}

func TestMerge_Ordering(t *testing.T) {
	jan, feb := monthDate(2019, 1), monthDate(2019, 2)

	temps := []Measurement{
		measurement(feb, "Delhi", 15.0),
		measurement(jan, "Delhi", 14.0),
		measurement(jan, "Chennai", 24.0),
	}
	prices := []Measurement{
		measurement(jan, "Chennai", 4.5),
		measurement(feb, "Delhi", 5.2),
		measurement(jan, "Delhi", 5.0),
	}

	rows := Merge(temps, prices)
	require.Len(t, rows, 3)

	assert.Equal(t, "Chennai", rows[0].City)
	assert.Equal(t, "Delhi", rows[1].City)
	assert.Equal(t, jan, rows[1].Date)
	assert.Equal(t, feb, rows[2].Date)
}

func TestMerge_DuplicatePriceKeepsFirst(t *testing.T) {
	jan := monthDate(2019, 1)

	temps := []Measurement{measurement(jan, "Chennai", 24.0)}
	prices := []Measurement{
		measurement(jan, "Chennai", 4.5),
		measurement(jan, "Chennai", 9.9),
	}

	rows := Merge(temps, prices)
	require.Len(t, rows, 1)
	assert.Equal(t, 4.5, rows[0].EggPrice)
}

func TestMerge_EmptyAndDisjoint(t *testing.T) {
	jan := monthDate(2019, 1)
	temps := []Measurement{measurement(jan, "Chennai", 24.0)}
	prices := []Measurement{measurement(jan, "Delhi", 5.0)}

	assert.Nil(t, Merge(nil, prices))
	assert.Nil(t, Merge(temps, nil))
	assert.Nil(t, Merge(temps, prices), "disjoint keys join to nothing")
}
