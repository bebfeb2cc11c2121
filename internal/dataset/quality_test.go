package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func joinedRow(date time.Time, city string, temp, price float64) Row {
	return Row{
		Date:        date,
		City:        city,
		Temperature: temp,
		EggPrice:    price,
		Year:        date.Year(),
		MonthName:   date.Month().String(),
	}
}

func TestSummarize(t *testing.T) {
	rows := []Row{
		joinedRow(monthDate(2019, 1), "Chennai", 24.0, 4.0),
		joinedRow(monthDate(2019, 2), "Chennai", 26.0, 6.0),
		joinedRow(monthDate(2019, 1), "Delhi", 14.0, 5.0),
	}

	summary := Summarize(rows)

	assert.Equal(t, 3, summary.TotalRecords)
	assert.Equal(t, 2, summary.CitiesCount)
	assert.Equal(t, []string{"Chennai", "Delhi"}, summary.Cities)
	assert.Equal(t, "2019-01-01", summary.DateRange.Start)
	assert.Equal(t, "2019-02-01", summary.DateRange.End)

	assert.Equal(t, 14.0, summary.Temperature.Min)
	assert.Equal(t, 26.0, summary.Temperature.Max)
	assert.InDelta(t, 64.0/3, summary.Temperature.Mean, 1e-9)
	assert.Greater(t, summary.Temperature.Std, 0.0)

	assert.Equal(t, 4.0, summary.EggPrice.Min)
	assert.Equal(t, 6.0, summary.EggPrice.Max)
	assert.InDelta(t, 5.0, summary.EggPrice.Mean, 1e-9)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestDetectMissingMonths(t *testing.T) {
	rows := []Row{
		joinedRow(monthDate(2019, 1), "Chennai", 24.0, 4.0),
		joinedRow(monthDate(2019, 2), "Chennai", 25.0, 5.0),
		joinedRow(monthDate(2019, 5), "Chennai", 27.0, 6.0),
		joinedRow(monthDate(2019, 1), "Delhi", 14.0, 5.0),
		joinedRow(monthDate(2019, 2), "Delhi", 15.0, 5.2),
	}

	gaps := DetectMissingMonths(rows)
	require.Len(t, gaps, 2)

	chennai := gaps[0]
	assert.Equal(t, "Chennai", chennai.City)
	assert.Equal(t, 3, chennai.TotalRecords)
	assert.Equal(t, 2, chennai.MissingMonths)
	assert.Equal(t, []string{"2019-03", "2019-04"}, chennai.MissingDates)

	delhi := gaps[1]
	assert.Equal(t, "Delhi", delhi.City)
	assert.Zero(t, delhi.MissingMonths)
	assert.Empty(t, delhi.MissingDates)
}

func TestDetectMissingMonths_Empty(t *testing.T) {
	assert.Empty(t, DetectMissingMonths(nil))
}
