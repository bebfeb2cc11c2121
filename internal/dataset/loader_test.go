package dataset

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newTempLoader(t *testing.T, content string) *Loader {
	t.Helper()
	path := writeSource(t, "temperature.csv", content)
	return NewLoader(path, "", testLogger())
}

const tempHeader = "Date,Location,amonthly average temp,Year,Month\n"

func TestLoader_Load(t *testing.T) {
	loader := newTempLoader(t, tempHeader+
		"2019-02-01,Delhi,15.5,2019,2\n"+
		"2019-01-01,Chennai,24.3,2019,1\n"+
		"2019-01-01,Delhi,14.0,2019,1\n")

	records, err := loader.Load(context.Background(), KindTemperature, nil)
	require.NoError(t, err)
	require.Len(t, records, 3)

	// Sorted by (date, city)
	assert.Equal(t, "Chennai", records[0].City)
	assert.Equal(t, "Delhi", records[1].City)
	assert.Equal(t, time.Date(2019, 2, 1, 0, 0, 0, 0, time.UTC), records[2].Date)
	assert.Equal(t, 24.3, records[0].Value)
	assert.Equal(t, 2019, records[0].Year)
	assert.Equal(t, 1, records[0].Month)
}

func TestLoader_BOMHeader(t *testing.T) {
	loader := newTempLoader(t, "\ufeff"+tempHeader+"2019-01-01,Chennai,24.3,2019,1\n")

	records, err := loader.Load(context.Background(), KindTemperature, nil)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestLoader_CityCorrection(t *testing.T) {
	loader := newTempLoader(t, tempHeader+"2019-01-01,Hyerabad,28.0,2019,1\n")

	records, err := loader.Load(context.Background(), KindTemperature, nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Hyderabad", records[0].City, "known typo is corrected at load time")
}

func TestLoader_DuplicateKeepsFirst(t *testing.T) {
	loader := newTempLoader(t, tempHeader+
		"2019-01-01,Chennai,24.3,2019,1\n"+
		"2019-01-01,Chennai,99.9,2019,1\n")

	records, err := loader.Load(context.Background(), KindTemperature, nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 24.3, records[0].Value, "first occurrence in file order wins")
}

func TestLoader_DropsUnparseableRows(t *testing.T) {
	loader := newTempLoader(t, tempHeader+
		"2019-01-01,Chennai,24.3,2019,1\n"+
		"2019-02-01,Chennai,,2019,2\n"+
		"2019-03-01,Chennai,not-a-number,2019,3\n"+
		"bad-date,Chennai,25.0,2019,4\n"+
		"2019-05-01,,25.0,2019,5\n")

	records, err := loader.Load(context.Background(), KindTemperature, nil)
	require.NoError(t, err)
	assert.Len(t, records, 1, "rows with missing value, bad value, bad date, or no city are dropped")
}

func TestLoader_CitySelection(t *testing.T) {
	content := tempHeader +
		"2019-01-01,Chennai,24.3,2019,1\n" +
		"2019-01-01,Delhi,14.0,2019,1\n"
	loader := newTempLoader(t, content)
	ctx := context.Background()

	all, err := loader.Load(ctx, KindTemperature, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2, "nil selects all cities")

	none, err := loader.Load(ctx, KindTemperature, []string{})
	require.NoError(t, err)
	assert.Empty(t, none, "empty non-nil selects none")

	one, err := loader.Load(ctx, KindTemperature, []string{"Delhi"})
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "Delhi", one[0].City)

	unknown, err := loader.Load(ctx, KindTemperature, []string{"Atlantis"})
	require.NoError(t, err)
	assert.Empty(t, unknown, "unrecognized names match nothing")
}

func TestLoader_MissingFile(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "absent.csv"), "", testLogger())

	_, err := loader.Load(context.Background(), KindTemperature, nil)
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestLoader_MissingColumn(t *testing.T) {
	loader := newTempLoader(t, "Date,Location,Year,Month\n2019-01-01,Chennai,2019,1\n")

	_, err := loader.Load(context.Background(), KindTemperature, nil)
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		cell  string
		want  float64
		valid bool
	}{
		{"24.3", 24.3, true},
		{" 24.3 ", 24.3, true},
		{"1,234.5", 1234.5, true},
		{"", 0, false},
		{"abc", 0, false},
		{"NaN", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseValue(tt.cell)
		assert.Equal(t, tt.valid, ok, tt.cell)
		if tt.valid {
			assert.Equal(t, tt.want, got, tt.cell)
		}
	}
}

func TestParseDate_Layouts(t *testing.T) {
	for _, cell := range []string{"2019-03-01", "2019/03/01", "01-03-2019", "2019-03"} {
		got, ok := parseDate(cell)
		require.True(t, ok, cell)
		assert.Equal(t, time.Date(2019, 3, 1, 0, 0, 0, 0, time.UTC), got, cell)
	}

	_, ok := parseDate("March 1st")
	assert.False(t, ok)
}
