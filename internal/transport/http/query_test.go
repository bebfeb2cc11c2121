package http

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRowsQuery_CitySemantics(t *testing.T) {
	// Absent parameter selects all cities
	query, err := parseRowsQuery(httptest.NewRequest("GET", "/rows", nil))
	require.NoError(t, err)
	assert.Nil(t, query.Cities)

	// Present but empty parameter selects none
	query, err = parseRowsQuery(httptest.NewRequest("GET", "/rows?cities=", nil))
	require.NoError(t, err)
	require.NotNil(t, query.Cities)
	assert.Empty(t, query.Cities)

	// Comma-separated and repeated parameters both work
	query, err = parseRowsQuery(httptest.NewRequest("GET", "/rows?cities=Pune,Delhi&cities=Chennai", nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"Pune", "Delhi", "Chennai"}, query.Cities)
}

func TestParseRowsQuery_Dates(t *testing.T) {
	query, err := parseRowsQuery(httptest.NewRequest("GET", "/rows?start_date=2019-01-01", nil))
	require.NoError(t, err)
	require.NotNil(t, query.Start)
	assert.Nil(t, query.End)

	_, err = parseRowsQuery(httptest.NewRequest("GET", "/rows?end_date=not-a-date", nil))
	assert.Error(t, err)
}

func TestParseWindow(t *testing.T) {
	window, err := parseWindow(httptest.NewRequest("GET", "/volatility", nil))
	require.NoError(t, err)
	assert.Zero(t, window)

	window, err = parseWindow(httptest.NewRequest("GET", "/volatility?window=12", nil))
	require.NoError(t, err)
	assert.Equal(t, 12, window)

	for _, raw := range []string{"1", "61", "abc"} {
		_, err = parseWindow(httptest.NewRequest("GET", "/volatility?window="+raw, nil))
		assert.Error(t, err, raw)
	}
}
