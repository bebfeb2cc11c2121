package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	apierrors "dataweaver/internal/errors"
	"dataweaver/internal/services"
)

var validate = validator.New()

// rowsParams holds the raw query parameters shared by the data and analysis
// endpoints before they are converted into a service query.
type rowsParams struct {
	StartDate string `validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `validate:"omitempty,datetime=2006-01-02"`
	Window    string `validate:"omitempty,number"`
}

// parseRowsQuery converts request query parameters into a service query.
// An absent cities parameter selects all cities; a present but empty one
// selects none. Dates must be ISO (2006-01-02) and both bounds inclusive.
func parseRowsQuery(r *http.Request) (services.RowsQuery, error) {
	params := rowsParams{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	if err := validate.Struct(params); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) && len(invalid) > 0 {
			field := strings.ToLower(invalid[0].Field())
			return services.RowsQuery{}, apierrors.ErrValidation(field,
				fmt.Sprintf("parameter %s is invalid, expected an ISO date (YYYY-MM-DD)", field))
		}
		return services.RowsQuery{}, apierrors.ErrValidation("query", "invalid query parameters")
	}

	query := services.RowsQuery{}

	if values, present := r.URL.Query()["cities"]; present {
		cities := []string{}
		for _, value := range values {
			for _, city := range strings.Split(value, ",") {
				if city = strings.TrimSpace(city); city != "" {
					cities = append(cities, city)
				}
			}
		}
		query.Cities = cities
	}

	if params.StartDate != "" {
		start, _ := time.Parse("2006-01-02", params.StartDate)
		query.Start = &start
	}
	if params.EndDate != "" {
		end, _ := time.Parse("2006-01-02", params.EndDate)
		query.End = &end
	}

	return query, nil
}

// parseWindow reads the optional rolling window parameter, zero when absent
func parseWindow(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("window")
	if raw == "" {
		return 0, nil
	}

	window, err := strconv.Atoi(raw)
	if err != nil || window < 2 || window > 60 {
		return 0, apierrors.ErrValidation("window", "window must be an integer between 2 and 60")
	}
	return window, nil
}
