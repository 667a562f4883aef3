package http

import (
	"net/http"
	"time"

	apperrors "reservationmanager/pkg/errors"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// ExtractDateRange parses the from/to query parameters. Both are required
// and must be calendar dates in DateLayout.
func ExtractDateRange(r *http.Request) (time.Time, time.Time, error) {
	query := r.URL.Query()

	from, err := ParseDate(query.Get("from"))
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.InvalidInput("invalid 'from' parameter: expected " + DateLayout)
	}

	to, err := ParseDate(query.Get("to"))
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.InvalidInput("invalid 'to' parameter: expected " + DateLayout)
	}

	return from, to, nil
}

// ParseDate parses a calendar date in DateLayout as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
