// Package ingest turns uploaded spreadsheets into validated schedule entries.
// Nothing here touches storage: callers decide what to do with an accepted batch.
package ingest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/campusboard/busboard/internal/domain"
)

// DepartureLayout documents the accepted departure time format.
const DepartureLayout = "DD-MM-YYYY HH:MM"

// departurePattern accepts one or two digit day, month and hour, a four digit
// year and two digit minutes.
var departurePattern = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{4}) (\d{1,2}):(\d{2})$`)

// ParseDepartureTime parses a "DD-MM-YYYY HH:MM" 24-hour timestamp in loc.
// Dates that do not exist on the calendar (31-02-2025, 29-02-2023) are rejected
// instead of rolling over into the following month.
func ParseDepartureTime(s string, loc *time.Location) (time.Time, error) {
	m := departurePattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, fmt.Errorf("%q does not match %s", s, DepartureLayout)
	}

	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	hour, _ := strconv.Atoi(m[4])
	minute, _ := strconv.Atoi(m[5])

	t := time.Date(year, time.Month(month), day, hour, minute, 0, 0, loc)

	// time.Date normalises out-of-range values; any difference means the
	// input was not a real calendar instant.
	if t.Day() != day || int(t.Month()) != month || t.Year() != year ||
		t.Hour() != hour || t.Minute() != minute {
		return time.Time{}, fmt.Errorf("%q is not a valid calendar date", s)
	}
	return t, nil
}

// ParseRow validates one raw spreadsheet row. index is the 0-based position of
// the row among the data rows; reported row numbers are index+2 to account for
// the header line.
//
// When source, destination or departure time is missing only the "required"
// errors are returned; no further checks run on that row.
func ParseRow(row domain.RawRow, index int, loc *time.Location) (domain.ScheduleEntry, []domain.RowValidationError) {
	rowNumber := index + 2
	var errs []domain.RowValidationError
	fail := func(format string, args ...any) {
		errs = append(errs, domain.RowValidationError{Row: rowNumber, Error: fmt.Sprintf(format, args...)})
	}

	source := strings.TrimSpace(row[domain.ColumnSource])
	destination := strings.TrimSpace(row[domain.ColumnDestination])
	departure := strings.TrimSpace(row[domain.ColumnDepartureTime])
	status := strings.TrimSpace(row[domain.ColumnStatus])
	isPaidRaw := strings.ToLower(strings.TrimSpace(row[domain.ColumnIsPaid]))

	if source == "" {
		fail("Source is required.")
	}
	if destination == "" {
		fail("Destination is required.")
	}
	if departure == "" {
		fail("Departure Time is required.")
	}
	if len(errs) > 0 {
		return domain.ScheduleEntry{}, errs
	}

	if source == destination {
		fail("Source and Destination cannot be the same.")
	}

	departureTime, err := ParseDepartureTime(departure, loc)
	if err != nil {
		fail("Departure Time format is invalid for '%s'. Use %s.", departure, DepartureLayout)
	}

	isPaid, ok := parsePaidFlag(isPaidRaw)
	if !ok {
		fail("Is Paid value is invalid. Use 'True' or 'False'.")
	}

	if len(errs) > 0 {
		return domain.ScheduleEntry{}, errs
	}

	if status == "" {
		status = domain.DefaultStatus
	}

	return domain.ScheduleEntry{
		Origin:        domain.ResolveLocation(source),
		Destination:   domain.ResolveLocation(destination),
		DepartureTime: departureTime,
		Status:        status,
		IsPaid:        isPaid,
	}, nil
}

// parsePaidFlag accepts true/false/1/0 (already lower-cased). Empty means paid.
func parsePaidFlag(s string) (bool, bool) {
	switch s {
	case "", "true", "1":
		return true, true
	case "false", "0":
		return false, true
	default:
		return false, false
	}
}
