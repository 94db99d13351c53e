package academics

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseAcademicYear extracts the start year from a "YYYY-YYYY+1" label.
func ParseAcademicYear(label string) (int, error) {
	parts := strings.Split(label, "-")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid academic year %q", label)
	}
	start, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid academic year %q", label)
	}
	end, err := strconv.Atoi(parts[1])
	if err != nil || end != start+1 {
		return 0, fmt.Errorf("invalid academic year %q", label)
	}
	return start, nil
}

// FormatAcademicYear builds the "YYYY-YYYY+1" label for a start year.
func FormatAcademicYear(start int) string {
	return fmt.Sprintf("%d-%d", start, start+1)
}

// NextAcademicYear advances a "Y-Y+1" label to "Y+1-Y+2".
func NextAcademicYear(label string) (string, error) {
	start, err := ParseAcademicYear(label)
	if err != nil {
		return "", err
	}
	return FormatAcademicYear(start + 1), nil
}

// TuitionDueDate returns the calendar cutoff for a tuition charge: December 31
// of the year the charge is created in.
func TuitionDueDate(now time.Time) time.Time {
	return time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, now.Location())
}
