package utils

import "time"

// DateLayout is how journal dates are stored and submitted.
const DateLayout = "2006-01-02"

func GetCurrentTimestamp() int64 {
	return time.Now().Unix()
}

// Today returns the current local date in DateLayout.
func Today() string {
	return time.Now().Format(DateLayout)
}

// ValidDate reports whether s is a calendar date in DateLayout.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// FormatDate renders a stored date as "05 Jan 2025"; anything unparsable is
// returned unchanged.
func FormatDate(s string) string {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return s
	}
	return t.Format("02 Jan 2006")
}
