package snapcast

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ValidateRef checks the episode reference grammar without contacting the
// host: a non-negative integer episode number, a UUID, or -1 meaning the
// latest episode.
func ValidateRef(ref string) error {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return &InvalidIDError{Ref: ref}
	}
	if n, err := strconv.ParseInt(ref, 10, 64); err == nil {
		if n >= -1 {
			return nil
		}
		return &InvalidIDError{Ref: ref}
	}
	if _, err := uuid.Parse(ref); err == nil {
		return nil
	}
	return &InvalidIDError{Ref: ref}
}

// ConvertFieldValue normalizes a raw CLI value for the given database
// field into the type the host expects. media_duration accepts
// "[[HH:]MM:]SS" and becomes integer seconds; pub_date accepts a local
// "YYYY-MM-DD[ HH:MM]" timestamp and becomes an RFC 3339 UTC string. All
// other fields pass through as strings.
func ConvertFieldValue(field, value string) (any, error) {
	switch field {
	case "media_duration":
		seconds, err := ParseClockDuration(value)
		if err != nil {
			return nil, err
		}
		return seconds, nil
	case "pub_date":
		converted, err := localToUTC(value)
		if err != nil {
			return nil, err
		}
		return converted, nil
	default:
		return value, nil
	}
}

// ParseClockDuration converts "[[HH:]MM:]SS" to whole seconds.
func ParseClockDuration(value string) (int64, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) == 0 || len(parts) > 3 {
		return 0, fmt.Errorf("parse duration %q: expected [[HH:]MM:]SS", value)
	}
	var total int64
	for _, part := range parts {
		n, err := strconv.ParseInt(part, 10, 64)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("parse duration %q: expected [[HH:]MM:]SS", value)
		}
		total = total*60 + n
	}
	return total, nil
}

// FormatClockDuration renders a duration as H:MM:SS.
func FormatClockDuration(d time.Duration) string {
	seconds := int64(d / time.Second)
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

var localDateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// localToUTC interprets value in the local timezone and returns the
// equivalent RFC 3339 UTC string. Values carrying an explicit offset are
// honoured as given.
func localToUTC(value string) (string, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC().Format(time.RFC3339), nil
	}
	for _, layout := range localDateLayouts {
		t, err := time.ParseInLocation(layout, value, time.Local)
		if err == nil {
			return t.UTC().Format(time.RFC3339), nil
		}
	}
	return "", fmt.Errorf("parse pub_date %q: expected YYYY-MM-DD[ HH:MM[:SS]]", value)
}
