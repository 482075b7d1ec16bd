package event

import (
	"fmt"
	"strings"
	"time"
)

const (
	// TBD is the placeholder for a location, date or time the row does not carry
	TBD = "TBD"
	// DateLayout is the calendar date layout of every display record
	DateLayout = "2006-01-02"

	timeRangeSeparator = " – "
)

// FormattedTime is the date, time range and location label of one event
type FormattedTime struct {
	Date     string
	Time     string
	Location string
}

// FormatEvent formats an event's start date, time range and location in UTC.
func FormatEvent(raw RawEvent) FormattedTime {
	return FormatEventIn(raw, time.UTC)
}

// FormatEventIn formats like FormatEvent but in the viewer's zone. The
// layout is identical; only the wall-clock values may differ. A nil loc
// means UTC.
func FormatEventIn(raw RawEvent, loc *time.Location) FormattedTime {
	return FormattedTime{
		Date:     FormatDate(raw.StartAt, loc),
		Time:     FormatTimeRange(raw.StartAt, raw.EndAt, loc),
		Location: ResolveLocation(raw),
	}
}

// FormatDate returns the calendar date of t in loc, or TBD for a zero time.
func FormatDate(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return TBD
	}
	return t.In(zoneOrUTC(loc)).Format(DateLayout)
}

// FormatTimeRange renders "6:30 PM – 8:00 PM". Either end missing yields TBD.
func FormatTimeRange(start, end time.Time, loc *time.Location) string {
	if start.IsZero() || end.IsZero() {
		return TBD
	}
	loc = zoneOrUTC(loc)
	return FormatClock(start.In(loc)) + timeRangeSeparator + FormatClock(end.In(loc))
}

// FormatClock renders the 12-hour wall clock of t: 0h is 12 AM, 12h is 12 PM.
func FormatClock(t time.Time) string {
	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	suffix := "AM"
	if t.Hour() >= 12 {
		suffix = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", hour, t.Minute(), suffix)
}

// ResolveLocation picks the first non-blank of venue name, city and address.
func ResolveLocation(raw RawEvent) string {
	for _, candidate := range []*string{raw.VenueName, raw.City, raw.Address} {
		if v := trimmed(candidate); v != "" {
			return v
		}
	}
	return TBD
}

// ResolveCountry returns the trimmed country or UnknownLabel
func ResolveCountry(raw RawEvent) string {
	if v := trimmed(raw.Country); v != "" {
		return v
	}
	return UnknownLabel
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func zoneOrUTC(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}
